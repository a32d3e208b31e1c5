package settle

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/log"

	"github.com/confidsys/batchsettle/storage"
)

// The guard centralizes the precondition checks composed into every
// mutating entry point: role, pause flag and cooldown. Checks never mutate;
// the cooldown timestamp refresh happens inside the operation's own
// transaction once everything else passed.

func requireAdmin(reg *storage.Registry, caller common.Address) error {
	if !reg.IsAdmin(caller.Bytes()) {
		return ErrUnauthorized
	}
	return nil
}

func requireProvider(reg *storage.Registry, caller common.Address) error {
	if !reg.IsProvider(caller.Bytes()) {
		return ErrUnauthorized
	}
	return nil
}

func requireActive(reg *storage.Registry) error {
	if reg.Paused {
		return ErrPaused
	}
	return nil
}

// checkCooldown enforces now >= last + cooldownSeconds.
func (e *Engine) checkCooldown(reg *storage.Registry, last int64) error {
	if last == 0 {
		return nil
	}
	if e.now().Unix() < last+int64(reg.CooldownSeconds) {
		return ErrCooldownActive
	}
	return nil
}

// AuthorizeProvider adds an actor to the provider set. Administrator only.
func (e *Engine) AuthorizeProvider(caller, provider common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.stg.Registry()
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if err := requireAdmin(reg, caller); err != nil {
		return err
	}
	reg.AddProvider(provider.Bytes())
	note := &storage.Notification{
		Kind:  storage.NotifyProviderAuthorized,
		Time:  e.now().Unix(),
		Actor: provider.Bytes(),
	}
	if err := e.stg.ApplyRegistry(reg, note); err != nil {
		return err
	}
	log.Infow("provider authorized", "provider", provider.Hex())
	return nil
}

// RevokeProvider removes an actor from the provider set. Administrator only.
func (e *Engine) RevokeProvider(caller, provider common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.stg.Registry()
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if err := requireAdmin(reg, caller); err != nil {
		return err
	}
	reg.RemoveProvider(provider.Bytes())
	note := &storage.Notification{
		Kind:  storage.NotifyProviderRevoked,
		Time:  e.now().Unix(),
		Actor: provider.Bytes(),
	}
	if err := e.stg.ApplyRegistry(reg, note); err != nil {
		return err
	}
	log.Infow("provider revoked", "provider", provider.Hex())
	return nil
}

// SetPaused sets the pause flag. Administrator only. The flag gates the
// batch, contribution and settlement-trigger operations; the administrative
// surface stays available so the system can always be unpaused.
func (e *Engine) SetPaused(caller common.Address, paused bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.stg.Registry()
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if err := requireAdmin(reg, caller); err != nil {
		return err
	}
	reg.Paused = paused
	note := &storage.Notification{
		Kind:   storage.NotifyPauseChanged,
		Time:   e.now().Unix(),
		Actor:  caller.Bytes(),
		Paused: &paused,
	}
	if err := e.stg.ApplyRegistry(reg, note); err != nil {
		return err
	}
	log.Infow("pause flag changed", "paused", paused)
	return nil
}

// SetCooldown sets the cooldown applied to submissions and settlement
// requests. Administrator only.
func (e *Engine) SetCooldown(caller common.Address, seconds uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.stg.Registry()
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if err := requireAdmin(reg, caller); err != nil {
		return err
	}
	reg.CooldownSeconds = seconds
	note := &storage.Notification{
		Kind:     storage.NotifyCooldownChanged,
		Time:     e.now().Unix(),
		Actor:    caller.Bytes(),
		Cooldown: &seconds,
	}
	if err := e.stg.ApplyRegistry(reg, note); err != nil {
		return err
	}
	log.Infow("cooldown changed", "seconds", seconds)
	return nil
}

// TransferAdmin hands the administrator role to another actor.
// Administrator only.
func (e *Engine) TransferAdmin(caller, newAdmin common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.stg.Registry()
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	if err := requireAdmin(reg, caller); err != nil {
		return err
	}
	reg.Admin = newAdmin.Bytes()
	note := &storage.Notification{
		Kind:  storage.NotifyAdminTransferred,
		Time:  e.now().Unix(),
		Actor: newAdmin.Bytes(),
	}
	if err := e.stg.ApplyRegistry(reg, note); err != nil {
		return err
	}
	log.Infow("administrator transferred", "newAdmin", newAdmin.Hex())
	return nil
}
