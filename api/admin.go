package api

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
)

// registry returns the current actor registry.
// GET /admin/providers
func (a *API) registry(w http.ResponseWriter, r *http.Request) {
	reg, err := a.engine.Registry()
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteJSON(w, reg)
}

// authorizeProvider adds an actor to the provider set. Administrator only.
// POST /admin/providers/{address}
func (a *API) authorizeProvider(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		ErrMalformedActor.Write(w)
		return
	}
	raw := chi.URLParam(r, AddressURLParam)
	if !common.IsHexAddress(raw) {
		ErrMalformedParam.Withf("invalid provider address").Write(w)
		return
	}
	if err := a.engine.AuthorizeProvider(actor, common.HexToAddress(raw)); err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// revokeProvider removes an actor from the provider set. Administrator only.
// DELETE /admin/providers/{address}
func (a *API) revokeProvider(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		ErrMalformedActor.Write(w)
		return
	}
	raw := chi.URLParam(r, AddressURLParam)
	if !common.IsHexAddress(raw) {
		ErrMalformedParam.Withf("invalid provider address").Write(w)
		return
	}
	if err := a.engine.RevokeProvider(actor, common.HexToAddress(raw)); err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// setPaused changes the pause flag. Administrator only.
// POST /admin/pause
func (a *API) setPaused(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		ErrMalformedActor.Write(w)
		return
	}
	req := &PauseRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if err := a.engine.SetPaused(actor, req.Paused); err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// setCooldown changes the cooldown window. Administrator only.
// POST /admin/cooldown
func (a *API) setCooldown(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		ErrMalformedActor.Write(w)
		return
	}
	req := &CooldownRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if err := a.engine.SetCooldown(actor, req.Seconds); err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// transferAdmin hands the administrator role over. Administrator only.
// POST /admin/transfer
func (a *API) transferAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		ErrMalformedActor.Write(w)
		return
	}
	req := &TransferAdminRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if !common.IsHexAddress(req.NewAdmin) {
		ErrMalformedBody.Withf("invalid new admin address").Write(w)
		return
	}
	if err := a.engine.TransferAdmin(actor, common.HexToAddress(req.NewAdmin)); err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteOK(w)
}
