package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.vocdoni.io/dvote/log"

	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/settle"
)

// OracleMonitor represents a service that watches the decryption oracle for
// finished results and feeds them into the settlement engine. Rejected
// results are logged and dropped; the oracle never gets a retry, a fresh
// settlement request has to be triggered instead.
type OracleMonitor struct {
	engine   *settle.Engine
	oracle   fhe.Oracle
	interval time.Duration
	mu       sync.Mutex
	cancel   context.CancelFunc
}

// NewOracleMonitor creates a new OracleMonitor service.
func NewOracleMonitor(engine *settle.Engine, oracle fhe.Oracle, interval time.Duration) *OracleMonitor {
	return &OracleMonitor{
		engine:   engine,
		oracle:   oracle,
		interval: interval,
	}
}

// Start begins monitoring for decryption results. It returns an error if the
// service is already running or if it fails to start monitoring.
func (om *OracleMonitor) Start(ctx context.Context) error {
	om.mu.Lock()
	defer om.mu.Unlock()

	if om.cancel != nil {
		return fmt.Errorf("service already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	om.cancel = cancel

	resChan, err := om.oracle.MonitorResults(ctx, om.interval)
	if err != nil {
		om.cancel = nil
		return fmt.Errorf("failed to start oracle monitoring: %w", err)
	}

	go om.monitorResults(ctx, resChan)
	return nil
}

// Stop halts the monitoring service.
func (om *OracleMonitor) Stop() {
	om.mu.Lock()
	defer om.mu.Unlock()

	if om.cancel != nil {
		om.cancel()
		om.cancel = nil
	}
}

func (om *OracleMonitor) monitorResults(ctx context.Context, resChan <-chan *fhe.Result) {
	for {
		select {
		case <-ctx.Done():
			return
		case res, ok := <-resChan:
			if !ok {
				return
			}
			req, err := om.engine.OnDecryptionResult(res.Token, res.Cleartext, res.Proof)
			if err != nil {
				log.Warnw("decryption result rejected", "token", res.Token, "error", err.Error())
				continue
			}
			log.Infow("settlement finalized", "token", req.Token, "batchId", req.BatchID,
				"total", req.Result.DecryptedTotal.String(), "profit", req.Result.Profit.String())
		}
	}
}
