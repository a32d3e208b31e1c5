package service

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/metadb"
	"go.vocdoni.io/dvote/log"

	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/settle"
	"github.com/confidsys/batchsettle/storage"
)

func TestMain(m *testing.M) {
	log.Init("error", "stderr", nil)
	os.Exit(m.Run())
}

func TestOracleMonitor(t *testing.T) {
	c := qt.New(t)

	// Setup storage
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "db")
	database, err := metadb.New(db.TypePebble, dbPath)
	c.Assert(err, qt.IsNil)

	store := storage.New(database)
	admin := common.HexToAddress("0x0000000000000000000000000000000000000a01")
	provider := common.HexToAddress("0x0000000000000000000000000000000000000b01")

	mock := fhe.NewMockCollaborator([]byte("monitor-test-secret"))
	engine, err := settle.New(store, mock, mock, mock, settle.Config{
		Admin:    admin,
		Identity: []byte("monitor-test-system"),
	})
	c.Assert(err, qt.IsNil)

	// Settle one batch end to end, with the callback delivered by the monitor.
	c.Assert(engine.AuthorizeProvider(admin, provider), qt.IsNil)
	_, err = engine.OpenBatch(admin)
	c.Assert(err, qt.IsNil)
	_, err = engine.SubmitContribution(provider, big.NewInt(1000), big.NewInt(200), fhe.NewHandle(big.NewInt(77)))
	c.Assert(err, qt.IsNil)
	_, err = engine.CloseBatch(admin)
	c.Assert(err, qt.IsNil)

	monitor := NewOracleMonitor(engine, mock, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = monitor.Start(ctx)
	c.Assert(err, qt.IsNil)
	defer monitor.Stop()

	// A second Start must fail while the first is running.
	err = monitor.Start(ctx)
	c.Assert(err, qt.ErrorMatches, "service already running")

	req, err := engine.RequestSettlement(ctx, provider, 1)
	c.Assert(err, qt.IsNil)

	// Wait for the monitor to pick up the result and finalize.
	deadline := time.Now().Add(10 * time.Second)
	for {
		sr, err := engine.SettlementRequest(req.Token)
		c.Assert(err, qt.IsNil)
		if sr.Processed {
			c.Assert(sr.Result, qt.Not(qt.IsNil))
			c.Assert(sr.Result.DecryptedTotal.String(), qt.Equals, "77")
			break
		}
		if time.Now().After(deadline) {
			c.Fatal("settlement was never finalized")
		}
		time.Sleep(50 * time.Millisecond)
	}
}
