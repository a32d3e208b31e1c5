package service

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arbo/memdb"

	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/settle"
	"github.com/confidsys/batchsettle/storage"
)

func TestAPIService(t *testing.T) {
	c := qt.New(t)

	// Setup storage and engine over an in-memory database
	kv := memdb.New()
	store := storage.New(kv)

	mock := fhe.NewMockCollaborator([]byte("api-service-test"))
	engine, err := settle.New(store, mock, mock, mock, settle.Config{
		Admin:    common.HexToAddress("0x0000000000000000000000000000000000000a01"),
		Identity: []byte("api-service-test-system"),
	})
	c.Assert(err, qt.IsNil)

	// Create API service with a random available port
	apiService := NewAPI(engine, "127.0.0.1", 0) // Port 0 lets the OS choose an available port

	// Start service in background
	ctx := context.Background()

	err = apiService.Start(ctx)
	c.Assert(err, qt.IsNil)
	defer apiService.Stop()

	// Give the service time to start
	time.Sleep(2 * time.Second)

	// Test stopping and restarting
	apiService.Stop()
	err = apiService.Start(ctx)
	c.Assert(err, qt.IsNil)

	// Test starting an already running service
	err = apiService.Start(ctx)
	c.Assert(err, qt.ErrorMatches, "service already running")
}
