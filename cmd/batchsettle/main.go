package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/metadb"
	"go.vocdoni.io/dvote/log"

	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/service"
	"github.com/confidsys/batchsettle/settle"
	"github.com/confidsys/batchsettle/storage"
)

func main() {
	host := flag.String("host", "0.0.0.0", "API host to bind")
	port := flag.Int("port", 8080, "API port")
	dataDir := flag.String("dataDir", filepath.Join(os.TempDir(), "batchsettle"), "data directory")
	logLevel := flag.String("logLevel", "info", "log level (debug, info, warn, error)")
	adminAddr := flag.String("admin", "", "initial administrator address (hex)")
	identity := flag.String("identity", "batchsettle", "system identity salt mixed into state commitments")
	cooldown := flag.Uint64("cooldown", settle.DefaultCooldownSeconds, "submission/settlement cooldown in seconds")
	revenueFactor := flag.Uint64("revenueFactor", settle.DefaultRevenueFactor, "revenue multiple of the total budget on finalization")
	oracleInterval := flag.Duration("oracleInterval", 5*time.Second, "oracle result polling interval")
	flag.Parse()

	log.Init(*logLevel, "stdout", nil)

	if !common.IsHexAddress(*adminAddr) {
		log.Fatalf("a valid -admin address is required")
	}

	database, err := metadb.New(db.TypePebble, filepath.Join(*dataDir, "db"))
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	store := storage.New(database)

	// The mock collaborator stands in for the FHE coprocessor: handles are
	// opaque to the engine either way.
	collaborator := fhe.NewMockCollaborator([]byte(*identity))

	engine, err := settle.New(store, collaborator, collaborator, collaborator, settle.Config{
		Admin:           common.HexToAddress(*adminAddr),
		Identity:        []byte(*identity),
		RevenueFactor:   *revenueFactor,
		CooldownSeconds: *cooldown,
	})
	if err != nil {
		log.Fatalf("could not create settlement engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := service.NewOracleMonitor(engine, collaborator, *oracleInterval)
	if err := monitor.Start(ctx); err != nil {
		log.Fatalf("could not start oracle monitor: %v", err)
	}

	apiService := service.NewAPI(engine, *host, *port)
	if err := apiService.Start(ctx); err != nil {
		log.Fatalf("could not start API service: %v", err)
	}

	log.Infow("batchsettle running", "host", *host, "port", *port, "dataDir", *dataDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	apiService.Stop()
	monitor.Stop()
	store.Close()
}
