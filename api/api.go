package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.vocdoni.io/dvote/log"

	"github.com/confidsys/batchsettle/settle"
)

// APIConfig type represents the configuration for the API HTTP server.
// It includes the host, port and the settlement engine to expose.
type APIConfig struct {
	Host   string
	Port   int
	Engine *settle.Engine
}

// API type represents the API HTTP server exposing the settlement engine.
type API struct {
	router *chi.Mux
	engine *settle.Engine
}

// New creates a new API instance with the given configuration and starts
// the HTTP server.
func New(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Engine == nil {
		return nil, fmt.Errorf("missing settlement engine")
	}
	a := &API{
		engine: conf.Engine,
	}

	// Initialize router
	a.initRouter()
	go func() {
		log.Infow("Starting API server", "host", conf.Host, "port", conf.Port)
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", conf.Host, conf.Port), a.router); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
	return a, nil
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	log.Infow("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	log.Infow("register handler", "endpoint", BatchesEndpoint, "method", "POST")
	a.router.Post(BatchesEndpoint, a.openBatch)
	log.Infow("register handler", "endpoint", BatchCloseEndpoint, "method", "POST")
	a.router.Post(BatchCloseEndpoint, a.closeBatch)
	log.Infow("register handler", "endpoint", BatchEndpoint, "method", "GET")
	a.router.Get(BatchEndpoint, a.batch)
	log.Infow("register handler", "endpoint", BatchContributionsEndpoint, "method", "GET")
	a.router.Get(BatchContributionsEndpoint, a.batchContributions)
	log.Infow("register handler", "endpoint", ContributionsEndpoint, "method", "POST")
	a.router.Post(ContributionsEndpoint, a.submitContribution)
	log.Infow("register handler", "endpoint", SettlementsEndpoint, "method", "POST")
	a.router.Post(SettlementsEndpoint, a.requestSettlement)
	log.Infow("register handler", "endpoint", SettlementEndpoint, "method", "GET")
	a.router.Get(SettlementEndpoint, a.settlement)
	log.Infow("register handler", "endpoint", SettlementResultEndpoint, "method", "POST")
	a.router.Post(SettlementResultEndpoint, a.settlementResult)
	log.Infow("register handler", "endpoint", NotificationsEndpoint, "method", "GET")
	a.router.Get(NotificationsEndpoint, a.notifications)
	log.Infow("register handler", "endpoint", AdminProvidersEndpoint, "method", "GET")
	a.router.Get(AdminProvidersEndpoint, a.registry)
	log.Infow("register handler", "endpoint", AdminProviderEndpoint, "method", "POST")
	a.router.Post(AdminProviderEndpoint, a.authorizeProvider)
	log.Infow("register handler", "endpoint", AdminProviderEndpoint, "method", "DELETE")
	a.router.Delete(AdminProviderEndpoint, a.revokeProvider)
	log.Infow("register handler", "endpoint", AdminPauseEndpoint, "method", "POST")
	a.router.Post(AdminPauseEndpoint, a.setPaused)
	log.Infow("register handler", "endpoint", AdminCooldownEndpoint, "method", "POST")
	a.router.Post(AdminCooldownEndpoint, a.setCooldown)
	log.Infow("register handler", "endpoint", AdminTransferEndpoint, "method", "POST")
	a.router.Post(AdminTransferEndpoint, a.transferAdmin)
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	// Create the router with a basic middleware stack
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", ActorHeader},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	a.router.Use(middleware.Timeout(45 * time.Second))

	// Register the API handlers
	a.registerHandlers()
}
