package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tenure/internal/platform/middleware"
)

// Deps collects everything the router mounts. Nil optional handlers are
// skipped so callers without the corresponding backend wire fewer pieces.
type Deps struct {
	Companies   *CompanyHandler
	Credentials *CredentialHandler
	Contracts   *ContractHandler
	Reviews     *ReviewHandler
	Events      *EventsHandler
	Auth        *AuthHandler

	Validator middleware.TokenValidator
	Logger    *slog.Logger
}

// NewRouter assembles the HTTP surface: open health, metrics and token
// endpoints, and the authenticated domain API.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	if deps.Auth != nil {
		deps.Auth.Register(r)
	}

	r.Group(func(api chi.Router) {
		api.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
		deps.Companies.Register(api)
		deps.Credentials.Register(api)
		deps.Contracts.Register(api)
		deps.Reviews.Register(api)
		if deps.Events != nil {
			deps.Events.Register(api)
		}
	})
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func secondsToDuration(seconds int64) time.Duration {
	return time.Duration(seconds) * time.Second
}
