package http

import (
	"net/http"

	"go-vaccine-registration/internal/delivery/http/handler"
	"go-vaccine-registration/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router              *mux.Router
	registrationHandler *handler.RegistrationHandler
	wizardMiddleware    *middleware.WizardMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	registrationHandler *handler.RegistrationHandler,
	wizardMiddleware *middleware.WizardMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		registrationHandler: registrationHandler,
		wizardMiddleware:    wizardMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Prometheus
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Registration routes (public)
	registrations := api.PathPrefix("/registrations").Subrouter()
	registrations.HandleFunc("/options", r.registrationHandler.GetOptions).Methods(http.MethodGet)
	registrations.HandleFunc("/wizards", r.registrationHandler.StartWizard).Methods(http.MethodPost)

	// Registration routes (wizard token)
	current := api.PathPrefix("/registrations/wizards/current").Subrouter()
	current.Use(r.wizardMiddleware.Authenticate)
	current.HandleFunc("", r.registrationHandler.GetWizard).Methods(http.MethodGet)
	current.HandleFunc("", r.registrationHandler.Cancel).Methods(http.MethodDelete)
	current.HandleFunc("/fields", r.registrationHandler.SetField).Methods(http.MethodPatch)
	current.HandleFunc("/submit", r.registrationHandler.Submit).Methods(http.MethodPost)

	// CORS preflight for every path, answered by the CORS middleware
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(r.preflight)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func (r *Router) preflight(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
