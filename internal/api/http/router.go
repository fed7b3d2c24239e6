package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter assembles the full HTTP surface: API routes, metrics endpoint
// and the static upload files, wrapped in CORS.
func NewRouter(handler *Handler, uploadDir string) http.Handler {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	handler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	return cors.Default().Handler(r)
}
