package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/riandyrn/otelchi"
	"github.com/rs/cors"
)

// New creates a chi router with the middleware every web facing
// endpoint of the bridge shares. The dashboard and the mobile app are
// served from other origins, so cross origin requests are allowed.
func New(serviceName string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.AllowAll().Handler)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))

	return r
}
