package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/expense-claims/internal/claim"
	"github.com/frahmantamala/expense-claims/internal/currency"
	"github.com/frahmantamala/expense-claims/internal/transport/middleware"
	"github.com/frahmantamala/expense-claims/internal/transport/swagger"
	"github.com/frahmantamala/expense-claims/internal/user"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, claimHandler *claim.Handler, userHandler *user.Handler, currencyHandler *currency.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Reference data for claim submission forms
		if currencyHandler != nil {
			r.Get("/currencies", currencyHandler.GetCurrencies)
		}

		// Claim lifecycle routes
		if claimHandler != nil {
			r.Route("/expenses", func(er chi.Router) {
				er.Get("/myclaims", claimHandler.ListMyClaims)     // GET /expenses/myclaims?userId=
				er.Get("/pending", claimHandler.ListPendingClaims) // GET /expenses/pending?managerId=
				er.Post("/", claimHandler.SubmitClaim)             // POST /expenses
				er.Patch("/{docId}", claimHandler.DecideClaim)     // PATCH /expenses/:docId
			})
		}

		// Roster routes
		if userHandler != nil {
			r.Route("/users", func(ur chi.Router) {
				ur.Get("/", userHandler.ListUsers)
				ur.Post("/", userHandler.CreateUser)
				ur.Delete("/{userId}", userHandler.DeleteUser)
			})
		}
	})
}
