package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/heritage/internal/http/accounts"
	"github.com/MrJamesThe3rd/heritage/internal/http/authn"
	"github.com/MrJamesThe3rd/heritage/internal/http/booking"
	"github.com/MrJamesThe3rd/heritage/internal/http/controlcenter"
	"github.com/MrJamesThe3rd/heritage/internal/http/expense"
	"github.com/MrJamesThe3rd/heritage/internal/http/importcsv"
)

func New(
	authSecret string,
	bookingsV1 *booking.Handler,
	expensesV1 *expense.Handler,
	accountsV1 *accounts.Handler,
	importV1 *importcsv.Handler,
	configV1 *controlcenter.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(authn.Middleware(authSecret))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			bookingsV1.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expensesV1.Routes(r)
		})

		r.Get("/vendors", expensesV1.ListVendors)
		r.Get("/categories", expensesV1.ListCategories)

		r.Route("/accounts", accountsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/config", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			configV1.Routes(r)
		})
	})

	return router
}
