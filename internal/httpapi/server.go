package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the full route tree. Everything under /api except
// registration and login requires a valid session cookie.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Group(func(r chi.Router) {
				r.Use(h.requireUser)
				r.Post("/logout", h.Logout)
				r.Get("/me", h.Me)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)

			r.Route("/months", func(r chi.Router) {
				r.Get("/", h.ListMonths)
				r.Post("/", h.CreateMonth)
				r.Get("/current", h.CurrentMonth)

				r.Route("/{monthID}", func(r chi.Router) {
					r.Get("/", h.GetMonth)
					r.Post("/close", h.CloseMonth)

					r.Route("/income", func(r chi.Router) {
						r.Post("/", h.AddIncome)
						r.Post("/reorder", h.ReorderIncome)
						r.Post("/copy", h.CopyIncome)
						r.Put("/{entryID}", h.UpdateIncome)
						r.Delete("/{entryID}", h.DeleteIncome)
					})

					r.Route("/budgets", func(r chi.Router) {
						r.Post("/", h.AddBudget)
						r.Put("/{budgetID}", h.UpdateBudget)
						r.Delete("/{budgetID}", h.DeleteBudget)
					})

					r.Route("/items", func(r chi.Router) {
						r.Post("/", h.AddItem)
						r.Put("/{itemID}", h.UpdateItem)
						r.Delete("/{itemID}", h.DeleteItem)
						r.Post("/{itemID}/move", h.MoveItem)
					})

					r.Route("/fixed", func(r chi.Router) {
						r.Post("/", h.AddFixedMonth)
						r.Post("/reorder", h.ReorderFixedMonths)
						r.Put("/{fixedID}", h.UpdateFixedMonth)
						r.Delete("/{fixedID}", h.DeleteFixedMonth)
					})
				})
			})

			r.Route("/fixed-expenses", func(r chi.Router) {
				r.Get("/", h.ListFixedExpenses)
				r.Post("/", h.AddFixedExpense)
				r.Post("/reorder", h.ReorderFixedExpenses)
				r.Put("/{expenseID}", h.UpdateFixedExpense)
				r.Delete("/{expenseID}", h.DeleteFixedExpense)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.ListCategories)
				r.Post("/", h.AddCategory)
				r.Put("/{categoryID}", h.UpdateCategory)
				r.Delete("/{categoryID}", h.DeleteCategory)
			})

			r.Put("/savings", h.UpdateSavings)
			r.Put("/retirement-savings", h.UpdateRetirementSavings)
			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)
			r.Get("/stats", h.GetStats)
			r.Get("/export/json", h.ExportJSON)
			r.Post("/import/json", h.ImportJSON)
		})
	})

	return r
}
