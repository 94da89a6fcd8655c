package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"barliman/internal/catalog"
	checkoutctrl "barliman/internal/checkout/controller"
)

func NewRouter(catalogCtrl *catalog.Controller, registerCtrl *checkoutctrl.RegisterController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogCtrl.HandleListProducts)
		r.Get("/products/{code}", catalogCtrl.HandleGetProduct)

		r.Route("/register", func(r chi.Router) {
			r.Get("/", registerCtrl.HandleGetRegister)
			r.Post("/items", registerCtrl.HandleAddItem)
			r.Post("/sale", registerCtrl.HandleSettleSale)
			r.Post("/return", registerCtrl.HandleSettleReturn)
			r.Delete("/", registerCtrl.HandleCancel)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
