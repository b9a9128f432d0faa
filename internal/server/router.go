package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	ordercontroller "caissepro/internal/order/controller"
	"caissepro/internal/print"
	printercontroller "caissepro/internal/printer/controller"
	"caissepro/internal/reception"
)

func NewRouter(
	orders *ordercontroller.OrderController,
	printers *printercontroller.PrinterController,
	printing *print.Controller,
	receptionCtrl *reception.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orders.Create)
		r.Get("/", orders.List)
		r.Get("/search", orders.SearchByTicket)
		r.Get("/zreport", orders.ZReport)
		r.Delete("/clear-system", orders.ClearSystem)

		r.Route("/{orderId}", func(r chi.Router) {
			r.Get("/", orders.Get)
			r.Put("/", orders.Update)
			r.Delete("/", orders.Delete)
			r.Post("/items", orders.AddItems)
			r.Post("/send-reception", receptionCtrl.Send)
		})
	})

	r.Route("/reception", func(r chi.Router) {
		r.Get("/", receptionCtrl.ListRooms)
		r.Post("/{roomNumber}/print", receptionCtrl.MarkPrinted)
	})

	r.Post("/print/order", printing.PrintOrder)

	r.Route("/printers", func(r chi.Router) {
		r.Post("/", printers.Save)
		r.Get("/", printers.ListMine)
		r.Delete("/{printerId}", printers.Delete)
		r.Post("/test", printers.Test)
		r.Get("/customization", printers.GetCustomization)
		r.Put("/customization", printers.SaveCustomization)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			next.ServeHTTP(w, r)
		})
	}
}
