package print

import (
	"database/sql"

	"go.uber.org/zap"

	orderrepo "caissepro/internal/order/repository"
	printerrepo "caissepro/internal/printer/repository"
	"caissepro/internal/routing"
	"caissepro/internal/ticket"
)

func NewModule(db *sql.DB, engine *routing.Engine, dispatcher *Dispatcher, logger *zap.Logger) *Controller {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	printerRepo := printerrepo.NewMySQLPrinterRepository(db)
	styleRepo := printerrepo.NewMySQLStyleRepository(db)

	service := NewService(
		orderRepo,
		itemRepo,
		printerRepo,
		styleRepo,
		engine,
		ticket.NewEncoder(),
		dispatcher,
		logger,
	)

	return NewController(service, logger)
}
