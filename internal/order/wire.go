package order

import (
	"database/sql"

	"go.uber.org/zap"

	"caissepro/internal/catalog"
	"caissepro/internal/order/controller"
	orderrepo "caissepro/internal/order/repository"
	"caissepro/internal/order/usecase"
	"caissepro/internal/routing"
)

func NewModule(db *sql.DB, engine *routing.Engine, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	catalogRepo := catalog.NewMySQLRepository(db)

	lifecycle := usecase.NewLifecycleUseCase(orderRepo, itemRepo, catalogRepo, engine, logger)
	zreport := usecase.NewZReportUseCase(orderRepo, itemRepo, engine, logger)

	return controller.NewOrderController(lifecycle, zreport, logger)
}
