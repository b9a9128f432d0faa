package reception

import (
	"database/sql"

	"go.uber.org/zap"

	orderrepo "caissepro/internal/order/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	useCase := NewUseCase(orderRepo, itemRepo, logger)
	return NewController(useCase, logger)
}
