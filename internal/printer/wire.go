package printer

import (
	"database/sql"

	"go.uber.org/zap"

	"caissepro/internal/print"
	"caissepro/internal/printer/controller"
	"caissepro/internal/printer/repository"
	"caissepro/internal/printer/usecase"
	"caissepro/internal/ticket"
)

func NewModule(db *sql.DB, dispatcher *print.Dispatcher, logger *zap.Logger) *controller.PrinterController {
	printerRepo := repository.NewMySQLPrinterRepository(db)
	styleRepo := repository.NewMySQLStyleRepository(db)

	manage := usecase.NewManagePrintersUseCase(
		printerRepo,
		styleRepo,
		ticket.NewEncoder(),
		dispatcher,
		logger,
	)

	return controller.NewPrinterController(manage, logger)
}
