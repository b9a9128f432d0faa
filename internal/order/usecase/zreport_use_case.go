package usecase

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"caissepro/internal/domain"
	"caissepro/internal/dto"
	apperrors "caissepro/internal/errors"
	orderrepo "caissepro/internal/order/repository"
	"caissepro/internal/routing"
)

type ReportOrderRepository interface {
	ListPaidByDate(ctx context.Context, date string) ([]domain.Order, error)
	PaymentSummaryByDate(ctx context.Context, date string) ([]orderrepo.PaymentSummaryRow, error)
}

type ReportItemRepository interface {
	ListPaidByDate(ctx context.Context, date string) ([]domain.OrderItem, error)
}

// ZReportUseCase computes the end-of-day aggregate over paid orders. It
// only reads persisted state; nothing is mutated.
type ZReportUseCase struct {
	orderRepo ReportOrderRepository
	itemRepo  ReportItemRepository
	engine    *routing.Engine
	logger    *zap.Logger
}

func NewZReportUseCase(
	orderRepo ReportOrderRepository,
	itemRepo ReportItemRepository,
	engine *routing.Engine,
	logger *zap.Logger,
) *ZReportUseCase {
	return &ZReportUseCase{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		engine:    engine,
		logger:    logger,
	}
}

// GetZReport aggregates the given calendar day (YYYY-MM-DD; empty means
// today): order count, sales net of discounts, per-payment-method and
// per-product breakdowns, and the beverage-only sub-rollup.
func (uc *ZReportUseCase) GetZReport(ctx context.Context, date string) (*dto.ZReport, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.NewValidationError("invalid date", apperrors.ValidationDetail{
			Field:   "date",
			Message: "date must be formatted YYYY-MM-DD",
		})
	}

	orders, err := uc.orderRepo.ListPaidByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.ListPaidByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	paymentRows, err := uc.orderRepo.PaymentSummaryByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	report := &dto.ZReport{
		Date:           date,
		Orders:         len(orders),
		PaymentSummary: make([]dto.ZReportPayment, len(paymentRows)),
		ItemsSummary:   []dto.ZReportItem{},
		DrinksDetails:  []dto.ZReportItem{},
	}

	for _, order := range orders {
		report.TotalSales += order.FinalTotal()
		report.TotalDiscount += order.Discount
	}

	for i, row := range paymentRows {
		report.PaymentSummary[i] = dto.ZReportPayment{
			PaymentMethod: row.PaymentMethod,
			Count:         row.Count,
			Total:         row.Total,
			PaidAmount:    row.PaidAmount,
		}
	}

	itemsSummary := map[string]*dto.ZReportItem{}
	drinksDetails := map[string]*dto.ZReportItem{}

	for _, item := range items {
		category := uc.engine.Classify(item)

		entry, ok := itemsSummary[item.ProductName]
		if !ok {
			entry = &dto.ZReportItem{
				Name:         item.ProductName,
				Price:        item.Price,
				CategoryType: category,
			}
			itemsSummary[item.ProductName] = entry
		}
		entry.Quantity += item.Quantity
		entry.Total += item.Total

		if category == domain.CategoryTypeBeverage {
			drink, ok := drinksDetails[item.ProductName]
			if !ok {
				drink = &dto.ZReportItem{
					Name:  item.ProductName,
					Price: item.Price,
				}
				drinksDetails[item.ProductName] = drink
			}
			drink.Quantity += item.Quantity
			drink.Total += item.Total
		}
	}

	for _, entry := range itemsSummary {
		report.ItemsSummary = append(report.ItemsSummary, *entry)
	}
	for _, entry := range drinksDetails {
		report.DrinksDetails = append(report.DrinksDetails, *entry)
	}
	sort.Slice(report.ItemsSummary, func(i, j int) bool {
		return report.ItemsSummary[i].Name < report.ItemsSummary[j].Name
	})
	sort.Slice(report.DrinksDetails, func(i, j int) bool {
		return report.DrinksDetails[i].Name < report.DrinksDetails[j].Name
	})

	uc.logger.Debug("z-report computed",
		zap.String("date", date),
		zap.Int("orders", report.Orders),
		zap.Float64("totalSales", report.TotalSales),
	)

	return report, nil
}
