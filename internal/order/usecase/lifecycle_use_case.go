package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"caissepro/internal/domain"
	"caissepro/internal/dto"
	apperrors "caissepro/internal/errors"
	"caissepro/internal/routing"
)

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindByTicketNumber(ctx context.Context, ticketNumber string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	RecordPayment(ctx context.Context, id uint, paymentMethod string, discount float64, discountType *string, paidAmount float64, paidBy int) error
	UpdateTotal(ctx context.Context, id uint, total float64) error
	IncrementTotal(ctx context.Context, id uint, delta float64) error
	Delete(ctx context.Context, id uint) error
	DeleteTerminal(ctx context.Context) (int64, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, item domain.OrderItem) (uint, error)
	ListByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uint) error
}

type Catalog interface {
	DecrementStock(ctx context.Context, productID int, quantity int) error
}

// LifecycleUseCase drives an order through its states: pending at creation,
// items accumulate while pending, then exactly one transition to paid or
// cancelled. Terminal orders are immutable except for ClearSystem.
type LifecycleUseCase struct {
	orderRepo OrderRepository
	itemRepo  OrderItemRepository
	catalog   Catalog
	engine    *routing.Engine
	logger    *zap.Logger
}

// ticketNumberAttempts bounds the regenerate-on-collision loop; the unique
// constraint on ticketNumber is the backstop.
const ticketNumberAttempts = 3

func NewLifecycleUseCase(
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	catalog Catalog,
	engine *routing.Engine,
	logger *zap.Logger,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		catalog:   catalog,
		engine:    engine,
		logger:    logger,
	}
}

func (uc *LifecycleUseCase) CreateOrder(ctx context.Context, actorID int, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}
	if req.MealTime == "" {
		return nil, apperrors.NewValidationError("mealTime is required", apperrors.ValidationDetail{
			Field:   "mealTime",
			Message: "mealTime is required",
		})
	}

	total := itemsTotal(req.Items)

	order := &domain.Order{
		ServeurID:   actorID,
		CreatedByID: actorID,
		Status:      domain.OrderStatusPending,
		Total:       total,
		MealTime:    req.MealTime,
	}
	if req.ClientName != "" {
		order.ClientName = &req.ClientName
	}
	if req.Notes != "" {
		order.Notes = &req.Notes
	}

	var orderID uint
	for attempt := 1; ; attempt++ {
		order.TicketNumber = newTicketNumber(time.Now())

		id, err := uc.orderRepo.Insert(ctx, order)
		if err == nil {
			orderID = id
			break
		}
		if _, ok := apperrors.IsConflictError(err); ok && attempt < ticketNumberAttempts {
			uc.logger.Warn("ticket number collision, regenerating",
				zap.String("ticketNumber", order.TicketNumber),
				zap.Int("attempt", attempt),
			)
			continue
		}
		return nil, err
	}

	if err := uc.insertItems(ctx, orderID, actorID, req.Items, true); err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.Uint("orderId", orderID),
		zap.String("ticketNumber", order.TicketNumber),
		zap.Float64("total", total),
		zap.Int("itemCount", len(req.Items)),
	)

	return &dto.CreateOrderResponse{
		Message:      "order created",
		OrderID:      orderID,
		Total:        total,
		TicketNumber: order.TicketNumber,
	}, nil
}

func (uc *LifecycleUseCase) AddItems(ctx context.Context, actorID int, orderID uint, req dto.AddItemsRequest) (*dto.AddItemsResponse, error) {
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending {
		return nil, apperrors.NewForbiddenError("order is no longer pending")
	}

	additionalTotal := itemsTotal(req.Items)

	if err := uc.insertItems(ctx, orderID, actorID, req.Items, true); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.IncrementTotal(ctx, orderID, additionalTotal); err != nil {
		return nil, err
	}

	// The store increments atomically, so re-read for the persisted total
	// instead of adding onto the stale pre-increment snapshot.
	updated, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("items added",
		zap.Uint("orderId", orderID),
		zap.Int("itemCount", len(req.Items)),
		zap.Float64("additionalTotal", additionalTotal),
	)

	return &dto.AddItemsResponse{
		Message:         "items added",
		OrderID:         orderID,
		AdditionalTotal: additionalTotal,
		NewTotal:        updated.Total,
	}, nil
}

func (uc *LifecycleUseCase) Update(ctx context.Context, actorID int, orderID uint, req dto.UpdateOrderRequest) error {
	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	// A paid order only ever accepts a redundant "paid" status write;
	// anything else violates the immutability invariant.
	if order.Status == domain.OrderStatusPaid {
		if req.Status == nil || *req.Status != domain.OrderStatusPaid {
			return apperrors.NewForbiddenError("paid order cannot be modified")
		}
		if req.Items != nil {
			return apperrors.NewForbiddenError("items of a paid order cannot be modified")
		}
	}

	if req.Status != nil {
		if err := uc.applyStatus(ctx, actorID, orderID, req); err != nil {
			return err
		}
	}

	if req.Items != nil {
		if err := validateItems(req.Items); err != nil {
			return err
		}

		if err := uc.itemRepo.DeleteByOrderID(ctx, orderID); err != nil {
			return err
		}

		total := itemsTotal(req.Items)
		if err := uc.orderRepo.UpdateTotal(ctx, orderID, total); err != nil {
			return err
		}

		// Replacement does not re-run stock decrements: the replaced
		// lines already decremented when they were first added.
		if err := uc.insertItems(ctx, orderID, actorID, req.Items, false); err != nil {
			return err
		}

		uc.logger.Info("order items replaced",
			zap.Uint("orderId", orderID),
			zap.Int("itemCount", len(req.Items)),
			zap.Float64("total", total),
		)
	}

	return nil
}

func (uc *LifecycleUseCase) applyStatus(ctx context.Context, actorID int, orderID uint, req dto.UpdateOrderRequest) error {
	status := *req.Status
	switch status {
	case domain.OrderStatusPending, domain.OrderStatusPaid, domain.OrderStatusCancelled:
	default:
		return apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("status must be one of %s, %s, %s", domain.OrderStatusPending, domain.OrderStatusPaid, domain.OrderStatusCancelled),
		})
	}

	if status == domain.OrderStatusPaid && req.PaymentMethod != nil {
		method := *req.PaymentMethod
		switch method {
		case domain.PaymentMethodCash, domain.PaymentMethodCard, domain.PaymentMethodCheque:
		default:
			return apperrors.NewValidationError("invalid payment method", apperrors.ValidationDetail{
				Field:   "paymentMethod",
				Message: fmt.Sprintf("paymentMethod must be one of %s, %s, %s", domain.PaymentMethodCash, domain.PaymentMethodCard, domain.PaymentMethodCheque),
			})
		}

		discount := 0.0
		if req.Discount != nil {
			discount = *req.Discount
		}
		paidAmount := 0.0
		if req.PaidAmount != nil {
			paidAmount = *req.PaidAmount
		}

		if err := uc.orderRepo.RecordPayment(ctx, orderID, method, discount, req.DiscountType, paidAmount, actorID); err != nil {
			return err
		}

		uc.logger.Info("order paid",
			zap.Uint("orderId", orderID),
			zap.String("paymentMethod", method),
			zap.Float64("paidAmount", paidAmount),
			zap.Int("paidBy", actorID),
		)
		return nil
	}

	return uc.orderRepo.UpdateStatus(ctx, orderID, status)
}

func (uc *LifecycleUseCase) Delete(ctx context.Context, orderID uint) error {
	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status == domain.OrderStatusPaid {
		return apperrors.NewForbiddenError("paid order cannot be deleted")
	}

	if err := uc.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	uc.logger.Info("order deleted", zap.Uint("orderId", orderID))
	return nil
}

// ClearSystem purges every paid and cancelled order. Pending orders
// survive. Running it twice deletes nothing the second time.
func (uc *LifecycleUseCase) ClearSystem(ctx context.Context) (int64, error) {
	deleted, err := uc.orderRepo.DeleteTerminal(ctx)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("system cleared", zap.Int64("ordersDeleted", deleted))
	return deleted, nil
}

func (uc *LifecycleUseCase) GetOrder(ctx context.Context, orderID uint) (*dto.OrderDTO, error) {
	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return uc.toOrderDTO(order, items), nil
}

func (uc *LifecycleUseCase) ListOrders(ctx context.Context) ([]dto.OrderDTO, error) {
	orders, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		items, err := uc.itemRepo.ListByOrderID(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *uc.toOrderDTO(&orders[i], items))
	}

	return out, nil
}

func (uc *LifecycleUseCase) SearchByTicket(ctx context.Context, ticketNumber string) (*dto.OrderDTO, error) {
	if ticketNumber == "" {
		return nil, apperrors.NewValidationError("ticketNumber is required", apperrors.ValidationDetail{
			Field:   "ticketNumber",
			Message: "ticketNumber is required",
		})
	}

	order, err := uc.orderRepo.FindByTicketNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return uc.toOrderDTO(order, items), nil
}

func (uc *LifecycleUseCase) insertItems(ctx context.Context, orderID uint, actorID int, items []dto.NewOrderItem, decrementStock bool) error {
	for _, item := range items {
		_, err := uc.itemRepo.Insert(ctx, domain.OrderItem{
			OrderID:     orderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Price * float64(item.Quantity),
			AddedByID:   actorID,
		})
		if err != nil {
			return err
		}

		if decrementStock && item.ProductID != nil {
			if err := uc.catalog.DecrementStock(ctx, *item.ProductID, item.Quantity); err != nil {
				// Earlier lines stay committed; the caller sees the
				// failure and the order keeps what was already added.
				return apperrors.NewInternalError("decrementing stock", err)
			}
		}
	}
	return nil
}

func (uc *LifecycleUseCase) toOrderDTO(order *domain.Order, items []domain.OrderItem) *dto.OrderDTO {
	itemDTOs := make([]dto.OrderItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = dto.OrderItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Total:        item.Total,
			CategoryType: uc.engine.Classify(item),
			AddedByID:    item.AddedByID,
			AddedAt:      item.AddedAt,
		}
	}

	return &dto.OrderDTO{
		ID:                 order.ID,
		TicketNumber:       order.TicketNumber,
		ServeurID:          order.ServeurID,
		ServerName:         order.ServerName,
		Status:             order.Status,
		Total:              order.Total,
		ClientName:         order.ClientName,
		MealTime:           order.MealTime,
		Notes:              order.Notes,
		PaymentMethod:      order.PaymentMethod,
		Discount:           order.Discount,
		DiscountType:       order.DiscountType,
		PaidAmount:         order.PaidAmount,
		RoomNumber:         order.RoomNumber,
		SentToReception:    order.SentToReception,
		ReceptionPrintedAt: order.ReceptionPrintedAt,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
		Items:              itemDTOs,
	}
}

func validateItems(items []dto.NewOrderItem) error {
	var details []apperrors.ValidationDetail

	if len(items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, item := range items {
		if item.ProductName == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productName", idx),
				Message: "productName is required",
			})
		}
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", idx),
				Message: "quantity must be a positive integer",
			})
		}
		if item.Price < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].price", idx),
				Message: "price must be non-negative",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func itemsTotal(items []dto.NewOrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// newTicketNumber builds YYYYMMDD-NNNNN with a random 5-digit suffix.
func newTicketNumber(now time.Time) string {
	return fmt.Sprintf("%s-%05d", now.Format("20060102"), 10000+rand.Intn(90000))
}
