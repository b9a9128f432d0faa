// Package reception handles hotel room routing: orders sent to the front
// desk accumulate per room until they are charged and printed there.
package reception

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"caissepro/internal/domain"
	"caissepro/internal/dto"
	apperrors "caissepro/internal/errors"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	MarkSentToReception(ctx context.Context, id uint, roomNumber string) error
	ListSentToReception(ctx context.Context) ([]domain.Order, error)
	MarkRoomPrinted(ctx context.Context, roomNumber string) error
}

type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

type UseCase struct {
	orderRepo OrderRepository
	itemRepo  OrderItemRepository
	logger    *zap.Logger
}

func NewUseCase(orderRepo OrderRepository, itemRepo OrderItemRepository, logger *zap.Logger) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		logger:    logger,
	}
}

func (uc *UseCase) SendToReception(ctx context.Context, orderID uint, roomNumber string) error {
	if roomNumber == "" {
		return apperrors.NewValidationError("roomNumber is required", apperrors.ValidationDetail{
			Field:   "roomNumber",
			Message: "roomNumber is required",
		})
	}

	if _, err := uc.orderRepo.FindByID(ctx, orderID); err != nil {
		return err
	}

	if err := uc.orderRepo.MarkSentToReception(ctx, orderID, roomNumber); err != nil {
		return err
	}

	uc.logger.Info("order sent to reception",
		zap.Uint("orderId", orderID),
		zap.String("roomNumber", roomNumber),
	)
	return nil
}

const noRoom = "SANS_CHAMBRE"

// ListRooms groups the orders waiting at reception by room number with
// each room's outstanding amount, discounts applied.
func (uc *UseCase) ListRooms(ctx context.Context) ([]dto.RoomGroup, error) {
	orders, err := uc.orderRepo.ListSentToReception(ctx)
	if err != nil {
		return nil, err
	}

	groups := map[string]*dto.RoomGroup{}
	for _, order := range orders {
		room := noRoom
		if order.RoomNumber != nil && *order.RoomNumber != "" {
			room = *order.RoomNumber
		}

		group, ok := groups[room]
		if !ok {
			group = &dto.RoomGroup{RoomNumber: room}
			groups[room] = group
		}

		items, err := uc.itemRepo.ListByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}

		itemDTOs := make([]dto.OrderItemDTO, len(items))
		for i, item := range items {
			itemDTOs[i] = dto.OrderItemDTO{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Total:       item.Total,
				AddedByID:   item.AddedByID,
				AddedAt:     item.AddedAt,
			}
		}

		entry := dto.ReceptionOrder{
			ID:            order.ID,
			TicketNumber:  order.TicketNumber,
			Items:         itemDTOs,
			Total:         order.Total,
			Discount:      order.Discount,
			FinalTotal:    order.FinalTotal(),
			Status:        order.Status,
			PaymentMethod: order.PaymentMethod,
			CreatedAt:     order.CreatedAt.Format(time.RFC3339),
		}
		if order.ReceptionPrintedAt != nil {
			printedAt := order.ReceptionPrintedAt.Format(time.RFC3339)
			entry.ReceptionPrintedAt = &printedAt
		}

		group.Orders = append(group.Orders, entry)
		group.TotalAmount += entry.FinalTotal
	}

	out := make([]dto.RoomGroup, 0, len(groups))
	for _, group := range groups {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })

	return out, nil
}

func (uc *UseCase) MarkRoomPrinted(ctx context.Context, roomNumber string) error {
	if roomNumber == "" {
		return apperrors.NewValidationError("roomNumber is required", apperrors.ValidationDetail{
			Field:   "roomNumber",
			Message: "roomNumber is required",
		})
	}

	if err := uc.orderRepo.MarkRoomPrinted(ctx, roomNumber); err != nil {
		return err
	}

	uc.logger.Info("room marked printed", zap.String("roomNumber", roomNumber))
	return nil
}
