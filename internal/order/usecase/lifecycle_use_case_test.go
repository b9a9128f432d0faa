package usecase

import (
	"context"
	"regexp"
	"testing"

	"go.uber.org/zap"

	"caissepro/internal/domain"
	"caissepro/internal/dto"
	apperrors "caissepro/internal/errors"
	"caissepro/internal/routing"
)

// Mock implementations

type mockOrderRepository struct {
	InsertFunc             func(ctx context.Context, order *domain.Order) (uint, error)
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.Order, error)
	FindByTicketNumberFunc func(ctx context.Context, ticketNumber string) (*domain.Order, error)
	ListFunc               func(ctx context.Context) ([]domain.Order, error)
	UpdateStatusFunc       func(ctx context.Context, id uint, status string) error
	RecordPaymentFunc      func(ctx context.Context, id uint, paymentMethod string, discount float64, discountType *string, paidAmount float64, paidBy int) error
	UpdateTotalFunc        func(ctx context.Context, id uint, total float64) error
	IncrementTotalFunc     func(ctx context.Context, id uint, delta float64) error
	DeleteFunc             func(ctx context.Context, id uint) error
	DeleteTerminalFunc     func(ctx context.Context) (int64, error)
}

func (m *mockOrderRepository) Insert(ctx context.Context, order *domain.Order) (uint, error) {
	return m.InsertFunc(ctx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*domain.Order, error) {
	return m.FindByTicketNumberFunc(ctx, ticketNumber)
}

func (m *mockOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return m.ListFunc(ctx)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockOrderRepository) RecordPayment(ctx context.Context, id uint, paymentMethod string, discount float64, discountType *string, paidAmount float64, paidBy int) error {
	return m.RecordPaymentFunc(ctx, id, paymentMethod, discount, discountType, paidAmount, paidBy)
}

func (m *mockOrderRepository) UpdateTotal(ctx context.Context, id uint, total float64) error {
	return m.UpdateTotalFunc(ctx, id, total)
}

func (m *mockOrderRepository) IncrementTotal(ctx context.Context, id uint, delta float64) error {
	return m.IncrementTotalFunc(ctx, id, delta)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockOrderRepository) DeleteTerminal(ctx context.Context) (int64, error) {
	return m.DeleteTerminalFunc(ctx)
}

type mockOrderItemRepository struct {
	InsertFunc          func(ctx context.Context, item domain.OrderItem) (uint, error)
	ListByOrderIDFunc   func(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
	DeleteByOrderIDFunc func(ctx context.Context, orderID uint) error
}

func (m *mockOrderItemRepository) Insert(ctx context.Context, item domain.OrderItem) (uint, error) {
	return m.InsertFunc(ctx, item)
}

func (m *mockOrderItemRepository) ListByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	return m.ListByOrderIDFunc(ctx, orderID)
}

func (m *mockOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID uint) error {
	return m.DeleteByOrderIDFunc(ctx, orderID)
}

type mockCatalog struct {
	DecrementStockFunc func(ctx context.Context, productID int, quantity int) error
}

func (m *mockCatalog) DecrementStock(ctx context.Context, productID int, quantity int) error {
	return m.DecrementStockFunc(ctx, productID, quantity)
}

func newTestLifecycleUseCase(orderRepo OrderRepository, itemRepo OrderItemRepository, catalog Catalog) *LifecycleUseCase {
	return NewLifecycleUseCase(orderRepo, itemRepo, catalog, routing.NewEngine(), zap.NewNop())
}

var ticketNumberPattern = regexp.MustCompile(`^\d{8}-\d{5}$`)

// Tests

func TestCreateOrder_Success(t *testing.T) {
	ctx := context.Background()

	var insertedOrder *domain.Order
	orderRepo := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, order *domain.Order) (uint, error) {
			insertedOrder = order
			return 42, nil
		},
	}

	var insertedItems []domain.OrderItem
	itemRepo := &mockOrderItemRepository{
		InsertFunc: func(ctx context.Context, item domain.OrderItem) (uint, error) {
			insertedItems = append(insertedItems, item)
			return uint(len(insertedItems)), nil
		},
	}

	catalog := &mockCatalog{
		DecrementStockFunc: func(ctx context.Context, productID int, quantity int) error {
			return nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, itemRepo, catalog)

	productID := 5
	resp, err := uc.CreateOrder(ctx, 7, dto.CreateOrderRequest{
		MealTime: "12:30",
		Items: []dto.NewOrderItem{
			{ProductID: &productID, ProductName: "Tajine poulet", Quantity: 2, Price: 60.00},
			{ProductName: "Jus d'orange", Quantity: 1, Price: 25.50},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.OrderID != 42 {
		t.Errorf("expected order id 42, got %d", resp.OrderID)
	}
	if resp.Total != 145.50 {
		t.Errorf("expected total 145.50, got %f", resp.Total)
	}
	if !ticketNumberPattern.MatchString(resp.TicketNumber) {
		t.Errorf("ticket number %q does not match YYYYMMDD-NNNNN", resp.TicketNumber)
	}
	if insertedOrder.Status != domain.OrderStatusPending {
		t.Errorf("expected status pending, got %s", insertedOrder.Status)
	}
	if insertedOrder.ServeurID != 7 || insertedOrder.CreatedByID != 7 {
		t.Errorf("expected actor 7 as serveur and creator, got %d/%d", insertedOrder.ServeurID, insertedOrder.CreatedByID)
	}
	if len(insertedItems) != 2 {
		t.Fatalf("expected 2 items inserted, got %d", len(insertedItems))
	}
	if insertedItems[0].Total != 120.00 {
		t.Errorf("expected line total 120.00, got %f", insertedItems[0].Total)
	}
	if insertedItems[0].AddedByID != 7 {
		t.Errorf("expected addedById 7, got %d", insertedItems[0].AddedByID)
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	uc := newTestLifecycleUseCase(&mockOrderRepository{}, &mockOrderItemRepository{}, &mockCatalog{})

	_, err := uc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{MealTime: "12:30"})

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestCreateOrder_MissingMealTime(t *testing.T) {
	uc := newTestLifecycleUseCase(&mockOrderRepository{}, &mockOrderItemRepository{}, &mockCatalog{})

	_, err := uc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		Items: []dto.NewOrderItem{{ProductName: "Tajine", Quantity: 1, Price: 60}},
	})

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(ve.Details) != 1 || ve.Details[0].Field != "mealTime" {
		t.Errorf("expected mealTime detail, got %+v", ve.Details)
	}
}

func TestCreateOrder_InvalidItemFields(t *testing.T) {
	uc := newTestLifecycleUseCase(&mockOrderRepository{}, &mockOrderItemRepository{}, &mockCatalog{})

	_, err := uc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		MealTime: "12:30",
		Items: []dto.NewOrderItem{
			{ProductName: "", Quantity: 0, Price: -1},
		},
	})

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(ve.Details) != 3 {
		t.Errorf("expected 3 details, got %d", len(ve.Details))
	}
}

func TestCreateOrder_TicketCollisionRetries(t *testing.T) {
	ctx := context.Background()

	attempts := 0
	var tickets []string
	orderRepo := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, order *domain.Order) (uint, error) {
			attempts++
			tickets = append(tickets, order.TicketNumber)
			if attempts == 1 {
				return 0, apperrors.NewConflictError("ticket exists")
			}
			return 9, nil
		},
	}
	itemRepo := &mockOrderItemRepository{
		InsertFunc: func(ctx context.Context, item domain.OrderItem) (uint, error) { return 1, nil },
	}

	uc := newTestLifecycleUseCase(orderRepo, itemRepo, &mockCatalog{})

	resp, err := uc.CreateOrder(ctx, 1, dto.CreateOrderRequest{
		MealTime: "12:30",
		Items:    []dto.NewOrderItem{{ProductName: "Tajine", Quantity: 1, Price: 60}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if attempts != 2 {
		t.Errorf("expected 2 insert attempts, got %d", attempts)
	}
	if resp.OrderID != 9 {
		t.Errorf("expected order id 9, got %d", resp.OrderID)
	}
	if len(tickets) == 2 && tickets[0] == tickets[1] {
		t.Errorf("expected a regenerated ticket number, got %q twice", tickets[0])
	}
}

func TestCreateOrder_TicketCollisionExhausted(t *testing.T) {
	orderRepo := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, order *domain.Order) (uint, error) {
			return 0, apperrors.NewConflictError("ticket exists")
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	_, err := uc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		MealTime: "12:30",
		Items:    []dto.NewOrderItem{{ProductName: "Tajine", Quantity: 1, Price: 60}},
	})

	if _, ok := apperrors.IsConflictError(err); !ok {
		t.Errorf("expected ConflictError after exhausting retries, got %T", err)
	}
}

func TestCreateOrder_DecrementsStockForCatalogLinesOnly(t *testing.T) {
	ctx := context.Background()

	orderRepo := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, order *domain.Order) (uint, error) { return 1, nil },
	}
	itemRepo := &mockOrderItemRepository{
		InsertFunc: func(ctx context.Context, item domain.OrderItem) (uint, error) { return 1, nil },
	}

	var decrements []int
	catalog := &mockCatalog{
		DecrementStockFunc: func(ctx context.Context, productID int, quantity int) error {
			decrements = append(decrements, productID)
			return nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, itemRepo, catalog)

	productID := 3
	_, err := uc.CreateOrder(ctx, 1, dto.CreateOrderRequest{
		MealTime: "12:30",
		Items: []dto.NewOrderItem{
			{ProductID: &productID, ProductName: "Tajine", Quantity: 1, Price: 60},
			{ProductName: "Plat du jour", Quantity: 1, Price: 45},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decrements) != 1 || decrements[0] != 3 {
		t.Errorf("expected a single decrement for product 3, got %v", decrements)
	}
}

func TestAddItems_Success(t *testing.T) {
	ctx := context.Background()

	total := 100.00
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPending, Total: total}, nil
		},
		IncrementTotalFunc: func(ctx context.Context, id uint, delta float64) error {
			if delta != 51.00 {
				t.Errorf("expected delta 51.00, got %f", delta)
			}
			total += delta
			return nil
		},
	}
	itemRepo := &mockOrderItemRepository{
		InsertFunc: func(ctx context.Context, item domain.OrderItem) (uint, error) { return 1, nil },
	}

	uc := newTestLifecycleUseCase(orderRepo, itemRepo, &mockCatalog{})

	resp, err := uc.AddItems(ctx, 1, 5, dto.AddItemsRequest{
		Items: []dto.NewOrderItem{{ProductName: "Jus d'orange", Quantity: 2, Price: 25.50}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.AdditionalTotal != 51.00 {
		t.Errorf("expected additional total 51.00, got %f", resp.AdditionalTotal)
	}
	if resp.NewTotal != 151.00 {
		t.Errorf("expected new total 151.00, got %f", resp.NewTotal)
	}
}

func TestAddItems_NewTotalReflectsStoredTotal(t *testing.T) {
	ctx := context.Background()

	// Another request adds items between our read and our increment; the
	// response must report the stored total, not read + own delta.
	total := 100.00
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPending, Total: total}, nil
		},
		IncrementTotalFunc: func(ctx context.Context, id uint, delta float64) error {
			total += 30.00 // concurrent writer
			total += delta
			return nil
		},
	}
	itemRepo := &mockOrderItemRepository{
		InsertFunc: func(ctx context.Context, item domain.OrderItem) (uint, error) { return 1, nil },
	}

	uc := newTestLifecycleUseCase(orderRepo, itemRepo, &mockCatalog{})

	resp, err := uc.AddItems(ctx, 1, 5, dto.AddItemsRequest{
		Items: []dto.NewOrderItem{{ProductName: "Jus d'orange", Quantity: 2, Price: 25.50}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.NewTotal != 181.00 {
		t.Errorf("expected new total 181.00, got %f", resp.NewTotal)
	}
}

func TestAddItems_PaidOrder(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPaid}, nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	_, err := uc.AddItems(context.Background(), 1, 5, dto.AddItemsRequest{
		Items: []dto.NewOrderItem{{ProductName: "Jus", Quantity: 1, Price: 25}},
	})

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Errorf("expected ForbiddenError, got %T", err)
	}
}

func TestAddItems_OrderNotFound(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	_, err := uc.AddItems(context.Background(), 1, 5, dto.AddItemsRequest{
		Items: []dto.NewOrderItem{{ProductName: "Jus", Quantity: 1, Price: 25}},
	})

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestUpdate_PaidOrderRejectsStatusChange(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPaid}, nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	cancelled := domain.OrderStatusCancelled
	err := uc.Update(context.Background(), 1, 5, dto.UpdateOrderRequest{Status: &cancelled})

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Errorf("expected ForbiddenError, got %T", err)
	}
}

func TestUpdate_PaidOrderRejectsItemReplacement(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPaid}, nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	paid := domain.OrderStatusPaid
	err := uc.Update(context.Background(), 1, 5, dto.UpdateOrderRequest{
		Status: &paid,
		Items:  []dto.NewOrderItem{{ProductName: "Jus", Quantity: 1, Price: 25}},
	})

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Errorf("expected ForbiddenError, got %T", err)
	}
}

func TestUpdate_PaymentRecordsAllFields(t *testing.T) {
	ctx := context.Background()

	recorded := false
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPending, Total: 100.00}, nil
		},
		RecordPaymentFunc: func(ctx context.Context, id uint, paymentMethod string, discount float64, discountType *string, paidAmount float64, paidBy int) error {
			recorded = true
			if paymentMethod != domain.PaymentMethodCash {
				t.Errorf("expected cash, got %s", paymentMethod)
			}
			if discount != 10.00 {
				t.Errorf("expected discount 10.00, got %f", discount)
			}
			if paidAmount != 90.00 {
				t.Errorf("expected paid amount 90.00, got %f", paidAmount)
			}
			if paidBy != 8 {
				t.Errorf("expected paidBy 8, got %d", paidBy)
			}
			return nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	paid := domain.OrderStatusPaid
	method := domain.PaymentMethodCash
	discount := 10.00
	paidAmount := 90.00
	err := uc.Update(ctx, 8, 5, dto.UpdateOrderRequest{
		Status:        &paid,
		PaymentMethod: &method,
		Discount:      &discount,
		PaidAmount:    &paidAmount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !recorded {
		t.Error("expected RecordPayment to be called")
	}
}

func TestUpdate_InvalidStatus(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPending}, nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	status := "archived"
	err := uc.Update(context.Background(), 1, 5, dto.UpdateOrderRequest{Status: &status})

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestUpdate_InvalidPaymentMethod(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPending}, nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	paid := domain.OrderStatusPaid
	method := "bitcoin"
	err := uc.Update(context.Background(), 1, 5, dto.UpdateOrderRequest{Status: &paid, PaymentMethod: &method})

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestUpdate_ItemReplacementSkipsStockDecrement(t *testing.T) {
	ctx := context.Background()

	deleted := false
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPending, Total: 100.00}, nil
		},
		UpdateTotalFunc: func(ctx context.Context, id uint, total float64) error {
			if total != 50.00 {
				t.Errorf("expected replacement total 50.00, got %f", total)
			}
			return nil
		},
	}
	itemRepo := &mockOrderItemRepository{
		InsertFunc: func(ctx context.Context, item domain.OrderItem) (uint, error) {
			if item.AddedByID != 4 {
				t.Errorf("expected replacement lines recorded for actor 4, got %d", item.AddedByID)
			}
			return 1, nil
		},
		DeleteByOrderIDFunc: func(ctx context.Context, orderID uint) error {
			deleted = true
			return nil
		},
	}
	catalog := &mockCatalog{
		DecrementStockFunc: func(ctx context.Context, productID int, quantity int) error {
			t.Error("stock must not be decremented on replacement")
			return nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, itemRepo, catalog)

	productID := 3
	err := uc.Update(ctx, 4, 5, dto.UpdateOrderRequest{
		Items: []dto.NewOrderItem{{ProductID: &productID, ProductName: "Tajine", Quantity: 1, Price: 50}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected existing items to be deleted before replacement")
	}
}

func TestDelete_PaidOrder(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPaid}, nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	err := uc.Delete(context.Background(), 5)

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Errorf("expected ForbiddenError, got %T", err)
	}
}

func TestDelete_PendingOrder(t *testing.T) {
	deleted := false
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPending}, nil
		},
		DeleteFunc: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	if err := uc.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected Delete to be called")
	}
}

func TestClearSystem(t *testing.T) {
	orderRepo := &mockOrderRepository{
		DeleteTerminalFunc: func(ctx context.Context) (int64, error) { return 7, nil },
	}

	uc := newTestLifecycleUseCase(orderRepo, &mockOrderItemRepository{}, &mockCatalog{})

	deleted, err := uc.ClearSystem(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 7 {
		t.Errorf("expected 7 deleted, got %d", deleted)
	}
}

func TestSearchByTicket_EmptyTicketNumber(t *testing.T) {
	uc := newTestLifecycleUseCase(&mockOrderRepository{}, &mockOrderItemRepository{}, &mockCatalog{})

	_, err := uc.SearchByTicket(context.Background(), "")

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestGetOrder_ClassifiesItems(t *testing.T) {
	orderRepo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.OrderStatusPending}, nil
		},
	}
	itemRepo := &mockOrderItemRepository{
		ListByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
			return []domain.OrderItem{
				{ProductName: "Jus d'orange", Quantity: 1},
				{ProductName: "Tajine", Quantity: 1},
			}, nil
		},
	}

	uc := newTestLifecycleUseCase(orderRepo, itemRepo, &mockCatalog{})

	order, err := uc.GetOrder(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Items[0].CategoryType != domain.CategoryTypeBeverage {
		t.Errorf("expected beverage, got %s", order.Items[0].CategoryType)
	}
	if order.Items[1].CategoryType != domain.CategoryTypeMeal {
		t.Errorf("expected meal, got %s", order.Items[1].CategoryType)
	}
}
