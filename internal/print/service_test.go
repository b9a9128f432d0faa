package print

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"caissepro/internal/commons"
	"caissepro/internal/domain"
	apperrors "caissepro/internal/errors"
	"caissepro/internal/routing"
	"caissepro/internal/ticket"
)

type mockOrderReader struct {
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Order, error)
}

func (m *mockOrderReader) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockOrderItemReader struct {
	ListByOrderIDFunc func(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

func (m *mockOrderItemReader) ListByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	return m.ListByOrderIDFunc(ctx, orderID)
}

type mockEndpointRegistry struct {
	FindFirstActiveFunc func(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error)
}

func (m *mockEndpointRegistry) FindFirstActive(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error) {
	return m.FindFirstActiveFunc(ctx, scopes, destination)
}

type mockStyleReader struct {
	FindByCaissierFunc func(ctx context.Context, caissierID int) (*domain.TicketStyle, error)
}

func (m *mockStyleReader) FindByCaissier(ctx context.Context, caissierID int) (*domain.TicketStyle, error) {
	return m.FindByCaissierFunc(ctx, caissierID)
}

type mockSender struct {
	SendFunc func(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error
}

func (m *mockSender) Send(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error {
	return m.SendFunc(ctx, endpoint, payload)
}

func noStyle() *mockStyleReader {
	return &mockStyleReader{
		FindByCaissierFunc: func(ctx context.Context, caissierID int) (*domain.TicketStyle, error) {
			return nil, apperrors.NewNotFoundError("no customization")
		},
	}
}

func newTestService(orders OrderReader, items OrderItemReader, registry EndpointRegistry, styles StyleReader, sender Sender) *Service {
	return NewService(orders, items, registry, styles, routing.NewEngine(), ticket.NewEncoder(), sender, zap.NewNop())
}

func mixedOrder() (*mockOrderReader, *mockOrderItemReader) {
	orders := &mockOrderReader{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, TicketNumber: "20250615-12345", MealTime: "12:30"}, nil
		},
	}
	items := &mockOrderItemReader{
		ListByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
			return []domain.OrderItem{
				{ProductName: "Jus d'orange", Quantity: 1, CategoryType: domain.CategoryTypeBeverage},
				{ProductName: "Tajine", Quantity: 1, CategoryType: domain.CategoryTypeMeal},
			}, nil
		},
	}
	return orders, items
}

func TestPrintOrder_AllDestinations(t *testing.T) {
	ctx := context.Background()
	orders, items := mixedOrder()

	registry := &mockEndpointRegistry{
		FindFirstActiveFunc: func(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error) {
			return &domain.PrinterEndpoint{Name: destination + " printer", Destination: destination}, nil
		},
	}
	sender := &mockSender{
		SendFunc: func(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error {
			return nil
		},
	}

	service := newTestService(orders, items, registry, noStyle(), sender)

	report, err := service.PrintOrder(ctx, commons.Actor{ID: 3}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Printed) != 3 {
		t.Fatalf("expected 3 printed destinations, got %d", len(report.Printed))
	}
	if len(report.Errors) != 0 {
		t.Errorf("expected no errors, got %v", report.Errors)
	}

	// Report order is stable regardless of goroutine scheduling.
	expected := []string{domain.DestinationTicket, domain.DestinationBar, domain.DestinationCuisine}
	for i, dest := range expected {
		if report.Printed[i].Destination != dest {
			t.Errorf("expected %s at position %d, got %s", dest, i, report.Printed[i].Destination)
		}
	}
}

func TestPrintOrder_MissingBarPrinterDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	orders, items := mixedOrder()

	registry := &mockEndpointRegistry{
		FindFirstActiveFunc: func(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error) {
			if destination == domain.DestinationBar {
				return nil, apperrors.NewNotFoundError("no active printer")
			}
			return &domain.PrinterEndpoint{Name: destination + " printer", Destination: destination}, nil
		},
	}
	sender := &mockSender{
		SendFunc: func(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error {
			return nil
		},
	}

	service := newTestService(orders, items, registry, noStyle(), sender)

	report, err := service.PrintOrder(ctx, commons.Actor{ID: 3}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Printed) != 2 {
		t.Errorf("expected 2 printed destinations, got %d", len(report.Printed))
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 error entry, got %d", len(report.Errors))
	}
	if report.Errors[0].Destination != domain.DestinationBar {
		t.Errorf("expected BAR error, got %s", report.Errors[0].Destination)
	}
	if report.Errors[0].Error != "no active BAR printer configured" {
		t.Errorf("unexpected error message %q", report.Errors[0].Error)
	}
}

func TestPrintOrder_DispatchFailureIsReported(t *testing.T) {
	ctx := context.Background()
	orders, items := mixedOrder()

	registry := &mockEndpointRegistry{
		FindFirstActiveFunc: func(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error) {
			return &domain.PrinterEndpoint{Name: destination + " printer", Destination: destination}, nil
		},
	}
	sender := &mockSender{
		SendFunc: func(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error {
			if endpoint.Destination == domain.DestinationCuisine {
				return apperrors.NewPrintError(endpoint.Destination, "printer unreachable", nil)
			}
			return nil
		},
	}

	service := newTestService(orders, items, registry, noStyle(), sender)

	report, err := service.PrintOrder(ctx, commons.Actor{ID: 3}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Printed) != 2 || len(report.Errors) != 1 {
		t.Fatalf("expected 2 printed / 1 error, got %d/%d", len(report.Printed), len(report.Errors))
	}
	if report.Errors[0].Destination != domain.DestinationCuisine {
		t.Errorf("expected CUISINE error, got %s", report.Errors[0].Destination)
	}
}

func TestPrintOrder_BeverageOnlySkipsCuisine(t *testing.T) {
	ctx := context.Background()

	orders := &mockOrderReader{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, TicketNumber: "20250615-12345"}, nil
		},
	}
	items := &mockOrderItemReader{
		ListByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
			return []domain.OrderItem{
				{ProductName: "Coffee", Quantity: 2, CategoryType: domain.CategoryTypeBeverage},
			}, nil
		},
	}

	var requested []string
	registry := &mockEndpointRegistry{
		FindFirstActiveFunc: func(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error) {
			requested = append(requested, destination)
			return &domain.PrinterEndpoint{Name: destination, Destination: destination}, nil
		},
	}
	sender := &mockSender{
		SendFunc: func(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error {
			return nil
		},
	}

	service := newTestService(orders, items, registry, noStyle(), sender)

	report, err := service.PrintOrder(ctx, commons.Actor{ID: 3}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Printed) != 2 {
		t.Errorf("expected TICKET and BAR only, got %d destinations", len(report.Printed))
	}
	for _, dest := range requested {
		if dest == domain.DestinationCuisine {
			t.Error("CUISINE must not be resolved for a beverage-only order")
		}
	}
}

func TestPrintOrder_CashierScopePrecedesGlobal(t *testing.T) {
	ctx := context.Background()
	orders, items := mixedOrder()

	var (
		mu        sync.Mutex
		gotScopes []string
	)
	registry := &mockEndpointRegistry{
		FindFirstActiveFunc: func(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error) {
			mu.Lock()
			gotScopes = scopes
			mu.Unlock()
			return &domain.PrinterEndpoint{Name: destination, Destination: destination}, nil
		},
	}
	sender := &mockSender{
		SendFunc: func(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error {
			return nil
		},
	}

	service := newTestService(orders, items, registry, noStyle(), sender)

	if _, err := service.PrintOrder(ctx, commons.Actor{ID: 12}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotScopes) != 2 || gotScopes[0] != "cashier:12" || gotScopes[1] != domain.ScopeGlobal {
		t.Errorf("expected [cashier:12 global], got %v", gotScopes)
	}
}

func TestPrintOrder_ServerScopePrecedesGlobal(t *testing.T) {
	ctx := context.Background()
	orders, items := mixedOrder()

	var (
		mu        sync.Mutex
		gotScopes []string
	)
	registry := &mockEndpointRegistry{
		FindFirstActiveFunc: func(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error) {
			mu.Lock()
			gotScopes = scopes
			mu.Unlock()
			return &domain.PrinterEndpoint{Name: destination, Destination: destination}, nil
		},
	}
	sender := &mockSender{
		SendFunc: func(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error {
			return nil
		},
	}

	service := newTestService(orders, items, registry, noStyle(), sender)

	actor := commons.Actor{ID: 9, Role: commons.RoleServer}
	if _, err := service.PrintOrder(ctx, actor, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotScopes) != 2 || gotScopes[0] != "server:9" || gotScopes[1] != domain.ScopeGlobal {
		t.Errorf("expected [server:9 global], got %v", gotScopes)
	}
}

func TestPrintOrder_NoItems(t *testing.T) {
	orders := &mockOrderReader{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id}, nil
		},
	}
	items := &mockOrderItemReader{
		ListByOrderIDFunc: func(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
			return nil, nil
		},
	}

	service := newTestService(orders, items, &mockEndpointRegistry{}, noStyle(), &mockSender{})

	_, err := service.PrintOrder(context.Background(), commons.Actor{ID: 1}, 1)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestPrintOrder_OrderNotFound(t *testing.T) {
	orders := &mockOrderReader{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}

	service := newTestService(orders, &mockOrderItemReader{}, &mockEndpointRegistry{}, noStyle(), &mockSender{})

	_, err := service.PrintOrder(context.Background(), commons.Actor{ID: 1}, 99)

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}
