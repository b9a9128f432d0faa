package print

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"caissepro/internal/commons"
	"caissepro/internal/domain"
	"caissepro/internal/dto"
	apperrors "caissepro/internal/errors"
	"caissepro/internal/routing"
	"caissepro/internal/ticket"
)

type OrderReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

type OrderItemReader interface {
	ListByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

// EndpointRegistry resolves the active printer for a destination, trying
// the given owner scopes in order.
type EndpointRegistry interface {
	FindFirstActive(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error)
}

type StyleReader interface {
	FindByCaissier(ctx context.Context, caissierID int) (*domain.TicketStyle, error)
}

type Sender interface {
	Send(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error
}

// Service routes an order's items to their destinations and prints each
// ticket. Destinations are independent: one dead printer never blocks the
// others, and every outcome lands in the report.
type Service struct {
	orders     OrderReader
	items      OrderItemReader
	registry   EndpointRegistry
	styles     StyleReader
	engine     *routing.Engine
	encoder    *ticket.Encoder
	dispatcher Sender
	logger     *zap.Logger
}

func NewService(
	orders OrderReader,
	items OrderItemReader,
	registry EndpointRegistry,
	styles StyleReader,
	engine *routing.Engine,
	encoder *ticket.Encoder,
	dispatcher Sender,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:     orders,
		items:      items,
		registry:   registry,
		styles:     styles,
		engine:     engine,
		encoder:    encoder,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type job struct {
	destination string
	items       []domain.OrderItem
	payload     func(order domain.Order) []byte
}

// PrintOrder prints the client receipt and, when the partition is
// non-empty, the bar and kitchen tickets. The actor's own printers (cashier
// or server scoped, per role) take precedence over the global registry.
func (s *Service) PrintOrder(ctx context.Context, actor commons.Actor, orderID uint) (*dto.PrintReport, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("order has no items", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "order has no items to print",
		})
	}

	partition := s.engine.Partition(items)

	style := domain.DefaultTicketStyle()
	if saved, err := s.styles.FindByCaissier(ctx, actor.ID); err == nil {
		style = *saved
	} else if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	jobs := []job{
		{
			destination: domain.DestinationTicket,
			items:       partition.Ticket,
			payload: func(order domain.Order) []byte {
				return s.encoder.EncodeClient(order, partition.Ticket, style)
			},
		},
	}
	if len(partition.Bar) > 0 {
		jobs = append(jobs, job{
			destination: domain.DestinationBar,
			items:       partition.Bar,
			payload: func(order domain.Order) []byte {
				return s.encoder.EncodeKitchen(order, partition.Bar, domain.DestinationBar)
			},
		})
	}
	if len(partition.Cuisine) > 0 {
		jobs = append(jobs, job{
			destination: domain.DestinationCuisine,
			items:       partition.Cuisine,
			payload: func(order domain.Order) []byte {
				return s.encoder.EncodeKitchen(order, partition.Cuisine, domain.DestinationCuisine)
			},
		})
	}

	scopes := []string{actor.Scope(), domain.ScopeGlobal}

	report := &dto.PrintReport{
		OrderID: orderID,
		Printed: []dto.PrintedEntry{},
		Errors:  []dto.PrintErrorEntry{},
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()

			endpoint, err := s.registry.FindFirstActive(ctx, scopes, j.destination)
			if err != nil {
				mu.Lock()
				defer mu.Unlock()
				if _, ok := apperrors.IsNotFoundError(err); ok {
					report.Errors = append(report.Errors, dto.PrintErrorEntry{
						Destination: j.destination,
						Error:       fmt.Sprintf("no active %s printer configured", j.destination),
					})
				} else {
					report.Errors = append(report.Errors, dto.PrintErrorEntry{
						Destination: j.destination,
						Error:       err.Error(),
					})
				}
				return
			}

			err = s.dispatcher.Send(ctx, *endpoint, j.payload(*order))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Errors = append(report.Errors, dto.PrintErrorEntry{
					Destination: j.destination,
					Error:       err.Error(),
				})
				return
			}
			report.Printed = append(report.Printed, dto.PrintedEntry{
				Destination: j.destination,
				Printer:     endpoint.Name,
				Items:       len(j.items),
			})
		}(j)
	}

	wg.Wait()

	sortReport(report)

	s.logger.Info("print dispatch finished",
		zap.Uint("orderId", orderID),
		zap.Int("printed", len(report.Printed)),
		zap.Int("errors", len(report.Errors)),
	)

	return report, nil
}

// sortReport keeps destination order stable (TICKET, BAR, CUISINE) even
// though dispatch runs concurrently.
func sortReport(report *dto.PrintReport) {
	rank := map[string]int{
		domain.DestinationTicket:  0,
		domain.DestinationBar:     1,
		domain.DestinationCuisine: 2,
	}
	sort.Slice(report.Printed, func(i, j int) bool {
		return rank[report.Printed[i].Destination] < rank[report.Printed[j].Destination]
	})
	sort.Slice(report.Errors, func(i, j int) bool {
		return rank[report.Errors[i].Destination] < rank[report.Errors[j].Destination]
	})
}
