package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"caissepro/internal/domain"
	"caissepro/internal/dto"
	apperrors "caissepro/internal/errors"
	"caissepro/internal/ticket"
)

type PrinterRepository interface {
	Upsert(ctx context.Context, endpoint domain.PrinterEndpoint) error
	ListByScope(ctx context.Context, scope string) ([]domain.PrinterEndpoint, error)
	FindFirstActive(ctx context.Context, scopes []string, destination string) (*domain.PrinterEndpoint, error)
	Delete(ctx context.Context, id uint, scope string) error
}

type StyleRepository interface {
	FindByCaissier(ctx context.Context, caissierID int) (*domain.TicketStyle, error)
	Upsert(ctx context.Context, style domain.TicketStyle) error
}

type Sender interface {
	Send(ctx context.Context, endpoint domain.PrinterEndpoint, payload []byte) error
}

// ManagePrintersUseCase registers, lists, removes and test-prints
// endpoints, and stores ticket customization per cashier.
type ManagePrintersUseCase struct {
	printers   PrinterRepository
	styles     StyleRepository
	encoder    *ticket.Encoder
	dispatcher Sender
	logger     *zap.Logger
}

func NewManagePrintersUseCase(
	printers PrinterRepository,
	styles StyleRepository,
	encoder *ticket.Encoder,
	dispatcher Sender,
	logger *zap.Logger,
) *ManagePrintersUseCase {
	return &ManagePrintersUseCase{
		printers:   printers,
		styles:     styles,
		encoder:    encoder,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (uc *ManagePrintersUseCase) SavePrinter(ctx context.Context, scope string, req dto.SavePrinterRequest) error {
	if err := validatePrinter(req.Destination, req.Kind, req.Name); err != nil {
		return err
	}

	endpoint := domain.PrinterEndpoint{
		OwnerScope:  scope,
		Destination: req.Destination,
		Kind:        req.Kind,
		Name:        req.Name,
		IsActive:    true,
	}
	if req.USBPort != "" {
		endpoint.USBPort = &req.USBPort
	}
	if req.NetworkIP != "" {
		endpoint.NetworkIP = &req.NetworkIP
	}
	if req.NetworkPort != 0 {
		endpoint.NetworkPort = &req.NetworkPort
	}

	if endpoint.IsNetworked() && endpoint.NetworkIP == nil {
		return apperrors.NewValidationError("missing network address", apperrors.ValidationDetail{
			Field:   "networkIp",
			Message: "networkIp is required for network printers",
		})
	}
	if endpoint.Kind == domain.PrinterKindUSB && endpoint.USBPort == nil {
		return apperrors.NewValidationError("missing usb port", apperrors.ValidationDetail{
			Field:   "usbPort",
			Message: "usbPort is required for USB printers",
		})
	}

	if err := uc.printers.Upsert(ctx, endpoint); err != nil {
		return err
	}

	uc.logger.Info("printer saved",
		zap.String("scope", scope),
		zap.String("destination", req.Destination),
		zap.String("printer", req.Name),
	)
	return nil
}

func (uc *ManagePrintersUseCase) ListPrinters(ctx context.Context, scope string) ([]dto.PrinterDTO, error) {
	printers, err := uc.printers.ListByScope(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PrinterDTO, len(printers))
	for i, p := range printers {
		out[i] = dto.PrinterDTO{
			ID:          p.ID,
			OwnerScope:  p.OwnerScope,
			Destination: p.Destination,
			Kind:        p.Kind,
			Name:        p.Name,
			USBPort:     p.USBPort,
			NetworkIP:   p.NetworkIP,
			NetworkPort: p.NetworkPort,
			IsActive:    p.IsActive,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
	}
	return out, nil
}

func (uc *ManagePrintersUseCase) DeletePrinter(ctx context.Context, scope string, id uint) error {
	if err := uc.printers.Delete(ctx, id, scope); err != nil {
		return err
	}

	uc.logger.Info("printer deleted", zap.String("scope", scope), zap.Uint("printerId", id))
	return nil
}

// TestPrinter sends a self-test ticket to an endpoint described in the
// request without persisting anything.
func (uc *ManagePrintersUseCase) TestPrinter(ctx context.Context, req dto.TestPrinterRequest) error {
	if !domain.ValidPrinterKind(req.Kind) {
		return apperrors.NewValidationError("invalid printer type", apperrors.ValidationDetail{
			Field:   "printerType",
			Message: "printerType must be one of USB, NETWORK, WIFI",
		})
	}

	endpoint := domain.PrinterEndpoint{
		Destination: domain.DestinationTicket,
		Kind:        req.Kind,
		Name:        req.Name,
	}
	if req.USBPort != "" {
		endpoint.USBPort = &req.USBPort
	}
	if req.NetworkIP != "" {
		endpoint.NetworkIP = &req.NetworkIP
	}
	if req.NetworkPort != 0 {
		endpoint.NetworkPort = &req.NetworkPort
	}

	return uc.dispatcher.Send(ctx, endpoint, uc.encoder.EncodeTest(endpoint, time.Now()))
}

func (uc *ManagePrintersUseCase) GetStyle(ctx context.Context, caissierID int) (*dto.TicketStyleDTO, error) {
	style, err := uc.styles.FindByCaissier(ctx, caissierID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			def := domain.DefaultTicketStyle()
			return styleDTO(def), nil
		}
		return nil, err
	}

	return styleDTO(*style), nil
}

func (uc *ManagePrintersUseCase) SaveStyle(ctx context.Context, caissierID int, req dto.TicketStyleDTO) error {
	switch req.FontSize {
	case "", domain.FontSizeNormal, domain.FontSizeLarge, domain.FontSizeSmall:
	default:
		return apperrors.NewValidationError("invalid font size", apperrors.ValidationDetail{
			Field:   "fontSize",
			Message: "fontSize must be one of normal, large, small",
		})
	}

	style := domain.TicketStyle{
		CaissierID:     caissierID,
		CompanyName:    req.CompanyName,
		HeaderText:     req.HeaderText,
		FooterText:     req.FooterText,
		ShowDate:       req.ShowDate,
		ShowTime:       req.ShowTime,
		ShowServerName: req.ShowServerName,
		FontSize:       req.FontSize,
		PaperWidth:     req.PaperWidth,
	}

	if err := uc.styles.Upsert(ctx, style); err != nil {
		return err
	}

	uc.logger.Info("ticket customization saved", zap.Int("caissierId", caissierID))
	return nil
}

func styleDTO(style domain.TicketStyle) *dto.TicketStyleDTO {
	return &dto.TicketStyleDTO{
		CompanyName:    style.CompanyName,
		HeaderText:     style.HeaderText,
		FooterText:     style.FooterText,
		ShowDate:       style.ShowDate,
		ShowTime:       style.ShowTime,
		ShowServerName: style.ShowServerName,
		FontSize:       style.FontSize,
		PaperWidth:     style.PaperWidth,
	}
}

func validatePrinter(destination, kind, name string) error {
	var details []apperrors.ValidationDetail

	if !domain.ValidDestination(destination) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "destination",
			Message: "destination must be one of TICKET, BAR, CUISINE",
		})
	}
	if !domain.ValidPrinterKind(kind) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "printerType",
			Message: "printerType must be one of USB, NETWORK, WIFI",
		})
	}
	if name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "printerName",
			Message: "printerName is required",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
