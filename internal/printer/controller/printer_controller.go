package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"caissepro/internal/commons"
	"caissepro/internal/domain"
	"caissepro/internal/dto"
	apperrors "caissepro/internal/errors"
)

type ManagePrintersUseCase interface {
	SavePrinter(ctx context.Context, scope string, req dto.SavePrinterRequest) error
	ListPrinters(ctx context.Context, scope string) ([]dto.PrinterDTO, error)
	DeletePrinter(ctx context.Context, scope string, id uint) error
	TestPrinter(ctx context.Context, req dto.TestPrinterRequest) error
	GetStyle(ctx context.Context, caissierID int) (*dto.TicketStyleDTO, error)
	SaveStyle(ctx context.Context, caissierID int, req dto.TicketStyleDTO) error
}

type PrinterController struct {
	useCase ManagePrintersUseCase
	logger  *zap.Logger
}

func NewPrinterController(useCase ManagePrintersUseCase, logger *zap.Logger) *PrinterController {
	return &PrinterController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *PrinterController) Save(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, err := commons.ActorFromRequest(r)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	var req dto.SavePrinterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	scope := actor.Scope()
	if req.Global {
		scope = domain.ScopeGlobal
	}

	if err := c.useCase.SavePrinter(r.Context(), scope, req); err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "printer saved"})
}

func (c *PrinterController) ListMine(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, err := commons.ActorFromRequest(r)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	scope := actor.Scope()
	if r.URL.Query().Get("scope") == domain.ScopeGlobal {
		scope = domain.ScopeGlobal
	}

	printers, err := c.useCase.ListPrinters(r.Context(), scope)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, printers)
}

func (c *PrinterController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, err := commons.ActorFromRequest(r)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	idStr := chi.URLParam(r, "printerId")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", "printerId must be a positive integer")
		return
	}

	if err := c.useCase.DeletePrinter(r.Context(), actor.Scope(), uint(id)); err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "printer deleted"})
}

func (c *PrinterController) Test(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.TestPrinterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	if err := c.useCase.TestPrinter(r.Context(), req); err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "test print sent"})
}

func (c *PrinterController) GetCustomization(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, err := commons.ActorFromRequest(r)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	style, err := c.useCase.GetStyle(r.Context(), actor.ID)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, style)
}

func (c *PrinterController) SaveCustomization(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor, err := commons.ActorFromRequest(r)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	var req dto.TicketStyleDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	if err := c.useCase.SaveStyle(r.Context(), actor.ID, req); err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "customization saved"})
}

func (c *PrinterController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, traceID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}
	if pe, ok := apperrors.IsPrintError(err); ok {
		c.writeError(w, traceID, http.StatusBadGateway, "PRINTER_UNREACHABLE", pe.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

type errorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *PrinterController) writeError(w http.ResponseWriter, traceID string, status int, code, message string) {
	c.writeJSON(w, status, errorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func (c *PrinterController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
