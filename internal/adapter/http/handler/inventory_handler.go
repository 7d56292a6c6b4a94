package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bizledger/bizledger/internal/adapter/http/dto"
	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
)

// InventoryService defines the behavior needed by InventoryHandler.
type InventoryService interface {
	RecordMovement(ctx context.Context, input usecase.RecordMovementInput) (*domain.InventoryMovement, error)
	GetStock(ctx context.Context, tenantID, productID string) (int64, error)
	GetStockLevel(ctx context.Context, tenantID, productID string) (usecase.StockLevel, error)
	GetTurnover(ctx context.Context, tenantID, productID string) (float64, error)
	GetReorderAdvice(ctx context.Context, tenantID, productID string) (domain.ReorderAdvice, error)
	ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.InventoryMovement, error)
}

// InventoryHandler handles stock movement HTTP requests.
type InventoryHandler struct {
	inventoryUC InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryUC InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryUC: inventoryUC}
}

// RecordMovement appends a stock movement for a product.
func (h *InventoryHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var req dto.RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.inventoryUC.RecordMovement(r.Context(), req.ToUseCaseInput(tenantID(r), productID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record movement", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// ListMovements lists a product's movements.
func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	movements, err := h.inventoryUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		TenantID:  tenantID(r),
		ProductID: productID,
		From:      parseTimeQuery(r, "from"),
		To:        parseTimeQuery(r, "to"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list movements", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.MovementsFromDomain(movements)))
}

// GetStock returns the current stock of a product.
func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	stock, err := h.inventoryUC.GetStock(r.Context(), tenantID(r), productID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get stock", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.StockResponse{ProductID: productID, Stock: stock})
}

// GetStockLevel returns stock with its status classification.
func (h *InventoryHandler) GetStockLevel(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	level, err := h.inventoryUC.GetStockLevel(r.Context(), tenantID(r), productID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get stock level", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.StockLevelFromUseCase(level))
}

// GetTurnover returns a product's daily turnover rate.
func (h *InventoryHandler) GetTurnover(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	rate, err := h.inventoryUC.GetTurnover(r.Context(), tenantID(r), productID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get turnover", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TurnoverResponse{ProductID: productID, TurnoverRate: rate})
}

// GetReorderAdvice returns replenishment advice for a product.
func (h *InventoryHandler) GetReorderAdvice(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	advice, err := h.inventoryUC.GetReorderAdvice(r.Context(), tenantID(r), productID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get reorder advice", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReorderAdviceFromDomain(advice))
}
