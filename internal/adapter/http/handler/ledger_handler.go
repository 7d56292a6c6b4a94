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

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	RecordEntry(ctx context.Context, input usecase.RecordEntryInput) (*domain.LedgerEntry, error)
	GetBalance(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string) (domain.Balance, error)
	GetSummary(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string) (domain.EntitySummary, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error)
}

// LedgerHandler handles ledger entry HTTP requests for one entity
// type bound at route registration.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// RecordEntry appends a ledger entry for an entity.
func (h *LedgerHandler) RecordEntry(entityType domain.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := chi.URLParam(r, "id")

		var req dto.RecordEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}

		input, err := req.ToUseCaseInput(tenantID(r), entityType, entityID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
			return
		}

		entry, err := h.ledgerUC.RecordEntry(r.Context(), input)
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to record entry", err.Error())

			return
		}

		writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
	}
}

// ListEntries lists an entity's ledger entries.
func (h *LedgerHandler) ListEntries(entityType domain.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := chi.URLParam(r, "id")
		limit := parseIntQuery(r, "limit", 50)
		offset := parseIntQuery(r, "offset", 0)

		entries, err := h.ledgerUC.ListEntries(r.Context(), usecase.ListEntriesInput{
			TenantID:   tenantID(r),
			EntityType: entityType,
			EntityID:   entityID,
			From:       parseTimeQuery(r, "from"),
			To:         parseTimeQuery(r, "to"),
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to list entries", err.Error())

			return
		}

		writeJSON(w, http.StatusOK, dto.NewListResponse(dto.EntriesFromDomain(entries)))
	}
}

// GetBalance returns an entity's current balance.
func (h *LedgerHandler) GetBalance(entityType domain.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := chi.URLParam(r, "id")

		balance, err := h.ledgerUC.GetBalance(r.Context(), tenantID(r), entityType, entityID)
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to get balance", err.Error())

			return
		}

		writeJSON(w, http.StatusOK, dto.BalanceResponse{
			EntityID: entityID,
			Balance:  balance.Decimal(),
		})
	}
}

// GetSummary returns aggregate activity for an entity.
func (h *LedgerHandler) GetSummary(entityType domain.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := chi.URLParam(r, "id")

		summary, err := h.ledgerUC.GetSummary(r.Context(), tenantID(r), entityType, entityID)
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to get summary", err.Error())

			return
		}

		writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
	}
}
