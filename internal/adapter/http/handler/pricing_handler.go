package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bizledger/bizledger/internal/adapter/http/dto"
	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
)

// PricingService defines the behavior needed by PricingHandler.
type PricingService interface {
	QuoteSale(ctx context.Context, input usecase.QuoteSaleInput) (domain.PriceQuote, error)
}

// PricingHandler handles price quote HTTP requests.
type PricingHandler struct {
	pricingUC PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingUC PricingService) *PricingHandler {
	return &PricingHandler{pricingUC: pricingUC}
}

// Quote computes the price breakdown for a prospective sale.
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid request body", "at least one line item is required")
		return
	}

	input, err := req.ToUseCaseInput(tenantID(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line item", err.Error())
		return
	}

	quote, err := h.pricingUC.QuoteSale(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute quote", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteFromDomain(quote))
}
