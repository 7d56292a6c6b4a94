package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bizledger/bizledger/internal/adapter/http/middleware"

	"github.com/bizledger/bizledger/internal/adapter/http/dto"
	"github.com/bizledger/bizledger/internal/domain"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, errMsg, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   errMsg,
		Message: message,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntityNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCreditLimitExceeded),
		errors.Is(err, domain.ErrPaymentExceedsBalance),
		errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidEntityType),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInvalidMovementKind),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidTenantID),
		errors.Is(err, domain.ErrInvalidSKU),
		errors.Is(err, domain.ErrEmptySequence):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// tenantID extracts the tenant from the request context. The tenant
// middleware guarantees presence on all business routes.
func tenantID(r *http.Request) string {
	id, _ := middleware.TenantFromContext(r.Context())
	return id
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

// parseFloatQuery parses a float query parameter with a default value.
func parseFloatQuery(r *http.Request, key string, defaultValue float64) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return parsed
}

// parseTimeQuery parses an RFC 3339 time query parameter. Returns nil
// when the parameter is absent or malformed.
func parseTimeQuery(r *http.Request, key string) *time.Time {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}

	return &parsed
}

// parsePeriodQuery parses the from/to query parameters into a period.
// Missing bounds default to the last 30 days ending now.
func parsePeriodQuery(r *http.Request) domain.Period {
	now := time.Now().UTC()
	period := domain.Period{From: now.AddDate(0, 0, -30), To: now}

	if from := parseTimeQuery(r, "from"); from != nil {
		period.From = *from
	}
	if to := parseTimeQuery(r, "to"); to != nil {
		period.To = *to
	}

	return period
}
