package handler

import (
	"context"
	"net/http"

	"github.com/bizledger/bizledger/internal/adapter/http/dto"
	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
)

// FinancialService defines the behavior needed by ReportHandler.
type FinancialService interface {
	GenerateReport(ctx context.Context, tenantID string, period domain.Period) (domain.FinancialReport, error)
	GetKPIs(ctx context.Context, input usecase.KPIInput) (domain.KPIReport, error)
	GetCashFlow(ctx context.Context, tenantID string, period domain.Period) ([]domain.CashFlowDay, error)
	ForecastRevenue(ctx context.Context, input usecase.ForecastInput) ([]domain.ForecastPoint, error)
}

// ReportHandler handles financial reporting HTTP requests.
type ReportHandler struct {
	financialUC FinancialService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(financialUC FinancialService) *ReportHandler {
	return &ReportHandler{financialUC: financialUC}
}

// Financial generates a financial report for a period.
func (h *ReportHandler) Financial(w http.ResponseWriter, r *http.Request) {
	period := parsePeriodQuery(r)

	report, err := h.financialUC.GenerateReport(r.Context(), tenantID(r), period)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate report", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}

// KPIs computes key performance indicators for a period against the
// prior period. The prior window defaults to the same length
// immediately before the reporting period.
func (h *ReportHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	period := parsePeriodQuery(r)
	prior := priorPeriod(r, period)
	averageStock := parseFloatQuery(r, "average_stock", 0)

	priorReport, err := h.financialUC.GenerateReport(r.Context(), tenantID(r), prior)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute kpis", err.Error())

		return
	}

	kpis, err := h.financialUC.GetKPIs(r.Context(), usecase.KPIInput{
		TenantID:     tenantID(r),
		Period:       period,
		Prior:        domain.MetricsFromReport(priorReport),
		AverageStock: averageStock,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute kpis", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.KPIFromDomain(kpis))
}

// CashFlow nets a period's entries by calendar day.
func (h *ReportHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	period := parsePeriodQuery(r)

	days, err := h.financialUC.GetCashFlow(r.Context(), tenantID(r), period)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute cash flow", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.CashFlowFromDomain(days)))
}

// Forecast projects revenue for future periods. The latest historical
// window is the from/to query range; the previous window defaults to
// the same length immediately before it.
func (h *ReportHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	latest := parsePeriodQuery(r)
	previous := priorPeriod(r, latest)
	periods := parseIntQuery(r, "periods", 3)

	points, err := h.financialUC.ForecastRevenue(r.Context(), usecase.ForecastInput{
		TenantID: tenantID(r),
		Previous: previous,
		Latest:   latest,
		Periods:  periods,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to forecast revenue", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.ForecastFromDomain(points)))
}

// priorPeriod resolves the comparison window. Explicit prior_from and
// prior_to take precedence; otherwise the window of the same length
// immediately before the period is used.
func priorPeriod(r *http.Request, period domain.Period) domain.Period {
	length := period.To.Sub(period.From)
	prior := domain.Period{From: period.From.Add(-length), To: period.From}

	if from := parseTimeQuery(r, "prior_from"); from != nil {
		prior.From = *from
	}
	if to := parseTimeQuery(r, "prior_to"); to != nil {
		prior.To = *to
	}

	return prior
}
