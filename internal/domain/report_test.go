package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func reportEntry(entityType EntityType, entityID string, direction Direction, amount float64, at time.Time) *LedgerEntry {
	return &LedgerEntry{
		ID:         entityID + "-" + string(direction),
		TenantID:   "t1",
		EntityType: entityType,
		EntityID:   entityID,
		Direction:  direction,
		Amount:     MustMoney(amount),
		CreatedAt:  at,
	}
}

func marchPeriod() Period {
	return Period{
		From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildFinancialReport(t *testing.T) {
	period := marchPeriod()
	mid := period.From.Add(10 * 24 * time.Hour)

	entries := []*LedgerEntry{
		reportEntry(EntityTypeCustomer, "c1", DirectionCredit, 1000, mid),
		reportEntry(EntityTypeCustomer, "c2", DirectionCredit, 500, mid),
		reportEntry(EntityTypeSupplier, "s1", DirectionDebit, 600, mid),
		reportEntry(EntityTypeCustomer, "c1", DirectionDebit, 200, mid), // payment, not revenue
		reportEntry(EntityTypeSupplier, "s1", DirectionCredit, 100, mid),
		reportEntry(EntityTypeCustomer, "c3", DirectionCredit, 50, period.To.Add(time.Hour)), // outside period
	}

	report := BuildFinancialReport(period, entries)

	require.Equal(t, "1500.00", report.TotalRevenue.String())
	require.Equal(t, "600.00", report.TotalExpenses.String())
	require.Equal(t, "900.00", report.NetProfit.String())
	require.Equal(t, 5, report.TransactionCount)
	require.Equal(t, 60.0, report.GrossMarginPct)
	require.Equal(t, 2, report.ActiveCustomers)
	require.Equal(t, "480.00", report.AverageTransactionValue.String())
	require.Equal(t, "300.00", report.CustomerAcquisitionCost.String())
	require.Equal(t, "750.00", report.CustomerLifetimeValue.String())
}

func TestBuildFinancialReport_ProfitInvariant(t *testing.T) {
	period := marchPeriod()
	mid := period.From.Add(24 * time.Hour)

	cases := [][]*LedgerEntry{
		nil,
		{reportEntry(EntityTypeCustomer, "c1", DirectionCredit, 100, mid)},
		{reportEntry(EntityTypeSupplier, "s1", DirectionDebit, 250, mid)},
		{
			reportEntry(EntityTypeCustomer, "c1", DirectionCredit, 123.45, mid),
			reportEntry(EntityTypeSupplier, "s1", DirectionDebit, 678.90, mid),
		},
	}

	for _, entries := range cases {
		report := BuildFinancialReport(period, entries)

		expected := report.TotalRevenue.AsBalance().Sub(report.TotalExpenses.AsBalance())
		require.True(t, report.NetProfit.Equal(expected),
			"revenue %s - expenses %s != profit %s",
			report.TotalRevenue, report.TotalExpenses, report.NetProfit)
	}
}

func TestBuildFinancialReport_ZeroRevenue(t *testing.T) {
	period := marchPeriod()
	entries := []*LedgerEntry{
		reportEntry(EntityTypeSupplier, "s1", DirectionDebit, 300, period.From.Add(time.Hour)),
	}

	report := BuildFinancialReport(period, entries)

	require.Equal(t, 0.0, report.GrossMarginPct)
	require.True(t, report.NetProfit.IsNegative())
	require.Equal(t, 0, report.ActiveCustomers)
	require.True(t, report.CustomerAcquisitionCost.IsZero())
}

func TestComputeKPIs(t *testing.T) {
	current := PeriodMetrics{
		Revenue:         MustMoney(1200),
		Expenses:        MustMoney(600),
		Profit:          MustMoney(600).AsBalance(),
		ActiveCustomers: 90,
		UnitsSold:       300,
		AverageStock:    100,
	}
	prior := PeriodMetrics{
		Revenue:         MustMoney(1000),
		ActiveCustomers: 100,
	}

	kpi := ComputeKPIs(current, prior)

	require.Equal(t, 20.0, kpi.RevenueGrowthPct)
	require.Equal(t, 50.0, kpi.ProfitMarginPct)
	require.Equal(t, 2.0, kpi.OperatingEfficiency)
	require.Equal(t, 90.0, kpi.RetentionRatePct)
	require.Equal(t, 3.0, kpi.InventoryTurnover)
}

func TestComputeKPIs_ZeroPriors(t *testing.T) {
	kpi := ComputeKPIs(PeriodMetrics{}, PeriodMetrics{})

	require.Equal(t, 0.0, kpi.RevenueGrowthPct)
	require.Equal(t, 0.0, kpi.ProfitMarginPct)
	require.Equal(t, 0.0, kpi.OperatingEfficiency)
	require.Equal(t, 0.0, kpi.RetentionRatePct)
	require.Equal(t, 0.0, kpi.InventoryTurnover)
}

func TestBuildCashFlow(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC)

	entries := []*LedgerEntry{
		reportEntry(EntityTypeCustomer, "c1", DirectionCredit, 500, day2),
		reportEntry(EntityTypeCustomer, "c1", DirectionCredit, 100, day1),
		reportEntry(EntityTypeSupplier, "s1", DirectionDebit, 400, day1.Add(2*time.Hour)),
	}

	flow := BuildCashFlow(entries)

	require.Len(t, flow, 2)

	require.Equal(t, day1.Truncate(24*time.Hour), flow[0].Date)
	require.Equal(t, "100.00", flow[0].Inflow.String())
	require.Equal(t, "400.00", flow[0].Outflow.String())
	require.Equal(t, "-300.00", flow[0].Net.String())

	require.Equal(t, "500.00", flow[1].Inflow.String())
	require.Equal(t, "500.00", flow[1].Net.String())
}

func TestForecastRevenue(t *testing.T) {
	points := ForecastRevenue(MustMoney(1000), MustMoney(1100), 3)

	require.Len(t, points, 3)
	require.Equal(t, "1210.00", points[0].Revenue.String())
	require.Equal(t, "1331.00", points[1].Revenue.String())
	require.Equal(t, "1464.10", points[2].Revenue.String())

	require.Equal(t, 0.9, points[0].Confidence)
	require.Equal(t, 0.8, points[1].Confidence)
	require.InDelta(t, 0.7, points[2].Confidence, 1e-9)
}

func TestForecastRevenue_Degenerate(t *testing.T) {
	t.Run("zero prior revenue means flat forecast", func(t *testing.T) {
		points := ForecastRevenue(ZeroMoney, MustMoney(500), 2)
		require.Equal(t, "500.00", points[0].Revenue.String())
		require.Equal(t, "500.00", points[1].Revenue.String())
	})

	t.Run("confidence floors at 0.1", func(t *testing.T) {
		points := ForecastRevenue(MustMoney(100), MustMoney(100), 12)
		require.InDelta(t, 0.1, points[11].Confidence, 1e-9)
	})

	t.Run("no periods", func(t *testing.T) {
		require.Nil(t, ForecastRevenue(MustMoney(100), MustMoney(100), 0))
	})
}
