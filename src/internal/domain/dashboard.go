package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RevenueTotals struct {
	Total     decimal.Decimal
	ThisMonth decimal.Decimal
	LastMonth decimal.Decimal
}

type Growth struct {
	Rate   decimal.Decimal
	Trend  string
	Change string
}

// RevenueGrowth compares this month's income against last month's.
func RevenueGrowth(thisMonth, lastMonth decimal.Decimal) Growth {
	hundred := decimal.NewFromInt(100)

	switch {
	case lastMonth.IsPositive():
		rate := thisMonth.Sub(lastMonth).Div(lastMonth).Mul(hundred).Round(1)
		trend := "up"
		sign := "+"
		if rate.IsNegative() {
			trend = "down"
			sign = ""
		}
		return Growth{Rate: rate, Trend: trend, Change: sign + rate.StringFixed(1) + "%"}
	case thisMonth.IsPositive():
		return Growth{Rate: hundred, Trend: "up", Change: "+100%"}
	default:
		return Growth{Rate: decimal.Zero, Trend: "down", Change: "0%"}
	}
}

// MonthBounds returns the start of the month containing now and of the month before it.
func MonthBounds(now time.Time) (thisMonth, lastMonth time.Time) {
	thisMonth = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth = thisMonth.AddDate(0, -1, 0)
	return thisMonth, lastMonth
}

type DashboardSummary struct {
	TotalBankBalance decimal.Decimal
	Revenue          RevenueTotals
	RevenueGrowth    Growth
	ActiveProjects   int
}
