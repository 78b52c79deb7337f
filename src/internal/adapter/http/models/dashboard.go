package models

import (
	"encoding/json"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
)

type GrowthResponse struct {
	Rate   json.Number `json:"rate"`
	Trend  string      `json:"trend"`
	Change string      `json:"change"`
}

type DashboardSummaryResponse struct {
	TotalBankBalance json.Number    `json:"totalBankBalance"`
	TotalRevenue     json.Number    `json:"totalRevenue"`
	ThisMonthRevenue json.Number    `json:"thisMonthRevenue"`
	LastMonthRevenue json.Number    `json:"lastMonthRevenue"`
	GrowthRate       GrowthResponse `json:"growthRate"`
	ActiveProjects   int            `json:"activeProjects"`
}

func NewDashboardSummaryResponse(summary domain.DashboardSummary) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		TotalBankBalance: Money(summary.TotalBankBalance),
		TotalRevenue:     Money(summary.Revenue.Total),
		ThisMonthRevenue: Money(summary.Revenue.ThisMonth),
		LastMonthRevenue: Money(summary.Revenue.LastMonth),
		GrowthRate: GrowthResponse{
			Rate:   json.Number(summary.RevenueGrowth.Rate.StringFixed(1)),
			Trend:  summary.RevenueGrowth.Trend,
			Change: summary.RevenueGrowth.Change,
		},
		ActiveProjects: summary.ActiveProjects,
	}
}
