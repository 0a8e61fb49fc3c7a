// Package services provides the reporting, order reconciliation, and CSV
// import logic for the sales backend. Everything here operates on
// collections already loaded from the database so the arithmetic stays
// deterministic and testable.
package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/salescope/sales-backend/model"
)

// KPIFilter restricts an aggregation run to one assignee or one set of
// department members, and selects the reporting period. Month takes
// precedence over Year when both are set; a Month of "" means yearly
// aggregation over Year.
type KPIFilter struct {
	AssigneeID string
	MemberIDs  []string
	Year       int
	Month      string // "YYYY-MM"
}

// PeriodPrefix returns the recording-month prefix for the selected period.
// Performance rows are matched by string prefix, not parsed-date comparison.
func (f KPIFilter) PeriodPrefix() string {
	if f.Month != "" {
		return f.Month
	}
	return fmt.Sprintf("%04d-", f.Year)
}

func (f KPIFilter) matchesAssignee(assigneeID string) bool {
	if f.AssigneeID != "" && assigneeID != f.AssigneeID {
		return false
	}
	if f.MemberIDs != nil {
		for _, id := range f.MemberIDs {
			if id == assigneeID {
				return true
			}
		}
		return false
	}
	return true
}

// inPeriod reports whether a "YYYY-MM" month string falls in the filter period
func (f KPIFilter) inPeriod(month string) bool {
	return strings.HasPrefix(month, f.PeriodPrefix())
}

// KPISummary is the fixed-shape aggregation result. All sums default to
// zero on empty input. Unclassified deals are projects whose denormalized
// client name matches no client record; they count in the total but in
// neither the new nor existing bucket, so
// New + Existing + Unclassified == Total always holds.
type KPISummary struct {
	TotalDeals        int     `json:"total_deals"`
	NewDeals          int     `json:"new_deals"`
	ExistingDeals     int     `json:"existing_deals"`
	UnclassifiedDeals int     `json:"unclassified_deals"`
	TotalOrders       int     `json:"total_orders"`
	NewOrders         int     `json:"new_orders"`
	ExistingOrders    int     `json:"existing_orders"`
	Revenue           float64 `json:"revenue"`
	GrossProfit       float64 `json:"gross_profit"`
	ActiveClients     int     `json:"active_clients"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// clientIndex maps client names to records for classification lookups
func clientIndex(clients []model.Client) map[string]model.Client {
	idx := make(map[string]model.Client, len(clients))
	for _, c := range clients {
		idx[c.Name] = c
	}
	return idx
}

// AggregateKPI produces the dashboard KPI numbers for one period.
//
// Deals are projects created in the period; orders are won projects whose
// order date falls in the period. A won project without an order date is
// excluded from the order counts entirely (see MissingOrderDateAlerts for
// the surfaced data-quality view of those). Revenue and gross profit come
// from performance rows, never from projects.
func AggregateKPI(projects []model.Project, performances []model.Performance, clients []model.Client, f KPIFilter) KPISummary {
	var s KPISummary
	byName := clientIndex(clients)

	for _, p := range projects {
		if !f.matchesAssignee(p.AssigneeID) {
			continue
		}

		if f.inPeriod(p.CreatedAt.Format("2006-01")) {
			s.TotalDeals++
			if c, ok := byName[p.ClientName]; !ok {
				s.UnclassifiedDeals++
			} else if c.IsExisting() {
				s.ExistingDeals++
			} else {
				s.NewDeals++
			}
		}

		if p.IsWon() && p.HasOrderDate() && f.inPeriod(p.OrderDate.Format("2006-01")) {
			s.TotalOrders++
			if c, ok := byName[p.ClientName]; ok {
				if c.IsExisting() {
					s.ExistingOrders++
				} else {
					s.NewOrders++
				}
			}
		}
	}

	activeClients := make(map[string]bool)
	for _, perf := range performances {
		if !f.matchesAssignee(perf.AssigneeID) {
			continue
		}
		if !f.inPeriod(perf.RecordingMonth) {
			continue
		}
		s.Revenue += perf.Revenue
		s.GrossProfit += perf.GrossProfit
		activeClients[perf.ClientName] = true
	}
	s.ActiveClients = len(activeClients)

	if s.ActiveClients > 0 {
		s.AverageOrderValue = s.GrossProfit / float64(s.ActiveClients)
	}

	return s
}

// MonthKPI is one month of the yearly trend series
type MonthKPI struct {
	Month       string  `json:"month"` // "YYYY-MM"
	Deals       int     `json:"deals"`
	Orders      int     `json:"orders"`
	Revenue     float64 `json:"revenue"`
	GrossProfit float64 `json:"gross_profit"`
}

// MonthlyTrend returns twelve per-month KPI points for the chart series.
// The assignee/member restriction of f is honored; its period is ignored.
func MonthlyTrend(projects []model.Project, performances []model.Performance, clients []model.Client, year int, f KPIFilter) []MonthKPI {
	trend := make([]MonthKPI, 0, 12)
	for month := 1; month <= 12; month++ {
		mf := KPIFilter{
			AssigneeID: f.AssigneeID,
			MemberIDs:  f.MemberIDs,
			Year:       year,
			Month:      fmt.Sprintf("%04d-%02d", year, month),
		}
		s := AggregateKPI(projects, performances, clients, mf)
		trend = append(trend, MonthKPI{
			Month:       mf.Month,
			Deals:       s.TotalDeals,
			Orders:      s.TotalOrders,
			Revenue:     s.Revenue,
			GrossProfit: s.GrossProfit,
		})
	}
	return trend
}

// ClientRank is one row of the client gross-profit ranking
type ClientRank struct {
	ClientName  string  `json:"client_name"`
	Revenue     float64 `json:"revenue"`
	GrossProfit float64 `json:"gross_profit"`
	RowCount    int     `json:"row_count"`
}

// ClientRanking groups the period's performance rows by client and sorts by
// gross profit, highest first. Ties keep a stable name order so reruns are
// deterministic.
func ClientRanking(performances []model.Performance, f KPIFilter, limit int) []ClientRank {
	byClient := make(map[string]*ClientRank)
	for _, perf := range performances {
		if !f.matchesAssignee(perf.AssigneeID) || !f.inPeriod(perf.RecordingMonth) {
			continue
		}
		r, ok := byClient[perf.ClientName]
		if !ok {
			r = &ClientRank{ClientName: perf.ClientName}
			byClient[perf.ClientName] = r
		}
		r.Revenue += perf.Revenue
		r.GrossProfit += perf.GrossProfit
		r.RowCount++
	}

	ranks := make([]ClientRank, 0, len(byClient))
	for _, r := range byClient {
		ranks = append(ranks, *r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].GrossProfit != ranks[j].GrossProfit {
			return ranks[i].GrossProfit > ranks[j].GrossProfit
		}
		return ranks[i].ClientName < ranks[j].ClientName
	})

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// TargetProgress compares a KPI summary against the sales target for the
// same scope and period. Rates are 0 when the target denominator is 0.
type TargetProgress struct {
	DealTarget        int     `json:"deal_target"`
	OrderTarget       int     `json:"order_target"`
	GrossProfitBudget float64 `json:"gross_profit_budget"`
	DealRate          float64 `json:"deal_rate"`
	OrderRate         float64 `json:"order_rate"`
	GrossProfitRate   float64 `json:"gross_profit_rate"`
}

// ProgressAgainst computes achievement rates for s against target
func (s KPISummary) ProgressAgainst(target model.SalesTarget) TargetProgress {
	p := TargetProgress{
		DealTarget:        target.DealTarget,
		OrderTarget:       target.OrderTarget,
		GrossProfitBudget: target.GrossProfitBudget,
	}
	if target.DealTarget > 0 {
		p.DealRate = float64(s.TotalDeals) / float64(target.DealTarget)
	}
	if target.OrderTarget > 0 {
		p.OrderRate = float64(s.TotalOrders) / float64(target.OrderTarget)
	}
	if target.GrossProfitBudget > 0 {
		p.GrossProfitRate = s.GrossProfit / target.GrossProfitBudget
	}
	return p
}
