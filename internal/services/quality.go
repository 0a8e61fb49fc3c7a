package services

import (
	"fmt"

	"github.com/salescope/sales-backend/model"
)

// Alert types surfaced on the dashboard. The original recording flows drop
// these records from totals without telling anyone; the dashboard lists
// them instead of leaving them to console diagnostics.
const (
	// AlertMissingOrderDate flags a won project with no order date, which
	// the revenue KPIs silently exclude.
	AlertMissingOrderDate = "missing_order_date"
	// AlertUnmatchedPerformance flags an imported performance row that
	// matched no order during reconciliation.
	AlertUnmatchedPerformance = "unmatched_performance"
)

// DataQualityAlert is one surfaced anomaly
type DataQualityAlert struct {
	ID         string `json:"id"` // stable: type + client name
	Type       string `json:"type"`
	ClientName string `json:"client_name"`
	Subject    string `json:"subject"` // project or performance identifier
	Message    string `json:"message"`
}

// alertID builds the stable dismissal key for an alert
func alertID(alertType, clientName string) string {
	return alertType + ":" + clientName
}

// MissingOrderDateAlerts lists won projects whose order date was never
// recorded. These projects are excluded from every order-count and revenue
// KPI, so each one is a hole in the reported numbers.
func MissingOrderDateAlerts(projects []model.Project) []DataQualityAlert {
	var alerts []DataQualityAlert
	for _, p := range projects {
		if p.IsWon() && !p.HasOrderDate() {
			alerts = append(alerts, DataQualityAlert{
				ID:         alertID(AlertMissingOrderDate, p.ClientName),
				Type:       AlertMissingOrderDate,
				ClientName: p.ClientName,
				Subject:    p.Title,
				Message:    fmt.Sprintf("受注案件「%s」に受注日が未入力のため、KPI集計から除外されています", p.Title),
			})
		}
	}
	return alerts
}

// UnmatchedPerformanceAlerts lists performance rows whose
// (client name, project name) matched no order, meaning the import's
// reconciliation step silently skipped them.
func UnmatchedPerformanceAlerts(performances []model.Performance, orders []model.Order) []DataQualityAlert {
	type orderKey struct{ client, title string }
	known := make(map[orderKey]bool, len(orders))
	for _, o := range orders {
		known[orderKey{o.ClientName, o.Title}] = true
	}

	var alerts []DataQualityAlert
	for _, p := range performances {
		if known[orderKey{p.ClientName, p.ProjectName}] {
			continue
		}
		alerts = append(alerts, DataQualityAlert{
			ID:         alertID(AlertUnmatchedPerformance, p.ClientName),
			Type:       AlertUnmatchedPerformance,
			ClientName: p.ClientName,
			Subject:    p.ProjectName,
			Message:    fmt.Sprintf("実績行「%s / %s」に対応する受注が見つかりません", p.ClientName, p.ProjectName),
		})
	}
	return alerts
}

// FilterDismissed drops alerts the user has already dismissed
func FilterDismissed(alerts []DataQualityAlert, dismissals []model.Dismissal) []DataQualityAlert {
	dismissed := make(map[string]bool, len(dismissals))
	for _, d := range dismissals {
		dismissed[d.AlertID()] = true
	}
	var visible []DataQualityAlert
	for _, a := range alerts {
		if !dismissed[a.ID] {
			visible = append(visible, a)
		}
	}
	return visible
}
