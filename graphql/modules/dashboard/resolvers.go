// Package dashboard implements the resolvers for the sales dashboard.
// Resolvers load the relevant collections wholesale and hand them to the
// pure aggregation functions; a dataset of this size does not justify
// pushing the arithmetic into AQL.
package dashboard

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/internal/services"
	"github.com/salescope/sales-backend/model"
)

type contextKey string

// viewerKey carries the authenticated user key into resolver contexts
const viewerKey contextKey = "viewer"

// WithViewer returns a context carrying the authenticated user key
func WithViewer(ctx context.Context, userKey string) context.Context {
	return context.WithValue(ctx, viewerKey, userKey)
}

// filterFromArgs builds a KPIFilter from the common query arguments.
// A department argument expands to the member keys of that department.
func filterFromArgs(db database.DBConnection, p graphql.ResolveParams) services.KPIFilter {
	f := services.KPIFilter{}
	if year, ok := p.Args["year"].(int); ok {
		f.Year = year
	}
	if month, ok := p.Args["month"].(string); ok {
		f.Month = month
	}
	if assignee, ok := p.Args["assignee_id"].(string); ok {
		f.AssigneeID = assignee
	}
	if department, ok := p.Args["department"].(string); ok && department != "" {
		members, err := database.MemberKeysOfDepartment(context.Background(), db, department)
		if err == nil {
			f.MemberIDs = members
		}
	}
	return f
}

// ResolveSalesKPI computes the KPI summary for one period
func ResolveSalesKPI(db database.DBConnection, f services.KPIFilter) (interface{}, error) {
	ctx := context.Background()

	projects, err := database.AllProjects(ctx, db)
	if err != nil {
		return nil, err
	}
	performances, err := database.AllPerformances(ctx, db)
	if err != nil {
		return nil, err
	}
	clients, err := database.AllClients(ctx, db)
	if err != nil {
		return nil, err
	}

	return services.AggregateKPI(projects, performances, clients, f), nil
}

// ResolveMonthlyTrend computes the twelve-point yearly trend series
func ResolveMonthlyTrend(db database.DBConnection, year int, f services.KPIFilter) (interface{}, error) {
	ctx := context.Background()

	projects, err := database.AllProjects(ctx, db)
	if err != nil {
		return nil, err
	}
	performances, err := database.AllPerformances(ctx, db)
	if err != nil {
		return nil, err
	}
	clients, err := database.AllClients(ctx, db)
	if err != nil {
		return nil, err
	}

	return services.MonthlyTrend(projects, performances, clients, year, f), nil
}

// ResolveClientRanking computes the gross-profit ranking for the period
func ResolveClientRanking(db database.DBConnection, f services.KPIFilter, limit int) (interface{}, error) {
	ctx := context.Background()

	performances, err := database.AllPerformances(ctx, db)
	if err != nil {
		return nil, err
	}

	return services.ClientRanking(performances, f, limit), nil
}

// ResolveTargetProgress compares the month's KPI numbers against its target.
// An absent target row yields zero targets and zero rates rather than an
// error, so the dashboard card renders either way.
func ResolveTargetProgress(db database.DBConnection, year, month int, userID string) (interface{}, error) {
	ctx := context.Background()

	if userID == "" {
		userID = model.OverallScope
	}

	query := `
		FOR t IN sales_targets
		FILTER t.user_id == @user_id AND t.year == @year AND t.month == @month
		LIMIT 1 RETURN t
	`
	target, _, err := database.QueryOne[model.SalesTarget](ctx, db, query, map[string]interface{}{
		"user_id": userID,
		"year":    year,
		"month":   month,
	})
	if err != nil {
		return nil, err
	}

	f := services.KPIFilter{Year: year, Month: monthString(year, month)}
	if userID != model.OverallScope {
		f.AssigneeID = userID
	}

	summary, err := ResolveSalesKPI(db, f)
	if err != nil {
		return nil, err
	}
	return summary.(services.KPISummary).ProgressAgainst(target), nil
}

// ResolveDataQualityAlerts lists the visible alerts for one viewer
func ResolveDataQualityAlerts(db database.DBConnection, userID string) (interface{}, error) {
	ctx := context.Background()

	projects, err := database.AllProjects(ctx, db)
	if err != nil {
		return nil, err
	}
	performances, err := database.AllPerformances(ctx, db)
	if err != nil {
		return nil, err
	}
	orders, err := database.AllOrders(ctx, db)
	if err != nil {
		return nil, err
	}

	alerts := services.MissingOrderDateAlerts(projects)
	alerts = append(alerts, services.UnmatchedPerformanceAlerts(performances, orders)...)

	if userID != "" {
		query := `FOR d IN dismissals FILTER d.user_id == @user_id RETURN d`
		dismissals, err := database.QueryAll[model.Dismissal](ctx, db, query, map[string]interface{}{"user_id": userID})
		if err == nil {
			alerts = services.FilterDismissed(alerts, dismissals)
		}
	}
	return alerts, nil
}

func monthString(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
