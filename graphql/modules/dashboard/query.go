// Package dashboard defines the GraphQL queries for the sales dashboard.
package dashboard

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/salescope/sales-backend/database"
)

// GetQueryFields returns the dashboard queries to be mounted in the root schema
func GetQueryFields(db database.DBConnection) graphql.Fields {
	return graphql.Fields{
		// Section 1: Top Cards (KPI summary for one period)
		"salesKpi": &graphql.Field{
			Type: KPISummaryType,
			Args: graphql.FieldConfigArgument{
				"year":        &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: time.Now().Year()},
				"month":       &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"assignee_id": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"department":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveSalesKPI(db, filterFromArgs(db, p))
			},
		},
		// Section 2: Trend chart (twelve monthly points)
		"monthlyTrend": &graphql.Field{
			Type: graphql.NewList(MonthKPIType),
			Args: graphql.FieldConfigArgument{
				"year":        &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: time.Now().Year()},
				"assignee_id": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"department":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				year := p.Args["year"].(int)
				return ResolveMonthlyTrend(db, year, filterFromArgs(db, p))
			},
		},
		// Section 3: Client ranking table
		"clientRanking": &graphql.Field{
			Type: graphql.NewList(ClientRankType),
			Args: graphql.FieldConfigArgument{
				"year":        &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: time.Now().Year()},
				"month":       &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"assignee_id": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"department":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"limit":       &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit := p.Args["limit"].(int)
				return ResolveClientRanking(db, filterFromArgs(db, p), limit)
			},
		},
		// Section 4: Achievement against the month's targets
		"targetProgress": &graphql.Field{
			Type: TargetProgressType,
			Args: graphql.FieldConfigArgument{
				"year":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: time.Now().Year()},
				"month":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: int(time.Now().Month())},
				"user_id": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				year := p.Args["year"].(int)
				month := p.Args["month"].(int)
				userID := p.Args["user_id"].(string)
				return ResolveTargetProgress(db, year, month, userID)
			},
		},
		// Section 5: Data-quality alerts, filtered by the viewer's dismissals
		"dataQualityAlerts": &graphql.Field{
			Type: graphql.NewList(DataQualityAlertType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				userID, _ := p.Context.Value(viewerKey).(string)
				return ResolveDataQualityAlerts(db, userID)
			},
		},
	}
}
