// Package dashboard defines the GraphQL types for the sales dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"
)

// KPISummaryType represents the top-card numbers for one period
var KPISummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "KPISummary",
	Fields: graphql.Fields{
		"total_deals":         &graphql.Field{Type: graphql.Int},
		"new_deals":           &graphql.Field{Type: graphql.Int},
		"existing_deals":      &graphql.Field{Type: graphql.Int},
		"unclassified_deals":  &graphql.Field{Type: graphql.Int},
		"total_orders":        &graphql.Field{Type: graphql.Int},
		"new_orders":          &graphql.Field{Type: graphql.Int},
		"existing_orders":     &graphql.Field{Type: graphql.Int},
		"revenue":             &graphql.Field{Type: graphql.Float},
		"gross_profit":        &graphql.Field{Type: graphql.Float},
		"active_clients":      &graphql.Field{Type: graphql.Int},
		"average_order_value": &graphql.Field{Type: graphql.Float},
	},
})

// MonthKPIType represents one point of the yearly trend chart
var MonthKPIType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MonthKPI",
	Fields: graphql.Fields{
		"month":        &graphql.Field{Type: graphql.String},
		"deals":        &graphql.Field{Type: graphql.Int},
		"orders":       &graphql.Field{Type: graphql.Int},
		"revenue":      &graphql.Field{Type: graphql.Float},
		"gross_profit": &graphql.Field{Type: graphql.Float},
	},
})

// ClientRankType represents a row of the client gross-profit ranking table
var ClientRankType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ClientRank",
	Fields: graphql.Fields{
		"client_name":  &graphql.Field{Type: graphql.String},
		"revenue":      &graphql.Field{Type: graphql.Float},
		"gross_profit": &graphql.Field{Type: graphql.Float},
		"row_count":    &graphql.Field{Type: graphql.Int},
	},
})

// TargetProgressType represents achievement rates against the month's targets
var TargetProgressType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TargetProgress",
	Fields: graphql.Fields{
		"deal_target":         &graphql.Field{Type: graphql.Int},
		"order_target":        &graphql.Field{Type: graphql.Int},
		"gross_profit_budget": &graphql.Field{Type: graphql.Float},
		"deal_rate":           &graphql.Field{Type: graphql.Float},
		"order_rate":          &graphql.Field{Type: graphql.Float},
		"gross_profit_rate":   &graphql.Field{Type: graphql.Float},
	},
})

// DataQualityAlertType represents one surfaced data-quality problem
var DataQualityAlertType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DataQualityAlert",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String},
		"type":        &graphql.Field{Type: graphql.String},
		"client_name": &graphql.Field{Type: graphql.String},
		"subject":     &graphql.Field{Type: graphql.String},
		"message":     &graphql.Field{Type: graphql.String},
	},
})
