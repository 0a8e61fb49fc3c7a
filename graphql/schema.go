// Package graphql assembles the root schema from the query modules.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/graphql/modules/dashboard"
)

var db database.DBConnection

// InitDB stores the database connection used by the resolvers
func InitDB(conn database.DBConnection) {
	db = conn
}

// CreateSchema builds the root query schema
func CreateSchema() (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range dashboard.GetQueryFields(db) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
