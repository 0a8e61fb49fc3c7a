package database

import (
	"context"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/salescope/sales-backend/model"
)

// QueryAll runs an AQL query and reads every result document into a slice.
// The dashboard fetches whole collections and aggregates in Go, so most
// callers go through this helper.
func QueryAll[T any](ctx context.Context, db DBConnection, query string, bindVars map[string]interface{}) ([]T, error) {
	var opts *arangodb.QueryOptions
	if bindVars != nil {
		opts = &arangodb.QueryOptions{BindVars: bindVars}
	}

	cursor, err := db.Database.Query(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var results []T
	for cursor.HasMore() {
		var doc T
		if _, err := cursor.ReadDocument(ctx, &doc); err == nil {
			results = append(results, doc)
		}
	}
	return results, nil
}

// QueryOne runs an AQL query expected to return at most one document.
// found is false when the query matched nothing.
func QueryOne[T any](ctx context.Context, db DBConnection, query string, bindVars map[string]interface{}) (T, bool, error) {
	var doc T

	var opts *arangodb.QueryOptions
	if bindVars != nil {
		opts = &arangodb.QueryOptions{BindVars: bindVars}
	}

	cursor, err := db.Database.Query(ctx, query, opts)
	if err != nil {
		return doc, false, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return doc, false, nil
	}
	if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
		return doc, false, err
	}
	return doc, true, nil
}

// Exec runs an AQL data-modification query and discards any results
func Exec(ctx context.Context, db DBConnection, query string, bindVars map[string]interface{}) error {
	var opts *arangodb.QueryOptions
	if bindVars != nil {
		opts = &arangodb.QueryOptions{BindVars: bindVars}
	}
	cursor, err := db.Database.Query(ctx, query, opts)
	if err != nil {
		return err
	}
	return cursor.Close()
}

// Statement is one AQL query with its bind variables, for ExecTransaction
type Statement struct {
	Query    string
	BindVars map[string]interface{}
}

// ExecTransaction runs the statements in order inside one stream
// transaction holding an exclusive lock on the given collections. The
// transaction commits only when every statement succeeds; any failure
// aborts it and nothing is applied. AQL forbids touching the same
// collection in more than one data-modification operation per query, so
// multi-step rewrites of a collection have to go through here.
func ExecTransaction(ctx context.Context, db DBConnection, collections []string, statements []Statement) error {
	tx, err := db.Database.BeginTransaction(ctx, arangodb.TransactionCollections{Exclusive: collections}, nil)
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		var opts *arangodb.QueryOptions
		if stmt.BindVars != nil {
			opts = &arangodb.QueryOptions{BindVars: stmt.BindVars}
		}
		cursor, err := tx.Query(ctx, stmt.Query, opts)
		if err != nil {
			if abortErr := tx.Abort(ctx, nil); abortErr != nil {
				logger.Sugar().Warnf("transaction abort failed: %v", abortErr)
			}
			return err
		}
		if err := cursor.Close(); err != nil {
			if abortErr := tx.Abort(ctx, nil); abortErr != nil {
				logger.Sugar().Warnf("transaction abort failed: %v", abortErr)
			}
			return err
		}
	}

	return tx.Commit(ctx, nil)
}

// Whole-collection reads used by the dashboard and the reconciliation passes.

// AllClients returns every client document
func AllClients(ctx context.Context, db DBConnection) ([]model.Client, error) {
	return QueryAll[model.Client](ctx, db, `FOR c IN clients RETURN c`, nil)
}

// AllProjects returns every project document
func AllProjects(ctx context.Context, db DBConnection) ([]model.Project, error) {
	return QueryAll[model.Project](ctx, db, `FOR p IN projects RETURN p`, nil)
}

// AllOrders returns every order document
func AllOrders(ctx context.Context, db DBConnection) ([]model.Order, error) {
	return QueryAll[model.Order](ctx, db, `FOR o IN orders RETURN o`, nil)
}

// AllPerformances returns every performance row
func AllPerformances(ctx context.Context, db DBConnection) ([]model.Performance, error) {
	return QueryAll[model.Performance](ctx, db, `FOR p IN performances RETURN p`, nil)
}

// AllUsers returns every user document
func AllUsers(ctx context.Context, db DBConnection) ([]model.User, error) {
	return QueryAll[model.User](ctx, db, `FOR u IN users RETURN u`, nil)
}

// AllProposalMenus returns every proposal menu document
func AllProposalMenus(ctx context.Context, db DBConnection) ([]model.ProposalMenu, error) {
	return QueryAll[model.ProposalMenu](ctx, db, `FOR m IN proposal_menus RETURN m`, nil)
}

// AllSalesTargets returns every sales target row
func AllSalesTargets(ctx context.Context, db DBConnection) ([]model.SalesTarget, error) {
	return QueryAll[model.SalesTarget](ctx, db, `FOR t IN sales_targets RETURN t`, nil)
}

// MemberKeysOfDepartment returns the user keys belonging to a department,
// used to scope dashboard aggregations.
func MemberKeysOfDepartment(ctx context.Context, db DBConnection, department string) ([]string, error) {
	query := `FOR u IN users FILTER u.department == @department RETURN u._key`
	return QueryAll[string](ctx, db, query, map[string]interface{}{"department": department})
}
