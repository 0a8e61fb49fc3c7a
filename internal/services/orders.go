package services

import (
	"context"
	"strings"
	"time"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/model"
)

// UntitledOrder is the display title used when a won project has neither a
// title nor a product name.
const UntitledOrder = "名称未設定"

var log = database.Logger().Sugar()

// OrderTitle resolves the display title snapshotted onto an order:
// project title, falling back to product name, falling back to a placeholder
func OrderTitle(p *model.Project) string {
	if strings.TrimSpace(p.Title) != "" {
		return p.Title
	}
	if strings.TrimSpace(p.ProductName) != "" {
		return p.ProductName
	}
	return UntitledOrder
}

// ResolveClientType maps a client name to the order's client type the same
// way the KPI aggregation classifies deals: new, existing (dormant counts
// as existing), or "-" when the name matches no client record.
func ResolveClientType(clientName string, clients []model.Client) string {
	for i := range clients {
		if clients[i].Name == clientName {
			if clients[i].IsExisting() {
				return string(model.ClientStatusExisting)
			}
			return string(model.ClientStatusNew)
		}
	}
	return model.ClientTypeUnknown
}

// JoinMenuNames resolves proposal menu ids to names and joins them with
// commas. Unknown ids are dropped from the joined string.
func JoinMenuNames(menuIDs []string, menus []model.ProposalMenu) string {
	byKey := make(map[string]string, len(menus))
	for _, m := range menus {
		byKey[m.Key] = m.Name
	}
	var names []string
	for _, id := range menuIDs {
		if name, ok := byKey[id]; ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}

// BuildOrder assembles the order snapshot for a won project. The order date
// is the wall clock at creation time, not any user-entered date; it has to
// be corrected manually when the actual close date matters.
func BuildOrder(p *model.Project, clients []model.Client, menus []model.ProposalMenu, now time.Time) *model.Order {
	return &model.Order{
		ProjectID:         p.Key,
		ClientID:          p.ClientID,
		ClientName:        p.ClientName,
		ClientType:        ResolveClientType(p.ClientName, clients),
		Title:             OrderTitle(p),
		AssigneeID:        p.AssigneeID,
		ProposalMenuNames: JoinMenuNames(p.ProposalMenuIDs, menus),
		OrderDate:         now,
		CreatedAt:         now,
	}
}

// ProjectsNeedingOrders returns the won projects that have no order yet,
// in input order. This is the planning half of the backfill pass.
func ProjectsNeedingOrders(projects []model.Project, orders []model.Order) []model.Project {
	covered := make(map[string]bool, len(orders))
	for _, o := range orders {
		covered[o.ProjectID] = true
	}
	var missing []model.Project
	for _, p := range projects {
		if p.IsWon() && !covered[p.Key] {
			missing = append(missing, p)
		}
	}
	return missing
}

// EnsureOrder inserts the order unless one already exists for its project.
// The UPSERT runs as one atomic statement, so two concurrent triggers for
// the same project cannot both insert.
func EnsureOrder(ctx context.Context, db database.DBConnection, order *model.Order) error {
	query := `
		UPSERT { project_id: @project_id }
		INSERT {
			project_id: @project_id,
			client_id: @client_id,
			client_name: @client_name,
			client_type: @client_type,
			title: @title,
			assignee_id: @assignee_id,
			proposal_menu_names: @menu_names,
			order_date: @order_date,
			created_at: @created_at
		}
		UPDATE {} IN orders
	`
	return database.Exec(ctx, db, query, map[string]interface{}{
		"project_id":  order.ProjectID,
		"client_id":   order.ClientID,
		"client_name": order.ClientName,
		"client_type": order.ClientType,
		"title":       order.Title,
		"assignee_id": order.AssigneeID,
		"menu_names":  order.ProposalMenuNames,
		"order_date":  order.OrderDate,
		"created_at":  order.CreatedAt,
	})
}

// EnsureOrderForProject creates the order for a project that just won.
// Best effort: failures are logged and never propagated, so the triggering
// project update or log creation still succeeds.
func EnsureOrderForProject(ctx context.Context, db database.DBConnection, project *model.Project) *model.Order {
	clients, err := database.AllClients(ctx, db)
	if err != nil {
		log.Warnf("order creation: failed to load clients for project %s: %v", project.Key, err)
		clients = nil
	}
	menus, err := database.AllProposalMenus(ctx, db)
	if err != nil {
		log.Warnf("order creation: failed to load proposal menus for project %s: %v", project.Key, err)
		menus = nil
	}

	order := BuildOrder(project, clients, menus, time.Now())
	if err := EnsureOrder(ctx, db, order); err != nil {
		log.Warnf("order creation failed for project %s: %v", project.Key, err)
		return nil
	}
	return order
}

// BackfillOrders scans all won projects and creates an order for any that
// lack one, restoring the "every won project has exactly one order"
// invariant. Returns the orders it created so the caller can publish them.
func BackfillOrders(ctx context.Context, db database.DBConnection) ([]model.Order, error) {
	projects, err := database.AllProjects(ctx, db)
	if err != nil {
		return nil, err
	}
	orders, err := database.AllOrders(ctx, db)
	if err != nil {
		return nil, err
	}
	clients, err := database.AllClients(ctx, db)
	if err != nil {
		return nil, err
	}
	menus, err := database.AllProposalMenus(ctx, db)
	if err != nil {
		return nil, err
	}

	var created []model.Order
	for _, p := range ProjectsNeedingOrders(projects, orders) {
		order := BuildOrder(&p, clients, menus, time.Now())
		if err := EnsureOrder(ctx, db, order); err != nil {
			log.Warnf("order backfill failed for project %s: %v", p.Key, err)
			continue
		}
		created = append(created, *order)
	}

	if len(created) > 0 {
		log.Infof("order backfill created %d orders", len(created))
	}
	return created, nil
}
