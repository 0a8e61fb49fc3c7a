// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/salescope/sales-backend/database"
	orderevents "github.com/salescope/sales-backend/events/modules/orders"
	perfevents "github.com/salescope/sales-backend/events/modules/performances"
	"github.com/salescope/sales-backend/internal/conf"
	"github.com/salescope/sales-backend/internal/services"
	"github.com/salescope/sales-backend/restapi/modules/actionlogs"
	"github.com/salescope/sales-backend/restapi/modules/auth"
	"github.com/salescope/sales-backend/restapi/modules/clients"
	"github.com/salescope/sales-backend/restapi/modules/dismissals"
	"github.com/salescope/sales-backend/restapi/modules/freewritings"
	"github.com/salescope/sales-backend/restapi/modules/menus"
	"github.com/salescope/sales-backend/restapi/modules/orders"
	"github.com/salescope/sales-backend/restapi/modules/performances"
	"github.com/salescope/sales-backend/restapi/modules/projects"
	"github.com/salescope/sales-backend/restapi/modules/targets"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint
func SetupRoutes(app *fiber.App, db database.DBConnection, schema graphql.Schema, settings *conf.Settings) {
	log := database.Logger().Sugar()

	// Background initialization tasks
	go func() {
		if err := auth.BootstrapAdmin(db, settings.AdminEmail, settings.AdminPassword); err != nil {
			log.Warnf("Failed to bootstrap admin: %v", err)
		}
	}()

	go func() {
		result, err := auth.ApplyOrgConfigFromFile(db, settings.OrgConfigPath)
		if err != nil {
			log.Warnf("Failed to apply org config: %v", err)
			return
		}
		if result != nil {
			log.Infof("Org config applied: %d created, %d updated", len(result.Created), len(result.Updated))
		}
	}()

	var orderProducer *orderevents.OrderProducer
	var importProducer *perfevents.ImportProducer
	if settings.Kafka.Enabled {
		orderProducer = orderevents.NewOrderProducer(settings.Kafka.Brokers, settings.Kafka.OrderTopic)
		importProducer = perfevents.NewImportProducer(settings.Kafka.Brokers, settings.Kafka.ImportTopic)
	}

	go func() {
		ctx := context.Background()
		created, err := services.BackfillOrders(ctx, db)
		if err != nil {
			log.Warnf("Order backfill failed: %v", err)
			return
		}
		if orderProducer == nil {
			return
		}
		for _, order := range created {
			if err := orderProducer.PublishOrderCreated(ctx, order, orderevents.SourceBackfill); err != nil {
				log.Warnf("Failed to publish backfill order event for project %s: %v", order.ProjectID, err)
			}
		}
	}()

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL dashboard endpoint. Everything it serves is internal sales
	// data, so it sits behind login like the REST reads.
	api.Post("/graphql", auth.RequireAuth, GraphQLHandler(schema))

	// Auth Routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", auth.Login(db))
	authGroup.Post("/logout", auth.Logout())
	authGroup.Get("/me", auth.RequireAuth, auth.Me(db))
	authGroup.Post("/change-password", auth.RequireAuth, auth.ChangePassword(db))
	authGroup.Post("/refresh", auth.RefreshToken())

	// User Management (Admin)
	userGroup := api.Group("/users", auth.RequireAuth, auth.RequireRole("admin"))
	userGroup.Get("/", auth.ListUsers(db))
	userGroup.Post("/", auth.CreateUser(db))
	userGroup.Get("/:key", auth.GetUser(db))
	userGroup.Put("/:key", auth.UpdateUser(db))
	userGroup.Delete("/:key", auth.DeleteUser(db))

	// Clients
	clientGroup := api.Group("/clients", auth.RequireAuth)
	clientGroup.Get("/", clients.ListClients(db))
	clientGroup.Post("/", clients.CreateClient(db))
	clientGroup.Get("/:key", clients.GetClient(db))
	clientGroup.Put("/:key", clients.UpdateClient(db))
	clientGroup.Delete("/:key", auth.RequireRole("admin", "manager"), clients.DeleteClient(db))

	// Projects
	projectGroup := api.Group("/projects", auth.RequireAuth)
	projectGroup.Get("/", projects.ListProjects(db))
	projectGroup.Post("/", projects.CreateProject(db))
	projectGroup.Get("/:key", projects.GetProject(db))
	projectGroup.Put("/:key", projects.UpdateProject(db, orderProducer))
	projectGroup.Delete("/:key", auth.RequireRole("admin", "manager"), projects.DeleteProject(db))

	// Action Logs
	logGroup := api.Group("/action-logs", auth.RequireAuth)
	logGroup.Get("/", actionlogs.ListActionLogs(db))
	logGroup.Post("/", actionlogs.CreateActionLog(db, orderProducer))
	logGroup.Delete("/:key", actionlogs.DeleteActionLog(db))

	// Orders
	orderGroup := api.Group("/orders", auth.RequireAuth)
	orderGroup.Get("/", orders.ListOrders(db))
	orderGroup.Get("/:key", orders.GetOrder(db))
	orderGroup.Put("/:key", auth.RequireRole("admin", "manager"), orders.UpdateOrder(db))
	orderGroup.Delete("/:key", auth.RequireRole("admin"), orders.DeleteOrder(db))

	// Performances and CSV import
	perfGroup := api.Group("/performances", auth.RequireAuth)
	perfGroup.Get("/", performances.ListPerformances(db))
	perfGroup.Post("/import", auth.RequireRole("admin", "manager"), performances.ImportCSV(db, importProducer))

	// Proposal Menus
	menuGroup := api.Group("/proposal-menus", auth.RequireAuth)
	menuGroup.Get("/", menus.ListMenus(db))
	menuGroup.Post("/", auth.RequireRole("admin", "manager"), menus.CreateMenu(db))
	menuGroup.Put("/:key", auth.RequireRole("admin", "manager"), menus.UpdateMenu(db))
	menuGroup.Delete("/:key", auth.RequireRole("admin"), menus.DeleteMenu(db))

	// Sales Targets
	targetGroup := api.Group("/sales-targets", auth.RequireAuth)
	targetGroup.Get("/", targets.ListTargets(db))
	targetGroup.Put("/", auth.RequireRole("admin", "manager"), targets.UpsertTarget(db))
	targetGroup.Delete("/:key", auth.RequireRole("admin", "manager"), targets.DeleteTarget(db))

	// Free Writings
	writingGroup := api.Group("/free-writings", auth.RequireAuth)
	writingGroup.Get("/", freewritings.GetFreeWriting(db))
	writingGroup.Put("/", freewritings.SaveFreeWriting(db))

	// Alert Dismissals
	dismissalGroup := api.Group("/dismissals", auth.RequireAuth)
	dismissalGroup.Get("/", dismissals.ListDismissals(db))
	dismissalGroup.Post("/", dismissals.CreateDismissal(db))
	dismissalGroup.Delete("/:key", dismissals.DeleteDismissal(db))

	log.Info("API routes initialized")
}
