// Package projects provides CRUD handlers for sales projects. Status
// transitions to won trigger best-effort order creation and an event
// publish; neither failure fails the request.
package projects

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	orderevents "github.com/salescope/sales-backend/events/modules/orders"
	"github.com/salescope/sales-backend/internal/services"
	"github.com/salescope/sales-backend/model"
)

// ListProjects returns projects, optionally filtered by assignee or status
func ListProjects(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		query := `FOR p IN projects`
		bindVars := map[string]interface{}{}
		if assignee := c.Query("assignee_id"); assignee != "" {
			query += ` FILTER p.assignee_id == @assignee_id`
			bindVars["assignee_id"] = assignee
		}
		if status := c.Query("status"); status != "" {
			query += ` FILTER p.status == @status`
			bindVars["status"] = status
		}
		query += ` SORT p.created_at DESC RETURN p`

		list, err := database.QueryAll[model.Project](ctx, db, query, bindVars)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch projects"})
		}
		return c.JSON(list)
	}
}

// GetProject returns a single project by key
func GetProject(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		project, err := getProjectByKey(ctx, db, c.Params("key"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.JSON(project)
	}
}

// CreateProject creates a new project. Client name is denormalized from the
// client record when a client_id is given.
func CreateProject(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Title           string   `json:"title"`
			ClientID        string   `json:"client_id"`
			ClientName      string   `json:"client_name"`
			ProductName     string   `json:"product_name"`
			ProposalMenuIDs []string `json:"proposal_menu_ids"`
			AssigneeID      string   `json:"assignee_id"`
			Status          string   `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
		}

		ctx := c.Context()
		clientName := req.ClientName
		if req.ClientID != "" {
			q := `FOR cl IN clients FILTER cl._key == @key LIMIT 1 RETURN cl.name`
			name, found, err := database.QueryOne[string](ctx, db, q, map[string]interface{}{"key": req.ClientID})
			if err != nil || !found {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown client"})
			}
			clientName = name
		}

		project := model.NewProject(req.Title, req.ClientID, clientName)
		project.ProductName = req.ProductName
		project.ProposalMenuIDs = req.ProposalMenuIDs
		project.AssigneeID = req.AssigneeID
		if req.Status != "" {
			project.Status = model.ProjectStatus(req.Status)
		}

		query := `
			INSERT {
				title: @title,
				client_id: @client_id,
				client_name: @client_name,
				product_name: @product_name,
				proposal_menu_ids: @proposal_menu_ids,
				assignee_id: @assignee_id,
				status: @status,
				created_at: @created_at,
				updated_at: @updated_at
			} INTO projects
			RETURN NEW
		`
		created, _, err := database.QueryOne[model.Project](ctx, db, query, map[string]interface{}{
			"title":             project.Title,
			"client_id":         project.ClientID,
			"client_name":       project.ClientName,
			"product_name":      project.ProductName,
			"proposal_menu_ids": project.ProposalMenuIDs,
			"assignee_id":       project.AssigneeID,
			"status":            project.Status,
			"created_at":        project.CreatedAt,
			"updated_at":        project.UpdatedAt,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create project"})
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdateProject patches a project. A transition into won creates the
// matching order and publishes an order event.
func UpdateProject(db database.DBConnection, producer *orderevents.OrderProducer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Title           *string    `json:"title"`
			ProductName     *string    `json:"product_name"`
			ProposalMenuIDs []string   `json:"proposal_menu_ids"`
			AssigneeID      *string    `json:"assignee_id"`
			Status          *string    `json:"status"`
			OrderDate       *time.Time `json:"order_date"`
			LastContactDate *time.Time `json:"last_contact_date"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		ctx := c.Context()
		before, err := getProjectByKey(ctx, db, c.Params("key"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}

		patch := map[string]interface{}{"updated_at": time.Now()}
		if req.Title != nil {
			patch["title"] = *req.Title
		}
		if req.ProductName != nil {
			patch["product_name"] = *req.ProductName
		}
		if req.ProposalMenuIDs != nil {
			patch["proposal_menu_ids"] = req.ProposalMenuIDs
		}
		if req.AssigneeID != nil {
			patch["assignee_id"] = *req.AssigneeID
		}
		if req.Status != nil {
			patch["status"] = *req.Status
		}
		if req.OrderDate != nil {
			patch["order_date"] = *req.OrderDate
		}
		if req.LastContactDate != nil {
			patch["last_contact_date"] = *req.LastContactDate
		}

		query := `
			FOR p IN projects
			FILTER p._key == @key
			UPDATE p WITH @patch IN projects
			RETURN NEW
		`
		updated, found, err := database.QueryOne[model.Project](ctx, db, query, map[string]interface{}{
			"key":   before.Key,
			"patch": patch,
		})
		if err != nil || !found {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update project"})
		}

		if !before.IsWon() && updated.IsWon() {
			handleWin(db, producer, &updated)
		}
		return c.JSON(updated)
	}
}

// DeleteProject removes a project and its action logs
func DeleteProject(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		query := `FOR p IN projects FILTER p._key == @key REMOVE p IN projects RETURN OLD._key`
		_, found, err := database.QueryOne[string](ctx, db, query, map[string]interface{}{"key": c.Params("key")})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete project"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}

		logQuery := `FOR a IN action_logs FILTER a.project_id == @key REMOVE a IN action_logs`
		if err := database.Exec(ctx, db, logQuery, map[string]interface{}{"key": c.Params("key")}); err != nil {
			database.Logger().Sugar().Warnf("Failed to delete action logs for project %s: %v", c.Params("key"), err)
		}
		return c.JSON(fiber.Map{"message": "Project deleted"})
	}
}

// handleWin ensures the order exists and publishes the creation event.
// Runs after the project update has committed; failures are logged only.
func handleWin(db database.DBConnection, producer *orderevents.OrderProducer, project *model.Project) {
	log := database.Logger().Sugar()
	ctx := context.Background()

	order := services.EnsureOrderForProject(ctx, db, project)
	if order == nil {
		return
	}

	if producer != nil {
		if err := producer.PublishOrderCreated(ctx, *order, orderevents.SourceTransition); err != nil {
			log.Warnf("Failed to publish order event for project %s: %v", project.Key, err)
		}
	}
}

func getProjectByKey(ctx context.Context, db database.DBConnection, key string) (*model.Project, error) {
	query := `FOR p IN projects FILTER p._key == @key LIMIT 1 RETURN p`
	project, found, err := database.QueryOne[model.Project](ctx, db, query, map[string]interface{}{"key": key})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fiber.ErrNotFound
	}
	return &project, nil
}
