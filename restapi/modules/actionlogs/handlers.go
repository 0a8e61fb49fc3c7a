// Package actionlogs provides handlers for sales contact records. Creating
// a log can carry a project status change, which makes it the most common
// path for a project to close won.
package actionlogs

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	orderevents "github.com/salescope/sales-backend/events/modules/orders"
	"github.com/salescope/sales-backend/internal/services"
	"github.com/salescope/sales-backend/model"
)

// ListActionLogs returns logs, optionally scoped to a project or assignee
func ListActionLogs(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		query := `FOR a IN action_logs`
		bindVars := map[string]interface{}{}
		if projectID := c.Query("project_id"); projectID != "" {
			query += ` FILTER a.project_id == @project_id`
			bindVars["project_id"] = projectID
		}
		if assignee := c.Query("assignee_id"); assignee != "" {
			query += ` FILTER a.assignee_id == @assignee_id`
			bindVars["assignee_id"] = assignee
		}
		query += ` SORT a.contact_date DESC RETURN a`

		list, err := database.QueryAll[model.ActionLog](ctx, db, query, bindVars)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch action logs"})
		}
		return c.JSON(list)
	}
}

// CreateActionLog records a contact event. When the request carries a
// status, the parent project is moved to it in the same handler; a move
// into won creates the order and publishes the event, best effort.
func CreateActionLog(db database.DBConnection, producer *orderevents.OrderProducer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ProjectID       string     `json:"project_id"`
			ContactDate     *time.Time `json:"contact_date"`
			Summary         string     `json:"summary"`
			Detail          string     `json:"detail"`
			Status          string     `json:"status"`
			PerformanceType string     `json:"performance_type"`
			OrderDate       *time.Time `json:"order_date"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.ProjectID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "project_id is required"})
		}

		ctx := c.Context()
		projectQuery := `FOR p IN projects FILTER p._key == @key LIMIT 1 RETURN p`
		project, found, err := database.QueryOne[model.Project](ctx, db, projectQuery, map[string]interface{}{"key": req.ProjectID})
		if err != nil || !found {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown project"})
		}

		entry := model.NewActionLog(project.Key)
		entry.ProjectTitle = project.Title
		entry.ClientName = project.ClientName
		entry.AssigneeID = project.AssigneeID
		if userKey, ok := c.Locals("user_id").(string); ok && userKey != "" {
			entry.AssigneeID = userKey
		}
		if req.ContactDate != nil {
			entry.ContactDate = *req.ContactDate
		}
		entry.Summary = req.Summary
		entry.Detail = req.Detail
		entry.PerformanceType = req.PerformanceType
		if req.Status != "" {
			entry.Status = model.ProjectStatus(req.Status)
		} else {
			entry.Status = project.Status
		}

		insertQuery := `
			INSERT {
				project_id: @project_id,
				project_title: @project_title,
				client_name: @client_name,
				assignee_id: @assignee_id,
				contact_date: @contact_date,
				summary: @summary,
				detail: @detail,
				status: @status,
				performance_type: @performance_type,
				created_at: @created_at
			} INTO action_logs
			RETURN NEW
		`
		created, _, err := database.QueryOne[model.ActionLog](ctx, db, insertQuery, map[string]interface{}{
			"project_id":       entry.ProjectID,
			"project_title":    entry.ProjectTitle,
			"client_name":      entry.ClientName,
			"assignee_id":      entry.AssigneeID,
			"contact_date":     entry.ContactDate,
			"summary":          entry.Summary,
			"detail":           entry.Detail,
			"status":           entry.Status,
			"performance_type": entry.PerformanceType,
			"created_at":       entry.CreatedAt,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create action log"})
		}

		if req.Status != "" {
			updated := syncProjectStatus(ctx, db, &project, model.ProjectStatus(req.Status), req.OrderDate, entry.ContactDate)
			if updated != nil && !project.IsWon() && updated.IsWon() {
				publishWin(db, producer, updated)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// DeleteActionLog removes a log entry
func DeleteActionLog(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		query := `FOR a IN action_logs FILTER a._key == @key REMOVE a IN action_logs RETURN OLD._key`
		_, found, err := database.QueryOne[string](ctx, db, query, map[string]interface{}{"key": c.Params("key")})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete action log"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Action log not found"})
		}
		return c.JSON(fiber.Map{"message": "Action log deleted"})
	}
}

// statusPatch builds the project update for a status recorded on a log.
// A won transition without an explicit order date leaves order_date unset;
// the gap then surfaces as a data-quality alert instead of being silently
// filled with the contact date.
func statusPatch(status model.ProjectStatus, orderDate *time.Time, contactDate, now time.Time) map[string]interface{} {
	patch := map[string]interface{}{
		"status":            status,
		"last_contact_date": contactDate,
		"updated_at":        now,
	}
	if orderDate != nil {
		patch["order_date"] = *orderDate
	}
	return patch
}

// syncProjectStatus moves the project to the logged status and bumps the
// last contact date. Returns the updated project, or nil on failure.
func syncProjectStatus(ctx context.Context, db database.DBConnection, project *model.Project, status model.ProjectStatus, orderDate *time.Time, contactDate time.Time) *model.Project {
	log := database.Logger().Sugar()

	patch := statusPatch(status, orderDate, contactDate, time.Now())

	query := `
		FOR p IN projects
		FILTER p._key == @key
		UPDATE p WITH @patch IN projects
		RETURN NEW
	`
	updated, found, err := database.QueryOne[model.Project](ctx, db, query, map[string]interface{}{
		"key":   project.Key,
		"patch": patch,
	})
	if err != nil || !found {
		log.Warnf("Failed to sync status for project %s: %v", project.Key, err)
		return nil
	}
	return &updated
}

func publishWin(db database.DBConnection, producer *orderevents.OrderProducer, project *model.Project) {
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
