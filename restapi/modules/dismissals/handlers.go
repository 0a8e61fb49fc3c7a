// Package dismissals provides handlers for data-quality alert dismissals.
// A dismissal is keyed by (user, alert type, client name) so the same alert
// stays hidden when it is re-raised for the same record.
package dismissals

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/internal/services"
	"github.com/salescope/sales-backend/model"
)

// ListDismissals returns the current user's dismissals
func ListDismissals(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userKey, ok := c.Locals("user_id").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}

		ctx := c.Context()
		query := `FOR d IN dismissals FILTER d.user_id == @user_id RETURN d`
		list, err := database.QueryAll[model.Dismissal](ctx, db, query, map[string]interface{}{"user_id": userKey})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dismissals"})
		}
		return c.JSON(list)
	}
}

// CreateDismissal records that the current user dismissed an alert
func CreateDismissal(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userKey, ok := c.Locals("user_id").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}

		var req struct {
			AlertType  string `json:"alert_type"`
			ClientName string `json:"client_name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.AlertType != services.AlertMissingOrderDate && req.AlertType != services.AlertUnmatchedPerformance {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown alert type"})
		}
		if req.ClientName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_name is required"})
		}

		ctx := c.Context()
		query := `
			UPSERT { user_id: @user_id, alert_type: @alert_type, client_name: @client_name }
			INSERT {
				user_id: @user_id,
				alert_type: @alert_type,
				client_name: @client_name,
				dismissed_at: @now
			}
			UPDATE { dismissed_at: @now } IN dismissals
			RETURN NEW
		`
		dismissal, _, err := database.QueryOne[model.Dismissal](ctx, db, query, map[string]interface{}{
			"user_id":     userKey,
			"alert_type":  req.AlertType,
			"client_name": req.ClientName,
			"now":         time.Now(),
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save dismissal"})
		}
		return c.Status(fiber.StatusCreated).JSON(dismissal)
	}
}

// DeleteDismissal restores a previously dismissed alert
func DeleteDismissal(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userKey, ok := c.Locals("user_id").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}

		ctx := c.Context()
		query := `
			FOR d IN dismissals
			FILTER d._key == @key AND d.user_id == @user_id
			REMOVE d IN dismissals
			RETURN OLD._key
		`
		_, found, err := database.QueryOne[string](ctx, db, query, map[string]interface{}{
			"key":     c.Params("key"),
			"user_id": userKey,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete dismissal"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Dismissal not found"})
		}
		return c.JSON(fiber.Map{"message": "Dismissal removed"})
	}
}
