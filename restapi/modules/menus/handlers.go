// Package menus provides CRUD handlers for proposal menu items.
package menus

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/model"
)

// ListMenus returns all proposal menus
func ListMenus(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		list, err := database.AllProposalMenus(ctx, db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch menus"})
		}
		return c.JSON(list)
	}
}

// CreateMenu creates a proposal menu item
func CreateMenu(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Name      string  `json:"name"`
			UnitPrice float64 `json:"unit_price"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
		}

		now := time.Now()
		ctx := c.Context()
		query := `
			INSERT {
				name: @name,
				unit_price: @unit_price,
				created_at: @now,
				updated_at: @now
			} INTO proposal_menus
			RETURN NEW
		`
		created, _, err := database.QueryOne[model.ProposalMenu](ctx, db, query, map[string]interface{}{
			"name":       req.Name,
			"unit_price": req.UnitPrice,
			"now":        now,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create menu"})
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdateMenu patches a proposal menu item
func UpdateMenu(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Name      *string  `json:"name"`
			UnitPrice *float64 `json:"unit_price"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		patch := map[string]interface{}{"updated_at": time.Now()}
		if req.Name != nil {
			patch["name"] = *req.Name
		}
		if req.UnitPrice != nil {
			patch["unit_price"] = *req.UnitPrice
		}

		ctx := c.Context()
		query := `
			FOR m IN proposal_menus
			FILTER m._key == @key
			UPDATE m WITH @patch IN proposal_menus
			RETURN NEW
		`
		updated, found, err := database.QueryOne[model.ProposalMenu](ctx, db, query, map[string]interface{}{
			"key":   c.Params("key"),
			"patch": patch,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update menu"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
		}
		return c.JSON(updated)
	}
}

// DeleteMenu removes a proposal menu item
func DeleteMenu(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		query := `FOR m IN proposal_menus FILTER m._key == @key REMOVE m IN proposal_menus RETURN OLD._key`
		_, found, err := database.QueryOne[string](ctx, db, query, map[string]interface{}{"key": c.Params("key")})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete menu"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
		}
		return c.JSON(fiber.Map{"message": "Menu deleted"})
	}
}
