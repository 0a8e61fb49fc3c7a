// Package targets provides handlers for monthly sales targets. Targets are
// upserted per (user or overall, year, month); there is no separate create.
package targets

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/model"
)

// ListTargets returns targets for a year, optionally scoped to one user
func ListTargets(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := c.QueryInt("year", time.Now().Year())

		query := `FOR t IN sales_targets FILTER t.year == @year`
		bindVars := map[string]interface{}{"year": year}
		if userID := c.Query("user_id"); userID != "" {
			query += ` FILTER t.user_id == @user_id`
			bindVars["user_id"] = userID
		}
		query += ` SORT t.month ASC RETURN t`

		ctx := c.Context()
		list, err := database.QueryAll[model.SalesTarget](ctx, db, query, bindVars)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch targets"})
		}
		return c.JSON(list)
	}
}

// UpsertTarget creates or replaces the target for one user and month
func UpsertTarget(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			UserID            string  `json:"user_id"`
			Year              int     `json:"year"`
			Month             int     `json:"month"`
			DealTarget        int     `json:"deal_target"`
			OrderTarget       int     `json:"order_target"`
			GrossProfitBudget float64 `json:"gross_profit_budget"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.UserID == "" {
			req.UserID = model.OverallScope
		}
		if req.Year < 2000 || req.Month < 1 || req.Month > 12 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year or month"})
		}

		ctx := c.Context()
		query := `
			UPSERT { user_id: @user_id, year: @year, month: @month }
			INSERT {
				user_id: @user_id,
				year: @year,
				month: @month,
				deal_target: @deal_target,
				order_target: @order_target,
				gross_profit_budget: @gross_profit_budget,
				updated_at: @now
			}
			UPDATE {
				deal_target: @deal_target,
				order_target: @order_target,
				gross_profit_budget: @gross_profit_budget,
				updated_at: @now
			} IN sales_targets
			RETURN NEW
		`
		target, _, err := database.QueryOne[model.SalesTarget](ctx, db, query, map[string]interface{}{
			"user_id":             req.UserID,
			"year":                req.Year,
			"month":               req.Month,
			"deal_target":         req.DealTarget,
			"order_target":        req.OrderTarget,
			"gross_profit_budget": req.GrossProfitBudget,
			"now":                 time.Now(),
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save target"})
		}
		return c.JSON(target)
	}
}

// DeleteTarget removes a target row
func DeleteTarget(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		query := `FOR t IN sales_targets FILTER t._key == @key REMOVE t IN sales_targets RETURN OLD._key`
		_, found, err := database.QueryOne[string](ctx, db, query, map[string]interface{}{"key": c.Params("key")})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete target"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Target not found"})
		}
		return c.JSON(fiber.Map{"message": "Target deleted"})
	}
}
