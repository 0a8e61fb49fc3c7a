// Package orders provides handlers for auto-created order records. Orders
// are never created through this API; they come from win transitions and
// the backfill pass. Financial fields can be edited by managers.
package orders

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/model"
)

// ListOrders returns orders, optionally filtered by assignee or month prefix
func ListOrders(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		query := `FOR o IN orders`
		bindVars := map[string]interface{}{}
		if assignee := c.Query("assignee_id"); assignee != "" {
			query += ` FILTER o.assignee_id == @assignee_id`
			bindVars["assignee_id"] = assignee
		}
		if month := c.Query("month"); month != "" {
			query += ` FILTER LEFT(o.order_date, 7) == @month`
			bindVars["month"] = month
		}
		query += ` SORT o.order_date DESC RETURN o`

		list, err := database.QueryAll[model.Order](ctx, db, query, bindVars)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
		}
		return c.JSON(list)
	}
}

// GetOrder returns a single order by key
func GetOrder(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		query := `FOR o IN orders FILTER o._key == @key LIMIT 1 RETURN o`
		order, found, err := database.QueryOne[model.Order](ctx, db, query, map[string]interface{}{"key": c.Params("key")})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch order"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return c.JSON(order)
	}
}

// UpdateOrder patches the editable financial fields of an order
func UpdateOrder(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Revenue             *float64 `json:"revenue"`
			Cost                *float64 `json:"cost"`
			GrossProfit         *float64 `json:"gross_profit"`
			ImplementationMonth *string  `json:"implementation_month"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		patch := map[string]interface{}{"updated_at": time.Now()}
		if req.Revenue != nil {
			patch["revenue"] = *req.Revenue
		}
		if req.Cost != nil {
			patch["cost"] = *req.Cost
		}
		if req.GrossProfit != nil {
			patch["gross_profit"] = *req.GrossProfit
		}
		if req.ImplementationMonth != nil {
			patch["implementation_month"] = *req.ImplementationMonth
		}

		ctx := c.Context()
		query := `
			FOR o IN orders
			FILTER o._key == @key
			UPDATE o WITH @patch IN orders
			RETURN NEW
		`
		updated, found, err := database.QueryOne[model.Order](ctx, db, query, map[string]interface{}{
			"key":   c.Params("key"),
			"patch": patch,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update order"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return c.JSON(updated)
	}
}

// DeleteOrder removes an order record
func DeleteOrder(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		query := `FOR o IN orders FILTER o._key == @key REMOVE o IN orders RETURN OLD._key`
		_, found, err := database.QueryOne[string](ctx, db, query, map[string]interface{}{"key": c.Params("key")})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete order"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return c.JSON(fiber.Map{"message": "Order deleted"})
	}
}
