// Package clients provides CRUD handlers for client records.
package clients

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/model"
)

// ListClients returns all clients, optionally filtered by status
func ListClients(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		query := `FOR cl IN clients SORT cl.name ASC RETURN cl`
		bindVars := map[string]interface{}{}
		if status := c.Query("status"); status != "" {
			query = `FOR cl IN clients FILTER cl.status == @status SORT cl.name ASC RETURN cl`
			bindVars["status"] = status
		}

		list, err := database.QueryAll[model.Client](ctx, db, query, bindVars)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch clients"})
		}
		return c.JSON(list)
	}
}

// GetClient returns a single client by key
func GetClient(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		query := `FOR cl IN clients FILTER cl._key == @key LIMIT 1 RETURN cl`
		client, found, err := database.QueryOne[model.Client](ctx, db, query, map[string]interface{}{"key": c.Params("key")})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch client"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.JSON(client)
	}
}

// CreateClient creates a new client
func CreateClient(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Name   string `json:"name"`
			Status string `json:"status"`
			Notes  string `json:"notes"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
		}

		client := model.NewClient(req.Name)
		if req.Status != "" {
			client.Status = model.ClientStatus(req.Status)
		}
		client.Notes = req.Notes

		ctx := c.Context()
		query := `
			INSERT {
				name: @name,
				status: @status,
				notes: @notes,
				created_at: @created_at,
				updated_at: @updated_at
			} INTO clients
			RETURN NEW
		`
		created, _, err := database.QueryOne[model.Client](ctx, db, query, map[string]interface{}{
			"name":       client.Name,
			"status":     client.Status,
			"notes":      client.Notes,
			"created_at": client.CreatedAt,
			"updated_at": client.UpdatedAt,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create client"})
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// UpdateClient updates an existing client
func UpdateClient(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Name          *string    `json:"name"`
			Status        *string    `json:"status"`
			Notes         *string    `json:"notes"`
			LastOrderDate *time.Time `json:"last_order_date"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		patch := map[string]interface{}{"updated_at": time.Now()}
		if req.Name != nil {
			patch["name"] = *req.Name
		}
		if req.Status != nil {
			patch["status"] = *req.Status
		}
		if req.Notes != nil {
			patch["notes"] = *req.Notes
		}
		if req.LastOrderDate != nil {
			patch["last_order_date"] = *req.LastOrderDate
		}

		ctx := c.Context()
		query := `
			FOR cl IN clients
			FILTER cl._key == @key
			UPDATE cl WITH @patch IN clients
			RETURN NEW
		`
		updated, found, err := database.QueryOne[model.Client](ctx, db, query, map[string]interface{}{
			"key":   c.Params("key"),
			"patch": patch,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update client"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.JSON(updated)
	}
}

// DeleteClient removes a client
func DeleteClient(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		query := `FOR cl IN clients FILTER cl._key == @key REMOVE cl IN clients RETURN OLD._key`
		_, found, err := database.QueryOne[string](ctx, db, query, map[string]interface{}{"key": c.Params("key")})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete client"})
		}
		if !found {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.JSON(fiber.Map{"message": "Client deleted"})
	}
}
