// Package freewritings provides handlers for free-text planning notes.
// One note exists per (user or overall, type, period) and saving is always
// an upsert. Periods are normalized before storage so full-width input
// collapses onto the same note.
package freewritings

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/model"
	"github.com/salescope/sales-backend/util"
)

// GetFreeWriting returns the note for one scope, type and period.
// Missing notes return an empty content rather than 404 so the editor can
// always render.
func GetFreeWriting(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("user_id", model.OverallScope)
		noteType := c.Query("type", string(model.FreeWritingMonthly))
		period, ok := util.NormalizeMonth(c.Query("period"))
		if !ok {
			period = c.Query("period")
		}
		if period == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "period is required"})
		}

		ctx := c.Context()
		query := `
			FOR w IN free_writings
			FILTER w.user_id == @user_id AND w.type == @type AND w.period == @period
			LIMIT 1 RETURN w
		`
		note, found, err := database.QueryOne[model.FreeWriting](ctx, db, query, map[string]interface{}{
			"user_id": userID,
			"type":    noteType,
			"period":  period,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch note"})
		}
		if !found {
			return c.JSON(model.FreeWriting{
				UserID: userID,
				Type:   model.FreeWritingType(noteType),
				Period: period,
			})
		}
		return c.JSON(note)
	}
}

// SaveFreeWriting upserts the note for one scope, type and period
func SaveFreeWriting(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			UserID  string `json:"user_id"`
			Type    string `json:"type"`
			Period  string `json:"period"`
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.UserID == "" {
			req.UserID = model.OverallScope
		}
		if req.Type == "" {
			req.Type = string(model.FreeWritingMonthly)
		}
		if req.Type != string(model.FreeWritingMonthly) && req.Type != string(model.FreeWritingWeekly) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid note type"})
		}

		period := req.Period
		if req.Type == string(model.FreeWritingMonthly) {
			normalized, ok := util.NormalizeMonth(period)
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid period"})
			}
			period = normalized
		} else if _, _, err := util.ParseWeek(period); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid period"})
		}

		ctx := c.Context()
		query := `
			UPSERT { user_id: @user_id, type: @type, period: @period }
			INSERT {
				user_id: @user_id,
				type: @type,
				period: @period,
				content: @content,
				updated_at: @now
			}
			UPDATE { content: @content, updated_at: @now } IN free_writings
			RETURN NEW
		`
		note, _, err := database.QueryOne[model.FreeWriting](ctx, db, query, map[string]interface{}{
			"user_id": req.UserID,
			"type":    req.Type,
			"period":  period,
			"content": req.Content,
			"now":     time.Now(),
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save note"})
		}
		return c.JSON(note)
	}
}
