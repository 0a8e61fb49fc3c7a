// Package performances provides handlers for imported performance rows and
// the CSV import endpoint.
package performances

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/salescope/sales-backend/database"
	perfevents "github.com/salescope/sales-backend/events/modules/performances"
	"github.com/salescope/sales-backend/internal/services"
	"github.com/salescope/sales-backend/model"
)

// ListPerformances returns performance rows, optionally filtered by month
// or assignee
func ListPerformances(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		query := `FOR pf IN performances`
		bindVars := map[string]interface{}{}
		if month := c.Query("month"); month != "" {
			query += ` FILTER pf.recording_month == @month`
			bindVars["month"] = month
		}
		if assignee := c.Query("assignee_id"); assignee != "" {
			query += ` FILTER pf.assignee_id == @assignee_id`
			bindVars["assignee_id"] = assignee
		}
		query += ` SORT pf.recording_month DESC, pf.client_name ASC RETURN pf`

		list, err := database.QueryAll[model.Performance](ctx, db, query, bindVars)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch performances"})
		}
		return c.JSON(list)
	}
}

// ImportCSV replaces the performance collection from an uploaded CSV.
// The file travels as multipart field "file", or as the raw request body.
// With ?async=true and Kafka configured, the CSV is queued instead and a
// 202 with the event id is returned.
func ImportCSV(db database.DBConnection, producer *perfevents.ImportProducer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		csvText, err := readCSVPayload(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read CSV upload"})
		}
		if csvText == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CSV payload is empty"})
		}

		ctx := c.Context()
		if c.QueryBool("async") && producer != nil {
			userKey, _ := c.Locals("user_id").(string)
			eventID, err := producer.PublishImportRequested(ctx, csvText, userKey)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to queue import"})
			}
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"message":  "Import queued",
				"event_id": eventID,
			})
		}

		result, err := services.ImportPerformanceCSV(ctx, db, csvText)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(result)
	}
}

func readCSVPayload(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// No multipart file; fall back to the raw body.
		return string(c.Body()), nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
