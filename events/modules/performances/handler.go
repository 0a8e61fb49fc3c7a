// Package performances handles Kafka event processing for performance imports.
package performances

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/internal/services"
)

// HandleImportRequested processes performance import events from Kafka.
func HandleImportRequested(ctx context.Context, msg []byte, db database.DBConnection) error {
	var event ImportRequestedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal ImportRequestedEvent: %w", err)
	}

	if event.CSV == "" {
		return fmt.Errorf("invalid event: empty CSV payload")
	}

	log := database.Logger().Sugar()
	log.Infof("Processing performance import event %s (requested by %s)", event.EventID, event.RequestedBy)

	result, err := services.ImportPerformanceCSV(ctx, db, event.CSV)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	log.Infof("Import event %s done: %d replaced, %d imported, %d failed",
		event.EventID, result.Deleted, result.Succeeded, result.Failed)
	return nil
}
