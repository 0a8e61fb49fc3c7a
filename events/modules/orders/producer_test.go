package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/sales-backend/model"
)

func TestNewOrderCreatedEventSources(t *testing.T) {
	order := model.Order{
		ProjectID:  "p1",
		ClientName: "アルファ商事",
		Title:      "WebリニューアルA",
		OrderDate:  time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
	}

	// Both creation paths publish the same contract, distinguished only
	// by source: win transitions and the startup backfill.
	for _, source := range []string{SourceTransition, SourceBackfill} {
		event := newOrderCreatedEvent(order, source)

		assert.Equal(t, "sales.order.created", event.EventType)
		assert.Equal(t, "v1", event.SchemaVersion)
		assert.Equal(t, source, event.Source)
		assert.Equal(t, "p1", event.Order.ProjectID)
		require.NotEmpty(t, event.EventID)
	}

	a := newOrderCreatedEvent(order, SourceBackfill)
	b := newOrderCreatedEvent(order, SourceBackfill)
	assert.NotEqual(t, a.EventID, b.EventID)
}
