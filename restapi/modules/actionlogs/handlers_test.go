package actionlogs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/sales-backend/model"
)

func TestStatusPatchWonWithoutOrderDate(t *testing.T) {
	contact := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	now := time.Date(2025, 8, 20, 10, 0, 1, 0, time.UTC)

	patch := statusPatch(model.ProjectStatusWon, nil, contact, now)

	assert.Equal(t, model.ProjectStatusWon, patch["status"])
	assert.Equal(t, contact, patch["last_contact_date"])
	assert.Equal(t, now, patch["updated_at"])
	// No order date on the log means none on the project either; the
	// missing date is reported by the dashboard alerts, not invented here.
	assert.NotContains(t, patch, "order_date")
}

func TestStatusPatchKeepsExplicitOrderDate(t *testing.T) {
	contact := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	orderDate := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)

	patch := statusPatch(model.ProjectStatusWon, &orderDate, contact, time.Now())

	require.Contains(t, patch, "order_date")
	assert.Equal(t, orderDate, patch["order_date"])
}

func TestStatusPatchNonWinTransition(t *testing.T) {
	contact := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	patch := statusPatch(model.ProjectStatusNegotiation, nil, contact, time.Now())

	assert.Equal(t, model.ProjectStatusNegotiation, patch["status"])
	assert.NotContains(t, patch, "order_date")
}
