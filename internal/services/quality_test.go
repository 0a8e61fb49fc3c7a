package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/sales-backend/model"
)

func TestMissingOrderDateAlerts(t *testing.T) {
	projects := []model.Project{
		{Key: "p1", Title: "案件A", ClientName: "アルファ商事", Status: model.ProjectStatusWon},
		{Key: "p2", Title: "案件B", ClientName: "ベータ物産", Status: model.ProjectStatusWon, OrderDate: datePtr(2025, 3, 1)},
		{Key: "p3", Title: "案件C", ClientName: "ガンマ工業", Status: model.ProjectStatusProposal},
	}

	alerts := MissingOrderDateAlerts(projects)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertMissingOrderDate, alerts[0].Type)
	assert.Equal(t, "missing_order_date:アルファ商事", alerts[0].ID)
}

func TestUnmatchedPerformanceAlerts(t *testing.T) {
	performances := []model.Performance{
		{ClientName: "アルファ商事", ProjectName: "案件A"},
		{ClientName: "ベータ物産", ProjectName: "案件B"},
	}
	orders := []model.Order{
		{ClientName: "アルファ商事", Title: "案件A"},
	}

	alerts := UnmatchedPerformanceAlerts(performances, orders)
	require.Len(t, alerts, 1)
	assert.Equal(t, "ベータ物産", alerts[0].ClientName)
}

func TestFilterDismissed(t *testing.T) {
	alerts := []DataQualityAlert{
		{ID: "missing_order_date:アルファ商事", Type: AlertMissingOrderDate, ClientName: "アルファ商事"},
		{ID: "missing_order_date:ベータ物産", Type: AlertMissingOrderDate, ClientName: "ベータ物産"},
	}
	dismissals := []model.Dismissal{
		{UserID: "u1", AlertType: AlertMissingOrderDate, ClientName: "アルファ商事", DismissedAt: time.Now()},
	}

	visible := FilterDismissed(alerts, dismissals)
	require.Len(t, visible, 1)
	assert.Equal(t, "ベータ物産", visible[0].ClientName)
}
