package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/sales-backend/model"
)

func TestOrderTitleFallback(t *testing.T) {
	assert.Equal(t, "案件A", OrderTitle(&model.Project{Title: "案件A", ProductName: "製品X"}))
	assert.Equal(t, "製品X", OrderTitle(&model.Project{ProductName: "製品X"}))
	assert.Equal(t, UntitledOrder, OrderTitle(&model.Project{Title: "  "}))
}

func TestResolveClientType(t *testing.T) {
	clients := testClients()
	assert.Equal(t, "new", ResolveClientType("アルファ商事", clients))
	assert.Equal(t, "existing", ResolveClientType("ベータ物産", clients))
	assert.Equal(t, "existing", ResolveClientType("ガンマ工業", clients), "dormant maps to existing")
	assert.Equal(t, "-", ResolveClientType("未知株式会社", clients))
}

func TestJoinMenuNamesDropsUnknownIDs(t *testing.T) {
	menus := []model.ProposalMenu{
		{Key: "m1", Name: "Web制作"},
		{Key: "m2", Name: "広告運用"},
	}
	assert.Equal(t, "Web制作,広告運用", JoinMenuNames([]string{"m1", "m2"}, menus))
	assert.Equal(t, "Web制作", JoinMenuNames([]string{"m1", "missing"}, menus))
	assert.Equal(t, "", JoinMenuNames([]string{"missing"}, menus))
	assert.Equal(t, "", JoinMenuNames(nil, menus))
}

func TestBuildOrderSnapshot(t *testing.T) {
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	project := &model.Project{
		Key:             "p1",
		Title:           "Webリニューアル",
		ClientID:        "c2",
		ClientName:      "ベータ物産",
		AssigneeID:      "u1",
		ProposalMenuIDs: []string{"m1"},
		Status:          model.ProjectStatusWon,
	}
	menus := []model.ProposalMenu{{Key: "m1", Name: "Web制作"}}

	order := BuildOrder(project, testClients(), menus, now)
	assert.Equal(t, "p1", order.ProjectID)
	assert.Equal(t, "ベータ物産", order.ClientName)
	assert.Equal(t, "existing", order.ClientType)
	assert.Equal(t, "Webリニューアル", order.Title)
	assert.Equal(t, "Web制作", order.ProposalMenuNames)
	assert.Equal(t, now, order.OrderDate, "order date is creation wall clock, not a user value")
	assert.Nil(t, order.Revenue, "monetary fields stay absent until the import fills them")
}

func TestProjectsNeedingOrders(t *testing.T) {
	projects := []model.Project{
		{Key: "p1", Status: model.ProjectStatusWon},
		{Key: "p2", Status: model.ProjectStatusWon},
		{Key: "p3", Status: model.ProjectStatusProposal},
		{Key: "p4", Status: model.ProjectStatusLost},
	}
	orders := []model.Order{{Key: "o1", ProjectID: "p1"}}

	missing := ProjectsNeedingOrders(projects, orders)
	require.Len(t, missing, 1)
	assert.Equal(t, "p2", missing[0].Key)

	// After planning an order for every missing project, nothing is left:
	// every won project has exactly one order.
	for _, p := range missing {
		orders = append(orders, model.Order{ProjectID: p.Key})
	}
	assert.Empty(t, ProjectsNeedingOrders(projects, orders))

	perProject := make(map[string]int)
	for _, o := range orders {
		perProject[o.ProjectID]++
	}
	for _, p := range projects {
		if p.Status == model.ProjectStatusWon {
			assert.Equal(t, 1, perProject[p.Key], "project %s", p.Key)
		}
	}
}
