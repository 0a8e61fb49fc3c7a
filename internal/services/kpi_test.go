package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/sales-backend/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func testClients() []model.Client {
	return []model.Client{
		{Key: "c1", Name: "アルファ商事", Status: model.ClientStatusNew},
		{Key: "c2", Name: "ベータ物産", Status: model.ClientStatusExisting},
		{Key: "c3", Name: "ガンマ工業", Status: model.ClientStatusDormant},
	}
}

func TestAggregateKPIDealPartition(t *testing.T) {
	projects := []model.Project{
		{Key: "p1", ClientName: "アルファ商事", AssigneeID: "u1", Status: model.ProjectStatusProposal, CreatedAt: date(2025, 3, 1)},
		{Key: "p2", ClientName: "ベータ物産", AssigneeID: "u1", Status: model.ProjectStatusNegotiation, CreatedAt: date(2025, 4, 10)},
		{Key: "p3", ClientName: "ガンマ工業", AssigneeID: "u2", Status: model.ProjectStatusWon, CreatedAt: date(2025, 5, 20)},
		// Client name matching no client record: total but unclassified.
		{Key: "p4", ClientName: "未知株式会社", AssigneeID: "u2", Status: model.ProjectStatusProposal, CreatedAt: date(2025, 6, 1)},
	}

	s := AggregateKPI(projects, nil, testClients(), KPIFilter{Year: 2025})

	assert.Equal(t, 4, s.TotalDeals)
	assert.Equal(t, 1, s.NewDeals)
	assert.Equal(t, 2, s.ExistingDeals) // existing + dormant
	assert.Equal(t, 1, s.UnclassifiedDeals)
	assert.Equal(t, s.TotalDeals, s.NewDeals+s.ExistingDeals+s.UnclassifiedDeals)
}

func TestAggregateKPIMissingOrderDateExcluded(t *testing.T) {
	projects := []model.Project{
		{Key: "p1", ClientName: "アルファ商事", Status: model.ProjectStatusWon, CreatedAt: date(2025, 1, 5), OrderDate: datePtr(2025, 3, 15)},
		{Key: "p2", ClientName: "ベータ物産", Status: model.ProjectStatusWon, CreatedAt: date(2025, 1, 6)}, // no order date
	}

	s := AggregateKPI(projects, nil, testClients(), KPIFilter{Year: 2025})
	assert.Equal(t, 1, s.TotalOrders, "won project without order date must not count")
	assert.Equal(t, 1, s.NewOrders)
	assert.Equal(t, 0, s.ExistingOrders)
}

func TestAggregateKPIMonthlyPeriodSelection(t *testing.T) {
	projects := []model.Project{
		{Key: "p1", ClientName: "アルファ商事", Status: model.ProjectStatusWon, CreatedAt: date(2025, 3, 1), OrderDate: datePtr(2025, 3, 15)},
		{Key: "p2", ClientName: "アルファ商事", Status: model.ProjectStatusWon, CreatedAt: date(2025, 4, 1), OrderDate: datePtr(2025, 4, 15)},
	}
	performances := []model.Performance{
		{AssigneeID: "u1", RecordingMonth: "2025-03", ClientName: "アルファ商事", GrossProfit: 100000, Revenue: 300000},
		{AssigneeID: "u1", RecordingMonth: "2025-04", ClientName: "アルファ商事", GrossProfit: 50000},
	}

	s := AggregateKPI(projects, performances, testClients(), KPIFilter{Year: 2025, Month: "2025-03"})
	assert.Equal(t, 1, s.TotalDeals)
	assert.Equal(t, 1, s.TotalOrders)
	assert.Equal(t, 100000.0, s.GrossProfit)
	assert.Equal(t, 300000.0, s.Revenue)

	yearly := AggregateKPI(projects, performances, testClients(), KPIFilter{Year: 2025})
	assert.Equal(t, 2, yearly.TotalOrders)
	assert.Equal(t, 150000.0, yearly.GrossProfit)
}

func TestAggregateKPIActiveClientsAndAverage(t *testing.T) {
	performances := []model.Performance{
		{AssigneeID: "u1", RecordingMonth: "2025-08", ClientName: "アルファ商事", GrossProfit: 100},
		{AssigneeID: "u1", RecordingMonth: "2025-08", ClientName: "アルファ商事", GrossProfit: 200},
		{AssigneeID: "u2", RecordingMonth: "2025-08", ClientName: "ベータ物産", GrossProfit: 300},
	}

	s := AggregateKPI(nil, performances, testClients(), KPIFilter{Year: 2025, Month: "2025-08"})
	assert.Equal(t, 2, s.ActiveClients)
	assert.Equal(t, 300.0, s.AverageOrderValue) // 600 / 2
}

func TestAggregateKPIEmptyInput(t *testing.T) {
	s := AggregateKPI(nil, nil, nil, KPIFilter{Year: 2025})
	assert.Equal(t, KPISummary{}, s)
	assert.Equal(t, 0.0, s.AverageOrderValue, "no division by zero on empty performance input")
}

func TestAggregateKPIAssigneeAndDepartmentFilters(t *testing.T) {
	projects := []model.Project{
		{Key: "p1", ClientName: "アルファ商事", AssigneeID: "u1", Status: model.ProjectStatusProposal, CreatedAt: date(2025, 2, 1)},
		{Key: "p2", ClientName: "ベータ物産", AssigneeID: "u2", Status: model.ProjectStatusProposal, CreatedAt: date(2025, 2, 2)},
		{Key: "p3", ClientName: "ガンマ工業", AssigneeID: "u3", Status: model.ProjectStatusProposal, CreatedAt: date(2025, 2, 3)},
	}

	byAssignee := AggregateKPI(projects, nil, testClients(), KPIFilter{Year: 2025, AssigneeID: "u1"})
	assert.Equal(t, 1, byAssignee.TotalDeals)

	byDepartment := AggregateKPI(projects, nil, testClients(), KPIFilter{Year: 2025, MemberIDs: []string{"u1", "u2"}})
	assert.Equal(t, 2, byDepartment.TotalDeals)
}

func TestAggregateKPIDeterministic(t *testing.T) {
	projects := []model.Project{
		{Key: "p1", ClientName: "アルファ商事", Status: model.ProjectStatusWon, CreatedAt: date(2025, 1, 1), OrderDate: datePtr(2025, 1, 2)},
	}
	performances := []model.Performance{
		{RecordingMonth: "2025-01", ClientName: "アルファ商事", GrossProfit: 123},
	}
	f := KPIFilter{Year: 2025}

	first := AggregateKPI(projects, performances, testClients(), f)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, AggregateKPI(projects, performances, testClients(), f))
	}
}

func TestMonthlyTrend(t *testing.T) {
	projects := []model.Project{
		{Key: "p1", ClientName: "アルファ商事", Status: model.ProjectStatusWon, CreatedAt: date(2025, 2, 1), OrderDate: datePtr(2025, 2, 10)},
	}
	performances := []model.Performance{
		{RecordingMonth: "2025-02", ClientName: "アルファ商事", GrossProfit: 500},
	}

	trend := MonthlyTrend(projects, performances, testClients(), 2025, KPIFilter{})
	require.Len(t, trend, 12)
	assert.Equal(t, "2025-01", trend[0].Month)
	assert.Equal(t, "2025-12", trend[11].Month)
	assert.Equal(t, 1, trend[1].Orders)
	assert.Equal(t, 500.0, trend[1].GrossProfit)
	assert.Equal(t, 0, trend[0].Orders)
}

func TestClientRanking(t *testing.T) {
	performances := []model.Performance{
		{RecordingMonth: "2025-08", ClientName: "アルファ商事", GrossProfit: 100},
		{RecordingMonth: "2025-08", ClientName: "ベータ物産", GrossProfit: 300},
		{RecordingMonth: "2025-08", ClientName: "ベータ物産", GrossProfit: 100},
		{RecordingMonth: "2025-07", ClientName: "ガンマ工業", GrossProfit: 900}, // other period
	}

	ranks := ClientRanking(performances, KPIFilter{Year: 2025, Month: "2025-08"}, 10)
	require.Len(t, ranks, 2)
	assert.Equal(t, "ベータ物産", ranks[0].ClientName)
	assert.Equal(t, 400.0, ranks[0].GrossProfit)
	assert.Equal(t, 2, ranks[0].RowCount)
	assert.Equal(t, "アルファ商事", ranks[1].ClientName)

	limited := ClientRanking(performances, KPIFilter{Year: 2025, Month: "2025-08"}, 1)
	require.Len(t, limited, 1)
}

func TestProgressAgainstTarget(t *testing.T) {
	s := KPISummary{TotalDeals: 5, TotalOrders: 2, GrossProfit: 500000}
	target := model.SalesTarget{DealTarget: 10, OrderTarget: 4, GrossProfitBudget: 1000000}

	p := s.ProgressAgainst(target)
	assert.Equal(t, 0.5, p.DealRate)
	assert.Equal(t, 0.5, p.OrderRate)
	assert.Equal(t, 0.5, p.GrossProfitRate)

	empty := KPISummary{}.ProgressAgainst(model.SalesTarget{})
	assert.Zero(t, empty.DealRate)
	assert.Zero(t, empty.OrderRate)
	assert.Zero(t, empty.GrossProfitRate)
}
