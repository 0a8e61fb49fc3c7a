package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/sales-backend/model"
)

const sampleCSV = `担当者,計上月,クライアント名,案件名,粗利,売上
山田太郎,2025-08,アルファ商事,WebリニューアルA,100,300
山田太郎,2025年8月,アルファ商事,WebリニューアルA,200,100
鈴木花子,2025-08,ベータ物産,採用支援,500,800
`

func TestParsePerformanceCSVJapaneseHeaders(t *testing.T) {
	rows, warnings, err := ParsePerformanceCSV(sampleCSV)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 3)

	assert.Equal(t, "山田太郎", rows[0].AssigneeName)
	assert.Equal(t, "2025-08", rows[0].Month)
	assert.Equal(t, "2025-08", rows[1].Month, "Japanese month form normalized")
	assert.Equal(t, 100.0, rows[0].GrossProfit)
	assert.Equal(t, 300.0, rows[0].Revenue)
}

func TestParsePerformanceCSVEnglishHeaders(t *testing.T) {
	csv := "assignee,month,client,project,gross_profit\nTaro,2025-01,Acme,Site,1000\n"
	rows, _, err := ParsePerformanceCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1000.0, rows[0].GrossProfit)
}

func TestParsePerformanceCSVSkipsIncompleteSilently(t *testing.T) {
	csv := "担当者,計上月,クライアント名,案件名,粗利\n" +
		"山田太郎,2025-08,アルファ商事,案件A,100\n" +
		",2025-08,アルファ商事,案件B,100\n" + // no assignee
		"山田太郎,,アルファ商事,案件C,100\n" + // no month
		"山田太郎,2025-08, ,案件D,100\n" // blank client
	rows, warnings, err := ParsePerformanceCSV(csv)
	require.NoError(t, err)
	assert.Empty(t, warnings, "skipped rows are not reported")
	require.Len(t, rows, 1)
	assert.Equal(t, "案件A", rows[0].ProjectName)
}

func TestParsePerformanceCSVWarnsOnMalformedMonth(t *testing.T) {
	csv := "担当者,計上月,クライアント名,案件名,粗利\n山田太郎,August,アルファ商事,案件A,100\n"
	rows, warnings, err := ParsePerformanceCSV(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "August", rows[0].Month, "malformed month passes through")
	require.Len(t, warnings, 1)
}

func TestParsePerformanceCSVMissingColumns(t *testing.T) {
	_, _, err := ParsePerformanceCSV("name,amount\nfoo,1\n")
	assert.Error(t, err)
}

func TestParseAmountTolerance(t *testing.T) {
	cases := map[string]float64{
		"1,234,567": 1234567,
		"¥5000":     5000,
		"１２３":       123, // full-width
		"":          0,
	}
	for in, want := range cases {
		got, ok := parseAmount(in)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
	_, ok := parseAmount("abc")
	assert.False(t, ok)
}

func TestAggregateRowsSumsDuplicateKeys(t *testing.T) {
	rows, _, err := ParsePerformanceCSV(sampleCSV)
	require.NoError(t, err)

	merged := AggregateRows(rows)
	require.Len(t, merged, 2, "duplicate (assignee, month, client, project) keys merge")
	assert.Equal(t, 300.0, merged[0].GrossProfit, "100 + 200")
	assert.Equal(t, 400.0, merged[0].Revenue)
	assert.Equal(t, 500.0, merged[1].GrossProfit)

	// Aggregating already-aggregated rows changes nothing.
	assert.Equal(t, merged, AggregateRows(merged))
}

func TestResolveAssignees(t *testing.T) {
	now := time.Now()
	users := []model.User{
		{Key: "u1", Name: "山田太郎", Email: "yamada@example.com"},
	}
	rows := []ImportRow{
		{AssigneeName: "山田太郎", Month: "2025-08", ClientName: "アルファ商事", ProjectName: "案件A", GrossProfit: 100},
		{AssigneeName: "存在しない人", Month: "2025-08", ClientName: "ベータ物産", ProjectName: "案件B", GrossProfit: 200},
	}

	resolved, failures := ResolveAssignees(rows, users, now)
	require.Len(t, resolved, 1)
	assert.Equal(t, "u1", resolved[0].AssigneeID)
	assert.Equal(t, now, resolved[0].ImportedAt)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "存在しない人")
}

func TestResolveAssigneesAllFail(t *testing.T) {
	// A wholly unresolvable CSV resolves to zero rows: the import then
	// replaces the collection with nothing and reports every row failed.
	rows := []ImportRow{
		{AssigneeName: "a", Month: "2025-01", ClientName: "c", ProjectName: "p"},
		{AssigneeName: "b", Month: "2025-01", ClientName: "c", ProjectName: "q"},
	}
	resolved, failures := ResolveAssignees(rows, nil, time.Now())
	assert.Empty(t, resolved)
	assert.Len(t, failures, len(rows))
}

func TestReplaceStatementsSplitPerStatement(t *testing.T) {
	// ArangoDB rejects a query touching the same collection in two
	// data-modification operations, so the delete and the insert must
	// never share a statement.
	stmts := replaceStatements([]model.Performance{
		{AssigneeID: "u1", RecordingMonth: "2025-08", ClientName: "アルファ商事", ProjectName: "案件A", GrossProfit: 100},
	})
	require.Len(t, stmts, 2)

	assert.Contains(t, stmts[0].Query, "REMOVE")
	assert.NotContains(t, stmts[0].Query, "INSERT")

	assert.Contains(t, stmts[1].Query, "INSERT")
	assert.NotContains(t, stmts[1].Query, "REMOVE")

	rows, ok := stmts[1].BindVars["rows"].([]model.Performance)
	require.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestReplaceStatementsNilRows(t *testing.T) {
	// Nil rows still bind an empty array so the insert half is a no-op
	// rather than a bind error, preserving replace-with-nothing.
	stmts := replaceStatements(nil)
	require.Len(t, stmts, 2)

	rows, ok := stmts[1].BindVars["rows"].([]model.Performance)
	require.True(t, ok)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}
