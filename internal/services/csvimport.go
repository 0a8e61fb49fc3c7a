package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/salescope/sales-backend/database"
	"github.com/salescope/sales-backend/model"
	"github.com/salescope/sales-backend/util"
)

// ImportRow is one parsed CSV line before assignee resolution
type ImportRow struct {
	AssigneeName string
	Month        string // normalized "YYYY-MM" where recognized
	ClientName   string
	ProjectName  string
	Revenue      float64
	Cost         float64
	GrossProfit  float64
}

func (r ImportRow) key() string {
	return r.AssigneeName + "|" + r.Month + "|" + r.ClientName + "|" + r.ProjectName
}

// ImportResult reports a performance import back to the caller
type ImportResult struct {
	Deleted   int      `json:"deleted"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Details   []string `json:"details"`
}

// Column headers are matched by Japanese or English name. Gross profit,
// month, assignee, client and project are required; revenue and cost are
// optional extensions filled into the order reconciliation when present.
var (
	assigneeHeaders = []string{"担当者", "担当者名", "assignee", "assignee_name"}
	monthHeaders    = []string{"計上月", "month", "recording_month"}
	clientHeaders   = []string{"クライアント名", "顧客名", "client", "client_name"}
	projectHeaders  = []string{"案件名", "project", "project_name"}
	profitHeaders   = []string{"粗利", "粗利額", "gross_profit", "grossprofit"}
	revenueHeaders  = []string{"売上", "売上額", "revenue"}
	costHeaders     = []string{"原価", "cost"}
)

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range names {
			if h == name {
				return i
			}
		}
	}
	return -1
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseAmount reads a monetary cell. Full-width digits, yen signs and
// thousands separators are tolerated; an empty cell is zero.
func parseAmount(s string) (float64, bool) {
	s = width.Narrow.String(strings.TrimSpace(s))
	s = strings.NewReplacer(",", "", "¥", "", "円", "", " ", "").Replace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParsePerformanceCSV parses uploaded CSV text into import rows.
// Rows missing any required field are skipped silently per the recording
// contract; malformed months and amounts produce warnings, not errors.
func ParsePerformanceCSV(text string) ([]ImportRow, []string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV is empty")
	}

	header := records[0]
	assigneeCol := findColumn(header, assigneeHeaders)
	monthCol := findColumn(header, monthHeaders)
	clientCol := findColumn(header, clientHeaders)
	projectCol := findColumn(header, projectHeaders)
	profitCol := findColumn(header, profitHeaders)
	revenueCol := findColumn(header, revenueHeaders)
	costCol := findColumn(header, costHeaders)

	if assigneeCol < 0 || monthCol < 0 || clientCol < 0 || projectCol < 0 || profitCol < 0 {
		return nil, nil, fmt.Errorf("CSV is missing required columns (担当者, 計上月, クライアント名, 案件名, 粗利)")
	}

	var rows []ImportRow
	var warnings []string

	for lineNo, record := range records[1:] {
		row := ImportRow{
			AssigneeName: cell(record, assigneeCol),
			ClientName:   cell(record, clientCol),
			ProjectName:  cell(record, projectCol),
		}
		rawMonth := cell(record, monthCol)

		// Rows missing a required field are skipped without being counted
		// as failures.
		if util.IsEmpty(row.AssigneeName) || util.IsEmpty(rawMonth) ||
			util.IsEmpty(row.ClientName) || util.IsEmpty(row.ProjectName) {
			continue
		}

		month, ok := util.NormalizeMonth(rawMonth)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("行%d: 計上月 %q を解釈できません", lineNo+2, rawMonth))
		}
		row.Month = month

		if v, ok := parseAmount(cell(record, profitCol)); ok {
			row.GrossProfit = v
		} else {
			warnings = append(warnings, fmt.Sprintf("行%d: 粗利 %q を数値として解釈できません", lineNo+2, cell(record, profitCol)))
		}
		row.Revenue, _ = parseAmount(cell(record, revenueCol))
		row.Cost, _ = parseAmount(cell(record, costCol))

		rows = append(rows, row)
	}

	return rows, warnings, nil
}

// AggregateRows merges rows sharing the same
// (assignee, month, client, project) key by summing their amounts.
// First-seen order is preserved so reruns produce identical output.
func AggregateRows(rows []ImportRow) []ImportRow {
	byKey := make(map[string]int, len(rows))
	var merged []ImportRow
	for _, row := range rows {
		if i, ok := byKey[row.key()]; ok {
			merged[i].Revenue += row.Revenue
			merged[i].Cost += row.Cost
			merged[i].GrossProfit += row.GrossProfit
			continue
		}
		byKey[row.key()] = len(merged)
		merged = append(merged, row)
	}
	return merged
}

// ResolveAssignees matches each aggregated row's assignee name against the
// user collection by exact name. Misses become failure messages.
func ResolveAssignees(rows []ImportRow, users []model.User, now time.Time) ([]model.Performance, []string) {
	byName := make(map[string]string, len(users))
	for _, u := range users {
		byName[u.Name] = u.Key
	}

	var resolved []model.Performance
	var failures []string
	for _, row := range rows {
		userKey, ok := byName[row.AssigneeName]
		if !ok {
			failures = append(failures, fmt.Sprintf("担当者 %q に一致するユーザーがいません (%s / %s)", row.AssigneeName, row.ClientName, row.ProjectName))
			continue
		}
		resolved = append(resolved, model.Performance{
			AssigneeID:     userKey,
			AssigneeName:   row.AssigneeName,
			RecordingMonth: row.Month,
			ClientName:     row.ClientName,
			ProjectName:    row.ProjectName,
			Revenue:        row.Revenue,
			Cost:           row.Cost,
			GrossProfit:    row.GrossProfit,
			ImportedAt:     now,
		})
	}
	return resolved, failures
}

// replaceStatements builds the delete and insert halves of one import.
// AQL rejects a query that modifies the same collection twice, so the
// REMOVE and the INSERT must stay separate statements.
func replaceStatements(rows []model.Performance) []database.Statement {
	if rows == nil {
		rows = []model.Performance{}
	}
	return []database.Statement{
		{Query: `FOR p IN performances REMOVE p IN performances`},
		{
			Query:    `FOR row IN @rows INSERT row INTO performances`,
			BindVars: map[string]interface{}{"rows": rows},
		},
	}
}

// replacePerformances deletes every existing performance row and inserts
// the new ones inside one stream transaction. Commit happens only after
// both statements succeed, so a failed import can no longer leave the
// collection half-replaced; an import whose rows all failed resolution
// still replaces the collection with nothing, which is the documented
// contract.
func replacePerformances(ctx context.Context, db database.DBConnection, rows []model.Performance) error {
	return database.ExecTransaction(ctx, db, []string{"performances"}, replaceStatements(rows))
}

// reconcileOrder finds the order matching a performance row by
// (client name, project title) and increments its monetary fields.
// No match is silent.
func reconcileOrder(ctx context.Context, db database.DBConnection, perf *model.Performance) {
	query := `
		FOR o IN orders
			FILTER o.client_name == @client_name AND o.title == @title
			LIMIT 1
			UPDATE o WITH {
				revenue: (o.revenue == null ? 0 : o.revenue) + @revenue,
				cost: (o.cost == null ? 0 : o.cost) + @cost,
				gross_profit: (o.gross_profit == null ? 0 : o.gross_profit) + @gross_profit,
				implementation_month: @month,
				updated_at: @now
			} IN orders
	`
	err := database.Exec(ctx, db, query, map[string]interface{}{
		"client_name":  perf.ClientName,
		"title":        perf.ProjectName,
		"revenue":      perf.Revenue,
		"cost":         perf.Cost,
		"gross_profit": perf.GrossProfit,
		"month":        perf.RecordingMonth,
		"now":          time.Now(),
	})
	if err != nil {
		log.Warnf("order reconciliation failed for %s / %s: %v", perf.ClientName, perf.ProjectName, err)
	}
}

// ImportPerformanceCSV replaces the performance collection with the parsed
// CSV and best-effort links the new rows back to matching orders.
func ImportPerformanceCSV(ctx context.Context, db database.DBConnection, csvText string) (*ImportResult, error) {
	rows, warnings, err := ParsePerformanceCSV(csvText)
	if err != nil {
		return nil, err
	}
	merged := AggregateRows(rows)

	users, err := database.AllUsers(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	resolved, failures := ResolveAssignees(merged, users, time.Now())

	existing, _, err := database.QueryOne[int](ctx, db, `RETURN LENGTH(performances)`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count performances: %w", err)
	}

	if err := replacePerformances(ctx, db, resolved); err != nil {
		return nil, fmt.Errorf("failed to replace performances: %w", err)
	}

	for i := range resolved {
		reconcileOrder(ctx, db, &resolved[i])
	}

	result := &ImportResult{
		Deleted:   existing,
		Succeeded: len(resolved),
		Failed:    len(failures),
	}
	result.Details = append(result.Details, warnings...)
	for _, p := range resolved {
		result.Details = append(result.Details, fmt.Sprintf("登録: %s %s %s %s 粗利 %.0f", p.AssigneeName, p.RecordingMonth, p.ClientName, p.ProjectName, p.GrossProfit))
	}
	result.Details = append(result.Details, failures...)

	log.Infof("performance import: deleted=%d succeeded=%d failed=%d", result.Deleted, result.Succeeded, result.Failed)
	return result, nil
}
