package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portsrepo "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/repositories"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils/palette"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	entryRepo    portsrepo.EntryRepositoryFacade
	snapshotRepo portsrepo.SnapshotRepositoryFacade
}

// NewReportingService creates a new reporting service
func NewReportingService(entryRepo portsrepo.EntryRepositoryFacade, snapshotRepo portsrepo.SnapshotRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{entryRepo: entryRepo, snapshotRepo: snapshotRepo}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

const (
	budgetNodeID  = "budget"
	savingsNodeID = "savings"
	otherBucket   = "Other"
)

var hundred = decimal.NewFromInt(100)

// SankeyGraph builds the cashflow graph for one drill-down state over the
// filtered window. The whole view is recomputed from the entries on each call.
func (s *reportingService) SankeyGraph(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter, state domain.SankeyState, topN int) (*domain.SankeyGraph, error) {
	entries, err := s.entryRepo.FindEntriesByUser(ctx, userID, window)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for sankey graph")
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	filtered := entries[:0:0]
	for _, e := range entries {
		if filter.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	var graph *domain.SankeyGraph
	switch state.Mode {
	case domain.SankeyModeType:
		graph = buildTypeDrillGraph(filtered, state, topN)
	case domain.SankeyModeCategory:
		graph = buildCategoryDrillGraph(filtered, state, topN)
	default:
		graph = buildRootGraph(filtered, topN)
	}

	s.LogDebug(ctx, "Sankey graph built")
	return graph, nil
}

// keyedSum is one grouping bucket of a single aggregation pass.
type keyedSum struct {
	key    string
	amount decimal.Decimal
}

// accumulate groups entries by key in one pass, sorts descending by amount
// and truncates to topN (0 keeps all). Ties sort by key for determinism.
func accumulate(entries []domain.LedgerEntry, topN int, keyOf func(domain.LedgerEntry) (string, bool)) []keyedSum {
	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		key, ok := keyOf(e)
		if !ok {
			continue
		}
		sums[key] = sums[key].Add(e.Amount.Abs())
	}

	buckets := make([]keyedSum, 0, len(sums))
	for key, amount := range sums {
		buckets = append(buckets, keyedSum{key: key, amount: amount})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].amount.Equal(buckets[j].amount) {
			return buckets[i].amount.GreaterThan(buckets[j].amount)
		}
		return buckets[i].key < buckets[j].key
	})
	if topN > 0 && len(buckets) > topN {
		buckets = buckets[:topN]
	}
	return buckets
}

func typeLabel(t domain.EntryType) string {
	switch t {
	case domain.EntryTypeIncome:
		return "Income"
	case domain.EntryTypeFixed:
		return "Fixed"
	case domain.EntryTypeVariable:
		return "Variable"
	case domain.EntryTypeDebt:
		return "Debt"
	default:
		return string(t)
	}
}

// buildRootGraph renders the full budget view: income categories flow into a
// single Budget node, out to the expense types, then the expense categories,
// with a Savings node only when income strictly exceeds expenses.
func buildRootGraph(entries []domain.LedgerEntry, topN int) *domain.SankeyGraph {
	var income, expenses []domain.LedgerEntry
	for _, e := range entries {
		if e.Type == domain.EntryTypeIncome {
			income = append(income, e)
		} else {
			expenses = append(expenses, e)
		}
	}

	graph := &domain.SankeyGraph{State: domain.RootSankeyState()}
	paletteIdx := 0

	totalIncome := decimal.Zero
	incomeBuckets := accumulate(income, topN, func(e domain.LedgerEntry) (string, bool) {
		return e.Category, true
	})
	for _, b := range incomeBuckets {
		totalIncome = totalIncome.Add(b.amount)
	}

	budgetNode := domain.SankeyNode{
		ID:    budgetNodeID,
		Label: "Budget",
		Kind:  domain.SankeyNodeBudget,
		Value: totalIncome,
		Color: palette.Color(paletteIdx),
	}
	paletteIdx++
	graph.Nodes = append(graph.Nodes, budgetNode)

	for _, b := range incomeBuckets {
		node := domain.SankeyNode{
			ID:    "income:" + b.key,
			Label: b.key,
			Kind:  domain.SankeyNodeIncomeCategory,
			Key:   b.key,
			Value: b.amount,
			Color: palette.Color(paletteIdx),
		}
		paletteIdx++
		graph.Nodes = append(graph.Nodes, node)
		graph.Links = append(graph.Links, domain.SankeyLink{Source: node.ID, Target: budgetNodeID, Value: b.amount})
	}

	totalExpenses := decimal.Zero
	for _, t := range domain.ExpenseTypes() {
		entryType := t
		ofType := expenses[:0:0]
		for _, e := range expenses {
			if e.Type == entryType {
				ofType = append(ofType, e)
			}
		}
		if len(ofType) == 0 {
			continue
		}

		typeTotal := decimal.Zero
		for _, e := range ofType {
			typeTotal = typeTotal.Add(e.Amount.Abs())
		}
		totalExpenses = totalExpenses.Add(typeTotal)

		typeNode := domain.SankeyNode{
			ID:    "type:" + string(entryType),
			Label: typeLabel(entryType),
			Kind:  domain.SankeyNodeExpenseType,
			Key:   string(entryType),
			Value: typeTotal,
			Color: palette.Color(paletteIdx),
		}
		paletteIdx++
		graph.Nodes = append(graph.Nodes, typeNode)
		graph.Links = append(graph.Links, domain.SankeyLink{Source: budgetNodeID, Target: typeNode.ID, Value: typeTotal})

		categoryBuckets := accumulate(ofType, topN, func(e domain.LedgerEntry) (string, bool) {
			return e.Category, true
		})
		for i, b := range categoryBuckets {
			catNode := domain.SankeyNode{
				ID:    "cat:" + b.key,
				Label: b.key,
				Kind:  domain.SankeyNodeExpenseCategory,
				Key:   b.key,
				Value: b.amount,
				Color: palette.ChildShade(typeNode.Color, i),
			}
			graph.Nodes = append(graph.Nodes, catNode)
			graph.Links = append(graph.Links, domain.SankeyLink{Source: typeNode.ID, Target: catNode.ID, Value: b.amount})
		}
	}

	// A deficit is silently omitted; only strictly positive savings render.
	savings := totalIncome.Sub(totalExpenses)
	if savings.IsPositive() {
		savingsNode := domain.SankeyNode{
			ID:    savingsNodeID,
			Label: "Savings",
			Kind:  domain.SankeyNodeSavings,
			Value: savings,
			Color: palette.Color(paletteIdx),
		}
		graph.Nodes = append(graph.Nodes, savingsNode)
		graph.Links = append(graph.Links, domain.SankeyLink{Source: budgetNodeID, Target: savingsNodeID, Value: savings})
	}

	graph.Total = totalIncome
	return graph
}

// buildTypeDrillGraph renders one expense type flowing into its categories.
func buildTypeDrillGraph(entries []domain.LedgerEntry, state domain.SankeyState, topN int) *domain.SankeyGraph {
	ofType := entries[:0:0]
	for _, e := range entries {
		if e.Type == state.Type {
			ofType = append(ofType, e)
		}
	}

	graph := &domain.SankeyGraph{State: state}
	total := decimal.Zero
	for _, e := range ofType {
		total = total.Add(e.Amount.Abs())
	}

	typeNode := domain.SankeyNode{
		ID:    "type:" + string(state.Type),
		Label: typeLabel(state.Type),
		Kind:  domain.SankeyNodeExpenseType,
		Key:   string(state.Type),
		Value: total,
		Color: palette.Color(0),
	}
	graph.Nodes = append(graph.Nodes, typeNode)

	buckets := accumulate(ofType, topN, func(e domain.LedgerEntry) (string, bool) {
		return e.Category, true
	})
	for i, b := range buckets {
		catNode := domain.SankeyNode{
			ID:    "cat:" + b.key,
			Label: b.key,
			Kind:  domain.SankeyNodeExpenseCategory,
			Key:   b.key,
			Value: b.amount,
			Color: palette.ChildShade(typeNode.Color, i),
		}
		graph.Nodes = append(graph.Nodes, catNode)
		graph.Links = append(graph.Links, domain.SankeyLink{Source: typeNode.ID, Target: catNode.ID, Value: b.amount})
	}

	graph.Total = total
	return graph
}

// buildCategoryDrillGraph renders one category flowing into its
// subcategories; entries without one collapse into a synthetic Other bucket.
func buildCategoryDrillGraph(entries []domain.LedgerEntry, state domain.SankeyState, topN int) *domain.SankeyGraph {
	ofCategory := entries[:0:0]
	for _, e := range entries {
		if e.Type.IsExpense() && e.Category == state.Category {
			ofCategory = append(ofCategory, e)
		}
	}

	graph := &domain.SankeyGraph{State: state}
	total := decimal.Zero
	for _, e := range ofCategory {
		total = total.Add(e.Amount.Abs())
	}

	catNode := domain.SankeyNode{
		ID:    "cat:" + state.Category,
		Label: state.Category,
		Kind:  domain.SankeyNodeExpenseCategory,
		Key:   state.Category,
		Value: total,
		Color: palette.Color(0),
	}
	graph.Nodes = append(graph.Nodes, catNode)

	buckets := accumulate(ofCategory, topN, func(e domain.LedgerEntry) (string, bool) {
		if e.Subcategory == "" {
			return otherBucket, true
		}
		return e.Subcategory, true
	})
	for i, b := range buckets {
		subNode := domain.SankeyNode{
			ID:    "sub:" + b.key,
			Label: b.key,
			Kind:  domain.SankeyNodeSubcategory,
			Key:   b.key,
			Value: b.amount,
			Color: palette.ChildShade(catNode.Color, i),
		}
		graph.Nodes = append(graph.Nodes, subNode)
		graph.Links = append(graph.Links, domain.SankeyLink{Source: catNode.ID, Target: subNode.ID, Value: b.amount})
	}

	graph.Total = total
	return graph
}

// PriceHistory builds the asset-by-month table from the user's snapshots.
func (s *reportingService) PriceHistory(ctx context.Context, userID string, params portssvc.PriceHistoryParams) (*domain.PriceHistoryTable, error) {
	from := params.From
	if params.Year != 0 {
		from = time.Date(params.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	snapshots, err := s.snapshotRepo.FindSnapshotsByUser(ctx, userID, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshots for price history")
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	if params.Year != 0 {
		inYear := snapshots[:0:0]
		for _, snap := range snapshots {
			if snap.Month.Year() == params.Year {
				inYear = append(inYear, snap)
			}
		}
		snapshots = inYear
	}

	mode := params.Mode
	if mode == "" {
		mode = domain.PriceDisplayUnit
	}

	table := buildPriceHistoryTable(snapshots, mode, params.IncludeTotals)
	s.LogDebug(ctx, "Price history table built")
	return table, nil
}

// buildPriceHistoryTable is the pure single-pass transformer behind
// PriceHistory; it exists separately so the reshaping logic is testable
// without a repository.
func buildPriceHistoryTable(snapshots []domain.AssetSnapshot, mode domain.PriceDisplayMode, includeTotals bool) *domain.PriceHistoryTable {
	table := &domain.PriceHistoryTable{Mode: mode}
	if len(snapshots) == 0 {
		return table
	}

	monthSet := make(map[time.Time]struct{})
	byAsset := make(map[string][]domain.AssetSnapshot)
	assetOrder := []string{}
	for _, snap := range snapshots {
		month := domain.MonthKey(snap.Month)
		monthSet[month] = struct{}{}
		if _, seen := byAsset[snap.AssetID]; !seen {
			assetOrder = append(assetOrder, snap.AssetID)
		}
		byAsset[snap.AssetID] = append(byAsset[snap.AssetID], snap)
	}

	months := make([]time.Time, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	table.Columns = make([]domain.MonthColumn, len(months))
	for i, m := range months {
		table.Columns[i] = domain.MonthColumn{
			Month: m,
			Label: fmt.Sprintf("%02d/%02d", int(m.Month()), m.Year()%100),
		}
	}

	// Rows keep the ticker order of the snapshot listing.
	sort.SliceStable(assetOrder, func(i, j int) bool {
		return byAsset[assetOrder[i]][0].Ticker < byAsset[assetOrder[j]][0].Ticker
	})

	for _, assetID := range assetOrder {
		row := buildPriceHistoryRow(assetID, byAsset[assetID], months, mode)
		table.Rows = append(table.Rows, row)
	}

	if includeTotals {
		totals := buildTotalsRow(table.Rows, months)
		table.Totals = &totals
	}
	return table
}

// displayValue resolves what a cell shows. An asset whose unit price is
// exactly 1 is a cash-equivalent holding and always shows total position
// value, as does Kind == cash, regardless of the selected mode.
func displayValue(snap domain.AssetSnapshot, mode domain.PriceDisplayMode) decimal.Decimal {
	forceTotal := snap.Kind == domain.AssetKindCash || snap.UnitPrice.Equal(decimal.NewFromInt(1))
	if mode == domain.PriceDisplayTotal || forceTotal {
		return snap.TotalValue()
	}
	return snap.UnitPrice
}

func buildPriceHistoryRow(assetID string, snaps []domain.AssetSnapshot, months []time.Time, mode domain.PriceDisplayMode) domain.PriceHistoryRow {
	byMonth := make(map[time.Time]domain.AssetSnapshot, len(snaps))
	latest := snaps[0]
	for _, snap := range snaps {
		byMonth[domain.MonthKey(snap.Month)] = snap
		if snap.Month.After(latest.Month) {
			latest = snap
		}
	}

	row := domain.PriceHistoryRow{
		AssetID: assetID,
		Ticker:  latest.Ticker,
		Name:    latest.Name,
		Kind:    latest.Kind,
		Deleted: latest.Deleted,
		Cells:   make([]domain.PriceCell, len(months)),
	}

	for i, month := range months {
		cell := domain.PriceCell{Month: month, Trend: domain.PriceTrendFlat}
		if snap, ok := byMonth[month]; ok && snap.HasPrice {
			cell.HasData = true
			cell.Price = snap.UnitPrice
			cell.Quantity = snap.Quantity
			cell.Total = snap.TotalValue()
			cell.Value = displayValue(snap, mode)
		}
		row.Cells[i] = cell
	}

	colorCells(row.Cells)
	row.YTDPercent, row.FromStartPercent = summaryPercents(row.Cells)
	return row
}

// colorCells assigns each cell's trend against the nearest strictly earlier
// cell with data: up when strictly greater, down when strictly less, flat
// when equal or when no earlier value exists.
func colorCells(cells []domain.PriceCell) {
	havePrev := false
	var prev decimal.Decimal
	for i := range cells {
		if !cells[i].HasData {
			continue
		}
		switch {
		case !havePrev:
			cells[i].Trend = domain.PriceTrendFlat
		case cells[i].Value.GreaterThan(prev):
			cells[i].Trend = domain.PriceTrendUp
		case cells[i].Value.LessThan(prev):
			cells[i].Trend = domain.PriceTrendDown
		default:
			cells[i].Trend = domain.PriceTrendFlat
		}
		prev = cells[i].Value
		havePrev = true
	}
}

// summaryPercents computes the YTD and from-start percentages of a row. YTD
// runs from the first available month of the table's latest calendar year;
// from-start from the first available month overall. Either is nil when
// fewer than two qualifying months exist or the base value is zero.
func summaryPercents(cells []domain.PriceCell) (ytd, fromStart *decimal.Decimal) {
	withData := make([]domain.PriceCell, 0, len(cells))
	for _, c := range cells {
		if c.HasData {
			withData = append(withData, c)
		}
	}
	if len(withData) < 2 {
		return nil, nil
	}

	last := withData[len(withData)-1]
	fromStart = percentChange(withData[0].Value, last.Value)

	currentYear := last.Month.Year()
	inYear := withData[:0:0]
	for _, c := range withData {
		if c.Month.Year() == currentYear {
			inYear = append(inYear, c)
		}
	}
	if len(inYear) >= 2 {
		ytd = percentChange(inYear[0].Value, last.Value)
	}
	return ytd, fromStart
}

func percentChange(base, current decimal.Decimal) *decimal.Decimal {
	if base.IsZero() {
		return nil
	}
	p := current.Sub(base).Div(base).Mul(hundred)
	return &p
}

// buildTotalsRow sums all asset total values per month and applies the same
// trend and summary-percentage logic to the aggregate.
func buildTotalsRow(rows []domain.PriceHistoryRow, months []time.Time) domain.PriceHistoryRow {
	totals := domain.PriceHistoryRow{
		Ticker: "TOTAL",
		Name:   "Total",
		Cells:  make([]domain.PriceCell, len(months)),
	}
	for i, month := range months {
		cell := domain.PriceCell{Month: month, Trend: domain.PriceTrendFlat}
		for _, row := range rows {
			if row.Cells[i].HasData {
				cell.HasData = true
				cell.Total = cell.Total.Add(row.Cells[i].Total)
			}
		}
		if cell.HasData {
			cell.Value = cell.Total
		}
		totals.Cells[i] = cell
	}
	colorCells(totals.Cells)
	totals.YTDPercent, totals.FromStartPercent = summaryPercents(totals.Cells)
	return totals
}
