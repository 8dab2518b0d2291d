package services

import (
	"context"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
)

// PriceHistoryParams bounds and shapes the price-history table.
type PriceHistoryParams struct {
	// Mode selects unit price or total position value per cell. Cash-like
	// holdings always display total value regardless of the mode.
	Mode domain.PriceDisplayMode

	// Year restricts the table to one calendar year; zero means no restriction.
	Year int

	// From drops months before this date; zero means the full history.
	From time.Time

	// IncludeTotals adds the aggregate row over all asset totals.
	IncludeTotals bool
}

// ReportingSvcFacade defines the derived cashflow and portfolio reports.
// Every report is recomputed in full from the persisted entries or snapshots
// on each call; nothing here is ever stored.
type ReportingSvcFacade interface {
	// SankeyGraph builds the cashflow graph for one drill-down state over the
	// filtered entry window. topN truncates each grouping level, 0 keeps all.
	SankeyGraph(ctx context.Context, userID string, window domain.ReportingWindow, filter domain.EntryFilter, state domain.SankeyState, topN int) (*domain.SankeyGraph, error)

	// PriceHistory builds the asset-by-month table from the user's snapshots.
	PriceHistory(ctx context.Context, userID string, params PriceHistoryParams) (*domain.PriceHistoryTable, error)
}
