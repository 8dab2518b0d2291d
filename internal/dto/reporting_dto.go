package dto

import (
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils"
	"github.com/shopspring/decimal"
)

// CashflowSummaryResponse represents the aggregate view over a filtered
// entry window. Display strings are locale-formatted in the given currency.
type CashflowSummaryResponse struct {
	TotalIncome        decimal.Decimal  `json:"totalIncome"`
	TotalExpenses      decimal.Decimal  `json:"totalExpenses"`
	NetBalance         decimal.Decimal  `json:"netBalance"`
	IncomeExpenseRatio *decimal.Decimal `json:"incomeExpenseRatio,omitempty"`
	DisplayIncome      string           `json:"displayIncome"`
	DisplayExpenses    string           `json:"displayExpenses"`
	DisplayNetBalance  string           `json:"displayNetBalance"`
	Entries            []EntryResponse  `json:"entries"`
}

// ToCashflowSummaryResponse converts a domain summary to a DTO response.
func ToCashflowSummaryResponse(s *domain.CashflowSummary, currencyCode string) CashflowSummaryResponse {
	return CashflowSummaryResponse{
		TotalIncome:        s.TotalIncome,
		TotalExpenses:      s.TotalExpenses,
		NetBalance:         s.NetBalance,
		IncomeExpenseRatio: s.IncomeExpenseRatio,
		DisplayIncome:      utils.FormatMoney(s.TotalIncome, currencyCode),
		DisplayExpenses:    utils.FormatMoney(s.TotalExpenses, currencyCode),
		DisplayNetBalance:  utils.FormatMoney(s.NetBalance, currencyCode),
		Entries:            ToEntryResponseList(s.Entries),
	}
}

// SankeyParams defines query parameters for the cashflow graph. Mode, type
// and category encode the drill-down state; the state machine lives in the
// domain and the API is stateless.
type SankeyParams struct {
	Year     int    `form:"year"`
	Month    int    `form:"month" binding:"omitempty,min=1,max=12"`
	Mode     string `form:"mode,default=ROOT" binding:"omitempty,oneof=ROOT TYPE CATEGORY"`
	Type     string `form:"type" binding:"omitempty,oneof=FIXED VARIABLE DEBT"`
	Category string `form:"category"`
	TopN     int    `form:"topN" binding:"omitempty,min=1,max=50"`
	Currency string `form:"currency,default=EUR" binding:"omitempty,len=3"`
}

// SankeyNodeResponse is one vertex of the rendered cashflow graph.
type SankeyNodeResponse struct {
	ID           string          `json:"id"`
	Label        string          `json:"label"`
	Kind         string          `json:"kind"`
	Value        decimal.Decimal `json:"value"`
	DisplayValue string          `json:"displayValue"`
	Color        string          `json:"color"`
}

// SankeyLinkResponse is one weighted edge of the rendered cashflow graph.
type SankeyLinkResponse struct {
	Source string          `json:"source"`
	Target string          `json:"target"`
	Value  decimal.Decimal `json:"value"`
}

// SankeyResponse represents the cashflow graph for one drill-down state.
type SankeyResponse struct {
	State domain.SankeyState   `json:"state"`
	Nodes []SankeyNodeResponse `json:"nodes"`
	Links []SankeyLinkResponse `json:"links"`
	Total decimal.Decimal      `json:"total"`
}

// ToSankeyResponse converts a domain graph to a DTO response.
func ToSankeyResponse(g *domain.SankeyGraph, currencyCode string) SankeyResponse {
	response := SankeyResponse{
		State: g.State,
		Nodes: make([]SankeyNodeResponse, len(g.Nodes)),
		Links: make([]SankeyLinkResponse, len(g.Links)),
		Total: g.Total,
	}
	for i, n := range g.Nodes {
		response.Nodes[i] = SankeyNodeResponse{
			ID:           n.ID,
			Label:        n.Label,
			Kind:         string(n.Kind),
			Value:        n.Value,
			DisplayValue: utils.FormatMoney(n.Value, currencyCode),
			Color:        n.Color,
		}
	}
	for i, l := range g.Links {
		response.Links[i] = SankeyLinkResponse{Source: l.Source, Target: l.Target, Value: l.Value}
	}
	return response
}

// PriceHistoryParams defines query parameters for the price-history table.
type PriceHistoryParams struct {
	Mode          string `form:"mode,default=UNIT" binding:"omitempty,oneof=UNIT TOTAL"`
	Year          int    `form:"year"`
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	IncludeTotals bool   `form:"includeTotals,default=false"`
	Currency      string `form:"currency,default=EUR" binding:"omitempty,len=3"`
}

// PriceCellResponse is one asset-month cell of the table. Value and its
// display string are omitted for months with no data.
type PriceCellResponse struct {
	Month        string           `json:"month"` // "01/25" style label
	HasData      bool             `json:"hasData"`
	Value        *decimal.Decimal `json:"value,omitempty"`
	DisplayValue string           `json:"displayValue,omitempty"`
	Trend        string           `json:"trend"`
}

// PriceHistoryRowResponse is one asset's row across every month in range.
type PriceHistoryRowResponse struct {
	AssetID          string              `json:"assetID,omitempty"`
	Ticker           string              `json:"ticker"`
	Name             string              `json:"name"`
	Deleted          bool                `json:"deleted,omitempty"`
	Cells            []PriceCellResponse `json:"cells"`
	YTDPercent       *decimal.Decimal    `json:"ytdPercent,omitempty"`
	FromStartPercent *decimal.Decimal    `json:"fromStartPercent,omitempty"`
}

// PriceHistoryResponse represents the asset-by-month table.
type PriceHistoryResponse struct {
	Mode    string                    `json:"mode"`
	Columns []string                  `json:"columns"`
	Rows    []PriceHistoryRowResponse `json:"rows"`
	Totals  *PriceHistoryRowResponse  `json:"totals,omitempty"`
}

// ToPriceHistoryResponse converts a domain table to a DTO response.
func ToPriceHistoryResponse(t *domain.PriceHistoryTable, currencyCode string) PriceHistoryResponse {
	response := PriceHistoryResponse{
		Mode:    string(t.Mode),
		Columns: make([]string, len(t.Columns)),
		Rows:    make([]PriceHistoryRowResponse, len(t.Rows)),
	}
	for i, c := range t.Columns {
		response.Columns[i] = c.Label
	}
	for i := range t.Rows {
		response.Rows[i] = toPriceHistoryRowResponse(&t.Rows[i], t.Columns, currencyCode)
	}
	if t.Totals != nil {
		totals := toPriceHistoryRowResponse(t.Totals, t.Columns, currencyCode)
		response.Totals = &totals
	}
	return response
}

func toPriceHistoryRowResponse(row *domain.PriceHistoryRow, columns []domain.MonthColumn, currencyCode string) PriceHistoryRowResponse {
	resp := PriceHistoryRowResponse{
		AssetID:          row.AssetID,
		Ticker:           row.Ticker,
		Name:             row.Name,
		Deleted:          row.Deleted,
		Cells:            make([]PriceCellResponse, len(row.Cells)),
		YTDPercent:       row.YTDPercent,
		FromStartPercent: row.FromStartPercent,
	}
	for i, cell := range row.Cells {
		cellResp := PriceCellResponse{
			Month:   columns[i].Label,
			HasData: cell.HasData,
			Trend:   string(cell.Trend),
		}
		if cell.HasData {
			value := cell.Value
			cellResp.Value = &value
			cellResp.DisplayValue = utils.FormatMoney(value, currencyCode)
		}
		resp.Cells[i] = cellResp
	}
	return resp
}
