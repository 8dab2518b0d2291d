package domain

import "github.com/shopspring/decimal"

// SankeyMode selects which of the three mutually exclusive cashflow views
// the graph builder renders.
type SankeyMode string

const (
	// SankeyModeRoot is the full budget view: income categories flow into a
	// single Budget node, out to expense types, then expense categories, with
	// an optional Savings node.
	SankeyModeRoot SankeyMode = "ROOT"
	// SankeyModeType drills into one expense type and its categories.
	SankeyModeType SankeyMode = "TYPE"
	// SankeyModeCategory drills into one category and its subcategories.
	SankeyModeCategory SankeyMode = "CATEGORY"
)

// SankeyState is the drill-down position of the cashflow view. Only the
// fields of the active mode are set, so invalid combinations (a subcategory
// drill without a category) cannot be represented.
type SankeyState struct {
	Mode     SankeyMode `json:"mode"`
	Type     EntryType  `json:"type,omitempty"`     // Set in TYPE mode
	Category string     `json:"category,omitempty"` // Set in CATEGORY mode
}

// RootSankeyState returns the full budget view state.
func RootSankeyState() SankeyState {
	return SankeyState{Mode: SankeyModeRoot}
}

// TypeDrillState returns the drill-down state for one expense type.
func TypeDrillState(t EntryType) SankeyState {
	return SankeyState{Mode: SankeyModeType, Type: t}
}

// CategoryDrillState returns the drill-down state for one expense category.
func CategoryDrillState(category string) SankeyState {
	return SankeyState{Mode: SankeyModeCategory, Category: category}
}

// Click applies a node click to the state. From the root view, clicking an
// expense-type node drills into that type and clicking an expense-category
// node drills into that category; every other click, and any click while
// already drilled down, is a no-op.
func (s SankeyState) Click(node SankeyNode) SankeyState {
	if s.Mode != SankeyModeRoot {
		return s
	}
	switch node.Kind {
	case SankeyNodeExpenseType:
		return TypeDrillState(EntryType(node.Key))
	case SankeyNodeExpenseCategory:
		return CategoryDrillState(node.Key)
	default:
		return s
	}
}

// Back returns to the root view from any drill-down.
func (s SankeyState) Back() SankeyState {
	return RootSankeyState()
}

// SankeyNodeKind classifies graph vertices; only expense-type and
// expense-category nodes are click targets for drill-down.
type SankeyNodeKind string

const (
	SankeyNodeIncomeCategory  SankeyNodeKind = "INCOME_CATEGORY"
	SankeyNodeBudget          SankeyNodeKind = "BUDGET"
	SankeyNodeExpenseType     SankeyNodeKind = "EXPENSE_TYPE"
	SankeyNodeExpenseCategory SankeyNodeKind = "EXPENSE_CATEGORY"
	SankeyNodeSubcategory     SankeyNodeKind = "SUBCATEGORY"
	SankeyNodeSavings         SankeyNodeKind = "SAVINGS"
)

// SankeyNode is one vertex of the cashflow graph.
type SankeyNode struct {
	ID    string          `json:"id"` // Stable key, e.g. "type:FIXED"
	Label string          `json:"label"`
	Kind  SankeyNodeKind  `json:"kind"`
	Key   string          `json:"key"`   // Raw grouping key behind the label
	Value decimal.Decimal `json:"value"` // Total amount flowing through the node
	Color string          `json:"color"` // Hex, palette or parent-derived shade
}

// SankeyLink is one weighted edge between two nodes, by node ID.
type SankeyLink struct {
	Source string          `json:"source"`
	Target string          `json:"target"`
	Value  decimal.Decimal `json:"value"`
}

// SankeyGraph is the rendered cashflow view for one state. Recomputed on
// every filter or drill-down change, never persisted.
type SankeyGraph struct {
	State SankeyState     `json:"state"`
	Nodes []SankeyNode    `json:"nodes"`
	Links []SankeyLink    `json:"links"`
	Total decimal.Decimal `json:"total"` // Amount entering the view's first layer
}
