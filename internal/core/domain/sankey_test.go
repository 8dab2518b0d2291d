package domain_test

import (
	"testing"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSankeyState_ClickTransitions(t *testing.T) {
	root := domain.RootSankeyState()

	typeNode := domain.SankeyNode{ID: "type:FIXED", Kind: domain.SankeyNodeExpenseType, Key: "FIXED"}
	categoryNode := domain.SankeyNode{ID: "cat:Rent", Kind: domain.SankeyNodeExpenseCategory, Key: "Rent"}
	budgetNode := domain.SankeyNode{ID: "budget", Kind: domain.SankeyNodeBudget}
	incomeNode := domain.SankeyNode{ID: "income:Salary", Kind: domain.SankeyNodeIncomeCategory, Key: "Salary"}
	savingsNode := domain.SankeyNode{ID: "savings", Kind: domain.SankeyNodeSavings}

	tests := []struct {
		name string
		from domain.SankeyState
		node domain.SankeyNode
		want domain.SankeyState
	}{
		{
			name: "expense type node drills into the type",
			from: root,
			node: typeNode,
			want: domain.TypeDrillState(domain.EntryTypeFixed),
		},
		{
			name: "expense category node drills into the category",
			from: root,
			node: categoryNode,
			want: domain.CategoryDrillState("Rent"),
		},
		{
			name: "budget node is not a drill target",
			from: root,
			node: budgetNode,
			want: root,
		},
		{
			name: "income category node is not a drill target",
			from: root,
			node: incomeNode,
			want: root,
		},
		{
			name: "savings node is not a drill target",
			from: root,
			node: savingsNode,
			want: root,
		},
		{
			name: "click while type-drilled is a no-op",
			from: domain.TypeDrillState(domain.EntryTypeFixed),
			node: categoryNode,
			want: domain.TypeDrillState(domain.EntryTypeFixed),
		},
		{
			name: "click while category-drilled is a no-op",
			from: domain.CategoryDrillState("Rent"),
			node: typeNode,
			want: domain.CategoryDrillState("Rent"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Click(tt.node))
		})
	}
}

func TestSankeyState_BackAlwaysReturnsToRoot(t *testing.T) {
	assert.Equal(t, domain.RootSankeyState(), domain.TypeDrillState(domain.EntryTypeDebt).Back())
	assert.Equal(t, domain.RootSankeyState(), domain.CategoryDrillState("Transport").Back())
	assert.Equal(t, domain.RootSankeyState(), domain.RootSankeyState().Back())
}
