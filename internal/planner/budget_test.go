package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetFor(t *testing.T) {
	tests := []struct {
		minutes int
		want    Budget
	}{
		{15, budgets[15]},
		{25, budgets[25]},
		{40, budgets[40]},
		{60, budgets[60]},
		{0, budgets[25]},
		{-10, budgets[25]},
		{10, budgets[15]},
		{20, budgets[15]},
		{30, budgets[25]},
		{39, budgets[25]},
		{45, budgets[40]},
		{90, budgets[60]},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BudgetFor(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestBudgetFor_Values(t *testing.T) {
	assert.Equal(t, Budget{WarmUp: 3, Main: 4, Stretch: 2, Core: 1, Mobility: 1}, BudgetFor(15))
	assert.Equal(t, Budget{WarmUp: 5, Main: 6, Stretch: 3, Core: 2, Mobility: 2}, BudgetFor(60))
}
