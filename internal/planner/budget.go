package planner

// Budget is the number of exercises per block for one workout length.
type Budget struct {
	WarmUp   int
	Main     int
	Stretch  int
	Core     int
	Mobility int
}

// DefaultMinutes is used when a profile carries no usable duration.
const DefaultMinutes = 25

var supportedDurations = []int{15, 25, 40, 60}

var budgets = map[int]Budget{
	15: {WarmUp: 3, Main: 4, Stretch: 2, Core: 1, Mobility: 1},
	25: {WarmUp: 4, Main: 5, Stretch: 3, Core: 2, Mobility: 1},
	40: {WarmUp: 5, Main: 5, Stretch: 3, Core: 2, Mobility: 2},
	60: {WarmUp: 5, Main: 6, Stretch: 3, Core: 2, Mobility: 2},
}

// BudgetFor returns the budget for a workout length. Unsupported lengths use
// the longest supported duration that fits in them; anything shorter than
// the shortest duration uses the shortest.
func BudgetFor(minutes int) Budget {
	return budgets[budgetKey(minutes)]
}

func budgetKey(minutes int) int {
	if minutes <= 0 {
		return DefaultMinutes
	}
	key := supportedDurations[0]
	for _, d := range supportedDurations {
		if minutes >= d {
			key = d
		}
	}
	return key
}
