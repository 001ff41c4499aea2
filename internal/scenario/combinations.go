package scenario

// MaxDaysPerWeek bounds the enumeration for each parent
const MaxDaysPerWeek = 5

// DayPair is the number of days each parent works in one scenario
type DayPair struct {
	Parent1 int `json:"parent1Days"`
	Parent2 int `json:"parent2Days"`
}

// Total is the combined number of work days
func (dp DayPair) Total() int {
	return dp.Parent1 + dp.Parent2
}

// commonPairs are the arrangements families ask about most, in display order
var commonPairs = []DayPair{
	{5, 5}, {5, 4}, {4, 4}, {5, 3}, {4, 3}, {3, 3}, {5, 2}, {5, 0}, {4, 0}, {3, 0},
}

// ExhaustivePairs lists every combination of 0..5 days per parent except both at zero.
// A single earner only varies the first parent's days.
func ExhaustivePairs(singleEarner bool) []DayPair {
	if singleEarner {
		return singleEarnerPairs()
	}
	pairs := make([]DayPair, 0, (MaxDaysPerWeek+1)*(MaxDaysPerWeek+1)-1)
	for p1 := MaxDaysPerWeek; p1 >= 0; p1-- {
		for p2 := MaxDaysPerWeek; p2 >= 0; p2-- {
			if p1 == 0 && p2 == 0 {
				continue
			}
			pairs = append(pairs, DayPair{Parent1: p1, Parent2: p2})
		}
	}
	return pairs
}

// CommonPairs lists the curated subset. A single earner falls back to 5..1 days and none.
func CommonPairs(singleEarner bool) []DayPair {
	if singleEarner {
		return singleEarnerPairs()
	}
	pairs := make([]DayPair, len(commonPairs))
	copy(pairs, commonPairs)
	return pairs
}

func singleEarnerPairs() []DayPair {
	pairs := make([]DayPair, 0, MaxDaysPerWeek)
	for p1 := MaxDaysPerWeek; p1 >= 1; p1-- {
		pairs = append(pairs, DayPair{Parent1: p1})
	}
	return pairs
}
