package calculation

import (
	"testing"

	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSubsidyRateCalculator_StandardRate(t *testing.T) {
	calc := NewSubsidyRateCalculator(domain.DefaultRateSchedule())

	tests := []struct {
		name     string
		income   int64
		expected int64
	}{
		{"zero income", 0, 90},
		{"low income", 50000, 90},
		{"at max 90 threshold", 85279, 90},
		{"one dollar over threshold", 85280, 90},
		{"just under first increment", 90278, 90},
		{"first full increment", 90279, 89},
		{"example household", 180000, 72},
		{"mid taper", 300000, 48},
		{"last non-zero bracket", 535278, 1},
		{"zero threshold", 535279, 0},
		{"very high income", 1000000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := calc.StandardRate(d(tt.income))
			require.NoError(t, err)
			assert.True(t, rate.Equal(d(tt.expected)), "income %d: expected %d%%, got %s%%", tt.income, tt.expected, rate)
		})
	}
}

func TestSubsidyRateCalculator_StandardRateIsNinetyUpToThreshold(t *testing.T) {
	calc := NewSubsidyRateCalculator(domain.DefaultRateSchedule())

	for income := int64(0); income <= 85279; income += 1297 {
		rate, err := calc.StandardRate(d(income))
		require.NoError(t, err)
		assert.True(t, rate.Equal(d(90)), "income %d", income)
	}
}

func TestSubsidyRateCalculator_StandardRateIsMonotonic(t *testing.T) {
	calc := NewSubsidyRateCalculator(domain.DefaultRateSchedule())

	previous := d(90)
	for income := int64(80000); income <= 600000; income += 2500 {
		rate, err := calc.StandardRate(d(income))
		require.NoError(t, err)
		assert.True(t, rate.LessThanOrEqual(previous), "rate rose at income %d", income)
		assert.True(t, rate.GreaterThanOrEqual(decimal.Zero))
		previous = rate
	}
}

func TestSubsidyRateCalculator_HigherRate(t *testing.T) {
	calc := NewSubsidyRateCalculator(domain.DefaultRateSchedule())

	tests := []struct {
		name     string
		income   int64
		expected int64
		reverted bool
	}{
		{"low income", 60000, 95, false},
		{"at max 95 threshold", 85279, 95, false},
		{"band 1 before first step", 88278, 95, false},
		{"band 1 first step", 88279, 94, false},
		{"band 1 end", 130279, 80, false},
		{"band 2 start", 130280, 80, false},
		{"band 2 end", 220279, 80, false},
		{"band 3 first step", 223279, 79, false},
		{"band 3 middle", 265279, 65, false},
		{"band 3 end", 310279, 50, false},
		{"band 4", 340000, 50, false},
		{"band 4 end", 367562, 50, false},
		{"reversion threshold", 367563, 34, true},
		{"well above reversion", 500000, 8, true},
		{"above zero threshold", 600000, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.HigherRate(d(tt.income))
			require.NoError(t, err)
			assert.True(t, result.Rate.Equal(d(tt.expected)), "income %d: expected %d%%, got %s%%", tt.income, tt.expected, result.Rate)
			assert.Equal(t, tt.reverted, result.Reverted)
			assert.Equal(t, domain.RateTrackHigher, result.Track)
		})
	}
}

func TestSubsidyRateCalculator_HigherRateRevertsToStandard(t *testing.T) {
	calc := NewSubsidyRateCalculator(domain.DefaultRateSchedule())

	for income := int64(367563); income <= 700000; income += 4111 {
		higher, err := calc.HigherRate(d(income))
		require.NoError(t, err)
		standard, err := calc.StandardRate(d(income))
		require.NoError(t, err)
		assert.True(t, higher.Rate.Equal(standard), "income %d: higher %s != standard %s", income, higher.Rate, standard)
		assert.True(t, higher.Reverted)
	}
}

func TestSubsidyRateCalculator_RatesStayInRange(t *testing.T) {
	calc := NewSubsidyRateCalculator(domain.DefaultRateSchedule())

	for income := int64(0); income <= 800000; income += 997 {
		higher, err := calc.HigherRate(d(income))
		require.NoError(t, err)
		assert.True(t, higher.Rate.GreaterThanOrEqual(decimal.Zero) && higher.Rate.LessThanOrEqual(d(95)), "income %d", income)
	}
}

func TestSubsidyRateCalculator_NegativeIncome(t *testing.T) {
	calc := NewSubsidyRateCalculator(domain.DefaultRateSchedule())

	_, err := calc.StandardRate(d(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = calc.HigherRate(d(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubsidyRateCalculator_RateForChild(t *testing.T) {
	calc := NewSubsidyRateCalculator(domain.DefaultRateSchedule())

	standard, err := calc.RateForChild(d(100000), domain.RateTrackStandard)
	require.NoError(t, err)
	assert.True(t, standard.Rate.Equal(d(88)))
	assert.Equal(t, domain.RateTrackStandard, standard.Track)

	higher, err := calc.RateForChild(d(100000), domain.RateTrackHigher)
	require.NoError(t, err)
	assert.True(t, higher.Rate.Equal(d(91)))

	_, err = calc.RateForChild(d(100000), domain.RateTrack("bogus"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubsidyRateCalculator_AssignTracks(t *testing.T) {
	calc := NewSubsidyRateCalculator(domain.DefaultRateSchedule())

	tests := []struct {
		name     string
		ages     []int
		expected []domain.RateTrack
	}{
		{"only child", []int{3}, []domain.RateTrack{domain.RateTrackStandard}},
		{"two under six", []int{1, 4}, []domain.RateTrack{domain.RateTrackHigher, domain.RateTrackStandard}},
		{"school age sibling", []int{8, 2}, []domain.RateTrack{domain.RateTrackStandard, domain.RateTrackStandard}},
		{"three under six", []int{5, 3, 0}, []domain.RateTrack{domain.RateTrackStandard, domain.RateTrackHigher, domain.RateTrackHigher}},
		{"twins take first in order", []int{2, 2}, []domain.RateTrack{domain.RateTrackStandard, domain.RateTrackHigher}},
		{"mixed ages", []int{7, 1, 4, 10}, []domain.RateTrack{domain.RateTrackStandard, domain.RateTrackHigher, domain.RateTrackStandard, domain.RateTrackStandard}},
		{"all school age", []int{6, 9}, []domain.RateTrack{domain.RateTrackStandard, domain.RateTrackStandard}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			children := make([]domain.Child, len(tt.ages))
			for i, age := range tt.ages {
				children[i] = domain.Child{Age: age}
			}
			assert.Equal(t, tt.expected, calc.AssignTracks(children))
		})
	}
}
