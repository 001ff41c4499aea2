package scenario

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rgehrsitz/ccsgo/internal/calculation"
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func twoEarnerRequest() Request {
	return Request{
		Family: domain.FamilyProfile{
			Parent1: domain.Parent{BaseIncome: dec("100000"), HoursPerDay: dec("7.6")},
			Parent2: &domain.Parent{BaseIncome: dec("80000"), HoursPerDay: dec("7.6")},
		},
		Children: []domain.Child{
			{Name: "Ada", Age: 3, CareType: domain.CareTypeCentreBased, HourlyFee: dec("12.50"), WeeklyHours: dec("40")},
		},
	}
}

func singleEarnerRequest() Request {
	req := twoEarnerRequest()
	req.Family.Parent2 = nil
	return req
}

func findByName(t *testing.T, scenarios []domain.Scenario, name string) domain.Scenario {
	t.Helper()
	for _, s := range scenarios {
		if s.Name == name {
			return s
		}
	}
	require.FailNow(t, "scenario not found", name)
	return domain.Scenario{}
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debugf(string, ...any) {}
func (l *recordingLogger) Infof(string, ...any)  {}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(string, ...any) {}

type countingObserver struct {
	generated, dropped, batches int
}

func (o *countingObserver) ScenarioGenerated(string)             { o.generated++ }
func (o *countingObserver) ScenarioDropped(string)               { o.dropped++ }
func (o *countingObserver) BatchCompleted(string, time.Duration) { o.batches++ }

func TestGenerator_ExhaustiveTwoEarners(t *testing.T) {
	gen := NewGenerator(calculation.NewCalculationEngine())

	scenarios := gen.Exhaustive(twoEarnerRequest())
	require.Len(t, scenarios, 35)

	ids := make(map[string]bool)
	pairs := make(map[DayPair]bool)
	for _, s := range scenarios {
		assert.False(t, ids[s.ID], "duplicate id %s", s.ID)
		ids[s.ID] = true
		pair := DayPair{s.Parent1Days, s.Parent2Days}
		assert.False(t, pairs[pair], "duplicate pair %v", pair)
		pairs[pair] = true
		assert.NotEqual(t, DayPair{0, 0}, pair)
		assert.Equal(t, fmt.Sprintf("%d + %d days", s.Parent1Days, s.Parent2Days), s.Name)
		assert.False(t, s.Favorite)
		assert.False(t, s.Custom)
	}
}

func TestGenerator_SingleEarner(t *testing.T) {
	gen := NewGenerator(calculation.NewCalculationEngine())

	exhaustive := gen.Exhaustive(singleEarnerRequest())
	require.Len(t, exhaustive, 5)
	for i, s := range exhaustive {
		assert.Equal(t, 5-i, s.Parent1Days)
		assert.Equal(t, 0, s.Parent2Days)
		assert.Equal(t, fmt.Sprintf("%d days (single income)", s.Parent1Days), s.Name)
		assert.True(t, s.Parent2Income.IsZero())
		assert.True(t, s.SubsidisedHours.HoursPerWeek.Equal(dec("36")), "single earner stays on the base entitlement")
	}

	common := gen.Common(singleEarnerRequest())
	assert.Len(t, common, 5)

	zeroIncome := twoEarnerRequest()
	zeroIncome.Family.Parent2.BaseIncome = decimal.Zero
	assert.Len(t, gen.Exhaustive(zeroIncome), 5, "a parent with no income counts as single earner")
}

func TestGenerator_CommonOrder(t *testing.T) {
	gen := NewGenerator(calculation.NewCalculationEngine())

	scenarios := gen.Common(twoEarnerRequest())
	require.Len(t, scenarios, 10)

	expected := []string{
		"5 + 5 days", "5 + 4 days", "4 + 4 days", "5 + 3 days", "4 + 3 days",
		"3 + 3 days", "5 + 2 days", "5 + 0 days", "4 + 0 days", "3 + 0 days",
	}
	for i, s := range scenarios {
		assert.Equal(t, expected[i], s.Name)
	}
}

func TestGenerator_EndToEnd(t *testing.T) {
	gen := NewGenerator(calculation.NewCalculationEngine())

	s := findByName(t, gen.Common(twoEarnerRequest()), "5 + 5 days")

	assert.True(t, s.Parent1Income.Equal(dec("100000")))
	assert.True(t, s.Parent2Income.Equal(dec("80000")))
	assert.True(t, s.HouseholdIncome.Equal(dec("180000")))
	assert.True(t, s.SubsidisedHours.HoursPerFortnight.Equal(dec("100")))
	assert.True(t, s.SubsidisedHours.HoursPerWeek.Equal(dec("50")))

	require.Len(t, s.Children, 1)
	child := s.Children[0]
	assert.Equal(t, "Ada", child.ChildName)
	assert.Equal(t, domain.RateTrackStandard, child.RateTrack)
	assert.True(t, child.SubsidyRate.Equal(dec("72")), "rate %s", child.SubsidyRate)
	assert.True(t, child.SubsidyRate.GreaterThan(decimal.Zero) && child.SubsidyRate.LessThan(dec("90")))
	assert.True(t, child.EffectiveHourlyRate.Equal(dec("12.50")))
	assert.True(t, child.SubsidyPerHour.Equal(dec("9")))
	assert.True(t, child.HoursNeeded.Equal(dec("38")))
	assert.True(t, child.ActualHours.Equal(dec("38")))
	assert.True(t, child.HoursWithSubsidy.Equal(dec("38")))
	assert.True(t, child.HoursWithoutSubsidy.IsZero())
	assert.True(t, child.WeeklyGrossSubsidy.Equal(dec("342")))
	assert.True(t, child.WeeklyWithheld.Equal(dec("17.10")))
	assert.True(t, child.WeeklyPaidSubsidy.Equal(dec("324.90")))
	assert.True(t, child.WeeklyFullCost.Equal(dec("475")))
	assert.True(t, child.WeeklyOutOfPocket.Equal(child.HourlyFee.Mul(child.ActualHours).Sub(child.WeeklyPaidSubsidy)))

	assert.True(t, s.TotalWeeklySubsidy.Equal(dec("324.90")))
	assert.True(t, s.TotalWeeklyWithheld.Equal(dec("17.10")))
	assert.True(t, s.TotalWeeklyCost.Equal(dec("475")))
	assert.True(t, s.TotalWeeklyOutOfPocket.Equal(dec("150.10")))
	assert.True(t, s.AnnualSubsidy.Equal(dec("16894.80")))
	assert.True(t, s.AnnualCost.Equal(dec("24700")))
	assert.True(t, s.AnnualOutOfPocket.Equal(dec("7805.20")))
	assert.True(t, s.NetIncomeAfterChildcare.Equal(dec("172194.80")))
	assert.True(t, s.CostPercentage.Equal(dec("4.34")))
}

func TestGenerator_ScenarioInvariants(t *testing.T) {
	gen := NewGenerator(calculation.NewCalculationEngine())
	req := twoEarnerRequest()
	req.Children = append(req.Children,
		domain.Child{Age: 1, CareType: domain.CareTypeFamilyDayCare, HourlyFee: dec("15.20"), WeeklyHours: dec("30")},
		domain.Child{Age: 8, CareType: domain.CareTypeOSHC, HourlyFee: dec("11"), WeeklyHours: dec("15")},
	)

	scenarios := gen.Exhaustive(req)
	require.Len(t, scenarios, 35)

	for _, s := range scenarios {
		assert.True(t, s.NetIncomeAfterChildcare.Equal(s.HouseholdIncome.Sub(s.AnnualOutOfPocket)), s.Name)
		assert.True(t, s.AnnualOutOfPocket.Equal(s.TotalWeeklyOutOfPocket.Mul(dec("52")).Round(2)), s.Name)
		assert.True(t, s.AnnualSubsidy.Equal(s.TotalWeeklySubsidy.Mul(dec("52")).Round(2)), s.Name)
		assert.True(t, s.HouseholdIncome.Equal(s.Parent1Income.Add(s.Parent2Income)), s.Name)

		sumOOP := decimal.Zero
		for _, c := range s.Children {
			assert.True(t, c.WeeklyWithheld.Add(c.WeeklyPaidSubsidy).Equal(c.WeeklyGrossSubsidy), "%s %s", s.Name, c.ChildName)
			assert.True(t, c.WeeklyOutOfPocket.Equal(c.WeeklyFullCost.Sub(c.WeeklyPaidSubsidy)), "%s %s", s.Name, c.ChildName)
			assert.True(t, c.EffectiveHourlyRate.LessThanOrEqual(c.HourlyFee))
			assert.True(t, c.HoursWithSubsidy.LessThanOrEqual(s.SubsidisedHours.HoursPerWeek))
			assert.True(t, c.SubsidyRate.GreaterThanOrEqual(decimal.Zero) && c.SubsidyRate.LessThanOrEqual(dec("95")))
			sumOOP = sumOOP.Add(c.WeeklyOutOfPocket)
		}
		assert.True(t, sumOOP.Equal(s.TotalWeeklyOutOfPocket), s.Name)

		assert.Equal(t, domain.RateTrackHigher, s.Children[1].RateTrack, "younger sibling under six")
		assert.Equal(t, domain.RateTrackStandard, s.Children[2].RateTrack, "school age sibling")
	}
}

func TestGenerator_InHomeCareSharesCap(t *testing.T) {
	gen := NewGenerator(calculation.NewCalculationEngine())
	req := twoEarnerRequest()
	req.Children = []domain.Child{
		{Age: 4, CareType: domain.CareTypeInHomeCare, HourlyFee: dec("30"), WeeklyHours: dec("38")},
		{Age: 2, CareType: domain.CareTypeInHomeCare, HourlyFee: dec("30"), WeeklyHours: dec("38")},
	}

	s := gen.Custom(req, 5, 5)
	require.NotNil(t, s)
	require.Len(t, s.Children, 2)

	for _, c := range s.Children {
		assert.True(t, c.EffectiveHourlyRate.Equal(dec("19.90")), "got %s", c.EffectiveHourlyRate)
	}
	assert.True(t, s.Children[0].SubsidyRate.Equal(dec("72")))
	assert.True(t, s.Children[1].SubsidyRate.Equal(dec("80")))
}

func TestGenerator_WithholdingOverride(t *testing.T) {
	gen := NewGenerator(calculation.NewCalculationEngine())
	req := twoEarnerRequest()
	zero := decimal.Zero
	req.WithholdingRate = &zero

	s := findByName(t, gen.Common(req), "5 + 5 days")
	assert.True(t, s.TotalWeeklyWithheld.IsZero())
	assert.True(t, s.TotalWeeklySubsidy.Equal(dec("342")))
	assert.True(t, s.TotalWeeklyOutOfPocket.Equal(dec("133")))

	bad := dec("150")
	req.WithholdingRate = &bad
	batch, err := gen.Generate(context.Background(), ModeCommon, req)
	require.NoError(t, err)
	assert.Empty(t, batch.Scenarios)
	assert.Equal(t, 10, batch.Dropped)
}

func TestGenerator_DropsInvalidChildren(t *testing.T) {
	logger := &recordingLogger{}
	observer := &countingObserver{}
	gen := NewGenerator(calculation.NewCalculationEngine(), WithLogger(logger), WithObserver(observer))

	req := twoEarnerRequest()
	req.Children[0].CareType = domain.CareType("nanny")

	batch, err := gen.Generate(context.Background(), ModeExhaustive, req)
	require.NoError(t, err, "batch generation never fails for bad combinations")
	assert.NotNil(t, batch.Scenarios)
	assert.Empty(t, batch.Scenarios)
	assert.Equal(t, 35, batch.Dropped)
	require.Len(t, batch.Failures, 35)
	assert.Contains(t, batch.Failures[0].Reason, "unknown care type")
	assert.Len(t, logger.warns, 35)
	assert.Equal(t, 35, observer.dropped)
	assert.Equal(t, 1, observer.batches)

	req = twoEarnerRequest()
	req.Children[0].Age = 30
	assert.Empty(t, gen.Common(req))

	req = twoEarnerRequest()
	req.Children = nil
	assert.Empty(t, gen.Common(req))
}

type flakyPolicy struct{}

func (flakyPolicy) HoursNeeded(parent1, parent2 WorkPattern) decimal.Decimal {
	if parent1.Days == 3 {
		return dec("-1")
	}
	return OverlapPolicy{}.HoursNeeded(parent1, parent2)
}

func TestGenerator_PartialFailureKeepsTheRest(t *testing.T) {
	observer := &countingObserver{}
	gen := NewGenerator(calculation.NewCalculationEngine(), WithPolicy(flakyPolicy{}), WithObserver(observer))

	batch, err := gen.Generate(context.Background(), ModeExhaustive, twoEarnerRequest())
	require.NoError(t, err)
	assert.Len(t, batch.Scenarios, 29)
	assert.Equal(t, 6, batch.Dropped)
	assert.Equal(t, 29, observer.generated)
	for _, s := range batch.Scenarios {
		assert.NotEqual(t, 3, s.Parent1Days)
	}
	for _, f := range batch.Failures {
		assert.Equal(t, 3, f.Days.Parent1)
	}
}

func TestGenerator_Custom(t *testing.T) {
	gen := NewGenerator(calculation.NewCalculationEngine())
	req := twoEarnerRequest()

	custom := gen.Custom(req, 5, 3)
	require.NotNil(t, custom)
	assert.Equal(t, "5 + 3 days", custom.Name)
	assert.False(t, custom.Custom, "custom flag is owned by the caller")

	common := findByName(t, gen.Common(req), "5 + 3 days")
	assert.NotEqual(t, common.ID, custom.ID)
	assert.True(t, common.AnnualOutOfPocket.Equal(custom.AnnualOutOfPocket))

	again := gen.Custom(req, 5, 3)
	require.NotNil(t, again)
	assert.Equal(t, custom.ID, again.ID, "ids are deterministic")

	assert.Nil(t, gen.Custom(singleEarnerRequest(), 3, 2))
	assert.Nil(t, gen.Custom(req, 9, 2))
}

func TestGenerator_GenerateErrors(t *testing.T) {
	gen := NewGenerator(calculation.NewCalculationEngine())

	_, err := gen.Generate(context.Background(), Mode("random"), twoEarnerRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.Generate(ctx, ModeExhaustive, twoEarnerRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("Exhaustive")
	require.NoError(t, err)
	assert.Equal(t, ModeExhaustive, mode)

	mode, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeCommon, mode)

	_, err = ParseMode("custom")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
