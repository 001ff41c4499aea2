package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/ccsgo/internal/calculation"
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Mode selects which day combinations a batch enumerates
type Mode string

const (
	ModeExhaustive Mode = "exhaustive"
	ModeCommon     Mode = "common"
	ModeCustom     Mode = "custom"
)

// ParseMode converts a user-supplied mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeExhaustive, "all":
		return ModeExhaustive, nil
	case ModeCommon, "":
		return ModeCommon, nil
	}
	return "", domain.InvalidInputf("unknown generation mode %q (want exhaustive or common)", s)
}

var scenarioNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/rgehrsitz/ccsgo/scenario"))

// Request is the household payload for one generation call. Nothing in it is retained.
type Request struct {
	Family          domain.FamilyProfile `json:"family"`
	Children        []domain.Child       `json:"children"`
	WithholdingRate *decimal.Decimal     `json:"withholdingRate,omitempty"` // nil uses the schedule default
}

// RequestFromHousehold builds a request from a parsed input file
func RequestFromHousehold(h *domain.Household) Request {
	return Request{
		Family:          h.Family,
		Children:        h.Children,
		WithholdingRate: h.WithholdingRate,
	}
}

// Failure records one combination that could not be built
type Failure struct {
	Days   DayPair `json:"days"`
	Reason string  `json:"reason"`
}

// Batch is the outcome of one generation call. Scenarios holds only the combinations
// that built successfully, in enumeration order.
type Batch struct {
	Mode      Mode              `json:"mode"`
	Scenarios []domain.Scenario `json:"scenarios"`
	Dropped   int               `json:"dropped"`
	Failures  []Failure         `json:"failures,omitempty"`
}

// Observer receives generation events, typically for metrics
type Observer interface {
	ScenarioGenerated(mode string)
	ScenarioDropped(mode string)
	BatchCompleted(mode string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ScenarioGenerated(string)             {}
func (nopObserver) ScenarioDropped(string)               {}
func (nopObserver) BatchCompleted(string, time.Duration) {}

// Option configures a Generator
type Option func(*Generator)

// WithPolicy replaces the care-hours policy
func WithPolicy(p CareHoursPolicy) Option {
	return func(g *Generator) {
		if p != nil {
			g.policy = p
		}
	}
}

// WithObserver attaches an observer for generation events
func WithObserver(o Observer) Option {
	return func(g *Generator) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithLogger overrides the engine's logger for generation messages
func WithLogger(l calculation.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// Generator enumerates work-day combinations and prices each one
type Generator struct {
	engine   *calculation.CalculationEngine
	policy   CareHoursPolicy
	observer Observer
	logger   calculation.Logger
}

// NewGenerator creates a generator over the engine's rate schedule
func NewGenerator(engine *calculation.CalculationEngine, opts ...Option) *Generator {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	g := &Generator{
		engine:   engine,
		policy:   OverlapPolicy{},
		observer: nopObserver{},
		logger:   engine.Logger,
	}
	if g.logger == nil {
		g.logger = calculation.NopLogger{}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Engine returns the calculation engine the generator prices with
func (g *Generator) Engine() *calculation.CalculationEngine {
	return g.engine
}

// Exhaustive builds every day combination for the family
func (g *Generator) Exhaustive(req Request) []domain.Scenario {
	batch, _ := g.Generate(context.Background(), ModeExhaustive, req)
	return batch.Scenarios
}

// Common builds the curated subset of day combinations
func (g *Generator) Common(req Request) []domain.Scenario {
	batch, _ := g.Generate(context.Background(), ModeCommon, req)
	return batch.Scenarios
}

// Custom builds a single scenario for an arbitrary day pair. It returns nil when the
// combination cannot be built.
func (g *Generator) Custom(req Request, parent1Days, parent2Days int) *domain.Scenario {
	pair := DayPair{Parent1: parent1Days, Parent2: parent2Days}
	res := g.build(ModeCustom, req, pair)
	if res.err != nil {
		g.logger.Warnf("custom scenario dropped: %v", res.err)
		g.observer.ScenarioDropped(string(ModeCustom))
		return nil
	}
	g.observer.ScenarioGenerated(string(ModeCustom))
	return res.scenario
}

// Generate builds the scenarios for a mode. Individual combinations that fail are logged
// and left out of the batch; an error is returned only for an unknown mode or a cancelled
// context.
func (g *Generator) Generate(ctx context.Context, mode Mode, req Request) (Batch, error) {
	start := time.Now()
	single := req.Family.SingleEarner()

	var pairs []DayPair
	switch mode {
	case ModeExhaustive:
		pairs = ExhaustivePairs(single)
	case ModeCommon:
		pairs = CommonPairs(single)
	default:
		return Batch{Mode: mode}, domain.InvalidInputf("mode %q cannot be enumerated", mode)
	}

	batch := Batch{Mode: mode, Scenarios: make([]domain.Scenario, 0, len(pairs))}
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		res := g.build(mode, req, pair)
		if res.err != nil {
			g.logger.Warnf("%s scenario dropped: %v", mode, res.err)
			g.observer.ScenarioDropped(string(mode))
			batch.Dropped++
			batch.Failures = append(batch.Failures, Failure{Days: pair, Reason: res.err.Error()})
			continue
		}
		g.observer.ScenarioGenerated(string(mode))
		batch.Scenarios = append(batch.Scenarios, *res.scenario)
	}

	elapsed := time.Since(start)
	g.observer.BatchCompleted(string(mode), elapsed)
	g.logger.Debugf("generated %d %s scenarios (%d dropped) in %s", len(batch.Scenarios), mode, batch.Dropped, elapsed)
	return batch, nil
}

// result holds either a built scenario or the reason it could not be built
type result struct {
	scenario *domain.Scenario
	err      error
}

func (g *Generator) build(mode Mode, req Request, pair DayPair) result {
	s, err := g.buildScenario(mode, req, pair)
	if err != nil {
		return result{err: fmt.Errorf("days %d+%d: %w", pair.Parent1, pair.Parent2, err)}
	}
	return result{scenario: s}
}

func (g *Generator) buildScenario(mode Mode, req Request, pair DayPair) (*domain.Scenario, error) {
	eng := g.engine
	if len(req.Children) == 0 {
		return nil, domain.InvalidInputf("at least one child is required")
	}

	single := req.Family.SingleEarner()
	if single && pair.Parent2 != 0 {
		return nil, domain.InvalidInputf("single income family cannot have parent 2 working %d days", pair.Parent2)
	}

	p1 := req.Family.Parent1
	p1Income, err := eng.IncomeCalc.AdjustedIncome(p1.BaseIncome, pair.Parent1, p1.HoursPerDay)
	if err != nil {
		return nil, fmt.Errorf("parent 1 income: %w", err)
	}
	p1Fortnight, err := eng.ActivityCalc.FortnightlyHours(pair.Parent1, p1.HoursPerDay)
	if err != nil {
		return nil, fmt.Errorf("parent 1 hours: %w", err)
	}
	p1Pattern := WorkPattern{Days: pair.Parent1, HoursPerDay: p1.HoursPerDay}

	p2Income := decimal.Zero
	p2Fortnight := decimal.Zero
	p2Pattern := WorkPattern{}
	if p2 := req.Family.Parent2; p2 != nil {
		p2Income, err = eng.IncomeCalc.AdjustedIncome(p2.BaseIncome, pair.Parent2, p2.HoursPerDay)
		if err != nil {
			return nil, fmt.Errorf("parent 2 income: %w", err)
		}
		p2Fortnight, err = eng.ActivityCalc.FortnightlyHours(pair.Parent2, p2.HoursPerDay)
		if err != nil {
			return nil, fmt.Errorf("parent 2 hours: %w", err)
		}
		p2Pattern = WorkPattern{Days: pair.Parent2, HoursPerDay: p2.HoursPerDay}
	}
	p1Income = domain.Round2(p1Income)
	p2Income = domain.Round2(p2Income)

	household, err := eng.IncomeCalc.HouseholdIncome(p1Income, p2Income)
	if err != nil {
		return nil, err
	}
	entitlement, err := eng.ActivityCalc.SubsidisedHours(p1Fortnight, p2Fortnight)
	if err != nil {
		return nil, err
	}
	hoursNeeded := g.policy.HoursNeeded(p1Pattern, p2Pattern)

	s := &domain.Scenario{
		ID:              scenarioID(mode, pair),
		Name:            scenarioName(pair, single),
		Parent1Days:     pair.Parent1,
		Parent2Days:     pair.Parent2,
		Parent1Income:   p1Income,
		Parent2Income:   p2Income,
		HouseholdIncome: household,
		SubsidisedHours: entitlement,
		Children:        make([]domain.CostBreakdown, 0, len(req.Children)),
	}

	tracks := eng.SubsidyCalc.AssignTracks(req.Children)
	sharing := make(map[domain.CareType]int)
	for _, child := range req.Children {
		sharing[child.CareType]++
	}

	for i, child := range req.Children {
		breakdown, err := g.priceChild(i, child, tracks[i], sharing[child.CareType], household, hoursNeeded, entitlement, req.WithholdingRate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", child.Label(i), err)
		}
		s.Children = append(s.Children, breakdown)

		s.TotalWeeklySubsidy = s.TotalWeeklySubsidy.Add(breakdown.WeeklyPaidSubsidy)
		s.TotalWeeklyWithheld = s.TotalWeeklyWithheld.Add(breakdown.WeeklyWithheld)
		s.TotalWeeklyCost = s.TotalWeeklyCost.Add(breakdown.WeeklyFullCost)
		s.TotalWeeklyOutOfPocket = s.TotalWeeklyOutOfPocket.Add(breakdown.WeeklyOutOfPocket)
	}

	if err := g.annualize(s); err != nil {
		return nil, err
	}
	s.NetIncomeAfterChildcare = household.Sub(s.AnnualOutOfPocket)
	s.CostPercentage = eng.CostCalc.CostPercentage(s.AnnualOutOfPocket, household)
	return s, nil
}

func (g *Generator) priceChild(index int, child domain.Child, track domain.RateTrack, sharing int, household, hoursNeeded decimal.Decimal, entitlement domain.SubsidisedHours, withholding *decimal.Decimal) (domain.CostBreakdown, error) {
	eng := g.engine

	if child.WeeklyHours.IsNegative() {
		return domain.CostBreakdown{}, domain.InvalidInputf("weekly hours cannot be negative, got %s", child.WeeklyHours.String())
	}

	rate, err := eng.SubsidyCalc.RateForChild(household, track)
	if err != nil {
		return domain.CostBreakdown{}, err
	}
	effective, err := eng.RateCaps.EffectiveHourlyRateShared(child.HourlyFee, child.CareType, child.Age, sharing)
	if err != nil {
		return domain.CostBreakdown{}, err
	}
	perHour, err := eng.CostCalc.SubsidyPerHour(rate.Rate, effective)
	if err != nil {
		return domain.CostBreakdown{}, err
	}

	// Zero weekly hours means the child attends whenever care is needed.
	actual := hoursNeeded
	if child.WeeklyHours.IsPositive() {
		actual = decimal.Min(child.WeeklyHours, hoursNeeded)
	}
	subsidised := decimal.Min(hoursNeeded, entitlement.HoursPerWeek)

	costs, err := eng.CostCalc.WeeklyCosts(calculation.WeeklyCostInput{
		SubsidyPerHour:  perHour,
		ProviderFee:     child.HourlyFee,
		SubsidisedHours: subsidised,
		ActualHours:     actual,
		WithholdingRate: withholding,
	})
	if err != nil {
		return domain.CostBreakdown{}, err
	}

	if eng.Debug {
		g.logger.Debugf("%s: %s rate %s%% on $%s/h, %s of %s hours subsidised, out of pocket $%s/wk",
			child.Label(index), rate.Track, rate.Rate.String(), effective.StringFixed(2),
			costs.HoursWithSubsidy.String(), actual.String(), costs.OutOfPocket.StringFixed(2))
	}

	return domain.CostBreakdown{
		ChildIndex:          index,
		ChildName:           child.Label(index),
		Age:                 child.Age,
		CareType:            child.CareType,
		RateTrack:           rate.Track,
		RevertedToStandard:  rate.Reverted,
		SubsidyRate:         rate.Rate,
		HourlyFee:           child.HourlyFee,
		EffectiveHourlyRate: effective,
		SubsidyPerHour:      domain.Round2(perHour),
		HoursNeeded:         hoursNeeded,
		ActualHours:         actual,
		HoursWithSubsidy:    costs.HoursWithSubsidy,
		HoursWithoutSubsidy: costs.HoursWithoutSubsidy,
		WeeklyGrossSubsidy:  costs.GrossSubsidy,
		WeeklyWithheld:      costs.Withheld,
		WeeklyPaidSubsidy:   costs.PaidSubsidy,
		WeeklyFullCost:      costs.FullCost,
		WeeklyOutOfPocket:   costs.OutOfPocket,
	}, nil
}

func (g *Generator) annualize(s *domain.Scenario) error {
	cc := g.engine.CostCalc
	var err error
	if s.AnnualSubsidy, err = cc.Annualize(s.TotalWeeklySubsidy); err != nil {
		return err
	}
	if s.AnnualWithheld, err = cc.Annualize(s.TotalWeeklyWithheld); err != nil {
		return err
	}
	if s.AnnualCost, err = cc.Annualize(s.TotalWeeklyCost); err != nil {
		return err
	}
	if s.AnnualOutOfPocket, err = cc.Annualize(s.TotalWeeklyOutOfPocket); err != nil {
		return err
	}
	return nil
}

func scenarioID(mode Mode, pair DayPair) string {
	return uuid.NewSHA1(scenarioNamespace, []byte(fmt.Sprintf("%s/%d+%d", mode, pair.Parent1, pair.Parent2))).String()
}

func scenarioName(pair DayPair, single bool) string {
	if single {
		return fmt.Sprintf("%d days (single income)", pair.Parent1)
	}
	return fmt.Sprintf("%d + %d days", pair.Parent1, pair.Parent2)
}
