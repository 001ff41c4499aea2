package calculation

import (
	"github.com/rgehrsitz/ccsgo/internal/domain"
)

// CalculationEngine bundles the calculators built from one rate schedule
type CalculationEngine struct {
	Schedule     *domain.RateSchedule
	IncomeCalc   *IncomeCalculator
	SubsidyCalc  *SubsidyRateCalculator
	ActivityCalc *ActivityTestCalculator
	RateCaps     *RateCapTable
	CostCalc     *CostCalculator
	Logger       Logger
	Debug        bool // Log per-child pricing at debug level
}

// NewCalculationEngine creates an engine over the default schedule
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithSchedule(domain.DefaultRateSchedule())
}

// NewCalculationEngineWithSchedule creates an engine over the given schedule.
// A nil schedule falls back to the defaults.
func NewCalculationEngineWithSchedule(schedule *domain.RateSchedule) *CalculationEngine {
	if schedule == nil {
		schedule = domain.DefaultRateSchedule()
	}
	return &CalculationEngine{
		Schedule:     schedule,
		IncomeCalc:   NewIncomeCalculator(schedule),
		SubsidyCalc:  NewSubsidyRateCalculator(schedule),
		ActivityCalc: NewActivityTestCalculator(schedule),
		RateCaps:     NewRateCapTable(schedule),
		CostCalc:     NewCostCalculator(schedule),
		Logger:       NopLogger{},
	}
}

// SetLogger sets the engine logger; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}
