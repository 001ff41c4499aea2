package domain

import (
	"github.com/shopspring/decimal"
)

// RateSchedule contains the government thresholds, caps and defaults the calculators read.
// It is built once at startup (DefaultRateSchedule, optionally overlaid from rates.yaml)
// and shared read-only afterwards.
type RateSchedule struct {
	Metadata     ScheduleMetadata  `yaml:"metadata" json:"metadata"`
	Standard     StandardRateRules `yaml:"standard" json:"standard"`
	Higher       HigherRateRules   `yaml:"higher" json:"higher"`
	ActivityTest ActivityTestRules `yaml:"activity_test" json:"activityTest"`
	RateCaps     RateCapRules      `yaml:"rate_caps" json:"rateCaps"`
	Withholding  WithholdingRules  `yaml:"withholding" json:"withholding"`
	Income       IncomeRules       `yaml:"income" json:"income"`
	Validation   ValidationLimits  `yaml:"validation" json:"validation"`
	WeeksPerYear int               `yaml:"weeks_per_year" json:"weeksPerYear"`
}

// ScheduleMetadata describes which financial year the figures belong to
type ScheduleMetadata struct {
	FinancialYear string `yaml:"financial_year" json:"financialYear"`
	Description   string `yaml:"description" json:"description"`
}

// StandardRateRules is the 90% track with a 1% taper per increment above Max90Percent
type StandardRateRules struct {
	MaxRate        decimal.Decimal `yaml:"max_rate" json:"maxRate"`
	Max90Percent   decimal.Decimal `yaml:"max_90_percent" json:"max90Percent"`     // Income at or below gets MaxRate
	MinZeroPercent decimal.Decimal `yaml:"min_zero_percent" json:"minZeroPercent"` // Income at or above gets 0%
	TaperIncrement decimal.Decimal `yaml:"taper_increment" json:"taperIncrement"`
}

// HigherRateBand is one income band of the higher rate track. Above is exclusive,
// UpTo inclusive. StartRate == EndRate marks a flat band.
type HigherRateBand struct {
	Above     decimal.Decimal `yaml:"above" json:"above"`
	UpTo      decimal.Decimal `yaml:"up_to" json:"upTo"`
	StartRate decimal.Decimal `yaml:"start_rate" json:"startRate"`
	EndRate   decimal.Decimal `yaml:"end_rate" json:"endRate"`
}

// Flat reports whether the band pays a single rate
func (b HigherRateBand) Flat() bool {
	return b.StartRate.Equal(b.EndRate)
}

// HigherRateRules is the younger-sibling track
type HigherRateRules struct {
	MaxRate          decimal.Decimal  `yaml:"max_rate" json:"maxRate"`
	Max95Percent     decimal.Decimal  `yaml:"max_95_percent" json:"max95Percent"`
	TaperIncrement   decimal.Decimal  `yaml:"taper_increment" json:"taperIncrement"`
	Bands            []HigherRateBand `yaml:"bands" json:"bands"`
	RevertToStandard decimal.Decimal  `yaml:"revert_to_standard" json:"revertToStandard"` // At or above, the standard formula applies
	MaxChildAge      int              `yaml:"max_child_age" json:"maxChildAge"`           // Children at or below this age split into eldest (standard) and younger (higher)
}

// ActivityTestRules maps parents' fortnightly hours to subsidised hours
type ActivityTestRules struct {
	HigherActivityThreshold decimal.Decimal `yaml:"higher_activity_threshold" json:"higherActivityThreshold"`
	BaseHoursPerFortnight   decimal.Decimal `yaml:"base_hours_per_fortnight" json:"baseHoursPerFortnight"`
	BaseHoursPerWeek        decimal.Decimal `yaml:"base_hours_per_week" json:"baseHoursPerWeek"`
	HigherHoursPerFortnight decimal.Decimal `yaml:"higher_hours_per_fortnight" json:"higherHoursPerFortnight"`
	HigherHoursPerWeek      decimal.Decimal `yaml:"higher_hours_per_week" json:"higherHoursPerWeek"`
}

// HourlyCap holds a care type's cap, optionally split by age category
type HourlyCap struct {
	NonSchoolAge decimal.Decimal `yaml:"non_school_age" json:"nonSchoolAge"`
	SchoolAge    decimal.Decimal `yaml:"school_age" json:"schoolAge"`
}

// RateCapRules holds the hourly fee caps per care type
type RateCapRules struct {
	SchoolAgeThreshold int                    `yaml:"school_age_threshold" json:"schoolAgeThreshold"`
	Caps               map[CareType]HourlyCap `yaml:"caps" json:"caps"`
}

// WithholdingRules bounds the percentage of subsidy retained until reconciliation
type WithholdingRules struct {
	Default decimal.Decimal `yaml:"default" json:"default"`
	Min     decimal.Decimal `yaml:"min" json:"min"`
	Max     decimal.Decimal `yaml:"max" json:"max"`
}

// IncomeRules holds the full-time baseline used to pro-rate base income
type IncomeRules struct {
	FullTimeDays  decimal.Decimal `yaml:"full_time_days" json:"fullTimeDays"`
	FullTimeHours decimal.Decimal `yaml:"full_time_hours" json:"fullTimeHours"`
}

// ValidationLimits are the defensive range checks applied to caller input
type ValidationLimits struct {
	MaxDaysPerWeek int             `yaml:"max_days_per_week" json:"maxDaysPerWeek"`
	MaxHoursPerDay decimal.Decimal `yaml:"max_hours_per_day" json:"maxHoursPerDay"`
	MaxChildAge    int             `yaml:"max_child_age" json:"maxChildAge"`
	MaxWeeklyHours decimal.Decimal `yaml:"max_weekly_hours" json:"maxWeeklyHours"`
}

// DefaultRateSchedule returns the 2025-26 figures
func DefaultRateSchedule() *RateSchedule {
	return &RateSchedule{
		Metadata: ScheduleMetadata{
			FinancialYear: "2025-26",
			Description:   "Child Care Subsidy income thresholds and hourly rate caps",
		},
		Standard: StandardRateRules{
			MaxRate:        decimal.NewFromInt(90),
			Max90Percent:   decimal.NewFromInt(85279),
			MinZeroPercent: decimal.NewFromInt(535279),
			TaperIncrement: decimal.NewFromInt(5000),
		},
		Higher: HigherRateRules{
			MaxRate:        decimal.NewFromInt(95),
			Max95Percent:   decimal.NewFromInt(85279),
			TaperIncrement: decimal.NewFromInt(3000),
			Bands: []HigherRateBand{
				{Above: decimal.NewFromInt(85279), UpTo: decimal.NewFromInt(130279), StartRate: decimal.NewFromInt(95), EndRate: decimal.NewFromInt(80)},
				{Above: decimal.NewFromInt(130279), UpTo: decimal.NewFromInt(220279), StartRate: decimal.NewFromInt(80), EndRate: decimal.NewFromInt(80)},
				{Above: decimal.NewFromInt(220279), UpTo: decimal.NewFromInt(310279), StartRate: decimal.NewFromInt(80), EndRate: decimal.NewFromInt(50)},
				{Above: decimal.NewFromInt(310279), UpTo: decimal.NewFromInt(367562), StartRate: decimal.NewFromInt(50), EndRate: decimal.NewFromInt(50)},
			},
			RevertToStandard: decimal.NewFromInt(367563),
			MaxChildAge:      5,
		},
		ActivityTest: ActivityTestRules{
			HigherActivityThreshold: decimal.NewFromInt(48),
			BaseHoursPerFortnight:   decimal.NewFromInt(72),
			BaseHoursPerWeek:        decimal.NewFromInt(36),
			HigherHoursPerFortnight: decimal.NewFromInt(100),
			HigherHoursPerWeek:      decimal.NewFromInt(50),
		},
		RateCaps: RateCapRules{
			SchoolAgeThreshold: 6,
			Caps: map[CareType]HourlyCap{
				CareTypeCentreBased:   {NonSchoolAge: decimal.RequireFromString("14.63"), SchoolAge: decimal.RequireFromString("12.81")},
				CareTypeOSHC:          {NonSchoolAge: decimal.RequireFromString("14.63"), SchoolAge: decimal.RequireFromString("12.81")},
				CareTypeFamilyDayCare: {NonSchoolAge: decimal.RequireFromString("13.56"), SchoolAge: decimal.RequireFromString("13.56")},
				CareTypeInHomeCare:    {NonSchoolAge: decimal.RequireFromString("39.80"), SchoolAge: decimal.RequireFromString("39.80")},
			},
		},
		Withholding: WithholdingRules{
			Default: decimal.NewFromInt(5),
			Min:     decimal.Zero,
			Max:     decimal.NewFromInt(100),
		},
		Income: IncomeRules{
			FullTimeDays:  decimal.NewFromInt(5),
			FullTimeHours: decimal.RequireFromString("7.6"),
		},
		Validation: ValidationLimits{
			MaxDaysPerWeek: 7,
			MaxHoursPerDay: decimal.NewFromInt(24),
			MaxChildAge:    18,
			MaxWeeklyHours: decimal.NewFromInt(168),
		},
		WeeksPerYear: 52,
	}
}
