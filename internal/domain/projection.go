package domain

import (
	"github.com/shopspring/decimal"
)

// SubsidisedHours is the activity test entitlement
type SubsidisedHours struct {
	HoursPerFortnight decimal.Decimal `json:"hoursPerFortnight"`
	HoursPerWeek      decimal.Decimal `json:"hoursPerWeek"`
}

// CostBreakdown is the weekly cost picture for one child in one scenario
type CostBreakdown struct {
	ChildIndex          int             `json:"childIndex"`
	ChildName           string          `json:"childName"`
	Age                 int             `json:"age"`
	CareType            CareType        `json:"careType"`
	RateTrack           RateTrack       `json:"rateTrack"`
	RevertedToStandard  bool            `json:"revertedToStandard,omitempty"`
	SubsidyRate         decimal.Decimal `json:"subsidyRate"` // Percent, 0-100
	HourlyFee           decimal.Decimal `json:"hourlyFee"`
	EffectiveHourlyRate decimal.Decimal `json:"effectiveHourlyRate"`
	SubsidyPerHour      decimal.Decimal `json:"subsidyPerHour"`
	HoursNeeded         decimal.Decimal `json:"hoursNeeded"`
	ActualHours         decimal.Decimal `json:"actualHours"`
	HoursWithSubsidy    decimal.Decimal `json:"hoursWithSubsidy"`
	HoursWithoutSubsidy decimal.Decimal `json:"hoursWithoutSubsidy"`
	WeeklyGrossSubsidy  decimal.Decimal `json:"weeklyGrossSubsidy"`
	WeeklyWithheld      decimal.Decimal `json:"weeklyWithheld"`
	WeeklyPaidSubsidy   decimal.Decimal `json:"weeklyPaidSubsidy"`
	WeeklyFullCost      decimal.Decimal `json:"weeklyFullCost"`
	WeeklyOutOfPocket   decimal.Decimal `json:"weeklyOutOfPocket"`
}

// Scenario is one enumerated work-day combination and its computed outcome.
// Favorite and Custom belong to the caller; nothing in the calculation reads them.
type Scenario struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Parent1Days int `json:"parent1Days"`
	Parent2Days int `json:"parent2Days"`

	Parent1Income   decimal.Decimal `json:"parent1Income"`
	Parent2Income   decimal.Decimal `json:"parent2Income"`
	HouseholdIncome decimal.Decimal `json:"householdIncome"`

	SubsidisedHours SubsidisedHours `json:"subsidisedHours"`
	Children        []CostBreakdown `json:"children"`

	TotalWeeklySubsidy     decimal.Decimal `json:"totalWeeklySubsidy"` // Paid subsidy after withholding
	TotalWeeklyWithheld    decimal.Decimal `json:"totalWeeklyWithheld"`
	TotalWeeklyCost        decimal.Decimal `json:"totalWeeklyCost"`
	TotalWeeklyOutOfPocket decimal.Decimal `json:"totalWeeklyOutOfPocket"`

	AnnualSubsidy     decimal.Decimal `json:"annualSubsidy"`
	AnnualWithheld    decimal.Decimal `json:"annualWithheld"`
	AnnualCost        decimal.Decimal `json:"annualCost"`
	AnnualOutOfPocket decimal.Decimal `json:"annualOutOfPocket"`

	NetIncomeAfterChildcare decimal.Decimal `json:"netIncomeAfterChildcare"`
	CostPercentage          decimal.Decimal `json:"costPercentage"`

	Favorite bool `json:"favorite"`
	Custom   bool `json:"custom"`
}

// TotalWorkDays is the combined number of days both parents work
func (s *Scenario) TotalWorkDays() int {
	return s.Parent1Days + s.Parent2Days
}

// Round2 rounds a currency or percentage value to cents
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
