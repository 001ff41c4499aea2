package calculation

import (
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// WeeklyCostInput carries one child's weekly pricing inputs
type WeeklyCostInput struct {
	SubsidyPerHour  decimal.Decimal
	ProviderFee     decimal.Decimal
	SubsidisedHours decimal.Decimal
	ActualHours     decimal.Decimal
	WithholdingRate *decimal.Decimal // nil uses the schedule default
}

// WeeklyCosts is the weekly cost picture for one child. Currency values are rounded to cents.
type WeeklyCosts struct {
	HoursWithSubsidy    decimal.Decimal
	HoursWithoutSubsidy decimal.Decimal
	GrossSubsidy        decimal.Decimal
	Withheld            decimal.Decimal
	PaidSubsidy         decimal.Decimal
	FullCost            decimal.Decimal
	OutOfPocket         decimal.Decimal
}

// CostCalculator turns subsidy rates and hours into weekly and annual costs
type CostCalculator struct {
	Withholding  domain.WithholdingRules
	WeeksPerYear int
}

// NewCostCalculator creates a cost calculator from the schedule
func NewCostCalculator(schedule *domain.RateSchedule) *CostCalculator {
	return &CostCalculator{
		Withholding:  schedule.Withholding,
		WeeksPerYear: schedule.WeeksPerYear,
	}
}

// SubsidyPerHour is rate% of the effective hourly rate
func (cc *CostCalculator) SubsidyPerHour(ratePercent, effectiveRate decimal.Decimal) (decimal.Decimal, error) {
	if ratePercent.IsNegative() || ratePercent.GreaterThan(hundred) {
		return decimal.Zero, domain.InvalidInputf("subsidy rate must be between 0 and 100, got %s", ratePercent.String())
	}
	if effectiveRate.IsNegative() {
		return decimal.Zero, domain.InvalidInputf("effective hourly rate cannot be negative, got %s", effectiveRate.String())
	}
	return ratePercent.Div(hundred).Mul(effectiveRate), nil
}

// WeeklyCosts prices one child's week. Out-of-pocket is not clamped at zero.
func (cc *CostCalculator) WeeklyCosts(in WeeklyCostInput) (WeeklyCosts, error) {
	if in.SubsidyPerHour.IsNegative() {
		return WeeklyCosts{}, domain.InvalidInputf("subsidy per hour cannot be negative, got %s", in.SubsidyPerHour.String())
	}
	if in.ProviderFee.IsNegative() {
		return WeeklyCosts{}, domain.InvalidInputf("provider fee cannot be negative, got %s", in.ProviderFee.String())
	}
	if in.SubsidisedHours.IsNegative() || in.ActualHours.IsNegative() {
		return WeeklyCosts{}, domain.InvalidInputf("hours cannot be negative, got %s subsidised and %s actual", in.SubsidisedHours.String(), in.ActualHours.String())
	}

	withholdingRate := cc.Withholding.Default
	if in.WithholdingRate != nil {
		withholdingRate = *in.WithholdingRate
	}

	hoursWithSubsidy := decimal.Min(in.ActualHours, in.SubsidisedHours)
	hoursWithoutSubsidy := decimal.Max(decimal.Zero, in.ActualHours.Sub(in.SubsidisedHours))

	gross := in.SubsidyPerHour.Mul(hoursWithSubsidy)
	withheld, paid, err := cc.ApplyWithholding(gross, withholdingRate)
	if err != nil {
		return WeeklyCosts{}, err
	}

	fullCost := domain.Round2(in.ProviderFee.Mul(in.ActualHours))

	return WeeklyCosts{
		HoursWithSubsidy:    hoursWithSubsidy,
		HoursWithoutSubsidy: hoursWithoutSubsidy,
		GrossSubsidy:        withheld.Add(paid),
		Withheld:            withheld,
		PaidSubsidy:         paid,
		FullCost:            fullCost,
		OutOfPocket:         fullCost.Sub(paid),
	}, nil
}

// ApplyWithholding splits gross subsidy into the withheld and paid parts. Gross is rounded
// to cents first and paid takes the remainder, so withheld + paid equals the rounded gross.
func (cc *CostCalculator) ApplyWithholding(gross, withholdingRate decimal.Decimal) (withheld, paid decimal.Decimal, err error) {
	if gross.IsNegative() {
		return decimal.Zero, decimal.Zero, domain.InvalidInputf("gross subsidy cannot be negative, got %s", gross.String())
	}
	if withholdingRate.LessThan(cc.Withholding.Min) || withholdingRate.GreaterThan(cc.Withholding.Max) {
		return decimal.Zero, decimal.Zero, domain.InvalidInputf("withholding rate must be between %s and %s, got %s",
			cc.Withholding.Min.String(), cc.Withholding.Max.String(), withholdingRate.String())
	}

	grossCents := domain.Round2(gross)
	withheld = domain.Round2(grossCents.Mul(withholdingRate).Div(hundred))
	paid = grossCents.Sub(withheld)
	return withheld, paid, nil
}

// Annualize multiplies a weekly amount by the schedule's weeks per year
func (cc *CostCalculator) Annualize(weekly decimal.Decimal) (decimal.Decimal, error) {
	return cc.AnnualizeOver(weekly, cc.WeeksPerYear)
}

// AnnualizeOver multiplies a weekly amount by weeksPerYear, rounded to cents
func (cc *CostCalculator) AnnualizeOver(weekly decimal.Decimal, weeksPerYear int) (decimal.Decimal, error) {
	if weeksPerYear <= 0 {
		return decimal.Zero, domain.InvalidInputf("weeks per year must be positive, got %d", weeksPerYear)
	}
	return domain.Round2(weekly.Mul(decimal.NewFromInt(int64(weeksPerYear)))), nil
}

// NetIncome is household income less annual out-of-pocket, floored at zero for display.
// Scenario records keep the unclamped difference.
func (cc *CostCalculator) NetIncome(householdIncome, annualOutOfPocket decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, householdIncome.Sub(annualOutOfPocket))
}

// CostPercentage is annual out-of-pocket as a percentage of household income. It may exceed 100.
func (cc *CostCalculator) CostPercentage(annualOutOfPocket, householdIncome decimal.Decimal) decimal.Decimal {
	if !householdIncome.IsPositive() {
		return decimal.Zero
	}
	return domain.Round2(annualOutOfPocket.Div(householdIncome).Mul(hundred))
}
