package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of household input files
type InputParser struct {
	Schedule *domain.RateSchedule
}

// NewInputParser creates a new input parser that validates against the default schedule
func NewInputParser() *InputParser {
	return &InputParser{Schedule: domain.DefaultRateSchedule()}
}

// NewInputParserWithSchedule creates an input parser that validates against schedule
func NewInputParserWithSchedule(schedule *domain.RateSchedule) *InputParser {
	if schedule == nil {
		return NewInputParser()
	}
	return &InputParser{Schedule: schedule}
}

// LoadFromFile loads a household from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Household, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file %s: %w", ErrLoadConfig, filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a household document
func (ip *InputParser) Parse(data []byte) (*domain.Household, error) {
	var household domain.Household
	if err := yaml.Unmarshal(data, &household); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrLoadConfig, err)
	}

	if err := ip.Prepare(&household); err != nil {
		return nil, err
	}
	return &household, nil
}

// Prepare fills defaults into a household decoded elsewhere (an HTTP body, say) and validates it
func (ip *InputParser) Prepare(h *domain.Household) error {
	if h == nil {
		return fmt.Errorf("%w: household is required", ErrInvalidConfig)
	}
	ip.applyDefaults(h)
	return ip.ValidateHousehold(h)
}

// applyDefaults fills hours per day for earners that leave it out and normalizes care type spellings
func (ip *InputParser) applyDefaults(h *domain.Household) {
	fullDay := ip.Schedule.Income.FullTimeHours
	if h.Family.Parent1.HoursPerDay.IsZero() && h.Family.Parent1.Earns() {
		h.Family.Parent1.HoursPerDay = fullDay
	}
	if p2 := h.Family.Parent2; p2 != nil && p2.HoursPerDay.IsZero() && p2.Earns() {
		p2.HoursPerDay = fullDay
	}
	for i := range h.Children {
		if ct, err := domain.ParseCareType(string(h.Children[i].CareType)); err == nil {
			h.Children[i].CareType = ct
		}
	}
}

// ValidateHousehold validates a loaded household
func (ip *InputParser) ValidateHousehold(h *domain.Household) error {
	if err := ip.validateParent("parent1", &h.Family.Parent1); err != nil {
		return err
	}
	if h.Family.Parent2 != nil {
		if err := ip.validateParent("parent2", h.Family.Parent2); err != nil {
			return err
		}
	}

	if len(h.Children) == 0 {
		return fmt.Errorf("%w: at least one child is required", ErrInvalidConfig)
	}
	for i := range h.Children {
		if err := ip.validateChild(&h.Children[i]); err != nil {
			return fmt.Errorf("%w: child %d (%s): %w", ErrInvalidConfig, i+1, h.Children[i].Label(i), err)
		}
	}

	if h.WithholdingRate != nil {
		w := ip.Schedule.Withholding
		if h.WithholdingRate.LessThan(w.Min) || h.WithholdingRate.GreaterThan(w.Max) {
			return fmt.Errorf("%w: withholding_rate must be between %s and %s, got %s",
				ErrInvalidConfig, w.Min.String(), w.Max.String(), h.WithholdingRate.String())
		}
	}
	return nil
}

// validateParent validates a single parent
func (ip *InputParser) validateParent(field string, p *domain.Parent) error {
	limits := ip.Schedule.Validation
	if p.BaseIncome.IsNegative() {
		return fmt.Errorf("%w: %s.base_income cannot be negative", ErrInvalidConfig, field)
	}
	if p.HoursPerDay.IsNegative() || p.HoursPerDay.GreaterThan(limits.MaxHoursPerDay) {
		return fmt.Errorf("%w: %s.hours_per_day must be between 0 and %s", ErrInvalidConfig, field, limits.MaxHoursPerDay.String())
	}
	if p.Earns() && p.HoursPerDay.IsZero() {
		return fmt.Errorf("%w: %s.hours_per_day is required when base_income is set", ErrInvalidConfig, field)
	}
	if p.DaysPerWeek < 0 || p.DaysPerWeek > limits.MaxDaysPerWeek {
		return fmt.Errorf("%w: %s.days_per_week must be between 0 and %d", ErrInvalidConfig, field, limits.MaxDaysPerWeek)
	}
	return nil
}

// validateChild validates a single child
func (ip *InputParser) validateChild(c *domain.Child) error {
	limits := ip.Schedule.Validation
	if c.Age < 0 || c.Age > limits.MaxChildAge {
		return fmt.Errorf("age must be between 0 and %d", limits.MaxChildAge)
	}
	if !c.CareType.Valid() {
		return fmt.Errorf("unknown care_type %q", c.CareType)
	}
	if c.HourlyFee.IsNegative() {
		return fmt.Errorf("hourly_fee cannot be negative")
	}
	if c.WeeklyHours.IsNegative() || c.WeeklyHours.GreaterThan(limits.MaxWeeklyHours) {
		return fmt.Errorf("weekly_hours must be between 0 and %s", limits.MaxWeeklyHours.String())
	}
	return nil
}

// ParseDecimal parses an optional decimal flag or setting; empty input returns nil
func ParseDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidConfig, s)
	}
	return &d, nil
}
