package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var hundred = decimal.NewFromInt(100)

// LoadRateSchedule overlays a YAML rate file on the default schedule. An empty path
// returns the defaults. Keys missing from the file keep their default values; a care
// type listed under rate_caps.caps replaces that care type's caps entirely, and
// higher.bands replaces the whole band list.
func LoadRateSchedule(path string) (*domain.RateSchedule, error) {
	if path == "" {
		return domain.DefaultRateSchedule(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read rate schedule %s: %w", ErrLoadConfig, path, err)
	}
	return ParseRateSchedule(data)
}

// ParseRateSchedule decodes a rate schedule document over the defaults and validates it
func ParseRateSchedule(data []byte) (*domain.RateSchedule, error) {
	schedule := domain.DefaultRateSchedule()
	if err := yaml.Unmarshal(data, schedule); err != nil {
		return nil, fmt.Errorf("%w: failed to parse rate schedule: %w", ErrLoadConfig, err)
	}
	if err := ValidateRateSchedule(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// ValidateRateSchedule checks the schedule is internally consistent
func ValidateRateSchedule(s *domain.RateSchedule) error {
	if err := validateStandard(s.Standard); err != nil {
		return fmt.Errorf("%w: standard: %w", ErrInvalidConfig, err)
	}
	if err := validateHigher(s.Higher); err != nil {
		return fmt.Errorf("%w: higher: %w", ErrInvalidConfig, err)
	}
	if err := validateActivity(s.ActivityTest); err != nil {
		return fmt.Errorf("%w: activity_test: %w", ErrInvalidConfig, err)
	}
	if err := validateCaps(s.RateCaps); err != nil {
		return fmt.Errorf("%w: rate_caps: %w", ErrInvalidConfig, err)
	}

	w := s.Withholding
	if w.Min.IsNegative() || w.Max.GreaterThan(hundred) || w.Min.GreaterThan(w.Max) ||
		w.Default.LessThan(w.Min) || w.Default.GreaterThan(w.Max) {
		return fmt.Errorf("%w: withholding: need 0 <= min <= default <= max <= 100", ErrInvalidConfig)
	}

	if !s.Income.FullTimeDays.IsPositive() || !s.Income.FullTimeHours.IsPositive() {
		return fmt.Errorf("%w: income: full time days and hours must be positive", ErrInvalidConfig)
	}
	if s.WeeksPerYear < 1 || s.WeeksPerYear > 53 {
		return fmt.Errorf("%w: weeks_per_year must be between 1 and 53", ErrInvalidConfig)
	}

	v := s.Validation
	if v.MaxDaysPerWeek < 1 || v.MaxDaysPerWeek > 7 || !v.MaxHoursPerDay.IsPositive() ||
		v.MaxChildAge < 1 || !v.MaxWeeklyHours.IsPositive() {
		return fmt.Errorf("%w: validation limits must be positive", ErrInvalidConfig)
	}
	return nil
}

func validRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(hundred)
}

func validateStandard(r domain.StandardRateRules) error {
	if !validRate(r.MaxRate) {
		return fmt.Errorf("max_rate must be between 0 and 100")
	}
	if !r.TaperIncrement.IsPositive() {
		return fmt.Errorf("taper_increment must be positive")
	}
	if !r.Max90Percent.LessThan(r.MinZeroPercent) {
		return fmt.Errorf("max_90_percent must be below min_zero_percent")
	}
	return nil
}

func validateHigher(r domain.HigherRateRules) error {
	if !validRate(r.MaxRate) {
		return fmt.Errorf("max_rate must be between 0 and 100")
	}
	if !r.TaperIncrement.IsPositive() {
		return fmt.Errorf("taper_increment must be positive")
	}
	if len(r.Bands) == 0 {
		return fmt.Errorf("at least one band is required")
	}
	if !r.Bands[0].Above.Equal(r.Max95Percent) {
		return fmt.Errorf("first band must start at max_95_percent")
	}
	for i, b := range r.Bands {
		if !b.Above.LessThan(b.UpTo) {
			return fmt.Errorf("band %d: above must be below up_to", i+1)
		}
		if !validRate(b.StartRate) || !validRate(b.EndRate) || b.EndRate.GreaterThan(b.StartRate) {
			return fmt.Errorf("band %d: rates must be within 0-100 and not increase", i+1)
		}
		if i > 0 && !b.Above.Equal(r.Bands[i-1].UpTo) {
			return fmt.Errorf("band %d: must start where band %d ends", i+1, i)
		}
	}
	if r.RevertToStandard.LessThanOrEqual(r.Max95Percent) {
		return fmt.Errorf("revert_to_standard must be above max_95_percent")
	}
	if r.MaxChildAge < 0 {
		return fmt.Errorf("max_child_age cannot be negative")
	}
	return nil
}

func validateActivity(r domain.ActivityTestRules) error {
	if r.HigherActivityThreshold.IsNegative() {
		return fmt.Errorf("higher_activity_threshold cannot be negative")
	}
	if r.BaseHoursPerWeek.IsNegative() || r.BaseHoursPerFortnight.IsNegative() {
		return fmt.Errorf("base hours cannot be negative")
	}
	if r.HigherHoursPerWeek.LessThan(r.BaseHoursPerWeek) || r.HigherHoursPerFortnight.LessThan(r.BaseHoursPerFortnight) {
		return fmt.Errorf("higher hours must be at least the base hours")
	}
	return nil
}

func validateCaps(r domain.RateCapRules) error {
	if r.SchoolAgeThreshold < 1 {
		return fmt.Errorf("school_age_threshold must be positive")
	}
	for _, ct := range domain.CareTypes() {
		caps, ok := r.Caps[ct]
		if !ok {
			return fmt.Errorf("missing caps for %s", ct)
		}
		if caps.NonSchoolAge.IsNegative() || caps.SchoolAge.IsNegative() {
			return fmt.Errorf("%s caps cannot be negative", ct)
		}
	}
	for ct := range r.Caps {
		if !ct.Valid() {
			return fmt.Errorf("unknown care type %q", ct)
		}
	}
	return nil
}
