package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CareType identifies the kind of approved child care a child attends
type CareType string

const (
	CareTypeCentreBased   CareType = "centre_based"
	CareTypeOSHC          CareType = "oshc"
	CareTypeFamilyDayCare CareType = "family_day_care"
	CareTypeInHomeCare    CareType = "in_home_care"
)

// CareTypes lists every supported care type in display order
func CareTypes() []CareType {
	return []CareType{CareTypeCentreBased, CareTypeOSHC, CareTypeFamilyDayCare, CareTypeInHomeCare}
}

// ParseCareType accepts the canonical names plus a few common spellings
func ParseCareType(s string) (CareType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "centre_based", "centre-based", "center_based", "cbdc", "long_day_care":
		return CareTypeCentreBased, nil
	case "oshc", "outside_school_hours", "outside-school-hours":
		return CareTypeOSHC, nil
	case "family_day_care", "family-day-care", "fdc":
		return CareTypeFamilyDayCare, nil
	case "in_home_care", "in-home-care", "ihc":
		return CareTypeInHomeCare, nil
	}
	return "", InvalidInputf("unknown care type %q", s)
}

// Valid reports whether the care type is one of the supported values
func (c CareType) Valid() bool {
	for _, ct := range CareTypes() {
		if c == ct {
			return true
		}
	}
	return false
}

// PerFamily reports whether the hourly cap for this care type is shared by the whole family
func (c CareType) PerFamily() bool {
	return c == CareTypeInHomeCare
}

// AgeCategory splits children into school-age and non-school-age for rate caps
type AgeCategory string

const (
	AgeCategoryNonSchool AgeCategory = "non_school_age"
	AgeCategorySchool    AgeCategory = "school_age"
)

// RateTrack selects which subsidy formula applies to a child
type RateTrack string

const (
	RateTrackStandard RateTrack = "standard"
	RateTrackHigher   RateTrack = "higher"
)

// Parent is one earner in the household
type Parent struct {
	Name        string          `yaml:"name,omitempty" json:"name,omitempty"`
	BaseIncome  decimal.Decimal `yaml:"base_income" json:"baseIncome"`     // Annual income at full-time days/hours
	HoursPerDay decimal.Decimal `yaml:"hours_per_day" json:"hoursPerDay"` // Hours worked on each work day
	DaysPerWeek int             `yaml:"days_per_week,omitempty" json:"daysPerWeek,omitempty"`
}

// Earns reports whether the parent has any base income to adjust
func (p *Parent) Earns() bool {
	return p != nil && p.BaseIncome.GreaterThan(decimal.Zero)
}

// FamilyProfile is the household input for one generation call
type FamilyProfile struct {
	Parent1 Parent  `yaml:"parent1" json:"parent1"`
	Parent2 *Parent `yaml:"parent2,omitempty" json:"parent2,omitempty"`
}

// SingleEarner reports whether only the first parent contributes income
func (f FamilyProfile) SingleEarner() bool {
	return !f.Parent2.Earns()
}

// Child is one child in care
type Child struct {
	Name        string          `yaml:"name,omitempty" json:"name,omitempty"`
	Age         int             `yaml:"age" json:"age"`
	CareType    CareType        `yaml:"care_type" json:"careType"`
	HourlyFee   decimal.Decimal `yaml:"hourly_fee" json:"hourlyFee"`
	WeeklyHours decimal.Decimal `yaml:"weekly_hours" json:"weeklyHours"` // Hours currently attended per week
}

// Label returns the child's name or a positional fallback
func (c Child) Label(index int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("Child %d", index+1)
}

// Household bundles the profile and children as they appear in an input file
type Household struct {
	Family          FamilyProfile    `yaml:"family" json:"family"`
	Children        []Child          `yaml:"children" json:"children"`
	WithholdingRate *decimal.Decimal `yaml:"withholding_rate,omitempty" json:"withholdingRate,omitempty"`
}
