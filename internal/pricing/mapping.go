package pricing

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var timeOfDayPattern = regexp.MustCompile(`^\d{2}:\d{2}`)

const (
	defaultTimeStart = "00:00:00"
	defaultTimeEnd   = "23:59:59"
)

// FromWire converts an API rule into its display shape: the valid window
// splits into the local calendar date of each instant, and the adjustment
// type gains a label. Unknown adjustment types pass through untouched.
func FromWire(w WireRule) Rule {
	rule := Rule{
		Name:          w.RuleName,
		Priority:      w.Priority,
		RawType:       w.AdjustmentType,
		Type:          typeLabel(w.AdjustmentType),
		Value:         w.AdjustmentValue,
		TimeStart:     valueOr(w.TimeOfDayStart, defaultTimeStart),
		TimeEnd:       valueOr(w.TimeOfDayEnd, defaultTimeEnd),
		Active:        w.IsActive,
		ValidFromDate: dateOnly(w.ValidFrom),
		ValidToDate:   dateOnly(w.ValidTo),
	}
	if w.RuleID != nil {
		rule.ID = *w.RuleID
	}
	if w.ApplicableProductStatus != nil {
		rule.ProductStatus = *w.ApplicableProductStatus
	}
	if w.ApplicableProductID != nil {
		rule.ProductID = *w.ApplicableProductID
	}
	if w.ApplicableFlowerTypeID != nil {
		rule.FlowerTypeID = *w.ApplicableFlowerTypeID
	}
	if w.SpecialDayID != nil {
		rule.SpecialDayID = *w.SpecialDayID
	}
	return rule
}

// ToWire converts a display rule back into the wire shape. The calendar date
// combines with the time-of-day into an absolute instant; a missing "from"
// time defaults to the start of day and a missing "to" time to its end.
// Scoping fields are omitted whenever unset (zero or empty), matching the
// storefront's submit behavior.
func ToWire(r Rule) (WireRule, error) {
	rawType := r.RawType
	if rawType == "" {
		rawType = inferRawType(r.Type)
	}

	timeStart := valueOr(r.TimeStart, defaultTimeStart)
	timeEnd := valueOr(r.TimeEnd, defaultTimeEnd)

	validFrom, err := combineDateTime(r.ValidFromDate, timeStart, defaultTimeStart)
	if err != nil {
		return WireRule{}, fmt.Errorf("valid from: %w", err)
	}
	validTo, err := combineDateTime(r.ValidToDate, timeEnd, defaultTimeEnd)
	if err != nil {
		return WireRule{}, fmt.Errorf("valid to: %w", err)
	}

	wire := WireRule{
		RuleName:        r.Name,
		Priority:        r.Priority,
		AdjustmentType:  rawType,
		AdjustmentValue: r.Value,
		TimeOfDayStart:  timeStart,
		TimeOfDayEnd:    timeEnd,
		ValidFrom:       validFrom,
		ValidTo:         validTo,
		IsActive:        r.Active,
	}
	if r.ID != 0 {
		wire.RuleID = intPtr(r.ID)
	}
	if r.ProductStatus != "" {
		wire.ApplicableProductStatus = strPtr(r.ProductStatus)
	}
	if r.ProductID != 0 {
		wire.ApplicableProductID = intPtr(r.ProductID)
	}
	if r.FlowerTypeID != 0 {
		wire.ApplicableFlowerTypeID = intPtr(r.FlowerTypeID)
	}
	if r.SpecialDayID != 0 {
		wire.SpecialDayID = intPtr(r.SpecialDayID)
	}
	return wire, nil
}

func typeLabel(raw string) string {
	switch raw {
	case AdjustmentFixedDiscount:
		return LabelFixedDiscount
	case AdjustmentPercentageDiscount:
		return LabelPercentageDiscount
	case "":
		return "—"
	default:
		return raw
	}
}

func inferRawType(label string) string {
	if strings.Contains(label, "Fixed") {
		return AdjustmentFixedDiscount
	}
	return AdjustmentPercentageDiscount
}

// combineDateTime builds an absolute instant from a local calendar date and a
// time-of-day string. An empty date means no bound at all. A time that does
// not look like HH:MM falls back to the provided default bound.
func combineDateTime(date, timeOfDay, fallback string) (*time.Time, error) {
	if date == "" {
		return nil, nil
	}
	tod := fallback
	if timeOfDayPattern.MatchString(timeOfDay) {
		tod = timeOfDay
	}
	if len(tod) == 5 {
		tod += ":00"
	}
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05", date+"T"+tod, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date or time %q %q: %w", date, timeOfDay, err)
	}
	return &parsed, nil
}

// dateOnly extracts the local calendar date of an instant.
func dateOnly(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(time.Local).Format("2006-01-02")
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
