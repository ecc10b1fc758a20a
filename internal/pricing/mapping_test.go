package pricing

import (
	"testing"
	"time"
)

func TestToWireCombinesDateWithDefaultBounds(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Name:          "June Sale",
		RawType:       AdjustmentPercentageDiscount,
		Value:         15,
		ValidFromDate: "2025-06-01",
		ValidToDate:   "2025-06-01",
	}

	wire, err := ToWire(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	wantTo := time.Date(2025, 6, 1, 23, 59, 59, 0, time.Local)

	if wire.ValidFrom == nil || !wire.ValidFrom.Equal(wantFrom) {
		t.Fatalf("expected valid_from %v, got %v", wantFrom, wire.ValidFrom)
	}
	if wire.ValidTo == nil || !wire.ValidTo.Equal(wantTo) {
		t.Fatalf("expected valid_to %v, got %v", wantTo, wire.ValidTo)
	}
	if wire.TimeOfDayStart != "00:00:00" || wire.TimeOfDayEnd != "23:59:59" {
		t.Fatalf("expected default time bounds, got %q %q", wire.TimeOfDayStart, wire.TimeOfDayEnd)
	}
}

func TestToWireUsesExplicitTimeOfDay(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Name:          "Happy Hour",
		RawType:       AdjustmentFixedDiscount,
		Value:         5,
		ValidFromDate: "2025-06-01",
		TimeStart:     "14:30:00",
	}

	wire, err := ToWire(rule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 1, 14, 30, 0, 0, time.Local)
	if wire.ValidFrom == nil || !wire.ValidFrom.Equal(want) {
		t.Fatalf("expected valid_from %v, got %v", want, wire.ValidFrom)
	}
}

func TestToWireNoDateMeansNoBound(t *testing.T) {
	t.Parallel()

	wire, err := ToWire(Rule{Name: "open ended", RawType: AdjustmentPercentageDiscount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wire.ValidFrom != nil || wire.ValidTo != nil {
		t.Fatalf("expected nil bounds, got %v %v", wire.ValidFrom, wire.ValidTo)
	}
}

func TestToWireInfersRawTypeFromLabel(t *testing.T) {
	t.Parallel()

	fixed, err := ToWire(Rule{Name: "a", Type: "Fixed Discount"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fixed.AdjustmentType != AdjustmentFixedDiscount {
		t.Fatalf("expected fixed_discount, got %q", fixed.AdjustmentType)
	}

	pct, err := ToWire(Rule{Name: "b", Type: "Something Else"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pct.AdjustmentType != AdjustmentPercentageDiscount {
		t.Fatalf("expected percentage_discount fallback, got %q", pct.AdjustmentType)
	}
}

func TestToWireOmitsUnsetScopingFields(t *testing.T) {
	t.Parallel()

	wire, err := ToWire(Rule{Name: "bare", RawType: AdjustmentPercentageDiscount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wire.ApplicableProductID != nil || wire.ApplicableFlowerTypeID != nil ||
		wire.ApplicableProductStatus != nil || wire.SpecialDayID != nil || wire.RuleID != nil {
		t.Fatalf("expected all scoping fields omitted: %+v", wire)
	}

	scoped, err := ToWire(Rule{
		Name:          "scoped",
		RawType:       AdjustmentPercentageDiscount,
		ProductID:     3,
		FlowerTypeID:  4,
		ProductStatus: "NewFlower",
		SpecialDayID:  9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scoped.ApplicableProductID == nil || *scoped.ApplicableProductID != 3 {
		t.Fatalf("expected product id 3, got %v", scoped.ApplicableProductID)
	}
	if scoped.ApplicableProductStatus == nil || *scoped.ApplicableProductStatus != "NewFlower" {
		t.Fatalf("expected product status, got %v", scoped.ApplicableProductStatus)
	}
}

func TestFromWireLabelsAdjustmentType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{raw: AdjustmentFixedDiscount, want: LabelFixedDiscount},
		{raw: AdjustmentPercentageDiscount, want: LabelPercentageDiscount},
		{raw: "override_price", want: "override_price"},
		{raw: "", want: "—"},
	}
	for _, tc := range cases {
		got := FromWire(WireRule{AdjustmentType: tc.raw}).Type
		if got != tc.want {
			t.Fatalf("label for %q: expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestFromWireDefaultsTimeBounds(t *testing.T) {
	t.Parallel()

	rule := FromWire(WireRule{RuleName: "x"})
	if rule.TimeStart != "00:00:00" || rule.TimeEnd != "23:59:59" {
		t.Fatalf("expected default time bounds, got %q %q", rule.TimeStart, rule.TimeEnd)
	}
}

func TestRoundTripPreservesRule(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 6, 30, 23, 59, 59, 0, time.Local)
	id := 17
	status := "Premium"

	wire := WireRule{
		RuleID:                  &id,
		RuleName:                "Summer Special",
		Priority:                3,
		AdjustmentType:          AdjustmentFixedDiscount,
		AdjustmentValue:         7.5,
		ApplicableProductStatus: &status,
		TimeOfDayStart:          "00:00:00",
		TimeOfDayEnd:            "23:59:59",
		ValidFrom:               &from,
		ValidTo:                 &to,
		IsActive:                true,
	}

	back, err := ToWire(FromWire(wire))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if back.RuleID == nil || *back.RuleID != id {
		t.Fatalf("id did not round-trip: %v", back.RuleID)
	}
	if back.RuleName != wire.RuleName || back.Priority != wire.Priority {
		t.Fatalf("name/priority did not round-trip: %+v", back)
	}
	if back.AdjustmentType != wire.AdjustmentType || back.AdjustmentValue != wire.AdjustmentValue {
		t.Fatalf("adjustment did not round-trip: %+v", back)
	}
	if back.IsActive != wire.IsActive {
		t.Fatal("is_active did not round-trip")
	}
	if back.ValidFrom == nil || !back.ValidFrom.Equal(from) {
		t.Fatalf("valid_from did not round-trip to the same instant: %v", back.ValidFrom)
	}
	if back.ValidTo == nil || !back.ValidTo.Equal(to) {
		t.Fatalf("valid_to did not round-trip to the same instant: %v", back.ValidTo)
	}
}
