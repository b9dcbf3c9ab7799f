package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fullWeek(weekday, sat, sun string) WeekHours {
	return WeekHours{
		Monday:    d(weekday),
		Tuesday:   d(weekday),
		Wednesday: d(weekday),
		Thursday:  d(weekday),
		Friday:    d(weekday),
		Saturday:  d(sat),
		Sunday:    d(sun),
	}
}

func TestCalculate_StandardWeekWithSaturday(t *testing.T) {
	p, err := DefaultPayPolicy().Calculate(fullWeek("8", "4", "0"), d("20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.BasicHours.Equal(d("40")) {
		t.Errorf("basic hours: got %s, want 40", p.BasicHours)
	}
	if !p.TotalHours.Equal(d("44")) {
		t.Errorf("total hours: got %s, want 44", p.TotalHours)
	}
	if !p.TotalPay.Equal(d("920")) {
		t.Errorf("total pay: got %s, want 920", p.TotalPay)
	}
}

func TestCalculate_SundayMultiplier(t *testing.T) {
	p, err := DefaultPayPolicy().Calculate(WeekHours{Sunday: d("8")}, d("10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.TotalPay.Equal(d("140")) {
		t.Errorf("total pay: got %s, want 140", p.TotalPay)
	}
	if !p.BasicHours.IsZero() {
		t.Errorf("basic hours: got %s, want 0", p.BasicHours)
	}
}

func TestCalculate_TotalsAcrossBuckets(t *testing.T) {
	cases := []struct {
		weekday, sat, sun, rate string
	}{
		{"0", "0", "0", "1"},
		{"7.5", "3.25", "2", "18.40"},
		{"0.1", "0.2", "0.3", "0.01"},
		{"12", "12", "12", "99.99"},
	}
	policy := DefaultPayPolicy()
	for _, tc := range cases {
		h := fullWeek(tc.weekday, tc.sat, tc.sun)
		rate := d(tc.rate)
		p, err := policy.Calculate(h, rate)
		if err != nil {
			t.Fatalf("%+v: unexpected error: %v", tc, err)
		}

		wantTotal := p.BasicHours.Add(p.SaturdayHours).Add(p.SundayHours)
		if !p.TotalHours.Equal(wantTotal) {
			t.Errorf("%+v: total %s != basic+sat+sun %s", tc, p.TotalHours, wantTotal)
		}

		wantPay := p.BasicHours.Mul(rate).
			Add(p.SaturdayHours.Mul(rate).Mul(d("1.5"))).
			Add(p.SundayHours.Mul(rate).Mul(d("1.75"))).
			Round(2)
		if !p.TotalPay.Equal(wantPay) {
			t.Errorf("%+v: pay %s, want %s", tc, p.TotalPay, wantPay)
		}
	}
}

func TestCalculate_NoFloatingPointDrift(t *testing.T) {
	h := WeekHours{Monday: d("0.1"), Tuesday: d("0.2")}
	p, err := DefaultPayPolicy().Calculate(h, d("1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalHours.String() != "0.3" {
		t.Errorf("expected exact 0.3, got %s", p.TotalHours)
	}
}

func TestCalculate_RejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []string{"0", "-5"} {
		if _, err := DefaultPayPolicy().Calculate(fullWeek("8", "0", "0"), d(rate)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("rate %s: expected ErrInvalidInput, got %v", rate, err)
		}
	}
}

func TestCalculate_RejectsNegativeHours(t *testing.T) {
	h := fullWeek("8", "0", "0")
	h.Wednesday = d("-1")
	if _, err := DefaultPayPolicy().Calculate(h, d("20")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParsePayPolicy(t *testing.T) {
	p, err := ParsePayPolicy("2", "2.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pay, err := p.Calculate(WeekHours{Saturday: d("1"), Sunday: d("1")}, d("10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pay.TotalPay.Equal(d("45")) {
		t.Errorf("total pay: got %s, want 45", pay.TotalPay)
	}

	for _, bad := range [][2]string{{"abc", "1.75"}, {"1.5", "0"}, {"-1", "1"}} {
		if _, err := ParsePayPolicy(bad[0], bad[1]); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%v: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestCalculate_RoundsSubCentPay(t *testing.T) {
	p, err := DefaultPayPolicy().Calculate(WeekHours{Monday: d("1")}, d("18.333"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalPay.String() != "18.33" {
		t.Errorf("total pay: got %s, want 18.33", p.TotalPay)
	}

	p, err = DefaultPayPolicy().Calculate(WeekHours{Monday: d("1")}, d("18.335"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalPay.String() != "18.34" {
		t.Errorf("half cent must round up: got %s, want 18.34", p.TotalPay)
	}
}

func TestCalculate_AcceptsBoundaryValues(t *testing.T) {
	p, err := DefaultPayPolicy().Calculate(fullWeek("24", "24", "24"), d("1000000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 120h + 24h*1.5 + 24h*1.75 = 198 paid hours
	if !p.TotalPay.Equal(d("198000000")) {
		t.Errorf("total pay: got %s, want 198000000", p.TotalPay)
	}

	if _, err := DefaultPayPolicy().Calculate(WeekHours{Monday: d("7.5000000")}, d("20.1250")); err != nil {
		t.Errorf("trailing zeros must be accepted, got %v", err)
	}
}

func TestCalculate_RejectsOutOfRangeInput(t *testing.T) {
	cases := map[string]struct {
		hours WeekHours
		rate  string
	}{
		"day over 24 hours":      {WeekHours{Tuesday: d("24.01")}, "20"},
		"huge exponent hours":    {WeekHours{Monday: d("1e5000000")}, "20"},
		"too many hour decimals": {WeekHours{Friday: d("1.00001")}, "20"},
		"tiny exponent hours":    {WeekHours{Friday: d("1e-5000000")}, "20"},
		"rate over cap":          {WeekHours{Monday: d("8")}, "1000000.01"},
		"huge exponent rate":     {WeekHours{Monday: d("8")}, "1e5000000"},
		"too many rate decimals": {WeekHours{Monday: d("8")}, "20.12345"},
	}
	for name, tc := range cases {
		if _, err := DefaultPayPolicy().Calculate(tc.hours, d(tc.rate)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestParsePayPolicy_RejectsOutOfRangeMultiplier(t *testing.T) {
	for _, bad := range [][2]string{{"10.5", "1.75"}, {"1.5", "1e400"}, {"1.500001", "1.75"}} {
		if _, err := ParsePayPolicy(bad[0], bad[1]); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%v: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}
