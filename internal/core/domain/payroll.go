package domain

import (
	"github.com/shopspring/decimal"
)

const (
	// payScale is the number of decimal places kept on money amounts.
	payScale = 2
	// inputScale is the most decimal places accepted on hours, rates and
	// multipliers.
	inputScale = 4
	// maxInputExponent bounds the exponent of any accepted input, so values
	// written like 1e5000000 are refused before they are expanded.
	maxInputExponent = 6
)

var (
	maxDailyHours = decimal.NewFromInt(24)
	maxHourlyRate = decimal.NewFromInt(1_000_000)
	maxMultiplier = decimal.NewFromInt(10)
)

// WeekHours holds the hours worked on each day of a week. A zero value means
// no hours were reported for that day.
type WeekHours struct {
	Monday    decimal.Decimal
	Tuesday   decimal.Decimal
	Wednesday decimal.Decimal
	Thursday  decimal.Decimal
	Friday    decimal.Decimal
	Saturday  decimal.Decimal
	Sunday    decimal.Decimal
}

// Payroll is the result of applying a PayPolicy to a week of hours.
type Payroll struct {
	BasicHours    decimal.Decimal
	SaturdayHours decimal.Decimal
	SundayHours   decimal.Decimal
	HourlyRate    decimal.Decimal
	TotalHours    decimal.Decimal
	TotalPay      decimal.Decimal
}

// PayPolicy carries the weekend overtime multipliers. Weekday hours are
// always paid at the base rate.
type PayPolicy struct {
	SaturdayMultiplier decimal.Decimal
	SundayMultiplier   decimal.Decimal
}

// DefaultPayPolicy pays Saturdays at 1.5x and Sundays at 1.75x.
func DefaultPayPolicy() PayPolicy {
	return PayPolicy{
		SaturdayMultiplier: decimal.RequireFromString("1.5"),
		SundayMultiplier:   decimal.RequireFromString("1.75"),
	}
}

// ParsePayPolicy builds a PayPolicy from decimal strings such as "1.5".
func ParsePayPolicy(saturday, sunday string) (PayPolicy, error) {
	sat, err := decimal.NewFromString(saturday)
	if err != nil || !sat.IsPositive() {
		return PayPolicy{}, InvalidInput("saturday multiplier %q must be a positive decimal", saturday)
	}
	if err := checkBounds(sat, maxMultiplier, "saturday multiplier"); err != nil {
		return PayPolicy{}, err
	}
	sun, err := decimal.NewFromString(sunday)
	if err != nil || !sun.IsPositive() {
		return PayPolicy{}, InvalidInput("sunday multiplier %q must be a positive decimal", sunday)
	}
	if err := checkBounds(sun, maxMultiplier, "sunday multiplier"); err != nil {
		return PayPolicy{}, err
	}
	return PayPolicy{SaturdayMultiplier: sat, SundayMultiplier: sun}, nil
}

// Calculate totals a week of hours and prices it at rate. A day holds at most
// 24 hours and the rate is capped at 1,000,000, which keeps every total within
// what both stores can hold.
func (p PayPolicy) Calculate(h WeekHours, rate decimal.Decimal) (Payroll, error) {
	if !rate.IsPositive() {
		return Payroll{}, InvalidInput("hourly rate must be greater than zero")
	}
	if err := checkBounds(rate, maxHourlyRate, "hourly rate"); err != nil {
		return Payroll{}, err
	}

	days := []struct {
		name  string
		hours decimal.Decimal
	}{
		{"monday", h.Monday},
		{"tuesday", h.Tuesday},
		{"wednesday", h.Wednesday},
		{"thursday", h.Thursday},
		{"friday", h.Friday},
		{"saturday", h.Saturday},
		{"sunday", h.Sunday},
	}
	for _, d := range days {
		if d.hours.IsNegative() {
			return Payroll{}, InvalidInput("%s hours must not be negative", d.name)
		}
		if err := checkBounds(d.hours, maxDailyHours, d.name+" hours"); err != nil {
			return Payroll{}, err
		}
	}

	basic := decimal.Sum(h.Monday, h.Tuesday, h.Wednesday, h.Thursday, h.Friday)
	total := basic.Add(h.Saturday).Add(h.Sunday)

	pay := basic.Mul(rate).
		Add(h.Saturday.Mul(rate).Mul(p.SaturdayMultiplier)).
		Add(h.Sunday.Mul(rate).Mul(p.SundayMultiplier))

	return Payroll{
		BasicHours:    basic,
		SaturdayHours: h.Saturday,
		SundayHours:   h.Sunday,
		HourlyRate:    rate,
		TotalHours:    total,
		TotalPay:      pay.Round(payScale),
	}, nil
}

// checkBounds rejects v when it carries more than inputScale significant
// decimal places or is greater than max. Exponents are inspected before any
// comparison so oversized inputs are never rescaled.
func checkBounds(v, max decimal.Decimal, what string) error {
	exp := v.Exponent()
	if exp > maxInputExponent {
		return InvalidInput("%s must not exceed %s", what, max)
	}
	if exp < -inputScale {
		if exp < -(inputScale+maxInputExponent) || !v.Equal(v.Truncate(inputScale)) {
			return InvalidInput("%s must have at most %d decimal places", what, inputScale)
		}
	}
	if v.GreaterThan(max) {
		return InvalidInput("%s must not exceed %s", what, max)
	}
	return nil
}
