package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of week dates.
const DateLayout = "2006-01-02"

// daysPerWeek is the length of a timesheet period.
const daysPerWeek = 7

// TimesheetStatus represents the approval state of a timesheet.
type TimesheetStatus string

const (
	StatusSubmitted TimesheetStatus = "submitted"
	StatusApproved  TimesheetStatus = "approved"
)

// validTransitions defines the allowed state machine transitions.
// Approved is terminal.
var validTransitions = map[TimesheetStatus][]TimesheetStatus{
	StatusSubmitted: {StatusApproved},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TimesheetStatus) CanTransitionTo(next TimesheetStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Timesheet is a contractor's submission for one week of work.
// Only Approved and ApprovedOn change after creation.
type Timesheet struct {
	ID             string
	ContractorID   string
	ContractorName string
	Client         string
	SiteAddress    string
	WeekStart      time.Time
	WeekEnd        time.Time
	BasicHours     decimal.Decimal
	SaturdayHours  decimal.Decimal
	SundayHours    decimal.Decimal
	HourlyRate     decimal.Decimal
	TotalHours     decimal.Decimal
	TotalPay       decimal.Decimal
	Approved       bool
	SubmittedOn    time.Time
	ApprovedOn     *time.Time
	IdempotencyKey string
}

// Status derives the workflow state from the approval flag.
func (t *Timesheet) Status() TimesheetStatus {
	if t.Approved {
		return StatusApproved
	}
	return StatusSubmitted
}

// Approve moves the timesheet to the approved state. It reports false and
// leaves the timesheet untouched when it was already approved.
func (t *Timesheet) Approve(at time.Time) bool {
	if !t.Status().CanTransitionTo(StatusApproved) {
		return false
	}
	approvedOn := at.UTC()
	t.Approved = true
	t.ApprovedOn = &approvedOn
	return true
}

// NewTimesheetParams groups what a contractor supplies for a new timesheet.
type NewTimesheetParams struct {
	ID             string
	Owner          *Account
	Client         string
	SiteAddress    string
	WeekStart      time.Time
	Payroll        Payroll
	SubmittedOn    time.Time
	IdempotencyKey string
}

// NewTimesheet builds a timesheet in the submitted state.
func NewTimesheet(p NewTimesheetParams) (*Timesheet, error) {
	client := strings.TrimSpace(p.Client)
	site := strings.TrimSpace(p.SiteAddress)
	if client == "" {
		return nil, InvalidInput("client is required")
	}
	if site == "" {
		return nil, InvalidInput("site address is required")
	}
	if p.Owner == nil {
		return nil, InvalidInput("owner is required")
	}

	return &Timesheet{
		ID:             p.ID,
		ContractorID:   p.Owner.ID,
		ContractorName: p.Owner.Username,
		Client:         client,
		SiteAddress:    site,
		WeekStart:      p.WeekStart,
		WeekEnd:        WeekEnd(p.WeekStart),
		BasicHours:     p.Payroll.BasicHours,
		SaturdayHours:  p.Payroll.SaturdayHours,
		SundayHours:    p.Payroll.SundayHours,
		HourlyRate:     p.Payroll.HourlyRate,
		TotalHours:     p.Payroll.TotalHours,
		TotalPay:       p.Payroll.TotalPay,
		SubmittedOn:    p.SubmittedOn.UTC(),
		IdempotencyKey: p.IdempotencyKey,
	}, nil
}

// ParseWeekStart parses a YYYY-MM-DD date as midnight UTC.
func ParseWeekStart(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, InvalidInput("week start %q is not a valid date (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// WeekEnd returns the last day of the 7-day period starting at start.
func WeekEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, daysPerWeek-1)
}

// ContractorHours aggregates approved hours for one contractor.
type ContractorHours struct {
	Contractor    string          `json:"contractor"`
	BasicHours    decimal.Decimal `json:"basic_hours"`
	SaturdayHours decimal.Decimal `json:"saturday_hours"`
	SundayHours   decimal.Decimal `json:"sunday_hours"`
	TotalHours    decimal.Decimal `json:"total_hours"`
}

// SummarizeByContractor sums the hour buckets of approved timesheets per
// contractor name. Unapproved timesheets are ignored. Rows are sorted by name.
func SummarizeByContractor(timesheets []*Timesheet) []ContractorHours {
	byName := make(map[string]*ContractorHours)
	for _, t := range timesheets {
		if !t.Approved {
			continue
		}
		row, ok := byName[t.ContractorName]
		if !ok {
			row = &ContractorHours{Contractor: t.ContractorName}
			byName[t.ContractorName] = row
		}
		row.BasicHours = row.BasicHours.Add(t.BasicHours)
		row.SaturdayHours = row.SaturdayHours.Add(t.SaturdayHours)
		row.SundayHours = row.SundayHours.Add(t.SundayHours)
		row.TotalHours = row.TotalHours.Add(t.TotalHours)
	}

	out := make([]ContractorHours, 0, len(byName))
	for _, row := range byName {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Contractor < out[j].Contractor })
	return out
}
