package handler

import "github.com/shopspring/decimal"

// --- Request / Response types ---

// weekHoursRequest accepts hours as JSON numbers or decimal strings.
type weekHoursRequest struct {
	Monday    decimal.Decimal `json:"monday"`
	Tuesday   decimal.Decimal `json:"tuesday"`
	Wednesday decimal.Decimal `json:"wednesday"`
	Thursday  decimal.Decimal `json:"thursday"`
	Friday    decimal.Decimal `json:"friday"`
	Saturday  decimal.Decimal `json:"saturday"`
	Sunday    decimal.Decimal `json:"sunday"`
}

type submitTimesheetRequest struct {
	Client      string           `json:"client" validate:"required,max=200"`
	SiteAddress string           `json:"site_address" validate:"required,max=500"`
	WeekStart   string           `json:"week_start" validate:"required"`
	Hours       weekHoursRequest `json:"hours"`
	HourlyRate  decimal.Decimal  `json:"hourly_rate"`
}

type timesheetLinks struct {
	Self    string `json:"self"`
	Approve string `json:"approve,omitempty"`
}

type timesheetResponse struct {
	ID            string          `json:"id"`
	ContractorID  string          `json:"contractor_id"`
	Contractor    string          `json:"contractor"`
	Client        string          `json:"client"`
	SiteAddress   string          `json:"site_address"`
	WeekStart     string          `json:"week_start"`
	WeekEnd       string          `json:"week_end"`
	BasicHours    decimal.Decimal `json:"basic_hours"`
	SaturdayHours decimal.Decimal `json:"saturday_hours"`
	SundayHours   decimal.Decimal `json:"sunday_hours"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	TotalPay      string          `json:"total_pay"`
	Status        string          `json:"status"`
	Approved      bool            `json:"approved"`
	SubmittedOn   string          `json:"submitted_on"`
	ApprovedOn    *string         `json:"approved_on,omitempty"`
	Links         timesheetLinks  `json:"_links"`
}

type timesheetListResponse struct {
	Timesheets []timesheetResponse `json:"timesheets"`
	Count      int                 `json:"count"`
}

type approveResponse struct {
	Timesheet timesheetResponse `json:"timesheet"`
	// Changed is false when the timesheet was already approved.
	Changed bool `json:"changed"`
}

type contractorHoursResponse struct {
	Contractor    string          `json:"contractor"`
	BasicHours    decimal.Decimal `json:"basic_hours"`
	SaturdayHours decimal.Decimal `json:"saturday_hours"`
	SundayHours   decimal.Decimal `json:"sunday_hours"`
	TotalHours    decimal.Decimal `json:"total_hours"`
}

type summaryResponse struct {
	Contractors []contractorHoursResponse `json:"contractors"`
}
