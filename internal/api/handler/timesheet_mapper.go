package handler

import (
	"time"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

// --- Request → Service input ---

func toSubmitInput(req submitTimesheetRequest, idempotencyKey string) ports.SubmitTimesheetInput {
	return ports.SubmitTimesheetInput{
		Client:      req.Client,
		SiteAddress: req.SiteAddress,
		WeekStart:   req.WeekStart,
		Hours: domain.WeekHours{
			Monday:    req.Hours.Monday,
			Tuesday:   req.Hours.Tuesday,
			Wednesday: req.Hours.Wednesday,
			Thursday:  req.Hours.Thursday,
			Friday:    req.Hours.Friday,
			Saturday:  req.Hours.Saturday,
			Sunday:    req.Hours.Sunday,
		},
		HourlyRate:     req.HourlyRate,
		IdempotencyKey: idempotencyKey,
	}
}

// --- Service result → HTTP response ---

func toTimesheetResponse(t *domain.Timesheet) timesheetResponse {
	resp := timesheetResponse{
		ID:            t.ID,
		ContractorID:  t.ContractorID,
		Contractor:    t.ContractorName,
		Client:        t.Client,
		SiteAddress:   t.SiteAddress,
		WeekStart:     t.WeekStart.Format(domain.DateLayout),
		WeekEnd:       t.WeekEnd.Format(domain.DateLayout),
		BasicHours:    t.BasicHours,
		SaturdayHours: t.SaturdayHours,
		SundayHours:   t.SundayHours,
		TotalHours:    t.TotalHours,
		HourlyRate:    t.HourlyRate,
		TotalPay:      t.TotalPay.StringFixed(2),
		Status:        string(t.Status()),
		Approved:      t.Approved,
		SubmittedOn:   t.SubmittedOn.UTC().Format(time.RFC3339),
		Links: timesheetLinks{
			Self: "/v1/timesheets/" + t.ID,
		},
	}
	if t.ApprovedOn != nil {
		approvedOn := t.ApprovedOn.UTC().Format(time.RFC3339)
		resp.ApprovedOn = &approvedOn
	} else {
		resp.Links.Approve = "/v1/timesheets/" + t.ID + "/approve"
	}
	return resp
}

func toTimesheetList(items []*domain.Timesheet) timesheetListResponse {
	out := make([]timesheetResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTimesheetResponse(t))
	}
	return timesheetListResponse{Timesheets: out, Count: len(out)}
}

func toSummaryResponse(rows []domain.ContractorHours) summaryResponse {
	out := make([]contractorHoursResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, contractorHoursResponse(r))
	}
	return summaryResponse{Contractors: out}
}
