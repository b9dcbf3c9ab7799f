package ports

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/siteledger/timesheets/internal/core/domain"
)

// SubmitTimesheetInput is the DTO passed from the transport layer to TimesheetService.
type SubmitTimesheetInput struct {
	Client         string
	SiteAddress    string
	WeekStart      string // YYYY-MM-DD
	Hours          domain.WeekHours
	HourlyRate     decimal.Decimal
	IdempotencyKey string
}

// SubmitResult is returned by Submit.
type SubmitResult struct {
	Timesheet *domain.Timesheet
	// AlreadyExisted is true when the Idempotency-Key matched an earlier submission.
	AlreadyExisted bool
}

// ApproveResult is returned by Approve.
type ApproveResult struct {
	Timesheet *domain.Timesheet
	// Changed is false when the timesheet had already been approved.
	Changed bool
}

// TimesheetService defines use-case operations for timesheets.
type TimesheetService interface {
	Submit(ctx context.Context, actor domain.Actor, in SubmitTimesheetInput) (*SubmitResult, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (*ApproveResult, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Timesheet, error)
	ListPending(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error)
	ListApproved(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error)
	Summarize(ctx context.Context, actor domain.Actor) ([]domain.ContractorHours, error)
}

// ApprovedReport is the export projection of approved timesheets.
type ApprovedReport struct {
	GeneratedAt time.Time
	Details     []*domain.Timesheet
	Summary     []domain.ContractorHours
}

// ReportWriter renders an ApprovedReport into a downloadable artifact.
type ReportWriter interface {
	Write(w io.Writer, report ApprovedReport) error
	ContentType() string
	FileExtension() string
}

// ExportService produces the approved-timesheet report.
type ExportService interface {
	ExportApproved(ctx context.Context, actor domain.Actor, w io.Writer) (*ApprovedReport, error)
}
