package ports

import (
	"context"
	"time"

	"github.com/siteledger/timesheets/internal/core/domain"
)

// TimesheetFilter narrows a timesheet scan. Zero values mean "no filter".
type TimesheetFilter struct {
	Approved     *bool
	ContractorID string
}

// TimesheetRepository defines persistence operations for timesheets.
// Listings are ordered by submission time, newest first.
type TimesheetRepository interface {
	Create(ctx context.Context, t *domain.Timesheet) error
	FindByID(ctx context.Context, id string) (*domain.Timesheet, error)
	// FindByIdempotencyKey looks up an earlier submission of the same contractor.
	FindByIdempotencyKey(ctx context.Context, contractorID, key string) (*domain.Timesheet, error)
	List(ctx context.Context, filter TimesheetFilter) ([]*domain.Timesheet, error)
	// MarkApproved atomically approves the timesheet if it is still pending.
	// The bool reports whether this call changed the record; an already
	// approved record is returned unchanged with false.
	MarkApproved(ctx context.Context, id string, at time.Time) (*domain.Timesheet, bool, error)
}
