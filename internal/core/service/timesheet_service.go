package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

type TimesheetService struct {
	repo     ports.TimesheetRepository
	accounts ports.AccountRepository
	policy   domain.PayPolicy
	logger   zerolog.Logger
	now      func() time.Time
}

func NewTimesheetService(repo ports.TimesheetRepository, accounts ports.AccountRepository, policy domain.PayPolicy, logger zerolog.Logger) *TimesheetService {
	return &TimesheetService{
		repo:     repo,
		accounts: accounts,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit records a contractor's week. If an idempotency key is provided and
// already seen for this contractor, the earlier timesheet is returned without
// side effects.
func (s *TimesheetService) Submit(ctx context.Context, actor domain.Actor, in ports.SubmitTimesheetInput) (*ports.SubmitResult, error) {
	if !actor.IsContractor() {
		return nil, domain.ErrPermissionDenied
	}

	owner, err := s.accounts.FindByID(ctx, actor.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPermissionDenied
		}
		return nil, fmt.Errorf("submit timesheet: %w", err)
	}

	if in.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, owner.ID, in.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("timesheet_id", existing.ID).Msg("idempotent replay")
			return &ports.SubmitResult{Timesheet: existing, AlreadyExisted: true}, nil
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("submit timesheet: %w", err)
		}
	}

	weekStart, err := domain.ParseWeekStart(in.WeekStart)
	if err != nil {
		return nil, err
	}

	payroll, err := s.policy.Calculate(in.Hours, in.HourlyRate)
	if err != nil {
		return nil, err
	}

	ts, err := domain.NewTimesheet(domain.NewTimesheetParams{
		ID:             uuid.NewString(),
		Owner:          owner,
		Client:         in.Client,
		SiteAddress:    in.SiteAddress,
		WeekStart:      weekStart,
		Payroll:        payroll,
		SubmittedOn:    s.now(),
		IdempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, ts); err != nil {
		if errors.Is(err, domain.ErrDuplicateSubmission) && in.IdempotencyKey != "" {
			return s.replayConcurrent(ctx, owner.ID, in.IdempotencyKey)
		}
		s.logger.Error().Err(err).Msg("failed to create timesheet")
		return nil, fmt.Errorf("submit timesheet: %w", err)
	}

	s.logger.Info().
		Str("timesheet_id", ts.ID).
		Str("contractor_id", ts.ContractorID).
		Str("week_start", ts.WeekStart.Format(domain.DateLayout)).
		Str("total_pay", ts.TotalPay.StringFixed(2)).
		Msg("timesheet submitted")

	return &ports.SubmitResult{Timesheet: ts}, nil
}

// replayConcurrent returns the timesheet stored by a concurrent submit that
// won the race on the same idempotency key.
func (s *TimesheetService) replayConcurrent(ctx context.Context, contractorID, key string) (*ports.SubmitResult, error) {
	existing, err := s.repo.FindByIdempotencyKey(ctx, contractorID, key)
	if err != nil {
		return nil, fmt.Errorf("submit timesheet: reload duplicate: %w", err)
	}
	s.logger.Info().Str("idempotency_key", key).Str("timesheet_id", existing.ID).Msg("idempotent replay after concurrent submit")
	return &ports.SubmitResult{Timesheet: existing, AlreadyExisted: true}, nil
}

// Approve marks a pending timesheet as approved. Approving an approved
// timesheet succeeds without changing it.
func (s *TimesheetService) Approve(ctx context.Context, actor domain.Actor, id string) (*ports.ApproveResult, error) {
	if err := requireManager(ctx, s.accounts, actor); err != nil {
		return nil, err
	}

	ts, changed, err := s.repo.MarkApproved(ctx, id, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("approve timesheet: %w", err)
	}

	if changed {
		s.logger.Info().Str("timesheet_id", id).Str("approved_by", actor.AccountID).Msg("timesheet approved")
	} else {
		s.logger.Debug().Str("timesheet_id", id).Msg("timesheet already approved")
	}

	return &ports.ApproveResult{Timesheet: ts, Changed: changed}, nil
}

// Get returns a timesheet. Contractors only see their own; anything else is
// reported as not found.
func (s *TimesheetService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Timesheet, error) {
	ts, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ts.ContractorID == actor.AccountID {
		return ts, nil
	}
	if err := requireManager(ctx, s.accounts, actor); err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return nil, domain.ErrTimesheetNotFound
		}
		return nil, err
	}
	return ts, nil
}

func (s *TimesheetService) ListPending(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error) {
	return s.listByApproval(ctx, actor, false)
}

func (s *TimesheetService) ListApproved(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error) {
	return s.listByApproval(ctx, actor, true)
}

func (s *TimesheetService) listByApproval(ctx context.Context, actor domain.Actor, approved bool) ([]*domain.Timesheet, error) {
	if err := requireManager(ctx, s.accounts, actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.TimesheetFilter{Approved: &approved})
}

func (s *TimesheetService) ListMine(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error) {
	if actor.AccountID == "" {
		return nil, domain.ErrPermissionDenied
	}
	return s.repo.List(ctx, ports.TimesheetFilter{ContractorID: actor.AccountID})
}

// Summarize returns approved hour totals per contractor.
func (s *TimesheetService) Summarize(ctx context.Context, actor domain.Actor) ([]domain.ContractorHours, error) {
	approved, err := s.ListApproved(ctx, actor)
	if err != nil {
		return nil, err
	}
	return domain.SummarizeByContractor(approved), nil
}
