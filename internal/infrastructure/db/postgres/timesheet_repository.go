package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

var _ ports.TimesheetRepository = (*TimesheetRepository)(nil)

// TimesheetRepository provides Postgres-backed persistence for timesheets.
// NUMERIC columns travel as text so no precision is lost in the driver.
type TimesheetRepository struct {
	pool *pgxpool.Pool
}

func NewTimesheetRepository(pool *pgxpool.Pool) *TimesheetRepository {
	return &TimesheetRepository{pool: pool}
}

const timesheetSelect = `
	SELECT id, contractor_id, contractor_name, client, site_address, week_start, week_end,
		basic_hours::text, saturday_hours::text, sunday_hours::text, hourly_rate::text,
		total_hours::text, total_pay::text, approved, submitted_on, approved_on,
		COALESCE(idempotency_key, '')
	FROM timesheets`

const newestFirst = ` ORDER BY submitted_on DESC, id DESC`

// idempotencyIndex is the partial unique index on (contractor_id, idempotency_key).
const idempotencyIndex = "timesheets_idempotency_idx"

const approvePending = `UPDATE timesheets SET approved = TRUE, approved_on = $2 WHERE id = $1 AND approved = FALSE`

func (r *TimesheetRepository) Create(ctx context.Context, t *domain.Timesheet) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const query = `
		INSERT INTO timesheets (
			id, contractor_id, contractor_name, client, site_address, week_start, week_end,
			basic_hours, saturday_hours, sunday_hours, hourly_rate, total_hours, total_pay,
			approved, submitted_on, approved_on, idempotency_key
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8::numeric, $9::numeric, $10::numeric, $11::numeric, $12::numeric, $13::numeric,
			$14, $15, $16, NULLIF($17, '')
		)`
	_, err := r.pool.Exec(ctx, query,
		t.ID, t.ContractorID, t.ContractorName, t.Client, t.SiteAddress, t.WeekStart, t.WeekEnd,
		t.BasicHours.String(), t.SaturdayHours.String(), t.SundayHours.String(), t.HourlyRate.String(),
		t.TotalHours.String(), t.TotalPay.StringFixed(2),
		t.Approved, t.SubmittedOn.UTC(), t.ApprovedOn, t.IdempotencyKey,
	)
	if err != nil {
		return insertError(err)
	}
	return nil
}

func insertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == idempotencyIndex {
		return domain.ErrDuplicateSubmission
	}
	return fmt.Errorf("insert timesheet: %w", err)
}

func (r *TimesheetRepository) FindByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return scanTimesheet(r.pool.QueryRow(ctx, timesheetSelect+` WHERE id = $1`, id))
}

func (r *TimesheetRepository) FindByIdempotencyKey(ctx context.Context, contractorID, key string) (*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, timesheetSelect+` WHERE contractor_id = $1 AND idempotency_key = $2`, contractorID, key)
	return scanTimesheet(row)
}

func (r *TimesheetRepository) List(ctx context.Context, f ports.TimesheetFilter) ([]*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args := listQuery(f)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}
	defer rows.Close()

	out := []*domain.Timesheet{}
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// listQuery builds the filtered, newest-first select for List.
func listQuery(f ports.TimesheetFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Approved != nil {
		args = append(args, *f.Approved)
		conds = append(conds, fmt.Sprintf("approved = $%d", len(args)))
	}
	if f.ContractorID != "" {
		args = append(args, f.ContractorID)
		conds = append(conds, fmt.Sprintf("contractor_id = $%d", len(args)))
	}

	query := timesheetSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + newestFirst, args
}

// MarkApproved approves the row only while it is still pending. When no row
// is updated the current state is read back to tell "unknown" from
// "already approved".
func (r *TimesheetRepository) MarkApproved(ctx context.Context, id string, at time.Time) (*domain.Timesheet, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, approvePending, id, at.UTC())
	if err != nil {
		return nil, false, fmt.Errorf("approve timesheet: %w", err)
	}

	t, err := scanTimesheet(r.pool.QueryRow(ctx, timesheetSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, false, err
	}
	return t, tag.RowsAffected() == 1, nil
}

func scanTimesheet(row pgx.Row) (*domain.Timesheet, error) {
	var (
		t       domain.Timesheet
		numeric [6]string
	)
	err := row.Scan(
		&t.ID, &t.ContractorID, &t.ContractorName, &t.Client, &t.SiteAddress, &t.WeekStart, &t.WeekEnd,
		&numeric[0], &numeric[1], &numeric[2], &numeric[3], &numeric[4], &numeric[5],
		&t.Approved, &t.SubmittedOn, &t.ApprovedOn, &t.IdempotencyKey,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTimesheetNotFound
		}
		return nil, err
	}

	dst := []*decimal.Decimal{&t.BasicHours, &t.SaturdayHours, &t.SundayHours, &t.HourlyRate, &t.TotalHours, &t.TotalPay}
	for i, s := range numeric {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("decode numeric %q: %w", s, err)
		}
		*dst[i] = v
	}

	t.WeekStart = t.WeekStart.UTC()
	t.WeekEnd = t.WeekEnd.UTC()
	t.SubmittedOn = t.SubmittedOn.UTC()
	if t.ApprovedOn != nil {
		at := t.ApprovedOn.UTC()
		t.ApprovedOn = &at
	}
	return &t, nil
}
