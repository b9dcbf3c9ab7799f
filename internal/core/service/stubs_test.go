package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	accounts map[string]*domain.Account // keyed by ID
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

// seedManager stores the account behind the shared manager actor.
func (r *stubAccountRepo) seedManager() {
	r.accounts[manager.AccountID] = &domain.Account{
		ID:       manager.AccountID,
		Username: manager.Username,
		Email:    "boss@example.com",
		Role:     domain.RoleManager,
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == account.Username || a.Email == account.Email {
			return nil, domain.ErrAccountExists
		}
	}
	r.accounts[account.ID] = cloneAccount(account)
	return cloneAccount(account), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByUsernameOrEmail(_ context.Context, identifier string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == identifier || a.Email == strings.ToLower(identifier) {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	out := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, cloneAccount(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubAccountRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, a := range r.accounts {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubAccountRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

type stubTimesheetRepo struct {
	byID      map[string]*domain.Timesheet
	createErr error // if set, Create returns this error

	// beforeIdempotencyLookup, if set, runs at the start of every
	// FindByIdempotencyKey call.
	beforeIdempotencyLookup func()
}

func newStubTimesheetRepo() *stubTimesheetRepo {
	return &stubTimesheetRepo{byID: make(map[string]*domain.Timesheet)}
}

func cloneTimesheet(t *domain.Timesheet) *domain.Timesheet {
	clone := *t
	if t.ApprovedOn != nil {
		at := *t.ApprovedOn
		clone.ApprovedOn = &at
	}
	return &clone
}

func (r *stubTimesheetRepo) Create(_ context.Context, t *domain.Timesheet) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[t.ID] = cloneTimesheet(t)
	return nil
}

func (r *stubTimesheetRepo) FindByID(_ context.Context, id string) (*domain.Timesheet, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTimesheetNotFound
	}
	return cloneTimesheet(t), nil
}

func (r *stubTimesheetRepo) FindByIdempotencyKey(_ context.Context, contractorID, key string) (*domain.Timesheet, error) {
	if r.beforeIdempotencyLookup != nil {
		r.beforeIdempotencyLookup()
	}
	for _, t := range r.byID {
		if t.ContractorID == contractorID && t.IdempotencyKey == key {
			return cloneTimesheet(t), nil
		}
	}
	return nil, domain.ErrTimesheetNotFound
}

// List applies the same filters and ordering the real stores use.
func (r *stubTimesheetRepo) List(_ context.Context, f ports.TimesheetFilter) ([]*domain.Timesheet, error) {
	var out []*domain.Timesheet
	for _, t := range r.byID {
		if f.Approved != nil && t.Approved != *f.Approved {
			continue
		}
		if f.ContractorID != "" && t.ContractorID != f.ContractorID {
			continue
		}
		out = append(out, cloneTimesheet(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedOn.Equal(out[j].SubmittedOn) {
			return out[i].SubmittedOn.After(out[j].SubmittedOn)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *stubTimesheetRepo) MarkApproved(_ context.Context, id string, at time.Time) (*domain.Timesheet, bool, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, false, domain.ErrTimesheetNotFound
	}
	changed := t.Approve(at)
	return cloneTimesheet(t), changed, nil
}

type stubRevoker struct {
	revoked map[string]time.Time
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}
