package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/siteledger/timesheets/internal/api/middleware"
	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

// --- Auth service stub ---

type stubAuthService struct {
	registerFn      func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	createAccountFn func(ctx context.Context, actor domain.Actor, in ports.CreateAccountInput) (*domain.Account, error)
	loginFn         func(ctx context.Context, identifier, password string) (string, *domain.Account, error)
	logoutFn        func(ctx context.Context, tokenID string, expiresAt time.Time) error
	resetFn         func(ctx context.Context, email, answer, newPassword string) error
	listFn          func(ctx context.Context, actor domain.Actor) ([]*domain.Account, error)
	deleteFn        func(ctx context.Context, actor domain.Actor, id string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) CreateAccount(ctx context.Context, actor domain.Actor, in ports.CreateAccountInput) (*domain.Account, error) {
	return s.createAccountFn(ctx, actor, in)
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, identifier, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, email, answer, newPassword string) error {
	return s.resetFn(ctx, email, answer, newPassword)
}

func (s *stubAuthService) ListAccounts(ctx context.Context, actor domain.Actor) ([]*domain.Account, error) {
	return s.listFn(ctx, actor)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, actor domain.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

// --- Timesheet service stub ---

type stubTimesheetService struct {
	submitFn       func(ctx context.Context, actor domain.Actor, in ports.SubmitTimesheetInput) (*ports.SubmitResult, error)
	approveFn      func(ctx context.Context, actor domain.Actor, id string) (*ports.ApproveResult, error)
	getFn          func(ctx context.Context, actor domain.Actor, id string) (*domain.Timesheet, error)
	listPendingFn  func(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error)
	listApprovedFn func(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error)
	listMineFn     func(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error)
	summarizeFn    func(ctx context.Context, actor domain.Actor) ([]domain.ContractorHours, error)
}

func (s *stubTimesheetService) Submit(ctx context.Context, actor domain.Actor, in ports.SubmitTimesheetInput) (*ports.SubmitResult, error) {
	return s.submitFn(ctx, actor, in)
}

func (s *stubTimesheetService) Approve(ctx context.Context, actor domain.Actor, id string) (*ports.ApproveResult, error) {
	return s.approveFn(ctx, actor, id)
}

func (s *stubTimesheetService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Timesheet, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubTimesheetService) ListPending(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error) {
	return s.listPendingFn(ctx, actor)
}

func (s *stubTimesheetService) ListApproved(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error) {
	return s.listApprovedFn(ctx, actor)
}

func (s *stubTimesheetService) ListMine(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error) {
	return s.listMineFn(ctx, actor)
}

func (s *stubTimesheetService) Summarize(ctx context.Context, actor domain.Actor) ([]domain.ContractorHours, error) {
	return s.summarizeFn(ctx, actor)
}

// --- Export stubs ---

type stubExportService struct {
	exportFn func(ctx context.Context, actor domain.Actor, w io.Writer) (*ports.ApprovedReport, error)
}

func (s *stubExportService) ExportApproved(ctx context.Context, actor domain.Actor, w io.Writer) (*ports.ApprovedReport, error) {
	return s.exportFn(ctx, actor, w)
}

type stubFormat struct{}

func (stubFormat) Write(w io.Writer, _ ports.ApprovedReport) error {
	_, err := io.WriteString(w, "report")
	return err
}
func (stubFormat) ContentType() string   { return "application/test" }
func (stubFormat) FileExtension() string { return "bin" }

// --- Helpers ---

var (
	managerActor    = domain.Actor{AccountID: "mgr-1", Username: "boss", Role: domain.RoleManager}
	contractorActor = domain.Actor{AccountID: "c-1", Username: "alice", Role: domain.RoleContractor}
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	return e
}

type requestOption func(c echo.Context)

func asActor(a domain.Actor) requestOption {
	return func(c echo.Context) {
		c.Set(middleware.ContextAccountID, a.AccountID)
		c.Set(middleware.ContextUsername, a.Username)
		c.Set(middleware.ContextRole, string(a.Role))
	}
}

func withParam(name, value string) requestOption {
	return func(c echo.Context) {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
}

// serve runs h against a request and renders any returned error through the
// configured error handler, the way echo does for routed requests.
func serve(e *echo.Echo, h echo.HandlerFunc, method, target, body string, header map[string]string, opts ...requestOption) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for _, opt := range opts {
		opt(c)
	}

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTimesheet(id string, approved bool) *domain.Timesheet {
	weekStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t := &domain.Timesheet{
		ID:             id,
		ContractorID:   "c-1",
		ContractorName: "alice",
		Client:         "Acme",
		SiteAddress:    "1 Main St",
		WeekStart:      weekStart,
		WeekEnd:        domain.WeekEnd(weekStart),
		BasicHours:     dec("40"),
		SaturdayHours:  dec("4"),
		SundayHours:    dec("0"),
		HourlyRate:     dec("20"),
		TotalHours:     dec("44"),
		TotalPay:       dec("920"),
		SubmittedOn:    time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC),
	}
	if approved {
		at := time.Date(2024, 1, 9, 10, 30, 0, 0, time.UTC)
		t.Approved = true
		t.ApprovedOn = &at
	}
	return t
}
