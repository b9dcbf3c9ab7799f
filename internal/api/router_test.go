package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/siteledger/timesheets/internal/api/handler"
	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

const testSecret = "router-secret"

// fakeTimesheets records which operation a route reached.
type fakeTimesheets struct {
	called string
}

func (f *fakeTimesheets) Submit(_ context.Context, _ domain.Actor, _ ports.SubmitTimesheetInput) (*ports.SubmitResult, error) {
	f.called = "submit"
	return &ports.SubmitResult{Timesheet: &domain.Timesheet{ID: "t-1"}}, nil
}

func (f *fakeTimesheets) Approve(_ context.Context, _ domain.Actor, id string) (*ports.ApproveResult, error) {
	f.called = "approve:" + id
	return &ports.ApproveResult{Timesheet: &domain.Timesheet{ID: id, Approved: true}, Changed: true}, nil
}

func (f *fakeTimesheets) Get(_ context.Context, _ domain.Actor, id string) (*domain.Timesheet, error) {
	f.called = "get:" + id
	return &domain.Timesheet{ID: id}, nil
}

func (f *fakeTimesheets) ListPending(context.Context, domain.Actor) ([]*domain.Timesheet, error) {
	f.called = "pending"
	return nil, nil
}

func (f *fakeTimesheets) ListApproved(context.Context, domain.Actor) ([]*domain.Timesheet, error) {
	f.called = "approved"
	return nil, nil
}

func (f *fakeTimesheets) ListMine(context.Context, domain.Actor) ([]*domain.Timesheet, error) {
	f.called = "mine"
	return nil, nil
}

func (f *fakeTimesheets) Summarize(context.Context, domain.Actor) ([]domain.ContractorHours, error) {
	f.called = "summary"
	return nil, nil
}

type fakeExports struct{}

func (fakeExports) ExportApproved(_ context.Context, _ domain.Actor, w io.Writer) (*ports.ApprovedReport, error) {
	_, _ = io.WriteString(w, "xlsx")
	return &ports.ApprovedReport{GeneratedAt: time.Now()}, nil
}

type fakeFormat struct{}

func (fakeFormat) Write(io.Writer, ports.ApprovedReport) error { return nil }
func (fakeFormat) ContentType() string                         { return "application/octet-stream" }
func (fakeFormat) FileExtension() string                       { return "xlsx" }

type fakeRevocations struct{}

func (fakeRevocations) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func newTestRouter(t *testing.T) (*fakeTimesheets, http.Handler) {
	t.Helper()
	ts := &fakeTimesheets{}
	e := NewRouter(Dependencies{
		Log:         zerolog.Nop(),
		JWTSecret:   testSecret,
		Timesheets:  ts,
		Exports:     fakeExports{},
		Format:      fakeFormat{},
		Revocations: fakeRevocations{},
		Health: map[string]handler.Pinger{
			"store": func(context.Context) error { return nil },
		},
		Metrics: prometheus.NewRegistry(),
	})
	return ts, e
}

func bearer(t *testing.T, role domain.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "acc-" + string(role),
		"username": string(role),
		"role":     string(role),
		"jti":      "tok-" + string(role),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func do(h http.Handler, method, target, auth, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_StaticRoutesBeforeID(t *testing.T) {
	ts, h := newTestRouter(t)
	manager := bearer(t, domain.RoleManager)

	cases := map[string]string{
		"/v1/timesheets/mine":     "mine",
		"/v1/timesheets/pending":  "pending",
		"/v1/timesheets/approved": "approved",
		"/v1/timesheets/summary":  "summary",
		"/v1/timesheets/abc-123":  "get:abc-123",
	}
	for path, want := range cases {
		ts.called = ""
		rec := do(h, http.MethodGet, path, manager, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		if ts.called != want {
			t.Fatalf("%s: expected %q, reached %q", path, want, ts.called)
		}
	}
}

func TestRouter_RoleGates(t *testing.T) {
	_, h := newTestRouter(t)
	manager := bearer(t, domain.RoleManager)
	contractor := bearer(t, domain.RoleContractor)

	cases := []struct {
		method, path, auth, body string
		want                     int
	}{
		{http.MethodGet, "/v1/timesheets/pending", "", "", http.StatusUnauthorized},
		{http.MethodGet, "/v1/timesheets/pending", contractor, "", http.StatusForbidden},
		{http.MethodPost, "/v1/timesheets/t-1/approve", contractor, "", http.StatusForbidden},
		{http.MethodPost, "/v1/timesheets/t-1/approve", manager, "", http.StatusOK},
		{http.MethodGet, "/v1/timesheets/export", contractor, "", http.StatusForbidden},
		{http.MethodGet, "/v1/timesheets/export", manager, "", http.StatusOK},
		{http.MethodGet, "/v1/accounts", contractor, "", http.StatusForbidden},
		{http.MethodGet, "/v1/timesheets/mine", contractor, "", http.StatusOK},
		{http.MethodPost, "/v1/timesheets", manager, `{}`, http.StatusForbidden},
		{http.MethodPost, "/v1/timesheets", contractor,
			`{"client":"Acme","site_address":"1 Main St","week_start":"2024-01-01","hours":{"monday":8},"hourly_rate":20}`,
			http.StatusCreated},
	}
	for _, tc := range cases {
		rec := do(h, tc.method, tc.path, tc.auth, tc.body)
		if rec.Code != tc.want {
			t.Errorf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	_, h := newTestRouter(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		rec := do(h, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	_, h := newTestRouter(t)

	rec := do(h, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("expected JSON error envelope, got %s", rec.Body.String())
	}
}

func TestRouter_RejectsOversizedBody(t *testing.T) {
	ts, h := newTestRouter(t)
	contractor := bearer(t, domain.RoleContractor)

	body := `{"client":"` + strings.Repeat("a", 70*1024) + `","site_address":"1 Main St","week_start":"2024-01-01","hours":{"monday":8},"hourly_rate":20}`
	rec := do(h, http.MethodPost, "/v1/timesheets", contractor, body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	if ts.called != "" {
		t.Fatalf("oversized body must not reach the service, reached %q", ts.called)
	}
}
