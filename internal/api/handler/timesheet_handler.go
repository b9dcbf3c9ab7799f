package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/siteledger/timesheets/internal/api/metrics"
	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
	"github.com/siteledger/timesheets/internal/infrastructure/export"
)

// HeaderIdempotencyKey lets a contractor retry a submission safely.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

type listFunc func(ctx context.Context, actor domain.Actor) ([]*domain.Timesheet, error)

// TimesheetHandler handles HTTP requests for timesheet operations.
type TimesheetHandler struct {
	service ports.TimesheetService
	exports ports.ExportService
	format  ports.ReportWriter
}

// NewTimesheetHandler wires the timesheet use cases. format describes the
// artifact produced by exports and is used for the download headers.
func NewTimesheetHandler(service ports.TimesheetService, exports ports.ExportService, format ports.ReportWriter) *TimesheetHandler {
	return &TimesheetHandler{service: service, exports: exports, format: format}
}

// Submit records a contractor's week.
//
// @Summary      Submit a timesheet
// @Tags         timesheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                  false  "Retry-safe submission key"
// @Param        body             body      submitTimesheetRequest  true   "Week of work"
// @Success      201              {object}  timesheetResponse
// @Success      200              {object}  timesheetResponse  "Replay of an earlier submission"
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/timesheets [post]
func (h *TimesheetHandler) Submit(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLength {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be at most %d characters", HeaderIdempotencyKey, maxIdempotencyKeyLength))
	}

	var req submitTimesheetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), actor, toSubmitInput(req, key))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	} else {
		metrics.TimesheetsSubmittedTotal.Inc()
	}
	c.Response().Header().Set(echo.HeaderLocation, "/v1/timesheets/"+result.Timesheet.ID)
	return c.JSON(status, toTimesheetResponse(result.Timesheet))
}

// Get returns one timesheet.
//
// @Summary      Get a timesheet
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Timesheet ID"
// @Success      200  {object}  timesheetResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/timesheets/{id} [get]
func (h *TimesheetHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	t, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimesheetResponse(t))
}

// Approve marks a timesheet as approved. Approving twice is a no-op.
//
// @Summary      Approve a timesheet
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Timesheet ID"
// @Success      200  {object}  approveResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/timesheets/{id}/approve [post]
func (h *TimesheetHandler) Approve(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.Approve(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	if result.Changed {
		metrics.TimesheetsApprovedTotal.WithLabelValues("approved").Inc()
	} else {
		metrics.TimesheetsApprovedTotal.WithLabelValues("already_approved").Inc()
	}
	return c.JSON(http.StatusOK, approveResponse{
		Timesheet: toTimesheetResponse(result.Timesheet),
		Changed:   result.Changed,
	})
}

// ListPending returns timesheets awaiting approval, newest first.
//
// @Summary      List pending timesheets
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  timesheetListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/timesheets/pending [get]
func (h *TimesheetHandler) ListPending(c echo.Context) error {
	return h.list(c, h.service.ListPending)
}

// ListApproved returns approved timesheets, newest first.
//
// @Summary      List approved timesheets
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  timesheetListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/timesheets/approved [get]
func (h *TimesheetHandler) ListApproved(c echo.Context) error {
	return h.list(c, h.service.ListApproved)
}

// ListMine returns the caller's own timesheets, newest first.
//
// @Summary      List my timesheets
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  timesheetListResponse
// @Router       /v1/timesheets/mine [get]
func (h *TimesheetHandler) ListMine(c echo.Context) error {
	return h.list(c, h.service.ListMine)
}

func (h *TimesheetHandler) list(c echo.Context, fetch listFunc) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := fetch(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTimesheetList(items))
}

// Summary returns approved hours per contractor.
//
// @Summary      Summarize approved hours
// @Tags         timesheets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/timesheets/summary [get]
func (h *TimesheetHandler) Summary(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	rows, err := h.service.Summarize(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(rows))
}

// Export downloads the approved timesheets workbook.
//
// @Summary      Export approved timesheets
// @Tags         timesheets
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      403  {object}  errorResponse
// @Router       /v1/timesheets/export [get]
func (h *TimesheetHandler) Export(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	// Buffer the artifact so a failure still produces a JSON error response.
	var buf bytes.Buffer
	report, err := h.exports.ExportApproved(c.Request().Context(), actor, &buf)
	if err != nil {
		return err
	}
	metrics.ExportsTotal.Inc()

	name := export.FileName(report.GeneratedAt, h.format.FileExtension())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, h.format.ContentType(), buf.Bytes())
}
