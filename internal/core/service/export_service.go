package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

type exportService struct {
	timesheets ports.TimesheetService
	writer     ports.ReportWriter
	log        zerolog.Logger
	now        func() time.Time
}

// NewExportService returns an ExportService that renders through writer.
func NewExportService(timesheets ports.TimesheetService, writer ports.ReportWriter, log zerolog.Logger) ports.ExportService {
	return &exportService{
		timesheets: timesheets,
		writer:     writer,
		log:        log,
		now:        time.Now,
	}
}

// ExportApproved writes the approved timesheets and the per-contractor summary to w.
func (s *exportService) ExportApproved(ctx context.Context, actor domain.Actor, w io.Writer) (*ports.ApprovedReport, error) {
	approved, err := s.timesheets.ListApproved(ctx, actor)
	if err != nil {
		return nil, err
	}

	report := ports.ApprovedReport{
		GeneratedAt: s.now().UTC(),
		Details:     approved,
		Summary:     domain.SummarizeByContractor(approved),
	}

	if err := s.writer.Write(w, report); err != nil {
		return nil, fmt.Errorf("export approved: %w", err)
	}

	s.log.Info().
		Int("timesheets", len(report.Details)).
		Int("contractors", len(report.Summary)).
		Str("requested_by", actor.AccountID).
		Msg("approved timesheets exported")

	return &report, nil
}
