package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	exports report.ExportRepository
}

func NewReportService(exports report.ExportRepository) report.ReportService {
	return &ReportServiceImpl{exports: exports}
}

// AttendanceExport implements report.ReportService.
func (s *ReportServiceImpl) AttendanceExport(ctx context.Context, req report.ExportRequest) (report.AttendanceExport, error) {
	start, end, err := req.Validate()
	if err != nil {
		return report.AttendanceExport{}, err
	}

	rows, err := s.exports.GetCompletedEntries(ctx, req.UserID, start, end)
	if err != nil {
		return report.AttendanceExport{}, fmt.Errorf("failed to load export rows: %w", err)
	}

	return report.AttendanceExport{
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
		Rows:        rows,
	}, nil
}
