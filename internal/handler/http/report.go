package http

import (
	"net/http"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/report"
	"github.com/shiftwise/timeclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceExport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// AttendanceExport implements ReportHandler.
func (h *reportHandlerImpl) AttendanceExport(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		req.UserID = &v
	}

	result, err := h.reportService.AttendanceExport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
