package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/user"
	"github.com/shiftwise/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise/timeclock-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Clock(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	Roster(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	users             user.UserRepository
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, users user.UserRepository) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		users:             users,
	}
}

// Clock implements AttendanceHandler. One endpoint takes every transition;
// the action field says which.
func (h *attendanceHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = middleware.UserID(r)

	result, err := h.attendanceService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Action applied", result)
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Status(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	filter := attendance.HistoryFilter{
		UserID:    middleware.UserID(r),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.attendanceService.History(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Roster implements AttendanceHandler. Managers get live snapshots for the
// whole roster, or for an explicit user_ids subset.
func (h *attendanceHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if raw := r.URL.Query().Get("user_ids"); raw != "" {
		ids = strings.Split(raw, ",")
	} else {
		var err error
		ids, err = h.users.ListIDs(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.attendanceService.RosterStatus(r.Context(), ids)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
