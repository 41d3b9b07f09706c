package http

import (
	"log/slog"
	"net/http"

	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
	"github.com/tap-academy/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetMySummary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	record, err := a.attendanceService.CheckIn(r.Context())
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked in", "employee_id", record.EmployeeID, "status", record.Status)
	response.Created(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	record, err := a.attendanceService.CheckOut(r.Context())
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked out", "employee_id", record.EmployeeID, "total_hours", record.TotalHours)
	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// TodayStatus implements AttendanceHandler.
func (a *AttendanceHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	status, err := a.attendanceService.TodayStatus(r.Context())
	if err != nil {
		slog.Error("TodayStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetMyAttendance implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.HistoryFilter{}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	records, err := a.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetMySummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "month query parameter is required (YYYY-MM)", nil)
		return
	}

	summary, err := a.attendanceService.GetMySummary(r.Context(), month)
	if err != nil {
		slog.Error("GetMySummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
