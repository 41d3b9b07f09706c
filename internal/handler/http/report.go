package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tap-academy/attendance-backend-go/internal/domain/report"
	"github.com/tap-academy/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ListAttendance(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func listRequestFromQuery(r *http.Request) report.ListRequest {
	q := r.URL.Query()
	return report.ListRequest{
		EmployeeQuery: q.Get("employee"),
		Date:          q.Get("date"),
		Status:        q.Get("status"),
		Department:    q.Get("department"),
		StartDate:     q.Get("start_date"),
		EndDate:       q.Get("end_date"),
	}
}

// ListAttendance implements ReportHandler.
func (h *ReportHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	listResponse, err := h.reportService.ListAttendance(r.Context(), listRequestFromQuery(r))
	if err != nil {
		slog.Error("ListAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, listResponse)
}

// ExportCSV implements ReportHandler. The filtered report is streamed as
// a CSV attachment.
func (h *ReportHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.ExportRows(r.Context(), listRequestFromQuery(r))
	if err != nil {
		slog.Error("ExportCSV service error", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-report-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(w)
	if err := writer.Write(report.ExportHeader); err != nil {
		slog.Error("ExportCSV write error", "error", err)
		return
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			slog.Error("ExportCSV write error", "error", err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Error("ExportCSV flush error", "error", err)
	}
}
