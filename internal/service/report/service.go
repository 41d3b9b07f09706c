package report

import (
	"context"
	"fmt"
	"time"

	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
	"github.com/tap-academy/attendance-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	policy attendance.Policy
	now    func() time.Time
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, policy attendance.Policy) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		policy:               policy,
		now:                  time.Now,
	}
}

// criteria translates the wire request into filter predicates. Dates are
// interpreted in the organization timezone.
func (r *ReportServiceImpl) criteria(req report.ListRequest) report.Criteria {
	c := report.Criteria{
		EmployeeQuery: req.EmployeeQuery,
		Status:        attendance.Status(req.Status),
		Department:    req.Department,
	}
	if req.Date != "" {
		d, _ := time.ParseInLocation("2006-01-02", req.Date, r.policy.Location)
		c.Date = &d
	}
	if req.StartDate != "" {
		d, _ := time.ParseInLocation("2006-01-02", req.StartDate, r.policy.Location)
		c.From = &d
	}
	if req.EndDate != "" {
		d, _ := time.ParseInLocation("2006-01-02", req.EndDate, r.policy.Location)
		c.To = &d
	}
	return c
}

// window picks the store read range for the criteria. A single-date
// filter narrows it to that day; otherwise explicit bounds apply, with
// the trailing 30 days as the default.
func (r *ReportServiceImpl) window(c report.Criteria) (time.Time, time.Time) {
	today := r.policy.DateKey(r.now().UTC())

	if c.Date != nil {
		return *c.Date, *c.Date
	}

	from := today.AddDate(0, 0, -30)
	to := today
	if c.To != nil {
		to = *c.To
		// An end bound alone anchors the default window to it, not to
		// today, so ranges older than the default stay readable.
		from = to.AddDate(0, 0, -30)
	}
	if c.From != nil {
		from = *c.From
	}
	if to.Before(from) {
		to = from
	}
	return from, to
}

func (r *ReportServiceImpl) listFiltered(ctx context.Context, req report.ListRequest) ([]attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := r.criteria(req)
	from, to := r.window(c)

	records, err := r.AttendanceRepository.ListAll(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return report.Apply(records, c), nil
}

// ListAttendance implements report.ReportService.
func (r *ReportServiceImpl) ListAttendance(ctx context.Context, req report.ListRequest) (report.ListResponse, error) {
	filtered, err := r.listFiltered(ctx, req)
	if err != nil {
		return report.ListResponse{}, err
	}

	resp := report.ListResponse{
		TotalCount: len(filtered),
		Records:    make([]attendance.RecordResponse, 0, len(filtered)),
	}
	for _, record := range filtered {
		switch record.Status {
		case attendance.StatusPresent:
			resp.Present++
		case attendance.StatusAbsent:
			resp.Absent++
		case attendance.StatusLate:
			resp.Late++
		case attendance.StatusHalfDay:
			resp.HalfDay++
		}
		resp.Records = append(resp.Records, r.toResponse(record))
	}

	return resp, nil
}

// ExportRows implements report.ReportService.
func (r *ReportServiceImpl) ExportRows(ctx context.Context, req report.ListRequest) ([][]string, error) {
	filtered, err := r.listFiltered(ctx, req)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(filtered))
	for _, record := range filtered {
		rows = append(rows, []string{
			strPtrValue(record.EmployeeCode),
			strPtrValue(record.EmployeeName),
			strPtrValue(record.Department),
			record.Date.Format("2006-01-02"),
			r.clockString(record.CheckInTime),
			r.clockString(record.CheckOutTime),
			record.TotalHours.String(),
			string(record.Status),
		})
	}
	return rows, nil
}

func (r *ReportServiceImpl) toResponse(record attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeCode: record.EmployeeCode,
		EmployeeName: record.EmployeeName,
		Department:   record.Department,
		Date:         record.Date.Format("2006-01-02"),
		CheckInTime:  r.timestampString(record.CheckInTime),
		CheckOutTime: r.timestampString(record.CheckOutTime),
		TotalHours:   record.TotalHours,
		Status:       record.Status,
	}
}

func (r *ReportServiceImpl) timestampString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(r.policy.Location).Format("2006-01-02 15:04:05")
	return &s
}

func (r *ReportServiceImpl) clockString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(r.policy.Location).Format("15:04:05")
}

func strPtrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
