package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
	"github.com/tap-academy/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	policy attendance.Policy
	now    func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, policy attendance.Policy) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		policy:               policy,
		now:                  time.Now,
	}
}

// employeeIDFromClaims pulls the acting employee out of the request JWT.
func employeeIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

// timePtrToString safely converts a *time.Time to a string in the given location.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	format := t.In(loc).Format("2006-01-02 15:04:05")
	return &format
}

func (a *AttendanceServiceImpl) toResponse(record attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeCode: record.EmployeeCode,
		EmployeeName: record.EmployeeName,
		Department:   record.Department,
		Date:         record.Date.Format("2006-01-02"),
		CheckInTime:  timePtrToString(record.CheckInTime, a.policy.Location),
		CheckOutTime: timePtrToString(record.CheckOutTime, a.policy.Location),
		TotalHours:   record.TotalHours,
		Status:       record.Status,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	nowUTC := a.now().UTC()
	date := a.policy.DateKey(nowUTC)

	_, err = a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err == nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check today's record: %w", err)
	}

	record := attendance.Record{
		EmployeeID:  employeeID,
		Date:        date,
		CheckInTime: &nowUTC,
		Status:      attendance.Classify(nowUTC, a.policy),
	}

	// The store's uniqueness on (employee_id, date) is the real guard;
	// a concurrent winner makes this Create surface ErrAlreadyCheckedIn.
	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return a.toResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	nowUTC := a.now().UTC()
	date := a.policy.DateKey(nowUTC)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}

	if !record.CheckedIn() {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckedOut() {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if nowUTC.Before(*record.CheckInTime) {
		return attendance.RecordResponse{}, attendance.ErrInvalidTimeOrder
	}

	record.CheckOutTime = &nowUTC
	record.TotalHours = attendance.HoursBetween(*record.CheckInTime, nowUTC)
	if a.policy.IsHalfDay(record.TotalHours) {
		record.Status = attendance.StatusHalfDay
	}

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return a.toResponse(record), nil
}

// TodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodayStatus(ctx context.Context) (attendance.TodayStatusResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	date := a.policy.DateKey(a.now().UTC())

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.TodayStatusResponse{CheckedIn: false}, nil
		}
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}

	resp := a.toResponse(record)
	return attendance.TodayStatusResponse{CheckedIn: true, Record: &resp}, nil
}

// GetMyAttendance implements attendance.AttendanceService. Without an
// explicit range it returns the trailing 30 days.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	today := a.policy.DateKey(a.now().UTC())
	from := today.AddDate(0, 0, -30)
	to := today

	if filter.EndDate != nil && *filter.EndDate != "" {
		parsed, _ := time.ParseInLocation("2006-01-02", *filter.EndDate, a.policy.Location)
		to = parsed
		// An end bound alone anchors the default window to it, not to
		// today, so ranges older than the default stay readable.
		from = to.AddDate(0, 0, -30)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		parsed, _ := time.ParseInLocation("2006-01-02", *filter.StartDate, a.policy.Location)
		from = parsed
	}
	if to.Before(from) {
		to = from
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, a.toResponse(record))
	}
	return responses, nil
}

// GetMySummary implements attendance.AttendanceService. month is "YYYY-MM".
func (a *AttendanceServiceImpl) GetMySummary(ctx context.Context, month string) (attendance.MonthlySummary, error) {
	if _, ok := validator.IsValidMonth(month); !ok {
		return attendance.MonthlySummary{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be YYYY-MM",
		}}
	}
	parsed, _ := time.ParseInLocation("2006-01", month, a.policy.Location)

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.MonthlySummary{}, err
	}

	from := parsed
	to := parsed.AddDate(0, 1, -1)

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to list month records: %w", err)
	}

	return attendance.Summarize(records), nil
}
