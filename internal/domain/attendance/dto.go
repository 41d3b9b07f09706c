package attendance

import (
	"github.com/shopspring/decimal"

	"github.com/tap-academy/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// HistoryFilter bounds a personal history query. Either end is optional.
type HistoryFilter struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		}
	}

	if f.StartDate != nil && f.EndDate != nil && *f.StartDate != "" && *f.EndDate != "" {
		start, okStart := validator.IsValidDate(*f.StartDate)
		end, okEnd := validator.IsValidDate(*f.EndDate)
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordResponse is the wire form of a Record.
type RecordResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode *string         `json:"employee_code,omitempty"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Department   *string         `json:"department,omitempty"`
	Date         string          `json:"date"`
	CheckInTime  *string         `json:"check_in_time"`
	CheckOutTime *string         `json:"check_out_time"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	Status       Status          `json:"status"`
}

// TodayStatusResponse carries today's record when one exists. CheckedIn
// false means the employee has not checked in yet; that is not an error.
type TodayStatusResponse struct {
	CheckedIn bool            `json:"checked_in"`
	Record    *RecordResponse `json:"record,omitempty"`
}
