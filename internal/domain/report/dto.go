package report

import (
	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
	"github.com/tap-academy/attendance-backend-go/internal/pkg/validator"
)

// ListRequest is the query form of Criteria as received over HTTP.
type ListRequest struct {
	EmployeeQuery string `json:"employee"`
	Date          string `json:"date"`
	Status        string `json:"status"`
	Department    string `json:"department"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

func (r *ListRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, f := range []struct{ name, value string }{
		{"date", r.Date},
		{"start_date", r.StartDate},
		{"end_date", r.EndDate},
	} {
		if f.value == "" {
			continue
		}
		if _, ok := validator.IsValidDate(f.value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must be YYYY-MM-DD",
			})
		}
	}

	if r.Status != "" && !attendance.Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, late, half-day",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListResponse carries the filtered records plus per-status totals the
// report views display above the table.
type ListResponse struct {
	TotalCount int                         `json:"total_count"`
	Present    int                         `json:"present"`
	Absent     int                         `json:"absent"`
	Late       int                         `json:"late"`
	HalfDay    int                         `json:"half_day"`
	Records    []attendance.RecordResponse `json:"records"`
}

// ExportHeader is the fixed column order consumed by the CSV writer.
var ExportHeader = []string{
	"Employee ID", "Employee Name", "Department", "Date",
	"Check In", "Check Out", "Total Hours", "Status",
}
