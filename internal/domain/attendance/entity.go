package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

// Record is one employee's attendance entry for one calendar day.
// Date is midnight in the organization timezone and, together with
// EmployeeID, uniquely keys the record. CheckInTime and CheckOutTime
// are absolute instants stored in UTC.
type Record struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	TotalHours   decimal.Decimal // rounded to 2 places; zero while checkout is pending
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined for list and report views
	EmployeeCode *string
	EmployeeName *string
	Department   *string
}

// CheckedIn reports whether the day's check-in has happened.
func (r *Record) CheckedIn() bool {
	return r.CheckInTime != nil
}

// CheckedOut reports whether the day is complete.
func (r *Record) CheckedOut() bool {
	return r.CheckOutTime != nil
}

// HoursBetween computes worked hours rounded to 2 decimal places.
func HoursBetween(in, out time.Time) decimal.Decimal {
	return decimal.NewFromFloat(out.Sub(in).Hours()).Round(2)
}
