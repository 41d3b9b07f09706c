package attendance

import "errors"

// Attendance domain errors
var (
	// Lifecycle errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrInvalidTimeOrder  = errors.New("check-out time is before check-in time")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
