package report

import (
	"strings"
	"time"

	"github.com/tap-academy/attendance-backend-go/internal/domain/attendance"
)

// Criteria is the set of recognized report predicates. All set fields
// compose with logical AND; zero-value fields do not filter.
type Criteria struct {
	EmployeeQuery string // case-insensitive substring on name or employee code
	Date          *time.Time
	Status        attendance.Status
	Department    string
	From          *time.Time // inclusive
	To            *time.Time // inclusive
}

// Empty reports whether no predicate is set.
func (c Criteria) Empty() bool {
	return c.EmployeeQuery == "" && c.Date == nil && c.Status == "" &&
		c.Department == "" && c.From == nil && c.To == nil
}

// Apply filters records by the criteria, preserving the input order.
// Empty criteria returns the input unchanged.
func Apply(records []attendance.Record, c Criteria) []attendance.Record {
	if c.Empty() {
		return records
	}

	filtered := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if matches(r, c) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matches(r attendance.Record, c Criteria) bool {
	if c.EmployeeQuery != "" {
		q := strings.ToLower(c.EmployeeQuery)
		name := ""
		if r.EmployeeName != nil {
			name = strings.ToLower(*r.EmployeeName)
		}
		code := ""
		if r.EmployeeCode != nil {
			code = strings.ToLower(*r.EmployeeCode)
		}
		if !strings.Contains(name, q) && !strings.Contains(code, q) {
			return false
		}
	}

	if c.Date != nil && !sameDay(r.Date, *c.Date) {
		return false
	}

	if c.Status != "" && r.Status != c.Status {
		return false
	}

	if c.Department != "" {
		if r.Department == nil || *r.Department != c.Department {
			return false
		}
	}

	if c.From != nil && dayBefore(r.Date, *c.From) {
		return false
	}
	if c.To != nil && dayBefore(*c.To, r.Date) {
		return false
	}

	return true
}

// Date comparisons go by calendar components: stored date keys decode
// as UTC midnight while criteria carry organization-timezone midnight,
// so comparing the instants would shift the inclusive bounds by a day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
