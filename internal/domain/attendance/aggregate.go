package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySummary is a derived per-employee rollup over a date range.
type MonthlySummary struct {
	Present    int             `json:"present"`
	Absent     int             `json:"absent"`
	Late       int             `json:"late"`
	HalfDay    int             `json:"half_day"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// DailyTeamStat is a derived team-wide rollup for one calendar day.
type DailyTeamStat struct {
	Date         time.Time `json:"date"`
	Name         string    `json:"name"` // weekday name for display
	PresentCount int       `json:"present"`
	AbsentCount  int       `json:"absent"`
	LateCount    int       `json:"late"`
}

// Summarize reduces records into status counts and a total-hours sum.
// Order-independent; a zero TotalHours contributes nothing to the sum.
func Summarize(records []Record) MonthlySummary {
	var s MonthlySummary
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			s.Present++
		case StatusAbsent:
			s.Absent++
		case StatusLate:
			s.Late++
		case StatusHalfDay:
			s.HalfDay++
		}
		s.TotalHours = s.TotalHours.Add(r.TotalHours)
	}
	return s
}

// TeamDailyStats partitions one day's records into team counts. Present
// includes half-day records (the employee did attend); late is counted
// separately. With a roster supplied, active employees with no record
// for the day are counted absent in addition to explicit absent
// records; without one, absent reflects only explicit records.
func TeamDailyStats(records []Record, day time.Time, rosterIDs []string) DailyTeamStat {
	stat := DailyTeamStat{
		Date: day,
		Name: day.Weekday().String(),
	}

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if !sameDay(r.Date, day) {
			continue
		}
		seen[r.EmployeeID] = true
		switch r.Status {
		case StatusPresent, StatusHalfDay:
			stat.PresentCount++
		case StatusLate:
			stat.LateCount++
		case StatusAbsent:
			stat.AbsentCount++
		}
	}

	for _, id := range rosterIDs {
		if !seen[id] {
			stat.AbsentCount++
		}
	}

	return stat
}

// WeeklyOverview returns exactly seven daily stats covering start
// through start+6, chronologically ascending. Days with no records
// still get an entry with zero counts (absent reflects the roster).
func WeeklyOverview(records []Record, start time.Time, rosterIDs []string) []DailyTeamStat {
	stats := make([]DailyTeamStat, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		stats = append(stats, TeamDailyStats(records, day, rosterIDs))
	}
	return stats
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
