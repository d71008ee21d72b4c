package conflict

import (
	"fmt"

	"github.com/CloudKai/fitflow/internal/models"
)

// Report collects the conflicts found by a roster-wide scan.
type Report struct {
	Conflicts []string
}

// HasConflicts returns true if the scan found any conflicts
func (r *Report) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Format returns a human-readable report of all conflicts
func (r *Report) Format() string {
	if !r.HasConflicts() {
		return "No schedule conflicts detected."
	}
	report := "Schedule conflicts detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c)
	}
	return report
}

// ScanRoster checks every client's own schedule set, then every unordered
// pair of clients, all in roster order.
func (d *Detector) ScanRoster(roster []models.Client) Report {
	report := Report{Conflicts: []string{}}
	for _, c := range roster {
		report.Conflicts = append(report.Conflicts, d.CheckInternalScheduleConflicts(c)...)
	}
	for i := 0; i < len(roster); i++ {
		for j := i + 1; j < len(roster); j++ {
			report.Conflicts = append(report.Conflicts, d.checkAgainstClient(roster[i], roster[j])...)
		}
	}
	return report
}
