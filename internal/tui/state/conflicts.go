package state

import "fmt"

// UpdateConflictStatus rescans the roster and updates the warning banner.
// Deleted clients are excluded, matching the scan the CLI runs.
func (m *Model) UpdateConflictStatus() {
	roster, err := m.Store.GetAllClients()
	if err != nil {
		// Store errors prevent scanning - show generic message
		m.ConflictWarning = "⚠ Conflict scan unavailable"
		m.RosterConflicts = nil
		return
	}

	report := m.Detector.ScanRoster(roster)
	m.RosterConflicts = report.Conflicts
	m.ConflictsModel.SetReport(report)

	if report.HasConflicts() {
		// Show count of conflicts
		m.ConflictWarning = fmt.Sprintf("⚠ %d schedule conflict(s)", len(report.Conflicts))
	} else {
		m.ConflictWarning = ""
	}
}
