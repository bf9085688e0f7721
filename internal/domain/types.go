package domain

import "fmt"

// Outcome is the terminal result of a single installer invocation.
type Outcome string

const (
	OutcomeInstalled        Outcome = "installed"
	OutcomeAlreadyInstalled Outcome = "already_installed"
	OutcomeRemoved          Outcome = "removed"
	OutcomeNotInstalled     Outcome = "not_installed"
)

// ScheduleEntry is one desired line in the user's crontab: run Command
// every IntervalMinutes, appending combined output to LogPath.
type ScheduleEntry struct {
	Command         string
	IntervalMinutes int
	LogPath         string
}

// Line renders the crontab line for the entry using the given schedule
// expression (see schedule.Expression).
func (e ScheduleEntry) Line(expr string) string {
	return fmt.Sprintf("%s %s >> %s 2>&1", expr, e.Command, e.LogPath)
}

// StatusReport describes whether a command is currently scheduled.
type StatusReport struct {
	Installed bool
	Line      string
	NextRun   string // RFC3339, empty when not installed
}
