package application

import (
	"time"

	"eduPath/internal/database"
)

// TimelineStep is one stage of the derived progress view.
type TimelineStep struct {
	Label     string     `json:"label"`
	Date      *time.Time `json:"date"`
	Completed bool       `json:"completed"`
}

// Timeline derives the fixed four-step progress view from an application's
// status and timestamps. Nothing is persisted; each step's completed flag is
// a membership test against the status enumeration.
func Timeline(app *database.Application) []TimelineStep {
	created := app.CreatedAt
	updated := app.UpdatedAt

	reviewed := app.Status != StatusPending
	interviewed := app.Status == StatusInterviewScheduled || Terminal(app.Status)
	decided := Terminal(app.Status)

	steps := []TimelineStep{
		{Label: "Submitted", Date: &created, Completed: true},
		{Label: "Under Review", Completed: reviewed},
		{Label: "Interview", Date: app.InterviewDate, Completed: interviewed},
		{Label: "Decision", Completed: decided},
	}
	if reviewed {
		steps[1].Date = &updated
	}
	if decided {
		steps[3].Date = &updated
	}
	return steps
}
