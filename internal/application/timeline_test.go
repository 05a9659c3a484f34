package application

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"eduPath/internal/database"
)

func timelineApp(status string) *database.Application {
	return &database.Application{
		Model: gorm.Model{
			CreatedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
		},
		Status: status,
	}
}

func TestTimeline_Pending(t *testing.T) {
	steps := Timeline(timelineApp(StatusPending))
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(steps))
	}

	if !steps[0].Completed || steps[0].Date == nil {
		t.Fatal("submitted step must always be completed with a date")
	}
	for i := 1; i < 4; i++ {
		if steps[i].Completed {
			t.Errorf("step %d should be incomplete while pending", i)
		}
	}
}

func TestTimeline_InterviewScheduled(t *testing.T) {
	app := timelineApp(StatusInterviewScheduled)
	interview := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	app.InterviewDate = &interview

	steps := Timeline(app)
	if !steps[1].Completed {
		t.Error("under review must be completed once scheduled")
	}
	if !steps[2].Completed {
		t.Error("interview step must be completed")
	}
	if steps[2].Date == nil || !steps[2].Date.Equal(interview) {
		t.Errorf("interview date not surfaced: %v", steps[2].Date)
	}
	if steps[3].Completed {
		t.Error("decision must stay incomplete")
	}
}

func TestTimeline_TerminalStates(t *testing.T) {
	for _, status := range []string{StatusAccepted, StatusRejected} {
		steps := Timeline(timelineApp(status))
		for i, step := range steps {
			if !step.Completed {
				t.Errorf("status %s: step %d should be completed", status, i)
			}
		}
		if steps[3].Date == nil {
			t.Errorf("status %s: decision date missing", status)
		}
	}
}

func TestStatusHelpers(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if ValidStatus("withdrawn") {
		t.Error("unknown status accepted")
	}
	if Terminal(StatusUnderReview) || !Terminal(StatusAccepted) || !Terminal(StatusRejected) {
		t.Error("terminal classification wrong")
	}
}
