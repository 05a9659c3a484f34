package application

import "testing"

func TestEducationFloor(t *testing.T) {
	d := NewDraft()
	if len(d.Educations) != 1 {
		t.Fatalf("fresh draft should hold 1 education, got %d", len(d.Educations))
	}

	if err := d.RemoveEducation(0); err != ErrFloorReached {
		t.Fatalf("expected ErrFloorReached, got %v", err)
	}

	d.AddEducation()
	if err := d.RemoveEducation(0); err != nil {
		t.Fatalf("remove above floor: %v", err)
	}
	if len(d.Educations) != 1 {
		t.Fatalf("expected 1 education left, got %d", len(d.Educations))
	}
}

func TestRefereeFloor(t *testing.T) {
	d := NewDraft()
	if len(d.Referees) != 2 {
		t.Fatalf("fresh draft should hold 2 referees, got %d", len(d.Referees))
	}

	if err := d.RemoveReferee(1); err != ErrFloorReached {
		t.Fatalf("expected ErrFloorReached, got %v", err)
	}

	d.AddReferee()
	if err := d.RemoveReferee(2); err != nil {
		t.Fatalf("remove above floor: %v", err)
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	d := NewDraft()
	d.AddEducation()
	d.AddEducation()
	for i := range d.Educations {
		edu, err := d.EducationAt(i)
		if err != nil {
			t.Fatalf("at %d: %v", i, err)
		}
		edu.Institution = []string{"first", "second", "third"}[i]
	}

	if err := d.RemoveEducation(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if d.Educations[0].Institution != "first" || d.Educations[1].Institution != "third" {
		t.Fatalf("order broken: %s, %s", d.Educations[0].Institution, d.Educations[1].Institution)
	}
}

func TestRecordAt_OutOfRange(t *testing.T) {
	d := NewDraft()
	if _, err := d.EducationAt(5); err != ErrIndexOutOfRange {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := d.RefereeAt(-1); err != ErrIndexOutOfRange {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestWorkHistoryHasNoFloor(t *testing.T) {
	d := NewDraft()
	if len(d.Works) != 0 {
		t.Fatalf("fresh draft should hold no work records, got %d", len(d.Works))
	}

	d.AddWork()
	if d.NoWorkExperience {
		t.Fatal("adding work must clear the no-experience flag")
	}
	if err := d.RemoveWork(0); err != nil {
		t.Fatalf("remove last work record: %v", err)
	}
}

func TestSetNoWorkExperienceClearsRecords(t *testing.T) {
	d := NewDraft()
	d.AddWork()
	d.AddWork()

	d.SetNoWorkExperience(true)
	if !d.NoWorkExperience {
		t.Fatal("flag not set")
	}
	if len(d.Works) != 0 {
		t.Fatalf("expected works cleared, got %d", len(d.Works))
	}
}
