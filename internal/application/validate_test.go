package application

import "testing"

func filledAddress() Address {
	return Address{
		Country:  "United Kingdom",
		City:     "London",
		Line1:    "1 High Street",
		PostCode: "SW1A 1AA",
		State:    "Greater London",
	}
}

func completePersonalDraft() *Draft {
	d := NewDraft()
	d.Personal = Personal{
		FirstName:      "Asha",
		FamilyName:     "Rahman",
		Email:          "asha@example.com",
		Mobile:         "+8801712345678",
		Nationality:    "Bangladeshi",
		CountryOfBirth: "Bangladesh",
	}
	d.PermanentAddress = filledAddress()
	d.SetSameAsPermanent(true)
	return d
}

func TestValidatePersonal_AllRequiredKeysReported(t *testing.T) {
	d := NewDraft()
	errs := Validate(d, StepPersonal)

	required := []string{
		"firstName", "familyName", "email", "mobile", "nationality", "countryBirth",
		"permCountry", "permCity", "permAdd1", "permPost", "permState",
		"currCountry", "currCity", "currAdd1", "currPost", "currState",
	}
	for _, key := range required {
		if _, ok := errs[key]; !ok {
			t.Errorf("missing error for %q", key)
		}
	}
	// Address line 2 is optional on both addresses.
	for _, key := range []string{"permAdd2", "currAdd2"} {
		if _, ok := errs[key]; ok {
			t.Errorf("unexpected error for optional field %q", key)
		}
	}
}

func TestValidatePersonal_EmailFormat(t *testing.T) {
	d := completePersonalDraft()
	d.Personal.Email = "not-an-email"
	errs := Validate(d, StepPersonal)
	if errs["email"] != "Invalid email format" {
		t.Fatalf("expected format error, got %q", errs["email"])
	}
}

func TestValidatePersonal_SameAsPermanentSkipsCurrent(t *testing.T) {
	d := NewDraft()
	d.PermanentAddress = filledAddress()
	d.SetSameAsPermanent(true)

	errs := Validate(d, StepPersonal)
	for _, key := range []string{"currCountry", "currCity", "currAdd1", "currPost", "currState"} {
		if _, ok := errs[key]; ok {
			t.Errorf("current address field %q should be skipped while copied", key)
		}
	}

	// Clearing the flag empties the current address, so its fields go back
	// to being required.
	d.SetSameAsPermanent(false)
	errs = Validate(d, StepPersonal)
	if _, ok := errs["currCity"]; !ok {
		t.Fatal("expected currCity required after clearing the flag")
	}
}

func TestValidateEducation_PerRecordKeys(t *testing.T) {
	d := NewDraft()
	d.AddEducation()
	errs := Validate(d, StepEducation)

	if _, ok := errs["destCountries"]; !ok {
		t.Error("expected destCountries error when no destination selected")
	}
	for _, key := range []string{
		"edu_0_country", "edu_0_institution", "edu_0_course", "edu_0_level",
		"edu_0_start", "edu_0_end", "edu_0_fulltime", "edu_0_score",
		"edu_1_country",
		"studyLevel", "discipline", "academicStart", "academicLocation",
	} {
		if _, ok := errs[key]; !ok {
			t.Errorf("missing error for %q", key)
		}
	}
}

func TestValidateEducation_CleanStepPasses(t *testing.T) {
	d := NewDraft()
	d.ToggleDestinationCountry("United Kingdom")
	d.Educations[0] = Education{
		Country: "Bangladesh", Institution: "University of Dhaka",
		Course: "BSc Computer Science", Level: "Undergraduate",
		Start: "2019-01", End: "2023-01", StudyMode: "Full-time", Score: "3.8",
	}
	d.Interest = AcademicInterest{
		StudyLevel: "Postgraduate", Discipline: "Computer Science",
		Start: "2026-09", Location: "London",
	}

	if errs := Validate(d, StepEducation); len(errs) != 0 {
		t.Fatalf("expected clean step, got %v", errs)
	}

	// A country outside the offered destination list is refused even though
	// the selection is non-empty.
	d.DestinationCountries = []string{"Atlantis"}
	if errs := Validate(d, StepEducation); errs["destCountries"] == "" {
		t.Fatal("expected unknown destination error")
	}
}

func TestValidateDocuments(t *testing.T) {
	d := NewDraft()
	errs := Validate(d, StepDocuments)

	for _, key := range []string{"cv", "passportCopy", "transcript", "dec1", "dec2", "dec3"} {
		if _, ok := errs[key]; !ok {
			t.Errorf("missing error for %q", key)
		}
	}
	if _, ok := errs["referees"]; ok {
		t.Error("two default referees satisfy the floor")
	}

	d.Referees = d.Referees[:1]
	errs = Validate(d, StepDocuments)
	if errs["referees"] == "" {
		t.Fatal("expected referees floor error")
	}
}

func TestValidateDocuments_CompletePasses(t *testing.T) {
	d := NewDraft()
	for _, slot := range MandatorySlots() {
		if _, err := d.Slots.Add(slot, slotFile(slot+".pdf", 1024)); err != nil {
			t.Fatalf("add %s: %v", slot, err)
		}
	}
	d.Declarations = Declarations{Accuracy: true, Terms: true, DataProcessing: true}

	if errs := Validate(d, StepDocuments); len(errs) != 0 {
		t.Fatalf("expected clean step, got %v", errs)
	}
}
