package application

import (
	"fmt"
	"regexp"
	"strings"

	"eduPath/internal/refdata"
)

// Step identifies one screen of the submission wizard.
type Step int

const (
	// StepPersonal covers personal details, passport and both addresses.
	StepPersonal Step = 1
	// StepEducation covers destinations, qualifications, academic interest and travel.
	StepEducation Step = 2
	// StepDocuments covers referees, work history, uploads and declarations.
	StepDocuments Step = 3
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the draft against one step's rule set and returns a map from
// field key to error message. An empty map means the step may advance. A field
// either passes or blocks; there is no warning severity.
func Validate(d *Draft, step Step) map[string]string {
	errs := map[string]string{}

	switch step {
	case StepPersonal:
		validatePersonal(d, errs)
	case StepEducation:
		validateEducation(d, errs)
	case StepDocuments:
		validateDocuments(d, errs)
	}

	return errs
}

func validatePersonal(d *Draft, errs map[string]string) {
	p := d.Personal
	if blank(p.FirstName) {
		errs["firstName"] = "First name is required"
	}
	if blank(p.FamilyName) {
		errs["familyName"] = "Family name is required"
	}
	switch {
	case blank(p.Email):
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(p.Email):
		errs["email"] = "Invalid email format"
	}
	if blank(p.Mobile) {
		errs["mobile"] = "Mobile number is required"
	}
	if blank(p.Nationality) {
		errs["nationality"] = "Nationality is required"
	}
	if blank(p.CountryOfBirth) {
		errs["countryBirth"] = "Country of birth is required"
	}

	requireAddress(errs, d.PermanentAddress, "perm", "Permanent")

	// Current address is copied from the permanent one while the flag is set
	// and is excluded from the required-field check.
	if !d.SameAsPermanent {
		requireAddress(errs, d.CurrentAddress, "curr", "Current")
	}
}

func requireAddress(errs map[string]string, a Address, prefix, label string) {
	if blank(a.Country) {
		errs[prefix+"Country"] = label + " country is required"
	}
	if blank(a.City) {
		errs[prefix+"City"] = label + " city is required"
	}
	if blank(a.Line1) {
		errs[prefix+"Add1"] = label + " address is required"
	}
	if blank(a.PostCode) {
		errs[prefix+"Post"] = label + " post code is required"
	}
	if blank(a.State) {
		errs[prefix+"State"] = label + " state is required"
	}
}

func validateEducation(d *Draft, errs map[string]string) {
	if len(d.DestinationCountries) == 0 {
		errs["destCountries"] = "Select at least one destination country"
	}
	for _, country := range d.DestinationCountries {
		if !refdata.IsDestinationCountry(country) {
			errs["destCountries"] = fmt.Sprintf("%q is not an offered destination", country)
			break
		}
	}

	for i, edu := range d.Educations {
		key := func(field string) string { return fmt.Sprintf("edu_%d_%s", i, field) }
		if blank(edu.Country) {
			errs[key("country")] = "Country is required"
		}
		if blank(edu.Institution) {
			errs[key("institution")] = "Institution is required"
		}
		if blank(edu.Course) {
			errs[key("course")] = "Course is required"
		}
		if blank(edu.Level) {
			errs[key("level")] = "Level is required"
		}
		if blank(edu.Start) {
			errs[key("start")] = "Start date is required"
		}
		if blank(edu.End) {
			errs[key("end")] = "End date is required"
		}
		if blank(edu.StudyMode) {
			errs[key("fulltime")] = "Study mode is required"
		}
		if blank(edu.Score) {
			errs[key("score")] = "Score is required"
		}
	}

	if blank(d.Interest.StudyLevel) {
		errs["studyLevel"] = "Level of study is required"
	}
	if blank(d.Interest.Discipline) {
		errs["discipline"] = "Discipline is required"
	}
	if blank(d.Interest.Start) {
		errs["academicStart"] = "Start date is required"
	}
	if blank(d.Interest.Location) {
		errs["academicLocation"] = "Location is required"
	}
}

func validateDocuments(d *Draft, errs map[string]string) {
	if len(d.Referees) < RefereeFloor {
		errs["referees"] = "At least 2 referees are required"
	}

	for _, name := range MandatorySlots() {
		slot, ok := d.Slots[name]
		if !ok || slot.Len() == 0 {
			errs[name] = mandatorySlotMessage(name)
		}
	}

	if !d.Declarations.Accuracy {
		errs["dec1"] = "Declaration 1 is required"
	}
	if !d.Declarations.Terms {
		errs["dec2"] = "Declaration 2 is required"
	}
	if !d.Declarations.DataProcessing {
		errs["dec3"] = "Declaration 3 is required"
	}
}

func mandatorySlotMessage(name string) string {
	switch name {
	case "cv":
		return "CV is required"
	case "passportCopy":
		return "Passport copy is required"
	case "transcript":
		return "Transcript is required"
	default:
		return "Document is required"
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
