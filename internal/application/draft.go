// Package application implements the multi-step application submission
// workflow: the in-memory draft, per-step validation, document slot
// bundling, payload flattening and the submission assembler.
package application

import (
	"encoding/json"
	"fmt"
	"io"
)

// Personal holds the scalar identity fields of step one.
type Personal struct {
	FirstName      string `json:"firstName"`
	FamilyName     string `json:"familyName"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	DateOfBirth    string `json:"dob"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
	CountryOfBirth string `json:"countryBirth"`
	NativeLanguage string `json:"nativeLang"`
}

// Passport holds the optional passport details of step one.
type Passport struct {
	Name          string `json:"name"`
	IssueLocation string `json:"issueLocation"`
	Number        string `json:"number"`
	IssueDate     string `json:"issueDate"`
	ExpiryDate    string `json:"expiryDate"`
}

// Address is one postal address. Line2 is the only optional subfield.
type Address struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	PostCode string `json:"postCode"`
	State    string `json:"state"`
}

// Education is one repeatable qualification record.
type Education struct {
	Country     string `json:"country"`
	Institution string `json:"institution"`
	Course      string `json:"course"`
	Level       string `json:"level"`
	Start       string `json:"start"`
	End         string `json:"end"`
	StudyMode   string `json:"studyMode"`
	Score       string `json:"score"`
	Current     string `json:"current"`
}

// Referee is one repeatable referee record.
type Referee struct {
	Name               string `json:"name"`
	Position           string `json:"position"`
	Title              string `json:"title"`
	Email              string `json:"email"`
	Known              string `json:"known"`
	Contact            string `json:"contact"`
	Relation           string `json:"relation"`
	Institution        string `json:"institution"`
	InstitutionAddress string `json:"institutionAddress"`
}

// Work is one repeatable work-history record.
type Work struct {
	Title        string `json:"title"`
	Organisation string `json:"organisation"`
	Address      string `json:"address"`
	Description  string `json:"description"`
	RefContact   string `json:"refContact"`
	RefEmail     string `json:"refEmail"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Current      string `json:"current"`
}

// AcademicInterest is the intended course of study declared in step two.
type AcademicInterest struct {
	StudyLevel string `json:"studyLevel"`
	Discipline string `json:"discipline"`
	Programme  string `json:"programme"`
	Start      string `json:"start"`
	Location   string `json:"location"`
}

// Travel holds the travel and immigration answers of step two.
type Travel struct {
	AppliedRemain string   `json:"appliedRemain"`
	VisaNeeded    []string `json:"visaNeeded"`
	VisaRefused   string   `json:"visaRefused"`
}

// EnglishTest holds the English proficiency answers of step three.
type EnglishTest struct {
	FirstLanguage string `json:"firstLanguage"`
	TestType      string `json:"testType"`
	Score         string `json:"score"`
	Date          string `json:"date"`
}

// Declarations are the three affirmative checkboxes gating submission.
type Declarations struct {
	Accuracy       bool `json:"accuracy"`
	Terms          bool `json:"terms"`
	DataProcessing bool `json:"dataProcessing"`
}

// Draft is the not-yet-persisted state of an in-progress submission. It is
// valid for a step only when that step's rule set passes; see Validate.
type Draft struct {
	Personal             Personal         `json:"personal"`
	Passport             Passport         `json:"passport"`
	PermanentAddress     Address          `json:"permanentAddress"`
	CurrentAddress       Address          `json:"currentAddress"`
	SameAsPermanent      bool             `json:"sameAsPermanent"`
	DestinationCountries []string         `json:"destCountries"`
	Educations           []Education      `json:"educations"`
	Interest             AcademicInterest `json:"academicInterest"`
	Travel               Travel           `json:"travel"`
	Referees             []Referee        `json:"referees"`
	NoWorkExperience     bool             `json:"noWorkExp"`
	Works                []Work           `json:"works"`
	English              EnglishTest      `json:"english"`
	Accommodation        string           `json:"accommodation"`
	Declarations         Declarations     `json:"declarations"`

	// Slots is populated from multipart file parts, never from the draft JSON.
	Slots Slots `json:"-"`
}

// NewDraft returns a draft at its empty defaults: one blank education record,
// two blank referees, no work history, empty file slots.
func NewDraft() *Draft {
	return &Draft{
		Travel:        Travel{AppliedRemain: "No", VisaRefused: "No"},
		Educations:    []Education{emptyEducation()},
		Referees:      []Referee{emptyReferee(), emptyReferee()},
		Works:         []Work{},
		English:       EnglishTest{FirstLanguage: "No"},
		Accommodation: "No",
		Slots:         NewSlots(),
	}
}

// Reset discards all entered state and returns the draft to its defaults.
func (d *Draft) Reset() {
	*d = *NewDraft()
}

// DecodeDraft parses a draft from JSON, rejecting unknown keys so that stray
// form fields cannot smuggle data into the stored payload.
func DecodeDraft(r io.Reader) (*Draft, error) {
	d := NewDraft()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if d.Slots == nil {
		d.Slots = NewSlots()
	}
	if d.Educations == nil {
		d.Educations = []Education{}
	}
	if d.Referees == nil {
		d.Referees = []Referee{}
	}
	if d.Works == nil {
		d.Works = []Work{}
	}
	return d, nil
}

// SetSameAsPermanent toggles the "same as permanent address" flag. Setting it
// copies all six permanent-address fields into the current address; clearing
// it empties the current address again.
func (d *Draft) SetSameAsPermanent(same bool) {
	d.SameAsPermanent = same
	if same {
		d.CurrentAddress = d.PermanentAddress
	} else {
		d.CurrentAddress = Address{}
	}
}

// ToggleDestinationCountry adds the country to the selection, or removes it if
// already selected.
func (d *Draft) ToggleDestinationCountry(country string) {
	for i, c := range d.DestinationCountries {
		if c == country {
			d.DestinationCountries = append(d.DestinationCountries[:i], d.DestinationCountries[i+1:]...)
			return
		}
	}
	d.DestinationCountries = append(d.DestinationCountries, country)
}

func emptyEducation() Education {
	return Education{Current: "No"}
}

func emptyReferee() Referee {
	return Referee{}
}

func emptyWork() Work {
	return Work{Current: "No"}
}
