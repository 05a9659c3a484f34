package application

import "errors"

// Minimum record counts for the repeatable arrays. Work history has no floor;
// an empty list together with NoWorkExperience represents "no experience".
const (
	EducationFloor = 1
	RefereeFloor   = 2
)

var (
	ErrIndexOutOfRange = errors.New("record index out of range")
	ErrFloorReached    = errors.New("cannot remove below the minimum record count")
)

// AddEducation appends a qualification record at its empty defaults.
func (d *Draft) AddEducation() {
	d.Educations = append(d.Educations, emptyEducation())
}

// EducationAt returns the record at index i for in-place field updates.
func (d *Draft) EducationAt(i int) (*Education, error) {
	if i < 0 || i >= len(d.Educations) {
		return nil, ErrIndexOutOfRange
	}
	return &d.Educations[i], nil
}

// RemoveEducation deletes the record at index i, preserving the relative order
// of the remaining records. Removal below the education floor is refused.
func (d *Draft) RemoveEducation(i int) error {
	if i < 0 || i >= len(d.Educations) {
		return ErrIndexOutOfRange
	}
	if len(d.Educations) <= EducationFloor {
		return ErrFloorReached
	}
	d.Educations = append(d.Educations[:i], d.Educations[i+1:]...)
	return nil
}

// AddReferee appends a referee record at its empty defaults.
func (d *Draft) AddReferee() {
	d.Referees = append(d.Referees, emptyReferee())
}

// RefereeAt returns the record at index i for in-place field updates.
func (d *Draft) RefereeAt(i int) (*Referee, error) {
	if i < 0 || i >= len(d.Referees) {
		return nil, ErrIndexOutOfRange
	}
	return &d.Referees[i], nil
}

// RemoveReferee deletes the record at index i. Removal below the referee floor
// of two is refused.
func (d *Draft) RemoveReferee(i int) error {
	if i < 0 || i >= len(d.Referees) {
		return ErrIndexOutOfRange
	}
	if len(d.Referees) <= RefereeFloor {
		return ErrFloorReached
	}
	d.Referees = append(d.Referees[:i], d.Referees[i+1:]...)
	return nil
}

// AddWork appends a work-history record at its empty defaults and clears the
// no-work-experience flag.
func (d *Draft) AddWork() {
	d.NoWorkExperience = false
	d.Works = append(d.Works, emptyWork())
}

// WorkAt returns the record at index i for in-place field updates.
func (d *Draft) WorkAt(i int) (*Work, error) {
	if i < 0 || i >= len(d.Works) {
		return nil, ErrIndexOutOfRange
	}
	return &d.Works[i], nil
}

// RemoveWork deletes the record at index i. The work list may become empty.
func (d *Draft) RemoveWork(i int) error {
	if i < 0 || i >= len(d.Works) {
		return ErrIndexOutOfRange
	}
	d.Works = append(d.Works[:i], d.Works[i+1:]...)
	return nil
}

// SetNoWorkExperience records that the applicant has no work history. Setting
// it discards any entered work records.
func (d *Draft) SetNoWorkExperience(none bool) {
	d.NoWorkExperience = none
	if none {
		d.Works = []Work{}
	}
}
