package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roles assignable to a User.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// University listing statuses. Only active universities are visible to students.
const (
	UniversityActive   = "active"
	UniversityInactive = "inactive"
)

// User is an account able to sign in. Every registered user starts as a student;
// admins are promoted out of band.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"size:255"`
	Role         string `gorm:"size:16;default:student"`
	Profile      Profile
	Applications []Application
}

// Profile holds the student-editable details used by the AI-consultation flow.
// One-to-one with User, created alongside registration.
type Profile struct {
	gorm.Model
	UserID             uint           `gorm:"uniqueIndex"`
	FullName           string         `gorm:"size:255"`
	Phone              string         `gorm:"size:64"`
	EducationLevel     string         `gorm:"size:64"`
	GPA                string         `gorm:"size:32"`
	Interests          datatypes.JSON `gorm:"type:jsonb"`
	Skills             datatypes.JSON `gorm:"type:jsonb"`
	PreferredCountries datatypes.JSON `gorm:"type:jsonb"`
	BudgetRange        string         `gorm:"size:64"`
}

// University is a partner institution. Deleting one cascades to its programs.
type University struct {
	gorm.Model
	Name         string `gorm:"size:255"`
	Country      string `gorm:"size:128"`
	City         string `gorm:"size:128"`
	LogoURL      string `gorm:"size:512"`
	Description  string `gorm:"type:text"`
	Requirements string `gorm:"type:text"`
	Deadlines    string `gorm:"type:text"`
	Status       string `gorm:"size:16;default:active"`
	Programs     []Program `gorm:"constraint:OnDelete:CASCADE"`
}

// Program is a course of study offered by exactly one University.
type Program struct {
	gorm.Model
	Name         string `gorm:"size:255"`
	Department   string `gorm:"size:255"`
	DegreeType   string `gorm:"size:64"`
	Duration     string `gorm:"size:64"`
	TuitionFee   string `gorm:"size:128"`
	Description  string `gorm:"type:text"`
	Requirements string `gorm:"type:text"`
	UniversityID uint   `gorm:"index"`
}

// Application is one submitted application. Owner and institution references are
// immutable after creation; only administrators mutate status, notes and interview
// fields afterwards.
type Application struct {
	gorm.Model
	UserID            uint   `gorm:"index"`
	UniversityID      uint   `gorm:"index"`
	ProgramID         uint   `gorm:"index"`
	Status            string `gorm:"size:32;default:pending;index"`
	AcademicHistory   string `gorm:"type:text"`
	PersonalStatement string `gorm:"type:text"` // JSON-serialized submission payload
	Documents         datatypes.JSON `gorm:"type:jsonb"`
	AdminNotes        *string        `gorm:"type:text"`
	InterviewDate     *time.Time
	InterviewLink     *string `gorm:"size:512"`
	University        University
	Program           Program
}

// Consultation stores one generated AI recommendation set for a user.
type Consultation struct {
	gorm.Model
	UserID          uint           `gorm:"index"`
	Recommendations datatypes.JSON `gorm:"type:jsonb"`
}
