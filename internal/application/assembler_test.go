package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eduPath/internal/database"
)

type fakeUploader struct {
	uploaded map[string][]byte
	failOn   string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: map[string][]byte{}}
}

func (u *fakeUploader) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	if u.failOn != "" && strings.Contains(objectName, u.failOn) {
		return nil, errors.New("storage unavailable")
	}
	b, _ := io.ReadAll(reader)
	u.uploaded[objectName] = b
	return &minio.UploadInfo{Key: objectName}, nil
}

func (u *fakeUploader) PublicURL(objectKey string) string {
	return "https://cdn.test/applications/" + objectKey
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&database.User{}, &database.Profile{},
		&database.University{}, &database.Program{},
		&database.Application{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCatalogue(t *testing.T, db *gorm.DB, status string) (uint, uint) {
	t.Helper()
	university := database.University{Name: "Test University", Country: "United Kingdom", Status: status}
	if err := db.Create(&university).Error; err != nil {
		t.Fatalf("seed university: %v", err)
	}
	program := database.Program{Name: "MSc Computing", UniversityID: university.ID}
	if err := db.Create(&program).Error; err != nil {
		t.Fatalf("seed program: %v", err)
	}
	return university.ID, program.ID
}

func contentFile(name string, content string) SlotFile {
	return SlotFile{
		Name:        name,
		Size:        int64(len(content)),
		ContentType: "application/pdf",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func submittableDraft(t *testing.T) *Draft {
	t.Helper()
	d := completePersonalDraft()
	d.ToggleDestinationCountry("United Kingdom")
	for _, slot := range MandatorySlots() {
		if _, err := d.Slots.Add(slot, contentFile(slot+".pdf", "content of "+slot)); err != nil {
			t.Fatalf("add %s: %v", slot, err)
		}
	}
	d.Declarations = Declarations{Accuracy: true, Terms: true, DataProcessing: true}
	return d
}

func newTestAssembler(db *gorm.DB, uploader *fakeUploader) *Assembler {
	a := NewAssembler(db, uploader, nil, nil)
	a.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestSubmit_CreatesPendingApplicationAndResetsDraft(t *testing.T) {
	db := newTestDB(t)
	universityID, programID := seedCatalogue(t, db, database.UniversityActive)
	uploader := newFakeUploader()
	assembler := newTestAssembler(db, uploader)

	d := submittableDraft(t)
	app, err := assembler.Submit(context.Background(), d, SubmitInput{
		UserID:       7,
		UniversityID: universityID,
		ProgramID:    programID,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if app.Status != StatusPending {
		t.Fatalf("status = %q, want pending", app.Status)
	}
	if app.UniversityID != universityID || app.ProgramID != programID {
		t.Fatal("explicit references not stored")
	}

	var payload Payload
	if err := json.Unmarshal([]byte(app.PersonalStatement), &payload); err != nil {
		t.Fatalf("stored payload unparseable: %v", err)
	}
	if payload.FirstName != "Asha" {
		t.Fatalf("payload firstName = %q", payload.FirstName)
	}
	if len(payload.Documents["cv"]) != 1 {
		t.Fatalf("cv URLs missing from payload: %v", payload.Documents)
	}

	if len(uploader.uploaded) != 3 {
		t.Fatalf("expected 3 uploads, got %d", len(uploader.uploaded))
	}
	for key := range uploader.uploaded {
		if !strings.HasPrefix(key, "7/") {
			t.Fatalf("object key %q not under user prefix", key)
		}
	}

	// Successful submission returns the draft to its defaults.
	if d.Personal.FirstName != "" || d.Slots["cv"].Len() != 0 {
		t.Fatal("draft not reset after submission")
	}
}

func TestSubmit_InvalidFinalStepTouchesNothing(t *testing.T) {
	db := newTestDB(t)
	universityID, programID := seedCatalogue(t, db, database.UniversityActive)
	uploader := newFakeUploader()
	assembler := newTestAssembler(db, uploader)

	d := submittableDraft(t)
	d.Declarations.Terms = false

	_, err := assembler.Submit(context.Background(), d, SubmitInput{
		UserID: 7, UniversityID: universityID, ProgramID: programID,
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := validationErr.Fields["dec2"]; !ok {
		t.Fatalf("expected dec2 in field errors: %v", validationErr.Fields)
	}

	if len(uploader.uploaded) != 0 {
		t.Fatal("no uploads may happen on a failed validation")
	}
	var count int64
	db.Model(&database.Application{}).Count(&count)
	if count != 0 {
		t.Fatal("no application may be inserted on a failed validation")
	}
	if d.Declarations.Accuracy != true {
		t.Fatal("draft must stay intact for retry")
	}
}

func TestSubmit_InactiveUniversityRefused(t *testing.T) {
	db := newTestDB(t)
	universityID, programID := seedCatalogue(t, db, database.UniversityInactive)
	assembler := newTestAssembler(db, newFakeUploader())

	_, err := assembler.Submit(context.Background(), submittableDraft(t), SubmitInput{
		UserID: 7, UniversityID: universityID, ProgramID: programID,
	})
	if !errors.Is(err, ErrUniversityNotFound) {
		t.Fatalf("expected ErrUniversityNotFound, got %v", err)
	}
}

func TestSubmit_ProgramMustBelongToUniversity(t *testing.T) {
	db := newTestDB(t)
	universityID, _ := seedCatalogue(t, db, database.UniversityActive)
	otherUniversityID, otherProgramID := seedCatalogue(t, db, database.UniversityActive)
	_ = otherUniversityID
	assembler := newTestAssembler(db, newFakeUploader())

	_, err := assembler.Submit(context.Background(), submittableDraft(t), SubmitInput{
		UserID: 7, UniversityID: universityID, ProgramID: otherProgramID,
	})
	if !errors.Is(err, ErrProgramNotFound) {
		t.Fatalf("expected ErrProgramNotFound, got %v", err)
	}
}

func TestSubmit_FailedUploadOmitsDocument(t *testing.T) {
	db := newTestDB(t)
	universityID, programID := seedCatalogue(t, db, database.UniversityActive)
	uploader := newFakeUploader()
	uploader.failOn = "/passportCopy/"
	assembler := newTestAssembler(db, uploader)

	app, err := assembler.Submit(context.Background(), submittableDraft(t), SubmitInput{
		UserID: 7, UniversityID: universityID, ProgramID: programID,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	var documents map[string][]string
	if err := json.Unmarshal(app.Documents, &documents); err != nil {
		t.Fatalf("documents unparseable: %v", err)
	}
	if _, ok := documents["passportCopy"]; ok {
		t.Fatal("failed upload must be omitted from the document map")
	}
	if len(documents["cv"]) != 1 || len(documents["transcript"]) != 1 {
		t.Fatalf("surviving uploads missing: %v", documents)
	}
}
