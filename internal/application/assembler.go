package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduPath/internal/database"
)

// Uploader is the storage surface the assembler needs. storage.Client
// satisfies it; tests substitute a fake.
type Uploader interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	PublicURL(objectKey string) string
}

// SubmitInput carries the references a submission must name explicitly.
// The university and program are required inputs, never inferred.
type SubmitInput struct {
	UserID       uint
	UniversityID uint
	ProgramID    uint
}

// ValidationError carries the field error map of a failed final validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft validation failed on %d fields", len(e.Fields))
}

var (
	ErrUniversityNotFound = errors.New("university not found or not active")
	ErrProgramNotFound    = errors.New("program not found for university")
)

// Assembler turns a valid draft into exactly one persisted application,
// uploading the attached documents on the way. File uploads and the record
// insert are not covered by one transaction; a crash in between leaves
// orphaned objects, which is an accepted non-goal here.
type Assembler struct {
	db       *gorm.DB
	uploader Uploader
	scanner  Scanner
	logger   *slog.Logger
	now      func() time.Time
}

// NewAssembler constructs the assembler. scanner may be nil to disable
// malware scanning.
func NewAssembler(db *gorm.DB, uploader Uploader, scanner Scanner, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		db:       db,
		uploader: uploader,
		scanner:  scanner,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit re-validates the final step, uploads every attached document,
// flattens the draft into the stored payload and inserts one application
// with status pending. On success the draft is reset to its defaults; on a
// failed insert the draft is left intact for retry.
func (a *Assembler) Submit(ctx context.Context, d *Draft, in SubmitInput) (*database.Application, error) {
	if fieldErrs := Validate(d, StepDocuments); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	var university database.University
	err := a.db.WithContext(ctx).
		Where("id = ? AND status = ?", in.UniversityID, database.UniversityActive).
		First(&university).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUniversityNotFound
	case err != nil:
		return nil, fmt.Errorf("query university: %w", err)
	}

	var program database.Program
	err = a.db.WithContext(ctx).
		Where("id = ? AND university_id = ?", in.ProgramID, in.UniversityID).
		First(&program).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrProgramNotFound
	case err != nil:
		return nil, fmt.Errorf("query program: %w", err)
	}

	documents := a.uploadDocuments(ctx, d, in.UserID)

	payload := BuildPayload(d, documents)
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	documentsJSON, err := json.Marshal(documents)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}

	app := database.Application{
		UserID:            in.UserID,
		UniversityID:      in.UniversityID,
		ProgramID:         in.ProgramID,
		Status:            StatusPending,
		AcademicHistory:   fmt.Sprintf("Full application: %s %s", d.Personal.FirstName, d.Personal.FamilyName),
		PersonalStatement: string(payloadJSON),
		Documents:         datatypes.JSON(documentsJSON),
	}
	if err := a.db.WithContext(ctx).Create(&app).Error; err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	d.Reset()
	return &app, nil
}

// uploadDocuments uploads every attached file slot by slot, in order. Each
// upload happens sequentially, one object per file at
// {user_id}/{slot}/{timestamp}_{filename}. A failed upload (or a positive
// scan) is logged and the file is omitted from the slot's URL list; partial
// document sets are accepted, not retried.
func (a *Assembler) uploadDocuments(ctx context.Context, d *Draft, userID uint) map[string][]string {
	documents := make(map[string][]string)

	for _, slotName := range SlotNames() {
		slot, ok := d.Slots[slotName]
		if !ok || slot.Len() == 0 {
			continue
		}

		urls := make([]string, 0, slot.Len())
		for _, file := range slot.Files {
			url, err := a.uploadOne(ctx, userID, slotName, file)
			if err != nil {
				a.logger.Error("upload document failed",
					slog.String("slot", slotName),
					slog.String("file", file.Name),
					slog.Uint64("user_id", uint64(userID)),
					slog.Any("error", err),
				)
				continue
			}
			urls = append(urls, url)
		}
		if len(urls) > 0 {
			documents[slotName] = urls
		}
	}

	return documents
}

func (a *Assembler) uploadOne(ctx context.Context, userID uint, slotName string, file SlotFile) (string, error) {
	if a.scanner != nil {
		reader, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open for scan: %w", err)
		}
		scanErr := a.scanner.Scan(reader)
		reader.Close()
		if scanErr != nil {
			return "", scanErr
		}
	}

	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open for upload: %w", err)
	}
	defer reader.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Keys embed a timestamp, so a retried submission creates new objects
	// instead of overwriting earlier ones.
	objectKey := fmt.Sprintf("%d/%s/%d_%s", userID, slotName, a.now().UnixMilli(), file.Name)
	if _, err := a.uploader.UploadFile(ctx, objectKey, reader, file.Size, contentType); err != nil {
		return "", err
	}
	return a.uploader.PublicURL(objectKey), nil
}
