package api

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"eduPath/internal/api/middleware"
	"eduPath/internal/application"
	"eduPath/internal/database"
	"eduPath/internal/tasks"
)

// maxMultipartMemory bounds how much of a submission is buffered in memory
// before spilling to disk.
const maxMultipartMemory = 32 << 20

// ApplicationHandler serves draft validation, submission and the student's
// own application views.
type ApplicationHandler struct {
	db        *gorm.DB
	assembler *application.Assembler
	taskQueue *asynq.Client
	logger    *slog.Logger
}

func NewApplicationHandler(db *gorm.DB, assembler *application.Assembler, taskQueue *asynq.Client, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		db:        db,
		assembler: assembler,
		taskQueue: taskQueue,
		logger:    logger,
	}
}

// ValidateDraft checks a draft against one wizard step and returns the field
// error map without persisting anything.
func (h *ApplicationHandler) ValidateDraft(c *gin.Context) {
	step := application.StepDocuments
	if raw := c.Query("step"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < int(application.StepPersonal) || parsed > int(application.StepDocuments) {
			BadRequest(c, "step must be 1, 2 or 3")
			return
		}
		step = application.Step(parsed)
	}

	draft, err := application.DecodeDraft(c.Request.Body)
	if err != nil {
		BadRequest(c, "invalid draft: "+err.Error())
		return
	}

	fieldErrs := application.Validate(draft, step)
	c.JSON(http.StatusOK, gin.H{
		"valid":  len(fieldErrs) == 0,
		"errors": fieldErrs,
	})
}

// Submit accepts a multipart submission: a "draft" JSON part, university_id
// and program_id form fields, and file parts named after document slots.
// Files refused by a slot are reported back, never silently dropped.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	logger := middleware.LoggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		BadRequest(c, "invalid multipart form")
		return
	}

	draftPart := c.PostForm("draft")
	if draftPart == "" {
		BadRequest(c, "draft part is required")
		return
	}
	draft, err := application.DecodeDraft(strings.NewReader(draftPart))
	if err != nil {
		BadRequest(c, "invalid draft: "+err.Error())
		return
	}

	universityID, err := strconv.ParseUint(c.PostForm("university_id"), 10, 64)
	if err != nil || universityID == 0 {
		BadRequest(c, "university_id is required")
		return
	}
	programID, err := strconv.ParseUint(c.PostForm("program_id"), 10, 64)
	if err != nil || programID == 0 {
		BadRequest(c, "program_id is required")
		return
	}

	var rejections []application.Rejection
	if c.Request.MultipartForm != nil {
		for slotName, headers := range c.Request.MultipartForm.File {
			slotRejections, err := draft.Slots.Add(slotName, slotFiles(headers)...)
			if err != nil {
				BadRequest(c, err.Error())
				return
			}
			rejections = append(rejections, slotRejections...)
		}
	}

	app, err := h.assembler.Submit(c.Request.Context(), draft, application.SubmitInput{
		UserID:       userID,
		UniversityID: uint(universityID),
		ProgramID:    uint(programID),
	})
	if err != nil {
		var validationErr *application.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      "draft validation failed",
				"errors":     validationErr.Fields,
				"rejections": rejections,
			})
		case errors.Is(err, application.ErrUniversityNotFound):
			NotFound(c, err.Error())
		case errors.Is(err, application.ErrProgramNotFound):
			NotFound(c, err.Error())
		default:
			logger.Error("submit failed", slog.Any("error", err))
			Internal(c, "internal error")
		}
		return
	}

	h.enqueueSubmitted(c, app.ID, userID)

	logger.Info("application submitted",
		slog.Uint64("application_id", uint64(app.ID)),
		slog.Int("rejected_files", len(rejections)),
	)
	c.JSON(http.StatusCreated, gin.H{
		"application": app,
		"rejections":  rejections,
	})
}

func (h *ApplicationHandler) enqueueSubmitted(c *gin.Context, applicationID, userID uint) {
	if h.taskQueue == nil {
		return
	}
	task, err := tasks.NewApplicationSubmittedTask(applicationID, userID, middleware.GetCorrelationID(c))
	if err != nil {
		middleware.LoggerFromContext(c).Error("build submitted task failed", slog.Any("error", err))
		return
	}
	if _, err := h.taskQueue.EnqueueContext(c.Request.Context(), task); err != nil {
		// Notification delivery is best effort; the application is already stored.
		middleware.LoggerFromContext(c).Error("enqueue submitted task failed", slog.Any("error", err))
	}
}

// List returns the caller's applications, newest first.
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var apps []database.Application
	err := h.db.WithContext(c.Request.Context()).
		Preload("University").
		Preload("Program").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&apps).Error
	if err != nil {
		middleware.LoggerFromContext(c).Error("application list failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// Get returns one of the caller's applications.
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, ok := h.ownApplication(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, app)
}

// Timeline returns the four-step status timeline for one of the caller's
// applications.
func (h *ApplicationHandler) Timeline(c *gin.Context) {
	app, ok := h.ownApplication(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   app.Status,
		"timeline": application.Timeline(app),
	})
}

func (h *ApplicationHandler) ownApplication(c *gin.Context) (*database.Application, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid application id")
		return nil, false
	}

	var app database.Application
	err = h.db.WithContext(c.Request.Context()).
		Preload("University").
		Preload("Program").
		Where("user_id = ?", userID).
		First(&app, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "application not found")
			return nil, false
		}
		middleware.LoggerFromContext(c).Error("application lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return nil, false
	}
	return &app, true
}

func slotFiles(headers []*multipart.FileHeader) []application.SlotFile {
	files := make([]application.SlotFile, 0, len(headers))
	for _, header := range headers {
		header := header
		files = append(files, application.SlotFile{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return header.Open()
			},
		})
	}
	return files
}
