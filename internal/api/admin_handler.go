package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"eduPath/internal/api/middleware"
	"eduPath/internal/application"
	"eduPath/internal/database"
	"eduPath/internal/worker"
)

// AdminHandler serves the review console: application triage, catalogue
// management and the student roster.
type AdminHandler struct {
	db          *gorm.DB
	redisClient *redis.Client
	logger      *slog.Logger
}

func NewAdminHandler(db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{db: db, redisClient: redisClient, logger: logger}
}

// ListApplications returns every application, optionally filtered by status,
// newest first.
func (h *AdminHandler) ListApplications(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).
		Preload("University").
		Preload("Program")

	if status := c.Query("status"); status != "" {
		if !application.ValidStatus(status) {
			BadRequest(c, "unknown status")
			return
		}
		query = query.Where("status = ?", status)
	}

	var apps []database.Application
	if err := query.Order("created_at desc").Find(&apps).Error; err != nil {
		middleware.LoggerFromContext(c).Error("admin application list failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// GetApplication returns any application by ID.
func (h *AdminHandler) GetApplication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid application id")
		return
	}

	var app database.Application
	err = h.db.WithContext(c.Request.Context()).
		Preload("University").
		Preload("Program").
		First(&app, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "application not found")
			return
		}
		middleware.LoggerFromContext(c).Error("admin application lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, app)
}

type applicationUpdateRequest struct {
	Status        *string    `json:"status"`
	AdminNotes    *string    `json:"admin_notes"`
	InterviewDate *time.Time `json:"interview_date"`
	InterviewLink *string    `json:"interview_link"`
}

// UpdateApplication mutates status, notes and interview details. Terminal
// statuses refuse any further transition; the owning student is notified of
// status changes over their push channel.
func (h *AdminHandler) UpdateApplication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid application id")
		return
	}

	var req applicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.Uint64("application_id", id))

	var app database.Application
	err = h.db.WithContext(ctx).
		Preload("University").
		Preload("Program").
		First(&app, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "application not found")
			return
		}
		logger.Error("admin application lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	statusChanged := false
	if req.Status != nil && *req.Status != app.Status {
		if !application.ValidStatus(*req.Status) {
			BadRequest(c, "unknown status")
			return
		}
		if application.Terminal(app.Status) {
			Conflict(c, "application is already decided")
			return
		}
		app.Status = *req.Status
		statusChanged = true
	}
	if req.AdminNotes != nil {
		app.AdminNotes = req.AdminNotes
	}
	if req.InterviewDate != nil {
		app.InterviewDate = req.InterviewDate
	}
	if req.InterviewLink != nil {
		app.InterviewLink = req.InterviewLink
	}

	if err := h.db.WithContext(ctx).Save(&app).Error; err != nil {
		logger.Error("admin application update failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if statusChanged {
		notify := worker.NotifyMessage{
			Type:          worker.NotifyStatusChanged,
			Status:        app.Status,
			ApplicationID: app.ID,
			University:    app.University.Name,
			Program:       app.Program.Name,
			CorrelationID: middleware.GetCorrelationID(c),
		}
		if err := worker.PublishNotify(ctx, h.redisClient, app.UserID, notify); err != nil {
			// The record is updated either way; the push is best effort.
			logger.Error("publish status notification failed", slog.Any("error", err))
		}
		logger.Info("application status changed", slog.String("status", app.Status))
	}

	c.JSON(http.StatusOK, app)
}

type universityRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	Country      string `json:"country" binding:"max=128"`
	City         string `json:"city" binding:"max=128"`
	LogoURL      string `json:"logo_url" binding:"max=512"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Deadlines    string `json:"deadlines"`
	Status       string `json:"status"`
}

// ListUniversities returns the full catalogue, inactive entries included.
func (h *AdminHandler) ListUniversities(c *gin.Context) {
	var universities []database.University
	err := h.db.WithContext(c.Request.Context()).
		Preload("Programs").
		Order("name asc").
		Find(&universities).Error
	if err != nil {
		middleware.LoggerFromContext(c).Error("admin university list failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"universities": universities})
}

// CreateUniversity adds a catalogue entry.
func (h *AdminHandler) CreateUniversity(c *gin.Context) {
	var req universityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	status := req.Status
	if status == "" {
		status = database.UniversityActive
	}
	if status != database.UniversityActive && status != database.UniversityInactive {
		BadRequest(c, "status must be active or inactive")
		return
	}

	university := database.University{
		Name:         req.Name,
		Country:      req.Country,
		City:         req.City,
		LogoURL:      req.LogoURL,
		Description:  req.Description,
		Requirements: req.Requirements,
		Deadlines:    req.Deadlines,
		Status:       status,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&university).Error; err != nil {
		middleware.LoggerFromContext(c).Error("create university failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusCreated, university)
}

// UpdateUniversity replaces a catalogue entry's fields.
func (h *AdminHandler) UpdateUniversity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid university id")
		return
	}

	var req universityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Status != "" && req.Status != database.UniversityActive && req.Status != database.UniversityInactive {
		BadRequest(c, "status must be active or inactive")
		return
	}

	ctx := c.Request.Context()
	var university database.University
	if err := h.db.WithContext(ctx).First(&university, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "university not found")
			return
		}
		middleware.LoggerFromContext(c).Error("university lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	university.Name = req.Name
	university.Country = req.Country
	university.City = req.City
	university.LogoURL = req.LogoURL
	university.Description = req.Description
	university.Requirements = req.Requirements
	university.Deadlines = req.Deadlines
	if req.Status != "" {
		university.Status = req.Status
	}

	if err := h.db.WithContext(ctx).Save(&university).Error; err != nil {
		middleware.LoggerFromContext(c).Error("university update failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusOK, university)
}

// DeleteUniversity removes a catalogue entry and its programs.
func (h *AdminHandler) DeleteUniversity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid university id")
		return
	}

	ctx := c.Request.Context()
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("university_id = ?", uint(id)).Delete(&database.Program{}).Error; err != nil {
			return err
		}
		return tx.Delete(&database.University{}, uint(id)).Error
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("university delete failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

type programRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	Department   string `json:"department" binding:"max=255"`
	DegreeType   string `json:"degree_type" binding:"max=64"`
	Duration     string `json:"duration" binding:"max=64"`
	TuitionFee   string `json:"tuition_fee" binding:"max=128"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

// CreateProgram adds a program under a university.
func (h *AdminHandler) CreateProgram(c *gin.Context) {
	universityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid university id")
		return
	}

	var req programRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	var university database.University
	if err := h.db.WithContext(ctx).First(&university, uint(universityID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "university not found")
			return
		}
		middleware.LoggerFromContext(c).Error("university lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	program := database.Program{
		Name:         req.Name,
		Department:   req.Department,
		DegreeType:   req.DegreeType,
		Duration:     req.Duration,
		TuitionFee:   req.TuitionFee,
		Description:  req.Description,
		Requirements: req.Requirements,
		UniversityID: university.ID,
	}
	if err := h.db.WithContext(ctx).Create(&program).Error; err != nil {
		middleware.LoggerFromContext(c).Error("create program failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusCreated, program)
}

// UpdateProgram replaces a program's fields.
func (h *AdminHandler) UpdateProgram(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid program id")
		return
	}

	var req programRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	var program database.Program
	if err := h.db.WithContext(ctx).First(&program, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "program not found")
			return
		}
		middleware.LoggerFromContext(c).Error("program lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	program.Name = req.Name
	program.Department = req.Department
	program.DegreeType = req.DegreeType
	program.Duration = req.Duration
	program.TuitionFee = req.TuitionFee
	program.Description = req.Description
	program.Requirements = req.Requirements

	if err := h.db.WithContext(ctx).Save(&program).Error; err != nil {
		middleware.LoggerFromContext(c).Error("program update failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusOK, program)
}

// DeleteProgram removes a program.
func (h *AdminHandler) DeleteProgram(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid program id")
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Delete(&database.Program{}, uint(id)).Error; err != nil {
		middleware.LoggerFromContext(c).Error("program delete failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

type studentSummary struct {
	ID               uint      `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	ApplicationCount int64     `json:"application_count"`
	RegisteredAt     time.Time `json:"registered_at"`
}

// ListStudents returns the student roster with application counts.
func (h *AdminHandler) ListStudents(c *gin.Context) {
	ctx := c.Request.Context()

	var users []database.User
	err := h.db.WithContext(ctx).
		Preload("Profile").
		Where("role = ?", database.RoleStudent).
		Order("created_at desc").
		Find(&users).Error
	if err != nil {
		middleware.LoggerFromContext(c).Error("student list failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	students := make([]studentSummary, 0, len(users))
	for _, user := range users {
		var count int64
		if err := h.db.WithContext(ctx).Model(&database.Application{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			middleware.LoggerFromContext(c).Error("student application count failed", slog.Any("error", err))
			Internal(c, "internal error")
			return
		}
		students = append(students, studentSummary{
			ID:               user.ID,
			Email:            user.Email,
			FullName:         user.Profile.FullName,
			ApplicationCount: count,
			RegisteredAt:     user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}
