package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduPath/internal/api/middleware"
	"eduPath/internal/database"
)

// ProfileHandler serves the student profile used by the consultation flow.
type ProfileHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewProfileHandler(db *gorm.DB, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{db: db, logger: logger}
}

type profileResponse struct {
	FullName           string   `json:"full_name"`
	Phone              string   `json:"phone"`
	EducationLevel     string   `json:"education_level"`
	GPA                string   `json:"gpa"`
	Interests          []string `json:"interests"`
	Skills             []string `json:"skills"`
	PreferredCountries []string `json:"preferred_countries"`
	BudgetRange        string   `json:"budget_range"`
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var profile database.Profile
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "profile not found")
			return
		}
		middleware.LoggerFromContext(c).Error("profile lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, profileToResponse(&profile))
}

type profileUpdateRequest struct {
	FullName           string   `json:"full_name" binding:"required,min=1,max=128"`
	Phone              string   `json:"phone" binding:"max=64"`
	EducationLevel     string   `json:"education_level" binding:"max=64"`
	GPA                string   `json:"gpa" binding:"max=32"`
	Interests          []string `json:"interests"`
	Skills             []string `json:"skills"`
	PreferredCountries []string `json:"preferred_countries"`
	BudgetRange        string   `json:"budget_range" binding:"max=64"`
}

// Update replaces the caller's profile fields.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	var profile database.Profile
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "profile not found")
			return
		}
		logger.Error("profile lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	profile.FullName = strings.TrimSpace(req.FullName)
	profile.Phone = strings.TrimSpace(req.Phone)
	profile.EducationLevel = req.EducationLevel
	profile.GPA = req.GPA
	profile.Interests = mustJSONList(req.Interests)
	profile.Skills = mustJSONList(req.Skills)
	profile.PreferredCountries = mustJSONList(req.PreferredCountries)
	profile.BudgetRange = req.BudgetRange

	if err := h.db.WithContext(ctx).Save(&profile).Error; err != nil {
		logger.Error("profile update failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, profileToResponse(&profile))
}

func profileToResponse(profile *database.Profile) profileResponse {
	return profileResponse{
		FullName:           profile.FullName,
		Phone:              profile.Phone,
		EducationLevel:     profile.EducationLevel,
		GPA:                profile.GPA,
		Interests:          jsonList(profile.Interests),
		Skills:             jsonList(profile.Skills),
		PreferredCountries: jsonList(profile.PreferredCountries),
		BudgetRange:        profile.BudgetRange,
	}
}

func mustJSONList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

func jsonList(data datatypes.JSON) []string {
	values := []string{}
	if len(data) == 0 {
		return values
	}
	_ = json.Unmarshal(data, &values)
	return values
}
