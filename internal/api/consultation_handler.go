package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduPath/internal/advisor"
	"eduPath/internal/api/middleware"
	"eduPath/internal/database"
)

// ConsultationHandler generates and serves AI study recommendations.
type ConsultationHandler struct {
	db      *gorm.DB
	advisor *advisor.Client
	logger  *slog.Logger
}

func NewConsultationHandler(db *gorm.DB, advisorClient *advisor.Client, logger *slog.Logger) *ConsultationHandler {
	return &ConsultationHandler{db: db, advisor: advisorClient, logger: logger}
}

// Generate builds a recommendation set from the caller's profile and the
// active university catalogue, persists it and returns it.
func (h *ConsultationHandler) Generate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	var profile database.Profile
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			BadRequest(c, "complete your profile before requesting recommendations")
			return
		}
		logger.Error("profile lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	var universities []database.University
	err := h.db.WithContext(ctx).
		Where("status = ?", database.UniversityActive).
		Order("name asc").
		Find(&universities).Error
	if err != nil {
		logger.Error("university list failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	options := make([]advisor.UniversityOption, 0, len(universities))
	for _, u := range universities {
		options = append(options, advisor.UniversityOption{
			ID:      u.ID,
			Name:    u.Name,
			Country: u.Country,
			City:    u.City,
		})
	}

	recommendation, err := h.advisor.Recommend(ctx, advisor.ProfileInput{
		EducationLevel:     profile.EducationLevel,
		GPA:                profile.GPA,
		Interests:          jsonList(profile.Interests),
		Skills:             jsonList(profile.Skills),
		PreferredCountries: jsonList(profile.PreferredCountries),
		BudgetRange:        profile.BudgetRange,
	}, options)
	if err != nil {
		switch {
		case errors.Is(err, advisor.ErrRateLimited):
			Error(c, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, advisor.ErrQuotaExhausted):
			Error(c, http.StatusPaymentRequired, err.Error())
		default:
			logger.Error("recommendation failed", slog.Any("error", err))
			Internal(c, "internal error")
		}
		return
	}

	data, err := json.Marshal(recommendation)
	if err != nil {
		logger.Error("marshal recommendation failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	consultation := database.Consultation{
		UserID:          userID,
		Recommendations: datatypes.JSON(data),
	}
	if err := h.db.WithContext(ctx).Create(&consultation).Error; err != nil {
		logger.Error("store consultation failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("consultation generated", slog.Uint64("consultation_id", uint64(consultation.ID)))
	c.JSON(http.StatusCreated, gin.H{
		"id":              consultation.ID,
		"created_at":      consultation.CreatedAt,
		"recommendations": recommendation,
	})
}

// Latest returns the caller's most recent consultation.
func (h *ConsultationHandler) Latest(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var consultation database.Consultation
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at desc").
		First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "no consultation yet")
			return
		}
		middleware.LoggerFromContext(c).Error("consultation lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              consultation.ID,
		"created_at":      consultation.CreatedAt,
		"recommendations": json.RawMessage(consultation.Recommendations),
	})
}

// History returns the caller's consultations, newest first, capped at limit.
func (h *ConsultationHandler) History(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var consultations []database.Consultation
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&consultations).Error
	if err != nil {
		middleware.LoggerFromContext(c).Error("consultation history failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	items := make([]gin.H, 0, len(consultations))
	for _, consultation := range consultations {
		items = append(items, gin.H{
			"id":              consultation.ID,
			"created_at":      consultation.CreatedAt,
			"recommendations": json.RawMessage(consultation.Recommendations),
		})
	}
	c.JSON(http.StatusOK, gin.H{"consultations": items})
}
