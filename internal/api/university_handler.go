package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eduPath/internal/api/middleware"
	"eduPath/internal/database"
)

// UniversityHandler serves the public university catalogue.
type UniversityHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewUniversityHandler(db *gorm.DB, logger *slog.Logger) *UniversityHandler {
	return &UniversityHandler{db: db, logger: logger}
}

// List returns all active universities, optionally filtered by country.
func (h *UniversityHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	query := h.db.WithContext(ctx).Where("status = ?", database.UniversityActive)
	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}

	var universities []database.University
	if err := query.Order("name asc").Find(&universities).Error; err != nil {
		middleware.LoggerFromContext(c).Error("university list failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"universities": universities})
}

// Get returns one active university with its programs.
func (h *UniversityHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid university id")
		return
	}

	ctx := c.Request.Context()
	var university database.University
	err = h.db.WithContext(ctx).
		Preload("Programs").
		Where("status = ?", database.UniversityActive).
		First(&university, uint(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "university not found")
			return
		}
		middleware.LoggerFromContext(c).Error("university lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, university)
}
