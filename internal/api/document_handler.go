package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"eduPath/internal/api/middleware"
	"eduPath/internal/storage"
)

const documentLinkTTL = 15 * time.Minute

// DocumentStore is the storage surface the document handler needs. The MinIO
// client satisfies it; tests substitute a fake.
type DocumentStore interface {
	ListObjects(ctx context.Context, prefix string, limit int) ([]storage.ObjectMeta, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// DocumentHandler lets students browse, download and delete the files they
// uploaded with their applications.
type DocumentHandler struct {
	store  DocumentStore
	logger *slog.Logger
}

func NewDocumentHandler(store DocumentStore, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{store: store, logger: logger}
}

type documentEntry struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// List returns the caller's uploaded document objects.
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	prefix := fmt.Sprintf("%d/", userID)
	objects, err := h.store.ListObjects(c.Request.Context(), prefix, limit)
	if err != nil {
		middleware.LoggerFromContext(c).Error("list documents failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	documents := make([]documentEntry, 0, len(objects))
	for _, object := range objects {
		documents = append(documents, documentEntry{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}
	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

// DownloadLink issues a short-lived presigned URL for one of the caller's
// own objects.
func (h *DocumentHandler) DownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	key := c.Query("key")
	if !isOwnDocumentKey(userID, key) {
		BadRequest(c, "invalid document key")
		return
	}

	link, err := h.store.GeneratePresignedURL(c.Request.Context(), key, documentLinkTTL)
	if err != nil {
		middleware.LoggerFromContext(c).Error("presign document failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        link,
		"expires_in": int(documentLinkTTL.Seconds()),
	})
}

// Delete removes one of the caller's own objects. Deleting an already-removed
// object succeeds.
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	key := c.Query("key")
	if !isOwnDocumentKey(userID, key) {
		BadRequest(c, "invalid document key")
		return
	}

	if err := h.store.DeleteObject(c.Request.Context(), key); err != nil {
		middleware.LoggerFromContext(c).Error("delete document failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
