package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"eduPath/internal/database"
	"eduPath/internal/errcode"
	"eduPath/internal/tasks"
)

// SubmissionTaskHandler consumes submission-received tasks and pushes the
// acknowledgement to the owning student's notification channel.
type SubmissionTaskHandler struct {
	db          *gorm.DB
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewSubmissionTaskHandler creates the task handler.
func NewSubmissionTaskHandler(db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *SubmissionTaskHandler {
	return &SubmissionTaskHandler{
		db:          db,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessTask implements asynq.Handler.
func (h *SubmissionTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	log := h.logger

	var payload tasks.ApplicationSubmittedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("application_id", int(payload.ApplicationID)),
		slog.Uint64("user_id", uint64(payload.UserID)),
	)

	var app database.Application
	err := h.db.WithContext(ctx).
		Preload("University").
		Preload("Program").
		First(&app, payload.ApplicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("application not found, skipping task")
			h.publishError(ctx, payload, errcode.ResourceMissing, "application no longer exists")
			return nil
		}
		log.Error("query application failed", slog.Any("error", err))
		h.publishError(ctx, payload, errcode.SystemError, "internal error")
		return err
	}

	notify := NotifyMessage{
		Type:          NotifySubmissionReceived,
		Status:        app.Status,
		ApplicationID: app.ID,
		University:    app.University.Name,
		Program:       app.Program.Name,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := PublishNotify(ctx, h.redisClient, app.UserID, notify); err != nil {
		log.Error("publish submission notification failed", slog.Any("error", err))
		return err
	}

	log.Info("submission notification published")
	return nil
}

// publishError pushes a failure message to the student so the client can
// stop waiting for the acknowledgement. Delivery is best effort.
func (h *SubmissionTaskHandler) publishError(ctx context.Context, payload tasks.ApplicationSubmittedPayload, code int, message string) {
	notify := NotifyMessage{
		Type:          NotifySubmissionReceived,
		ApplicationID: payload.ApplicationID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     code,
		ErrorMessage:  message,
	}
	if err := PublishNotify(ctx, h.redisClient, payload.UserID, notify); err != nil {
		h.logger.Error("publish error notification failed", slog.Any("error", err))
	}
}

// PublishNotify serializes the message and publishes it to the user's
// notification channel.
func PublishNotify(ctx context.Context, client *redis.Client, userID uint, msg NotifyMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notify message: %w", err)
	}
	channel := NotifyChannel(userID)
	if err := client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish notification to %q: %w", channel, err)
	}
	return nil
}

// NotifyChannel names the per-user Redis Pub/Sub channel.
func NotifyChannel(userID uint) string {
	return fmt.Sprintf("user_notify:%d", userID)
}
