package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eduPath/internal/database"
	"eduPath/internal/tasks"
)

func newWorkerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestProcessTask_MissingApplicationIsSkipped(t *testing.T) {
	db := newWorkerDB(t)
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { redisClient.Close() })

	h := NewSubmissionTaskHandler(db, redisClient, slog.Default())

	task, err := tasks.NewApplicationSubmittedTask(999, 1, "corr-1")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	// A deleted application must not keep the task retrying forever.
	if err := h.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("expected skip, got %v", err)
	}
}

func TestProcessTask_MalformedPayload(t *testing.T) {
	db := newWorkerDB(t)
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { redisClient.Close() })

	h := NewSubmissionTaskHandler(db, redisClient, slog.Default())

	task := asynq.NewTask(tasks.TypeApplicationSubmitted, []byte("not json"))
	if err := h.ProcessTask(context.Background(), task); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestNotifyChannelNaming(t *testing.T) {
	if got := NotifyChannel(42); got != "user_notify:42" {
		t.Fatalf("channel = %q", got)
	}
}

func TestApplicationSubmittedTaskPayload(t *testing.T) {
	task, err := tasks.NewApplicationSubmittedTask(7, 3, "corr-9")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if task.Type() != tasks.TypeApplicationSubmitted {
		t.Fatalf("task type = %q", task.Type())
	}

	var payload tasks.ApplicationSubmittedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.ApplicationID != 7 || payload.UserID != 3 || payload.CorrelationID != "corr-9" {
		t.Fatalf("payload wrong: %+v", payload)
	}
}
