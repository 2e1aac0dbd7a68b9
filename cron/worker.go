package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"doitto/config"
	"doitto/services/storage"
	"doitto/services/tasks"
	"doitto/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the task queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitCleanupWorker runs the image cleanup worker in background. The returned
// server is shut down by the caller.
func InitCleanupWorker(store storage.StorageService) *asynq.Server {
	logger := utils.GetLogger()
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeImageCleanup, handleImageCleanupTask(store))

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting image cleanup worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Warn("Cleanup worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Cleanup worker gave up; replaced images will not be removed")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
		}
	}()
	return srv
}

func handleImageCleanupTask(store storage.StorageService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		var p tasks.ImageCleanupPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid cleanup payload: %v: %w", err, asynq.SkipRetry)
		}

		objectPath, ok := store.ObjectPathOf(p.URL, p.Folder)
		if !ok {
			logger.Debug("Skipping cleanup of image not issued by storage", zap.String("url", p.URL))
			return nil
		}
		if err := store.Delete(ctx, objectPath); err != nil {
			logger.Warn("Failed to delete replaced image", zap.String("object", objectPath), zap.Error(err))
			return err
		}
		logger.Info("Deleted replaced image", zap.String("object", objectPath))
		return nil
	}
}
