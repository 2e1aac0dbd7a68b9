package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeImageCleanup = "image:cleanup"

// cleanupDelay leaves clients that still render the old URL a grace period.
const cleanupDelay = 10 * time.Minute

// ImageCleanupPayload names a replaced image to remove from storage.
type ImageCleanupPayload struct {
	URL    string `json:"url"`
	Folder string `json:"folder"`
}

func NewImageCleanupTask(payload ImageCleanupPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeImageCleanup, b)
	opts := []asynq.Option{asynq.ProcessIn(cleanupDelay), asynq.MaxRetry(5)}

	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client the queue uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue schedules background work on the task queue.
type Queue struct {
	Client Enqueuer
}

func NewQueue(client Enqueuer) *Queue {
	return &Queue{Client: client}
}

// EnqueueImageCleanup schedules removal of a replaced image.
func (q *Queue) EnqueueImageCleanup(ctx context.Context, url, folder string) error {
	task, opts, err := NewImageCleanupTask(ImageCleanupPayload{URL: url, Folder: folder})
	if err != nil {
		return err
	}
	_, err = q.Client.EnqueueContext(ctx, task, opts...)
	return err
}
