package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/contentplanner/internal/metrics"
	"github.com/maheshrc27/contentplanner/internal/models"
)

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("bad publish payload: %v: %w", err, asynq.SkipRetry)
	}

	return j.PublishPost(ctx, payload.PostID)
}

// PublishPost marks a scheduled post as published. Posts in any other state
// are left alone, which makes redelivered tasks harmless.
func (j *Queue) PublishPost(ctx context.Context, postID string) error {
	published, err := j.pr.UpdateStatus(ctx, nil, postID, models.PostStatusScheduled, models.PostStatusPublished)
	if err != nil {
		return fmt.Errorf("error publishing post %s: %w", postID, err)
	}
	if !published {
		slog.Info("publish skipped, post is not scheduled", "post_id", postID)
		return nil
	}

	metrics.ObservePublished()
	slog.Info("post published", "post_id", postID)
	return nil
}
