package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/contentplanner/internal/models"
)

// Enqueuer is the part of *asynq.Client the publisher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher schedules approved posts for publishing. The task id is the post
// id, so a post is queued at most once however often it is handed over.
type Publisher struct {
	client      Enqueuer
	defaultTime models.Clock
	loc         *time.Location
}

// NewPublisher publishes untimed posts at defaultTime. Post dates and times
// are read in loc.
func NewPublisher(client Enqueuer, defaultTime models.Clock, loc *time.Location) *Publisher {
	if loc == nil {
		loc = time.Local
	}
	return &Publisher{
		client:      client,
		defaultTime: defaultTime,
		loc:         loc,
	}
}

// PublishAt is the instant a post goes out.
func PublishAt(post *models.Post, defaultTime models.Clock, loc *time.Location) time.Time {
	clock := defaultTime
	if post.Time != nil {
		clock = *post.Time
	}
	return time.Date(post.Date.Year, post.Date.Month, post.Date.Day, clock.Hour, clock.Minute, 0, 0, loc)
}

func (p *Publisher) SchedulePublish(ctx context.Context, post *models.Post) error {
	payload, err := json.Marshal(PublishPostPayload{PostID: post.ID})
	if err != nil {
		return err
	}

	at := PublishAt(post, p.defaultTime, p.loc)
	task := asynq.NewTask(TaskTypePublishPost, payload)

	_, err = p.client.EnqueueContext(ctx, task, asynq.TaskID(post.ID), asynq.ProcessAt(at))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		slog.Debug("publish already queued", "post_id", post.ID)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("publish scheduled", "post_id", post.ID, "at", at)
	return nil
}
