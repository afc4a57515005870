package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/queue"
	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/maheshrc27/contentplanner/internal/repository/repositorytest"
	"github.com/stretchr/testify/require"
)

type enqueued struct {
	task *asynq.Task
	opts map[asynq.OptionType]any
}

type fakeClient struct {
	calls []enqueued
	err   error
}

func (c *fakeClient) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if c.err != nil {
		return nil, c.err
	}
	byType := make(map[asynq.OptionType]any, len(opts))
	for _, o := range opts {
		byType[o.Type()] = o.Value()
	}
	c.calls = append(c.calls, enqueued{task: task, opts: byType})
	return &asynq.TaskInfo{}, nil
}

var nineAM = models.Clock{Hour: 9}

func TestPublishAt(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	post := &models.Post{Date: civil.Date{Year: 2024, Month: 6, Day: 15}}

	require.Equal(t, time.Date(2024, 6, 15, 9, 0, 0, 0, loc), queue.PublishAt(post, nineAM, loc))

	post.Time = &models.Clock{Hour: 14, Minute: 30}
	require.Equal(t, time.Date(2024, 6, 15, 14, 30, 0, 0, loc), queue.PublishAt(post, nineAM, loc))
}

func TestSchedulePublish(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	publisher := queue.NewPublisher(client, nineAM, time.UTC)
	post := &models.Post{ID: "post-1", Date: civil.Date{Year: 2024, Month: 6, Day: 15}}

	require.NoError(t, publisher.SchedulePublish(context.Background(), post))
	require.Len(t, client.calls, 1)

	call := client.calls[0]
	require.Equal(t, queue.TaskTypePublishPost, call.task.Type())

	var payload queue.PublishPostPayload
	require.NoError(t, json.Unmarshal(call.task.Payload(), &payload))
	require.Equal(t, "post-1", payload.PostID)
	require.Equal(t, "post-1", call.opts[asynq.TaskIDOpt])
	require.Equal(t, time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC), call.opts[asynq.ProcessAtOpt])
}

func TestSchedulePublish_AlreadyQueued(t *testing.T) {
	t.Parallel()

	post := &models.Post{ID: "post-1", Date: civil.Date{Year: 2024, Month: 6, Day: 15}}

	conflict := &fakeClient{err: asynq.ErrTaskIDConflict}
	require.NoError(t, queue.NewPublisher(conflict, nineAM, time.UTC).SchedulePublish(context.Background(), post))

	broken := &fakeClient{err: errors.New("redis: connection refused")}
	require.Error(t, queue.NewPublisher(broken, nineAM, time.UTC).SchedulePublish(context.Background(), post))
}

func TestHandlePublishPostTask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pr := repository.NewPostRepository(repositorytest.Open(t))
	q := queue.NewQueue(pr)

	post := &models.Post{
		Title:    "Launch",
		Date:     civil.Date{Year: 2024, Month: 6, Day: 15},
		Platform: models.PlatformInstagram,
		Type:     models.PostTypeImage,
		Status:   models.PostStatusScheduled,
	}
	id, err := pr.Create(ctx, nil, post)
	require.NoError(t, err)

	payload, err := json.Marshal(queue.PublishPostPayload{PostID: id})
	require.NoError(t, err)
	task := asynq.NewTask(queue.TaskTypePublishPost, payload)

	require.NoError(t, q.HandlePublishPostTask(ctx, task))
	stored, err := pr.GetByID(ctx, nil, id)
	require.NoError(t, err)
	require.Equal(t, models.PostStatusPublished, stored.Status)

	// Redelivery is a no-op.
	require.NoError(t, q.HandlePublishPostTask(ctx, task))

	err = q.HandlePublishPostTask(ctx, asynq.NewTask(queue.TaskTypePublishPost, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestPublishPost_SkipsDrafts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pr := repository.NewPostRepository(repositorytest.Open(t))
	post := &models.Post{
		Title:    "Not yet",
		Date:     civil.Date{Year: 2024, Month: 6, Day: 15},
		Platform: models.PlatformInstagram,
		Type:     models.PostTypeImage,
	}
	id, err := pr.Create(ctx, nil, post)
	require.NoError(t, err)

	require.NoError(t, queue.NewQueue(pr).PublishPost(ctx, id))
	stored, err := pr.GetByID(ctx, nil, id)
	require.NoError(t, err)
	require.Equal(t, models.PostStatusDraft, stored.Status)
}
