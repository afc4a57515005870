package job

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/maheshrc27/contentplanner/internal/service"
)

// PublishSweepJob hands every scheduled post dated today or earlier back to
// the publisher, so posts whose enqueue failed at approval time still go out.
type PublishSweepJob struct {
	pr        repository.PostRepository
	publisher service.Publisher
	loc       *time.Location
	now       func() time.Time
}

func NewPublishSweepJob(pr repository.PostRepository, publisher service.Publisher, loc *time.Location) *PublishSweepJob {
	if loc == nil {
		loc = time.Local
	}
	return &PublishSweepJob{
		pr:        pr,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
	}
}

// Run matches the cron.Job interface.
func (c *PublishSweepJob) Run() {
	if _, err := c.Sweep(context.Background()); err != nil {
		slog.Info(err.Error())
	}
}

// Sweep returns how many posts were handed to the publisher.
func (c *PublishSweepJob) Sweep(ctx context.Context) (int, error) {
	today := civil.DateOf(c.now().In(c.loc))

	posts, err := c.pr.ListDue(ctx, models.PostStatusScheduled, today)
	if err != nil {
		return 0, err
	}

	handed := 0
	for i := range posts {
		if err := c.publisher.SchedulePublish(ctx, &posts[i]); err != nil {
			slog.Info("sweep could not schedule post", "post_id", posts[i].ID, "error", err)
			continue
		}
		handed++
	}
	if handed > 0 {
		slog.Info("publish sweep", "due", len(posts), "scheduled", handed)
	}
	return handed, nil
}
