package job_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	job "github.com/maheshrc27/contentplanner/internal/jobs"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/maheshrc27/contentplanner/internal/repository/repositorytest"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	ids  []string
	fail map[string]bool
}

func (p *recordingPublisher) SchedulePublish(_ context.Context, post *models.Post) error {
	if p.fail[post.ID] {
		return errors.New("enqueue failed")
	}
	p.ids = append(p.ids, post.ID)
	return nil
}

func TestSweep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pr := repository.NewPostRepository(repositorytest.Open(t))

	create := func(day int, status models.PostStatus) string {
		id, err := pr.Create(ctx, nil, &models.Post{
			Title:    "post",
			Date:     civil.Date{Year: 2024, Month: 6, Day: day},
			Platform: models.PlatformTwitter,
			Type:     models.PostTypeText,
			Status:   status,
		})
		require.NoError(t, err)
		return id
	}

	overdue := create(10, models.PostStatusScheduled)
	today := create(15, models.PostStatusScheduled)
	create(16, models.PostStatusScheduled)
	create(10, models.PostStatusDraft)
	create(10, models.PostStatusPublished)
	broken := create(12, models.PostStatusScheduled)

	publisher := &recordingPublisher{fail: map[string]bool{broken: true}}
	sweep := job.NewPublishSweepJob(pr, publisher, time.UTC)
	sweep.SetClock(func() time.Time { return time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC) })

	n, err := sweep.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []string{overdue, today}, publisher.ids)
}
