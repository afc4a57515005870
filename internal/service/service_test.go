package service_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/maheshrc27/contentplanner/internal/repository/repositorytest"
	"github.com/maheshrc27/contentplanner/internal/service"
	"github.com/maheshrc27/contentplanner/internal/transfer"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu        sync.Mutex
	scheduled []string
	err       error
}

func (p *fakePublisher) SchedulePublish(_ context.Context, post *models.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scheduled = append(p.scheduled, post.ID)
	return p.err
}

func (p *fakePublisher) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.scheduled...)
}

type fixture struct {
	db        *sql.DB
	posts     service.PostService
	campaigns service.CampaignService
	approvals service.ApprovalService
	calendar  service.CalendarService
	publisher *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	return newFixtureOn(repositorytest.Open(t))
}

func newFixtureOn(db *sql.DB) *fixture {
	pr := repository.NewPostRepository(db)
	cr := repository.NewCampaignRepository(db)
	ar := repository.NewApprovalRepository(db)
	publisher := &fakePublisher{}

	return &fixture{
		db:        db,
		posts:     service.NewPostService(pr, cr),
		campaigns: service.NewCampaignService(cr),
		approvals: service.NewApprovalService(db, pr, ar, publisher),
		calendar:  service.NewCalendarService(pr, cr),
		publisher: publisher,
	}
}

func (f *fixture) draft(t *testing.T, in transfer.PostInput) *models.Post {
	t.Helper()

	if in.Title == "" {
		in.Title = "Summer launch"
	}
	if in.Platform == "" {
		in.Platform = "instagram"
	}
	if in.Type == "" {
		in.Type = "image"
	}
	post, err := f.posts.CreatePost(context.Background(), "author", &in)
	require.NoError(t, err)
	return post
}

func (f *fixture) status(t *testing.T, postID string) models.PostStatus {
	t.Helper()

	post, err := f.posts.PostInfo(context.Background(), postID)
	require.NoError(t, err)
	return post.Status
}
