package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/contentplanner/internal/calendar"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/maheshrc27/contentplanner/internal/transfer"
)

type PostService interface {
	CreatePost(ctx context.Context, userID string, in *transfer.PostInput) (*models.Post, error)
	PostInfo(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, criteria calendar.Criteria) ([]models.Post, error)
	UpdatePost(ctx context.Context, postID string, in *transfer.PostInput) (*models.Post, error)
	Remove(ctx context.Context, postID string) error
}

type postService struct {
	pr repository.PostRepository
	cr repository.CampaignRepository
}

func NewPostService(pr repository.PostRepository, cr repository.CampaignRepository) PostService {
	return &postService{
		pr: pr,
		cr: cr,
	}
}

// CreatePost stores a new draft. Posts enter review only through the
// approval workflow.
func (s *postService) CreatePost(ctx context.Context, userID string, in *transfer.PostInput) (*models.Post, error) {
	post, err := s.parsePostInput(ctx, in, "")
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	post.Status = models.PostStatusDraft
	post.CreatedBy = userID

	if _, err := s.pr.Create(ctx, nil, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return post, nil
}

func (s *postService) PostInfo(ctx context.Context, postID string) (*models.Post, error) {
	if postID == "" {
		return nil, &models.ValidationError{Field: "id", Message: "post id is required"}
	}

	post, err := s.pr.GetByID(ctx, nil, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post info: %w", err)
	}
	if post == nil {
		return nil, models.NotFoundError("post", postID)
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, criteria calendar.Criteria) ([]models.Post, error) {
	posts, err := s.pr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return calendar.FilterPosts(posts, criteria), nil
}

func (s *postService) UpdatePost(ctx context.Context, postID string, in *transfer.PostInput) (*models.Post, error) {
	current, err := s.PostInfo(ctx, postID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.PostStatusDraft {
		return nil, models.InvalidStateError("post %s is %s, only drafts can be edited", postID, current.Status)
	}

	post, err := s.parsePostInput(ctx, in, current.CampaignID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	post.ID = current.ID
	post.Status = current.Status
	post.CreatedBy = current.CreatedBy
	post.CreatedAt = current.CreatedAt

	updated, err := s.pr.UpdateDraft(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	if !updated {
		return nil, models.InvalidStateError("post %s left draft while being edited", postID)
	}
	return post, nil
}

func (s *postService) Remove(ctx context.Context, postID string) error {
	if _, err := s.PostInfo(ctx, postID); err != nil {
		return err
	}

	removed, err := s.pr.Remove(ctx, postID)
	if err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}
	if !removed {
		return models.InvalidStateError("post %s is waiting for review and cannot be removed", postID)
	}
	return nil
}

// parsePostInput validates in. A campaign reference equal to kept is accepted
// without a lookup, so drafts whose campaign was deleted stay editable.
func (s *postService) parsePostInput(ctx context.Context, in *transfer.PostInput, kept string) (*models.Post, error) {
	if in == nil {
		return nil, &models.ValidationError{Message: "post data is missing"}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, &models.ValidationError{Field: "title", Message: "title cannot be empty"}
	}
	date, err := ParseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	clock, err := models.ParseOptionalClock(in.Time)
	if err != nil {
		return nil, err
	}
	platform, err := models.ParsePlatform(in.Platform)
	if err != nil {
		return nil, err
	}
	postType, err := models.ParsePostType(in.Type)
	if err != nil {
		return nil, err
	}

	campaignID := strings.TrimSpace(in.CampaignID)
	if campaignID != "" && campaignID != kept {
		campaign, err := s.cr.GetByID(ctx, campaignID)
		if err != nil {
			return nil, fmt.Errorf("error checking campaign: %w", err)
		}
		if campaign == nil {
			return nil, &models.ValidationError{Field: "campaign_id", Message: "campaign " + campaignID + " does not exist"}
		}
	}

	return &models.Post{
		Title:      title,
		Date:       date,
		Time:       clock,
		Platform:   platform,
		Type:       postType,
		Content:    in.Content,
		CampaignID: campaignID,
	}, nil
}
