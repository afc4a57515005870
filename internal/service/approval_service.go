package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/contentplanner/internal/metrics"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
)

// Publisher hands an approved post to whatever publishes it later.
type Publisher interface {
	SchedulePublish(ctx context.Context, post *models.Post) error
}

// ApprovalService drives the review workflow:
//
//	draft -> pending_approval -> scheduled (approve) | draft (reject)
//
// Every transition writes the approval and its post in one transaction,
// guarded by a compare-and-set on the current status, so concurrent
// reviewers produce exactly one winner.
type ApprovalService interface {
	SubmitForApproval(ctx context.Context, postID, requestedBy string) (*models.Approval, error)
	Approve(ctx context.Context, approvalID, reviewerID, feedback string) (*models.Approval, error)
	Reject(ctx context.Context, approvalID, reviewerID, feedback string) (*models.Approval, error)
	Get(ctx context.Context, approvalID string) (*models.Approval, error)
	ListPending(ctx context.Context) ([]models.Approval, error)
	History(ctx context.Context, postID string) ([]models.Approval, error)
}

type approvalService struct {
	db        *sql.DB
	pr        repository.PostRepository
	ar        repository.ApprovalRepository
	publisher Publisher
}

// NewApprovalService builds the workflow. publisher may be nil, in which case
// approved posts are left for the publish sweep.
func NewApprovalService(
	db *sql.DB,
	pr repository.PostRepository,
	ar repository.ApprovalRepository,
	publisher Publisher) ApprovalService {
	return &approvalService{
		db:        db,
		pr:        pr,
		ar:        ar,
		publisher: publisher,
	}
}

func (s *approvalService) SubmitForApproval(ctx context.Context, postID, requestedBy string) (approval *models.Approval, err error) {
	defer func() { metrics.ObserveApproval("submit", err) }()

	if postID == "" {
		return nil, &models.ValidationError{Field: "post_id", Message: "post id is required"}
	}

	approval = &models.Approval{PostID: postID, RequestedBy: requestedBy}
	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		moved, err := s.pr.UpdateStatus(ctx, tx, postID, models.PostStatusDraft, models.PostStatusPendingApproval)
		if err != nil {
			return err
		}
		if !moved {
			post, err := s.pr.GetByID(ctx, tx, postID)
			if err != nil {
				return err
			}
			if post == nil {
				return models.NotFoundError("post", postID)
			}
			return models.InvalidStateError("post %s is %s, only drafts can be submitted", postID, post.Status)
		}

		_, err = s.ar.Create(ctx, tx, approval)
		return err
	})
	if err != nil {
		slog.Info("submit for approval failed", "post_id", postID, "error", err)
		return nil, fmt.Errorf("error submitting post for approval: %w", err)
	}

	slog.Info("post submitted for approval", "post_id", postID, "approval_id", approval.ID)
	return approval, nil
}

func (s *approvalService) Approve(ctx context.Context, approvalID, reviewerID, feedback string) (*models.Approval, error) {
	return s.resolve(ctx, approvalID, models.DecisionApprove, reviewerID, feedback)
}

func (s *approvalService) Reject(ctx context.Context, approvalID, reviewerID, feedback string) (*models.Approval, error) {
	if strings.TrimSpace(feedback) == "" {
		err := &models.ValidationError{Field: "feedback", Message: "a rejection must explain what to change"}
		metrics.ObserveApproval(models.DecisionReject.String(), err)
		return nil, err
	}
	return s.resolve(ctx, approvalID, models.DecisionReject, reviewerID, feedback)
}

func (s *approvalService) resolve(ctx context.Context, approvalID string, decision models.Decision, reviewerID, feedback string) (approval *models.Approval, err error) {
	defer func() { metrics.ObserveApproval(decision.String(), err) }()

	if approvalID == "" {
		return nil, &models.ValidationError{Field: "approval_id", Message: "approval id is required"}
	}
	if strings.TrimSpace(reviewerID) == "" {
		return nil, &models.ValidationError{Field: "reviewer", Message: "reviewer is required"}
	}
	target, err := decision.PostStatus()
	if err != nil {
		return nil, err
	}

	var post *models.Post
	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		won, err := s.ar.Resolve(ctx, tx, approvalID, decision, reviewerID, feedback)
		if err != nil {
			return err
		}
		if !won {
			existing, err := s.ar.GetByID(ctx, tx, approvalID)
			if err != nil {
				return err
			}
			if existing == nil {
				return models.NotFoundError("approval", approvalID)
			}
			return fmt.Errorf("approval %s is %s: %w", approvalID, existing.Status, models.ErrAlreadyResolved)
		}

		if approval, err = s.ar.GetByID(ctx, tx, approvalID); err != nil {
			return err
		}

		moved, err := s.pr.UpdateStatus(ctx, tx, approval.PostID, models.PostStatusPendingApproval, target)
		if err != nil {
			return err
		}
		if !moved {
			return models.InvalidStateError("post %s is no longer pending approval", approval.PostID)
		}

		post, err = s.pr.GetByID(ctx, tx, approval.PostID)
		return err
	})
	if err != nil {
		slog.Info("approval transition failed", "approval_id", approvalID, "action", decision.String(), "error", err)
		return nil, fmt.Errorf("error trying to %s approval: %w", decision, err)
	}

	slog.Info("approval resolved", "approval_id", approvalID, "post_id", approval.PostID,
		"status", approval.Status, "reviewer", reviewerID)

	if decision == models.DecisionApprove && s.publisher != nil && post != nil {
		// The approval stands even if scheduling fails; the sweep retries.
		if err := s.publisher.SchedulePublish(ctx, post); err != nil {
			slog.Warn("failed to schedule publish", "post_id", post.ID, "error", err)
		}
	}
	return approval, nil
}

func (s *approvalService) Get(ctx context.Context, approvalID string) (*models.Approval, error) {
	approval, err := s.ar.GetByID(ctx, nil, approvalID)
	if err != nil {
		return nil, fmt.Errorf("error getting approval: %w", err)
	}
	if approval == nil {
		return nil, models.NotFoundError("approval", approvalID)
	}
	return approval, nil
}

func (s *approvalService) ListPending(ctx context.Context) ([]models.Approval, error) {
	approvals, err := s.ar.ListByStatus(ctx, models.ApprovalStatusPending)
	if err != nil {
		return nil, fmt.Errorf("error listing pending approvals: %w", err)
	}
	return approvals, nil
}

func (s *approvalService) History(ctx context.Context, postID string) ([]models.Approval, error) {
	post, err := s.pr.GetByID(ctx, nil, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	if post == nil {
		return nil, models.NotFoundError("post", postID)
	}

	approvals, err := s.ar.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing approvals: %w", err)
	}
	return approvals, nil
}
