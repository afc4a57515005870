package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository/repositorytest"
	"github.com/maheshrc27/contentplanner/internal/transfer"
	"github.com/stretchr/testify/require"
)

func TestApprovalScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	campaign, err := f.campaigns.CreateCampaign(ctx, &transfer.CampaignInput{
		Name: "June push", StartDate: "2024-06-01", EndDate: "2024-06-30",
	})
	require.NoError(t, err)

	post := f.draft(t, transfer.PostInput{Date: "2024-06-15", CampaignID: campaign.ID})
	require.Equal(t, models.PostStatusDraft, post.Status)

	approval, err := f.approvals.SubmitForApproval(ctx, post.ID, "author")
	require.NoError(t, err)
	require.Equal(t, models.ApprovalStatusPending, approval.Status)
	require.Equal(t, models.PostStatusPendingApproval, f.status(t, post.ID))

	pending, err := f.approvals.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, approval.ID, pending[0].ID)

	approved, err := f.approvals.Approve(ctx, approval.ID, "reviewer-1", "")
	require.NoError(t, err)
	require.Equal(t, models.ApprovalStatusApproved, approved.Status)
	require.Equal(t, "reviewer-1", approved.ApprovedBy)
	require.NotNil(t, approved.ResolvedAt)
	require.Equal(t, models.PostStatusScheduled, f.status(t, post.ID))
	require.Equal(t, []string{post.ID}, f.publisher.calls())

	_, err = f.approvals.Approve(ctx, approval.ID, "reviewer-2", "")
	require.ErrorIs(t, err, models.ErrAlreadyResolved)
	require.ErrorIs(t, err, models.ErrInvalidState)
	require.Equal(t, models.PostStatusScheduled, f.status(t, post.ID))

	stored, err := f.approvals.Get(ctx, approval.ID)
	require.NoError(t, err)
	require.Equal(t, "reviewer-1", stored.ApprovedBy)
	require.Len(t, f.publisher.calls(), 1)
}

func TestSubmitForApproval_RequiresDraft(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	post := f.draft(t, transfer.PostInput{Date: "2024-06-15"})

	_, err := f.approvals.SubmitForApproval(ctx, post.ID, "author")
	require.NoError(t, err)

	_, err = f.approvals.SubmitForApproval(ctx, post.ID, "author")
	require.ErrorIs(t, err, models.ErrInvalidState)
	require.False(t, errors.Is(err, models.ErrAlreadyResolved))

	_, err = f.approvals.SubmitForApproval(ctx, "missing", "author")
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.approvals.SubmitForApproval(ctx, "", "author")
	require.ErrorIs(t, err, models.ErrValidation)

	pending, err := f.approvals.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1, "a failed submit must not open another approval")
}

func TestReject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	post := f.draft(t, transfer.PostInput{Date: "2024-06-15"})
	approval, err := f.approvals.SubmitForApproval(ctx, post.ID, "author")
	require.NoError(t, err)

	t.Run("feedback is required", func(t *testing.T) {
		for _, feedback := range []string{"", "   "} {
			_, err := f.approvals.Reject(ctx, approval.ID, "reviewer", feedback)
			require.ErrorIs(t, err, models.ErrValidation)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, "feedback", verr.Field)
			require.Equal(t, models.PostStatusPendingApproval, f.status(t, post.ID))
		}
	})

	t.Run("returns post to draft", func(t *testing.T) {
		rejected, err := f.approvals.Reject(ctx, approval.ID, "reviewer", "Caption is off-brand")
		require.NoError(t, err)
		require.Equal(t, models.ApprovalStatusRejected, rejected.Status)
		require.Equal(t, "Caption is off-brand", rejected.Feedback)
		require.Equal(t, models.PostStatusDraft, f.status(t, post.ID))
		require.Empty(t, f.publisher.calls())
	})

	t.Run("resolved approval is immutable", func(t *testing.T) {
		_, err := f.approvals.Approve(ctx, approval.ID, "reviewer", "")
		require.ErrorIs(t, err, models.ErrAlreadyResolved)
		_, err = f.approvals.Reject(ctx, approval.ID, "reviewer", "again")
		require.ErrorIs(t, err, models.ErrAlreadyResolved)
		require.Equal(t, models.PostStatusDraft, f.status(t, post.ID))
	})

	t.Run("a new cycle can start", func(t *testing.T) {
		second, err := f.approvals.SubmitForApproval(ctx, post.ID, "author")
		require.NoError(t, err)
		require.NotEqual(t, approval.ID, second.ID)

		history, err := f.approvals.History(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		require.Equal(t, models.ApprovalStatusRejected, history[0].Status)
		require.Equal(t, models.ApprovalStatusPending, history[1].Status)
	})
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	_, err := f.approvals.Approve(ctx, "missing", "reviewer", "")
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.approvals.Approve(ctx, "missing", " ", "")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = f.approvals.Get(ctx, "missing")
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.approvals.History(ctx, "missing")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestApprove_PublisherFailureKeepsApproval(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.publisher.err = errors.New("redis down")

	post := f.draft(t, transfer.PostInput{Date: "2024-06-15"})
	approval, err := f.approvals.SubmitForApproval(ctx, post.ID, "author")
	require.NoError(t, err)

	_, err = f.approvals.Approve(ctx, approval.ID, "reviewer", "ship it")
	require.NoError(t, err)
	require.Equal(t, models.PostStatusScheduled, f.status(t, post.ID))
}

func TestConcurrentReviewers(t *testing.T) {
	t.Parallel()

	// SQLite serialises the two transactions on its single connection, so
	// this covers the losing reviewer's outcome. TestConcurrentReviewersPostgres
	// covers the row-lock wait.
	for _, tc := range reviewerRaces {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			raceReviewers(t, newFixture(t), tc.decisions)
		})
	}
}

func TestConcurrentReviewersPostgres(t *testing.T) {
	db := repositorytest.OpenPostgres(t)

	for _, tc := range reviewerRaces {
		t.Run(tc.name, func(t *testing.T) {
			raceReviewers(t, newFixtureOn(db), tc.decisions)
		})
	}
}

var reviewerRaces = []struct {
	name      string
	decisions []bool // true approves, false rejects
}{
	{"approve vs approve", []bool{true, true}},
	{"approve vs reject", []bool{true, false}},
	{"reject vs reject", []bool{false, false}},
	{"crowd", []bool{true, false, true, false, true, false, true, false}},
}

func raceReviewers(t *testing.T, f *fixture, decisions []bool) {
	t.Helper()

	ctx := context.Background()
	post := f.draft(t, transfer.PostInput{Date: "2024-06-15"})
	approval, err := f.approvals.SubmitForApproval(ctx, post.ID, "author")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, len(decisions))
	start := make(chan struct{})
	for i, approveIt := range decisions {
		wg.Add(1)
		go func(i int, approveIt bool) {
			defer wg.Done()
			<-start
			reviewer := fmt.Sprintf("reviewer-%d", i)
			if approveIt {
				_, errs[i] = f.approvals.Approve(ctx, approval.ID, reviewer, "")
			} else {
				_, errs[i] = f.approvals.Reject(ctx, approval.ID, reviewer, "rework the hook")
			}
		}(i, approveIt)
	}
	close(start)
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			require.Equal(t, -1, winner, "only one reviewer may win")
			winner = i
			continue
		}
		require.ErrorIs(t, err, models.ErrAlreadyResolved)
	}
	require.NotEqual(t, -1, winner)

	stored, err := f.approvals.Get(ctx, approval.ID)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("reviewer-%d", winner), stored.ApprovedBy)

	wantPost, wantApproval := models.PostStatusDraft, models.ApprovalStatusRejected
	if decisions[winner] {
		wantPost, wantApproval = models.PostStatusScheduled, models.ApprovalStatusApproved
	}
	require.Equal(t, wantApproval, stored.Status)
	require.Equal(t, wantPost, f.status(t, post.ID))
}
