package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentplanner/internal/models"
)

type ApprovalRepository interface {
	Create(ctx context.Context, tx *sql.Tx, approval *models.Approval) (string, error)
	GetByID(ctx context.Context, tx *sql.Tx, id string) (*models.Approval, error)
	GetOpenByPostID(ctx context.Context, tx *sql.Tx, postID string) (*models.Approval, error)
	ListByStatus(ctx context.Context, status models.ApprovalStatus) ([]models.Approval, error)
	ListByPostID(ctx context.Context, postID string) ([]models.Approval, error)
	Resolve(ctx context.Context, tx *sql.Tx, id string, decision models.Decision, reviewerID, feedback string) (bool, error)
}

type approvalRepository struct {
	db *sql.DB
}

func NewApprovalRepository(db *sql.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

const approvalColumns = `id, post_id, status, requested_by, approved_by, feedback, created_at, resolved_at`

func scanApproval(row rowScanner) (*models.Approval, error) {
	var (
		a          models.Approval
		approvedBy sql.NullString
		feedback   sql.NullString
		resolvedAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.PostID, &a.Status, &a.RequestedBy, &approvedBy, &feedback, &a.CreatedAt, &resolvedAt)
	if err != nil {
		return nil, err
	}
	a.ApprovedBy = approvedBy.String
	a.Feedback = feedback.String
	if resolvedAt.Valid {
		t := resolvedAt.Time
		a.ResolvedAt = &t
	}
	return &a, nil
}

func (r *approvalRepository) Create(ctx context.Context, tx *sql.Tx, approval *models.Approval) (string, error) {
	query := `
		INSERT INTO approvals (id, post_id, status, requested_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	id, err := newID()
	if err != nil {
		return "", err
	}
	createdAt := now()

	_, err = conn(r.db, tx).ExecContext(ctx, query, id, approval.PostID, models.ApprovalStatusPending, approval.RequestedBy, createdAt)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	approval.ID = id
	approval.Status = models.ApprovalStatusPending
	approval.CreatedAt = createdAt
	return id, nil
}

func (r *approvalRepository) GetByID(ctx context.Context, tx *sql.Tx, id string) (*models.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE id = $1`
	return r.get(ctx, tx, query, id)
}

func (r *approvalRepository) GetOpenByPostID(ctx context.Context, tx *sql.Tx, postID string) (*models.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE post_id = $1 AND status = $2`
	return r.get(ctx, tx, query, postID, models.ApprovalStatusPending)
}

func (r *approvalRepository) get(ctx context.Context, tx *sql.Tx, query string, args ...any) (*models.Approval, error) {
	a, err := scanApproval(conn(r.db, tx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return a, nil
}

func (r *approvalRepository) ListByStatus(ctx context.Context, status models.ApprovalStatus) ([]models.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE status = $1 ORDER BY created_at, id`
	return r.query(ctx, query, status)
}

// ListByPostID returns every review cycle of a post, oldest first.
func (r *approvalRepository) ListByPostID(ctx context.Context, postID string) ([]models.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE post_id = $1 ORDER BY created_at, id`
	return r.query(ctx, query, postID)
}

func (r *approvalRepository) query(ctx context.Context, query string, args ...any) ([]models.Approval, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	approvals := []models.Approval{}
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		approvals = append(approvals, *a)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return approvals, nil
}

// Resolve applies a decision to an approval that is still pending. It is a
// compare-and-set on the pending status: false means the approval is missing
// or was already resolved, and nothing was written.
func (r *approvalRepository) Resolve(ctx context.Context, tx *sql.Tx, id string, decision models.Decision, reviewerID, feedback string) (bool, error) {
	query := `
		UPDATE approvals
		SET status = $1,
			approved_by = $2,
			feedback = $3,
			resolved_at = $4
		WHERE id = $5 AND status = $6
	`
	status, err := decision.ApprovalStatus()
	if err != nil {
		return false, err
	}
	res, err := conn(r.db, tx).ExecContext(ctx, query, status, reviewerID, nullString(feedback),
		now(), id, models.ApprovalStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}
