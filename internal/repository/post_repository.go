package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"cloud.google.com/go/civil"
	"github.com/maheshrc27/contentplanner/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (string, error)
	GetByID(ctx context.Context, tx *sql.Tx, id string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByDateRange(ctx context.Context, from, to civil.Date) ([]models.Post, error)
	ListDue(ctx context.Context, status models.PostStatus, through civil.Date) ([]models.Post, error)
	UpdateDraft(ctx context.Context, post *models.Post) (bool, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id string, from, to models.PostStatus) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, title, post_date, post_time, platform, post_type, content, status, campaign_id, created_by, created_at, updated_at`

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post       models.Post
		date       string
		clock      sql.NullString
		campaignID sql.NullString
	)
	err := row.Scan(&post.ID, &post.Title, &date, &clock, &post.Platform, &post.Type, &post.Content,
		&post.Status, &campaignID, &post.CreatedBy, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if post.Date, err = parseDate("post_date", date); err != nil {
		return nil, err
	}
	if post.Time, err = clockFrom(clock); err != nil {
		return nil, err
	}
	post.CampaignID = campaignID.String
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (string, error) {
	query := `
		INSERT INTO posts (id, title, post_date, post_time, platform, post_type, content, status, campaign_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	`

	id, err := newID()
	if err != nil {
		return "", err
	}
	createdAt := now()
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}

	_, err = conn(r.db, tx).ExecContext(ctx, query, id, post.Title, post.Date.String(), nullClock(post.Time),
		post.Platform, post.Type, post.Content, post.Status, nullString(post.CampaignID), post.CreatedBy, createdAt)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	post.ID = id
	post.CreatedAt = createdAt
	post.UpdatedAt = createdAt
	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, tx *sql.Tx, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(conn(r.db, tx).QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY post_date, created_at, id`
	return r.query(ctx, query)
}

func (r *postRepository) ListByDateRange(ctx context.Context, from, to civil.Date) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_date >= $1 AND post_date <= $2 ORDER BY post_date, created_at, id`
	return r.query(ctx, query, from.String(), to.String())
}

func (r *postRepository) ListDue(ctx context.Context, status models.PostStatus, through civil.Date) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 AND post_date <= $2 ORDER BY post_date, created_at, id`
	return r.query(ctx, query, status, through.String())
}

func (r *postRepository) query(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

// UpdateDraft rewrites the editable fields of a post that is still a draft.
// It reports false when the post is missing or no longer a draft.
func (r *postRepository) UpdateDraft(ctx context.Context, post *models.Post) (bool, error) {
	query := `
		UPDATE posts
		SET title = $1,
			post_date = $2,
			post_time = $3,
			platform = $4,
			post_type = $5,
			content = $6,
			campaign_id = $7,
			updated_at = $8
		WHERE id = $9 AND status = $10
	`
	updatedAt := now()
	res, err := r.db.ExecContext(ctx, query, post.Title, post.Date.String(), nullClock(post.Time), post.Platform,
		post.Type, post.Content, nullString(post.CampaignID), updatedAt, post.ID, models.PostStatusDraft)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	ok, err := affected(res)
	if ok {
		post.UpdatedAt = updatedAt
	}
	return ok, err
}

// UpdateStatus moves a post from one status to another. It reports false
// when the post is not currently in the from status.
func (r *postRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id string, from, to models.PostStatus) (bool, error) {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	res, err := conn(r.db, tx).ExecContext(ctx, query, to, now(), id, from)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}

// Remove deletes a post unless it is waiting on review.
func (r *postRepository) Remove(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM posts WHERE id = $1 AND status <> $2`
	res, err := r.db.ExecContext(ctx, query, id, models.PostStatusPendingApproval)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected(res)
}
