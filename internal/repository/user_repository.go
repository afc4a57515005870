package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentplanner/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
	Create(ctx context.Context, user *models.User) (string, error)
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, google_id, email, name, profile_picture, created_at, updated_at`

func (r *userRepository) get(ctx context.Context, query string, arg string) (*models.User, bool, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.GoogleID, &user.Email, &user.Name,
		&user.ProfilePicture, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, bool, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (string, error) {
	query := "INSERT INTO users (id, google_id, email, name, profile_picture, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $6)"

	id, err := newID()
	if err != nil {
		return "", err
	}
	createdAt := now()

	_, err = r.db.ExecContext(ctx, query, id, user.GoogleID, user.Email, user.Name, user.ProfilePicture, createdAt)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	user.ID = id
	user.CreatedAt = createdAt
	user.UpdatedAt = createdAt
	return id, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET google_id = $1,
			name = $2,
			profile_picture = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, user.GoogleID, user.Name, user.ProfilePicture, now(), user.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
