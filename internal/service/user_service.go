package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id string) (*models.User, error)
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id string) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user info: %w", err)
	}
	if !isExist {
		return nil, models.NotFoundError("user", id)
	}
	return user, nil
}
