package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/maheshrc27/contentplanner/configs"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
	"github.com/maheshrc27/contentplanner/internal/transfer"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var googleScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// AuthService signs dashboard users (authors and reviewers) in with Google.
type AuthService interface {
	AuthCodeURL(state string) string
	LoginCallback(ctx context.Context, code string) (string, error)
}

type authService struct {
	oauth2Config *oauth2.Config
	u            repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURI,
			Scopes:       googleScopes,
			Endpoint:     google.Endpoint,
		},
		u: u,
	}
}

func (s *authService) AuthCodeURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// LoginCallback exchanges the authorization code and returns the id of the
// matching user, creating the user on first sign-in.
func (s *authService) LoginCallback(ctx context.Context, code string) (string, error) {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return "", err
	}
	if s.oauth2Config.ClientID == "" || s.oauth2Config.ClientSecret == "" || s.oauth2Config.RedirectURL == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return "", err
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("error exchanging code: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return "", err
	}

	user, isExist, err := s.u.GetByEmail(ctx, info.Email)
	if err != nil {
		return "", err
	}
	if isExist {
		if user.GoogleID == "" || user.Name != info.Name || user.ProfilePicture != info.Picture {
			user.GoogleID = info.ID
			user.Name = info.Name
			user.ProfilePicture = info.Picture
			if err := s.u.Update(ctx, user); err != nil {
				return "", err
			}
		}
		return user.ID, nil
	}

	return s.u.Create(ctx, &models.User{
		GoogleID:       info.ID,
		Email:          info.Email,
		Name:           info.Name,
		ProfilePicture: info.Picture,
	})
}

func (s *authService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*transfer.GoogleUserInfo, error) {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(s.oauth2Config.TokenSource(ctx, token)))
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error creating userinfo client: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error fetching user info: %w", err)
	}
	if info.Email == "" {
		return nil, errors.New("google account has no email")
	}

	return &transfer.GoogleUserInfo{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
