package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var allowedMediaExtensions = map[string]struct{}{
	"jpg": {}, "png": {}, "gif": {}, "webp": {}, "mp4": {}, "mov": {},
}

// Upload is one file attached to a post.
type Upload struct {
	FileName string
	Data     []byte
}

type MediaService interface {
	AttachMedia(ctx context.Context, userID, postID string, files []Upload) ([]models.MediaAsset, error)
	ListMedia(ctx context.Context, postID string) ([]models.MediaAsset, error)
}

type mediaService struct {
	db      *sql.DB
	pr      repository.PostRepository
	ma      repository.MediaAssetRepository
	pm      repository.PostMediaRepository
	storage ObjectStorage
}

func NewMediaService(
	db *sql.DB,
	pr repository.PostRepository,
	ma repository.MediaAssetRepository,
	pm repository.PostMediaRepository,
	storage ObjectStorage) MediaService {
	return &mediaService{
		db:      db,
		pr:      pr,
		ma:      ma,
		pm:      pm,
		storage: storage,
	}
}

// AcceptsMedia reports whether a post of type t may carry a file whose MIME
// top-level type is kind ("image" or "video").
func AcceptsMedia(t models.PostType, kind string) bool {
	switch t {
	case models.PostTypeImage:
		return kind == "image"
	case models.PostTypeVideo, models.PostTypeReel:
		return kind == "video"
	case models.PostTypeCarousel, models.PostTypeStory:
		return kind == "image" || kind == "video"
	case models.PostTypeText:
		return false
	}
	return false
}

func (s *mediaService) AttachMedia(ctx context.Context, userID, postID string, files []Upload) ([]models.MediaAsset, error) {
	if len(files) == 0 {
		return nil, &models.ValidationError{Field: "files", Message: "no files provided for the post"}
	}

	post, err := s.pr.GetByID(ctx, nil, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	if post == nil {
		return nil, models.NotFoundError("post", postID)
	}
	if post.Status == models.PostStatusPublished {
		return nil, models.InvalidStateError("post %s is already published", postID)
	}

	detected := make([]types.Type, len(files))
	for i, file := range files {
		kind, err := filetype.Match(file.Data)
		if err != nil || kind == types.Unknown {
			return nil, &models.ValidationError{Field: "files", Message: fmt.Sprintf("unsupported file type for %s", file.FileName)}
		}
		if _, ok := allowedMediaExtensions[kind.Extension]; !ok {
			return nil, &models.ValidationError{Field: "files", Message: fmt.Sprintf("file type %s is not allowed", kind.Extension)}
		}
		if !AcceptsMedia(post.Type, kind.MIME.Type) {
			return nil, &models.ValidationError{Field: "files", Message: fmt.Sprintf("%s posts cannot carry %s files", post.Type, kind.MIME.Type)}
		}
		detected[i] = kind
	}

	assets := make([]models.MediaAsset, len(files))
	for i, file := range files {
		key, err := gonanoid.New()
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		url, err := s.storage.Upload(ctx, key, file.Data, detected[i].MIME.Value)
		if err != nil {
			return nil, fmt.Errorf("error uploading file: %w", err)
		}
		assets[i] = models.MediaAsset{
			ID:       key,
			UserID:   userID,
			FileName: key,
			FileType: detected[i].MIME.Value,
			FileSize: int64(len(file.Data)),
			FileURL:  url,
		}
	}

	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		order, err := s.pm.NextDisplayOrder(ctx, tx, postID)
		if err != nil {
			return err
		}
		for i := range assets {
			if _, err := s.ma.Create(ctx, tx, &assets[i]); err != nil {
				return err
			}
			link := models.PostMedia{PostID: postID, AssetID: assets[i].ID, DisplayOrder: order + i}
			if err := s.pm.Create(ctx, tx, &link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error saving media: %w", err)
	}
	return assets, nil
}

func (s *mediaService) ListMedia(ctx context.Context, postID string) ([]models.MediaAsset, error) {
	assets, err := s.ma.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing media: %w", err)
	}
	return assets, nil
}
