package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/maheshrc27/contentplanner/configs"
)

// ObjectStorage stores uploaded media and returns its public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type R2Service struct {
	config cfg.R2

	once   sync.Once
	client *s3.Client
	err    error
}

func NewR2Service(c cfg.Config) *R2Service {
	return &R2Service{config: c.R2}
}

func (r *R2Service) R2Client(ctx context.Context) (*s3.Client, error) {
	r.once.Do(func() {
		awsCfg, err := config.LoadDefaultConfig(ctx,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.AccessKey, r.config.SecretKey, "")),
			config.WithRegion("auto"),
		)
		if err != nil {
			slog.Info(err.Error())
			r.err = err
			return
		}

		r.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.AccountID))
		})
	})
	return r.client, r.err
}

// Upload puts the object into the configured R2 bucket.
func (r *R2Service) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	client, err := r.R2Client(ctx)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return strings.TrimRight(r.config.PublicURL, "/") + "/" + key, nil
}
