// Package storage hands out upload locations for item images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"sick-fits/config"
)

var ErrUnsupportedType = errors.New("unsupported image content type")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload is a presigned location the browser can PUT an image to.
type Upload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ImageStore interface {
	PresignUpload(ctx context.Context, contentType string) (*Upload, error)
}

type S3ImageStore struct {
	presigner *s3.PresignClient
	bucket    string
	publicURL string
	ttl       time.Duration
	now       func() time.Time
}

func NewS3ImageStore(client *s3.Client, bucket string, publicURL string, ttl time.Duration) *S3ImageStore {
	return &S3ImageStore{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		ttl:       ttl,
		now:       time.Now,
	}
}

// NewS3Client builds a client for AWS or any S3-compatible endpoint.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *S3ImageStore) key(ext string) string {
	d := s.now().UTC()
	return path.Join("items", fmt.Sprintf("%d/%02d/%02d", d.Year(), d.Month(), d.Day()), uuid.NewString()+ext)
}

func (s *S3ImageStore) PresignUpload(ctx context.Context, contentType string) (*Upload, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	key := s.key(ext)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return nil, fmt.Errorf("presign put %s: %w", key, err)
	}

	return &Upload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: s.publicURL + "/" + key,
		ExpiresAt: s.now().Add(s.ttl),
	}, nil
}
