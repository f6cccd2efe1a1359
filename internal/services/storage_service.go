package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	appconfig "github.com/maitri-app/maitri-backend/internal/config"
	"github.com/maitri-app/maitri-backend/internal/dto"
)

var ErrStorageNotConfigured = errors.New("image storage is not configured")

const presignExpiry = 5 * time.Minute

// StorageService issues presigned S3 PUT URLs so clients upload report
// images directly to the bucket; only the resulting public URL reaches
// the report store.
type StorageService struct {
	s3Client *s3.Client
	bucket   string
	region   string
}

func NewStorageService(cfg *appconfig.Config) (*StorageService, error) {
	if cfg.S3Bucket == "" {
		return &StorageService{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &StorageService{
		s3Client: s3.NewFromConfig(awsCfg),
		bucket:   cfg.S3Bucket,
		region:   cfg.AWSRegion,
	}, nil
}

// PresignUpload returns a short-lived PUT URL for a new image key along
// with the public URL to submit as the report's imageUrl.
func (s *StorageService) PresignUpload(ctx context.Context, contentType string) (*dto.UploadResponse, error) {
	if s.s3Client == nil {
		return nil, ErrStorageNotConfigured
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	uploadID := uuid.New()
	key := fmt.Sprintf("reports/%s.jpg", uploadID)

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &dto.UploadResponse{
		UploadID:  uploadID,
		UploadURL: request.URL,
		ImageURL:  fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}
