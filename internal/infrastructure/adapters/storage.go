package adapters

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/infrastructure/config"
)

// StorageService uploads proof-of-payment files to S3 and returns durable URLs
type StorageService struct {
	client  *s3.Client
	logger  *zap.Logger
	config  config.StorageConfig
	baseURL string
}

// NewStorageService creates a new storage service
func NewStorageService(cfg config.StorageConfig, logger *zap.Logger) (*StorageService, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &StorageService{
		client:  client,
		logger:  logger,
		config:  cfg,
		baseURL: baseURL,
	}, nil
}

// UploadProof stores a proof-of-payment file under the user's prefix and
// returns its durable public URL.
func (s *StorageService) UploadProof(ctx context.Context, userID uuid.UUID, filename string, body io.Reader, size int64) (string, error) {
	if size > s.config.MaxUploadBytes {
		return "", fmt.Errorf("file exceeds maximum upload size of %d bytes", s.config.MaxUploadBytes)
	}

	ext := strings.ToLower(path.Ext(filename))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("proofs/%s/%s%s", userID, uuid.New(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("Failed to upload proof",
			zap.String("user_id", userID.String()),
			zap.String("key", key),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload proof: %w", err)
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, key)

	s.logger.Info("Proof uploaded",
		zap.String("user_id", userID.String()),
		zap.String("key", key),
		zap.Int64("size", size))

	return url, nil
}

// PresignGet returns a time-limited GET URL for an object key, used when the
// bucket is private and admins need to review proofs.
func (s *StorageService) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presigner := s3.NewPresignClient(s.client)

	presigned, err := presigner.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(s.config.Bucket),
			Key:    aws.String(key),
		},
		func(po *s3.PresignOptions) {
			po.Expires = expiry
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}

	return presigned.URL, nil
}
