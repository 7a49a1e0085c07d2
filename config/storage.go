package config

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 client and bucket info
type S3Config struct {
	Client     *s3.Client
	BucketName string
	PublicURL  string
	PresignTTL time.Duration
}

// NewS3Config initializes the S3 client from the storage section
func NewS3Config(ctx context.Context, cfg StorageConfig) (*S3Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.BucketName, cfg.Region)
	}

	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: cfg.BucketName,
		PublicURL:  publicURL,
		PresignTTL: cfg.PresignTTL,
	}, nil
}

// PresignPut returns a URL the client can PUT an object of contentType to
func (s *S3Config) PresignPut(ctx context.Context, objectKey, contentType string) (string, error) {
	presignClient := s3.NewPresignClient(s.Client)
	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.PresignTTL))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// ObjectURL is the public URL an uploaded object is served from
func (s *S3Config) ObjectURL(objectKey string) string {
	return s.PublicURL + "/" + objectKey
}
