package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/google/uuid"
)

// PayloadStore stores opaque request payload blobs that batch calls can
// reference by key instead of carrying inline.
type PayloadStore interface {
	SavePayload(ctx context.Context, key string, payload []byte) error
	GetPayload(ctx context.Context, key string) ([]byte, error)
	DeletePayload(ctx context.Context, key string) error
}

// LocalPayloadStore implements PayloadStore using the local filesystem
type LocalPayloadStore struct {
	basePath string
}

func NewLocalPayloadStore(basePath string) (*LocalPayloadStore, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}
	return &LocalPayloadStore{basePath: basePath}, nil
}

func (s *LocalPayloadStore) SavePayload(ctx context.Context, key string, payload []byte) error {
	fullPath := filepath.Join(s.basePath, key)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, payload, 0644)
}

func (s *LocalPayloadStore) GetPayload(ctx context.Context, key string) ([]byte, error) {
	fullPath := filepath.Join(s.basePath, key)
	return os.ReadFile(fullPath)
}

func (s *LocalPayloadStore) DeletePayload(ctx context.Context, key string) error {
	fullPath := filepath.Join(s.basePath, key)
	return os.Remove(fullPath)
}

// S3PayloadStore implements PayloadStore using AWS S3
type S3PayloadStore struct {
	client *s3.Client
	bucket string
}

func NewS3PayloadStore(bucket string) (*S3PayloadStore, error) {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, err
	}

	// Instrument AWS SDK v2 with X-Ray for automatic S3 operation tracing
	awsv2.AWSV2Instrumentor(&cfg.APIOptions)

	client := s3.NewFromConfig(cfg)
	return &S3PayloadStore{client: client, bucket: bucket}, nil
}

func (s *S3PayloadStore) SavePayload(ctx context.Context, key string, payload []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/octet-stream"),
	})
	return err
}

func (s *S3PayloadStore) GetPayload(ctx context.Context, key string) ([]byte, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer output.Body.Close()

	return io.ReadAll(output.Body)
}

func (s *S3PayloadStore) DeletePayload(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// NewPayloadStore creates the appropriate payload store based on environment
func NewPayloadStore(storeType, pathOrBucket string) (PayloadStore, error) {
	switch storeType {
	case "s3":
		return NewS3PayloadStore(pathOrBucket)
	case "local":
		return NewLocalPayloadStore(pathOrBucket)
	default:
		return nil, fmt.Errorf("unknown payload store type: %s", storeType)
	}
}

// GeneratePayloadKey generates a unique key for a stored payload blob
func GeneratePayloadKey() string {
	return fmt.Sprintf("payloads/%s.bin", uuid.New().String())
}
