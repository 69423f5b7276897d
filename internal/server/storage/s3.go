package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3KeyPrefix = "uploads/"

// objectAPI is the part of *s3.Client the storage uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Config holds connection settings for an S3-compatible store such as MinIO.
type S3Config struct {
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	BaseEndpoint  string
	PublicBaseURL string
}

// S3Storage puts objects under uploads/<folder>/ in one bucket.
type S3Storage struct {
	client        objectAPI
	bucket        string
	publicBaseURL string
}

func NewS3Storage(ctx context.Context, c S3Config) (*S3Storage, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	base := c.PublicBaseURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return &S3Storage{client: client, bucket: c.Bucket, publicBaseURL: base}, nil
}

func (s *S3Storage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if !validFolder(folder) {
		return "", fmt.Errorf("invalid folder %q", folder)
	}

	// Buffer so the SDK gets a seekable body for signing over plain HTTP.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := s3KeyPrefix + path.Join(folder, objectName(filename))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	return s.publicBaseURL + key, nil
}

func (s *S3Storage) Delete(ctx context.Context, publicPath string) error {
	key, ok := strings.CutPrefix(publicPath, s.publicBaseURL)
	if !ok || !strings.HasPrefix(key, s3KeyPrefix) || strings.Contains(key, "..") {
		return ErrForeignPath
	}

	// DeleteObject succeeds for keys that do not exist.
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}
