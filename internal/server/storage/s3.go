// Package storage issues presigned object-storage URLs for document payloads.
// The server never handles file bytes: clients PUT to the upload URL and
// pass the returned key as the document's file reference.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now
)

// S3Config carries the settings of an S3-compatible backend (AWS or MinIO).
type S3Config struct {
	User     string
	Password string
	Bucket   string
	Region   string
	Endpoint string
	Expiry   time.Duration
}

type S3Presigner struct {
	cfg    S3Config
	client *s3.PresignClient
}

// NewS3Presigner builds a presign client with static credentials and
// path-style addressing against cfg.Endpoint.
func NewS3Presigner(ctx context.Context, cfg S3Config) (*S3Presigner, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.User, cfg.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	if cfg.Expiry <= 0 {
		cfg.Expiry = 15 * time.Minute
	}
	return &S3Presigner{cfg: cfg, client: s3.NewPresignClient(client)}, nil
}

// NewStorageKey returns a fresh object key under the uploader's prefix.
func NewStorageKey(userID string) string {
	d := now().UTC()
	return fmt.Sprintf("%s%d/%02d/%02d/%s", KeyPrefix(userID), d.Year(), d.Month(), d.Day(), uuid.New())
}

// KeyPrefix is the part of every key NewStorageKey allocates for userID.
func KeyPrefix(userID string) string {
	return "documents/" + userID + "/"
}

// OwnsKey reports whether key lies under userID's prefix. IDs containing a
// slash could alias another user's prefix and never own anything.
func OwnsKey(userID, key string) bool {
	if userID == "" || strings.Contains(userID, "/") {
		return false
	}
	rest, ok := strings.CutPrefix(key, KeyPrefix(userID))
	if !ok || rest == "" {
		return false
	}
	for _, seg := range strings.Split(rest, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

// PresignUpload allocates a key for userID and returns it with a PUT URL.
func (p *S3Presigner) PresignUpload(ctx context.Context, userID string) (key string, url string, err error) {
	key = NewStorageKey(userID)
	req, err := presignPutObject(p.client, ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.cfg.Expiry))
	if err != nil {
		return "", "", fmt.Errorf("presign put: %w", err)
	}
	return key, req.URL, nil
}

// PresignDownload returns a GET URL for key.
func (p *S3Presigner) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := presignGetObject(p.client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.cfg.Expiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}
