package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/wize-house/api-go/config"
)

// EvidenceStore keeps activity evidence (check-in captures, sale slips) in an
// object store and hands back the URL that goes into the ledger record. The
// core never looks inside the blob.
type EvidenceStore interface {
	Upload(ctx context.Context, userID uint, data []byte, contentType string) (string, error)
	PresignPut(ctx context.Context, userID uint, fileName, contentType string) (*PresignedUpload, error)
	Exists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}

type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

// R2Evidence talks to a Cloudflare R2 bucket through the S3 API.
type R2Evidence struct {
	Client *s3.Client
	Config *config.R2Config
}

func NewR2Evidence() *R2Evidence {
	cfg := config.GetR2Config()

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})

	return &R2Evidence{Client: client, Config: cfg}
}

func (r *R2Evidence) Upload(ctx context.Context, userID uint, data []byte, contentType string) (string, error) {
	key := r.generateKey(userID, extensionFor(contentType))

	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return r.PublicURL(key), nil
}

func (r *R2Evidence) PresignPut(ctx context.Context, userID uint, fileName, contentType string) (*PresignedUpload, error) {
	key := r.generateKey(userID, extensionFor(contentType))

	presigner := s3.NewPresignClient(r.Client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileURL:   r.PublicURL(key),
		Key:       key,
		ExpiresIn: 3600,
	}, nil
}

func (r *R2Evidence) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *R2Evidence) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", r.Config.PublicURL, key)
}

func (r *R2Evidence) generateKey(userID uint, ext string) string {
	return fmt.Sprintf("evidence/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	}
	return ""
}
