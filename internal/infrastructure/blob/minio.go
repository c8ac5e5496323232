package blob

import (
	"bytes"
	"context"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore implements document.Store on a MinIO/S3 bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// New connects and creates the bucket if it doesn't exist yet.
func New(ctx context.Context, cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		log.Printf("blob: created bucket %s", cfg.Bucket)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Store(ctx context.Context, data []byte, suggestedName string) (string, error) {
	// Prefix with a uuid so repeated signings of distinct offers can never
	// collide on the suggested name.
	objectName := uuid.NewString() + "-" + suggestedName
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (s *MinioStore) Fetch(ctx context.Context, locator string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, locator, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func (s *MinioStore) Delete(ctx context.Context, locator string) (bool, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, locator, minio.StatObjectOptions{}); err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, locator, minio.RemoveObjectOptions{}); err != nil {
		return false, err
	}
	return true, nil
}
