// Package minio stores uploaded documents in a MinIO bucket for
// deployments that want remote object storage instead of local disk.
package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	cfg "github.com/docuwise/legal-assistant/config"
	"github.com/docuwise/legal-assistant/pkg/logger"
)

type Storage struct {
	client     *minio.Client
	bucketName string
	logger     logger.Logger
}

func New(log logger.Logger) (*Storage, error) {
	minioConfig := cfg.GetMinioConfig()
	client, err := minio.New(minioConfig.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioConfig.AccessKey, minioConfig.SecretKey, ""),
		Secure: minioConfig.UseSSL,
		Region: minioConfig.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), minioConfig.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		err = client.MakeBucket(context.Background(), minioConfig.BucketName, minio.MakeBucketOptions{
			Region: minioConfig.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Storage{
		client:     client,
		bucketName: minioConfig.BucketName,
		logger:     log,
	}, nil
}

func (s *Storage) Save(ctx context.Context, r io.Reader, name string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucketName, name, r, -1, minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("Failed to store file to MinIO",
			logger.String("bucket", s.bucketName),
			logger.String("name", name),
			logger.Error(err),
		)
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return name, nil
}

func (s *Storage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, name, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Error("Failed to get file from MinIO",
			logger.String("bucket", s.bucketName),
			logger.String("name", name),
			logger.Error(err),
		)
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return obj, nil
}

func (s *Storage) Remove(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucketName, name, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Error("Failed to delete file from MinIO",
			logger.String("bucket", s.bucketName),
			logger.String("name", name),
			logger.Error(err),
		)
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
