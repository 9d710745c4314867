package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// PhotoStorage uploads ticket photos to the blob store and returns stable
// public URLs.
type PhotoStorage struct {
	minio     *minio.Client
	bucket    string
	publicURL string
}

func NewPhotoStorage(client *minio.Client, bucket, publicURL string) *PhotoStorage {
	return &PhotoStorage{minio: client, bucket: bucket, publicURL: publicURL}
}

func (s *PhotoStorage) Upload(ctx context.Context, reader io.Reader, size int64, contentType, filename string) (string, error) {
	objectKey := fmt.Sprintf("photos/%d_%s", time.Now().UnixNano(), filename)

	_, err := s.minio.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.publicURL, "/"), s.bucket, objectKey), nil
}
