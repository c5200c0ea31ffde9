package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"catalogadmin/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectClient is the part of *minio.Client the store uses.
type objectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

// MinioStore keeps images in an S3-compatible bucket keyed <category>/<name>.
type MinioStore struct {
	client objectClient
	bucket string
	now    func() time.Time
}

func NewMinioStore(ctx context.Context, cfg config.MinIOConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	store := newMinioStore(client, cfg.Bucket)
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func newMinioStore(client objectClient, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket, now: time.Now}
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *MinioStore) Save(ctx context.Context, category Category, upload *Upload) (string, error) {
	if !category.valid() {
		return "", fmt.Errorf("unknown image category %q", category)
	}
	key := string(category) + "/" + GenerateName(upload.Filename, s.now())

	size := upload.Size
	if size <= 0 {
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, upload.Content, size, minio.PutObjectOptions{
		ContentType: upload.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return PublicURL(key), nil
}

func (s *MinioStore) Exists(ctx context.Context, url string) (bool, error) {
	key, err := KeyFromURL(url)
	if err != nil {
		return false, err
	}
	_, err = s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MinioStore) Delete(ctx context.Context, url string) error {
	key, err := KeyFromURL(url)
	if err != nil {
		return err
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioStore) Open(ctx context.Context, url string) (io.ReadSeekCloser, time.Time, error) {
	key, err := KeyFromURL(url)
	if err != nil {
		return nil, time.Time{}, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, time.Time{}, err
	}
	// GetObject is lazy; Stat surfaces a missing key.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isNoSuchKey(err) {
			return nil, time.Time{}, ErrImageNotFound
		}
		return nil, time.Time{}, err
	}
	return obj, info.LastModified, nil
}

func (s *MinioStore) Ping(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
