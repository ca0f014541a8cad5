package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"signlearn_backend/internal/config"
	"signlearn_backend/internal/util"
	"signlearn_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var ErrObjectExists = errors.New("object already exists")

// PutOptions control how an object is written.
type PutOptions struct {
	CacheControl string
	Overwrite    bool
}

// StorageProvider is a bucket-scoped binary object store.
type StorageProvider interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, opts PutOptions) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

func validKey(key string) bool {
	return key != "" && !strings.Contains(key, "..") && !strings.ContainsAny(key, `/\`)
}

// LocalStorageProvider keeps objects under LocalPath/<bucket>.
type LocalStorageProvider struct {
	Root    string
	Bucket  string
	BaseURL string
}

func NewLocalStorageProvider(cfg *config.StorageConfig) *LocalStorageProvider {
	return &LocalStorageProvider{
		Root:    cfg.LocalPath,
		Bucket:  cfg.AvatarBucket,
		BaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

func (p *LocalStorageProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, opts PutOptions) error {
	if !validKey(key) {
		return fmt.Errorf("invalid object key %q", key)
	}
	dir := filepath.Join(p.Root, p.Bucket)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	out, err := os.OpenFile(filepath.Join(dir, key), flags, 0644)
	if errors.Is(err, os.ErrExist) {
		return ErrObjectExists
	}
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return err
	}
	return out.Sync()
}

func (p *LocalStorageProvider) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("invalid object key %q", key)
	}
	return os.Remove(filepath.Join(p.Root, p.Bucket, key))
}

func (p *LocalStorageProvider) PublicURL(key string) string {
	return p.BaseURL + "/uploads/" + p.Bucket + "/" + key
}

// MinioStorageProvider stores objects in a MinIO (or any S3-compatible) bucket.
type MinioStorageProvider struct {
	Bucket  string
	BaseURL string
	Client  *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		baseURL = scheme + "://" + cfg.MinioEndpoint
	}
	return &MinioStorageProvider{Bucket: cfg.AvatarBucket, BaseURL: baseURL, Client: client}, nil
}

func (p *MinioStorageProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, opts PutOptions) error {
	if !opts.Overwrite {
		_, err := p.Client.StatObject(ctx, p.Bucket, key, minio.StatObjectOptions{})
		if err == nil {
			return ErrObjectExists
		}
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			return err
		}
	}

	_, err := p.Client.PutObject(ctx, p.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: opts.CacheControl,
	})
	return err
}

func (p *MinioStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) PublicURL(key string) string {
	return p.BaseURL + "/" + p.Bucket + "/" + key
}

// OSSStorageProvider stores objects in an Aliyun OSS bucket.
type OSSStorageProvider struct {
	Endpoint string
	Bucket   *oss.Bucket
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.AvatarBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Endpoint: cfg.OSSEndpoint, Bucket: bucket}, nil
}

func (p *OSSStorageProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, opts PutOptions) error {
	options := []oss.Option{
		oss.ContentType(contentType),
		oss.ContentLength(size),
		oss.ForbidOverWrite(!opts.Overwrite),
	}
	if opts.CacheControl != "" {
		options = append(options, oss.CacheControl(opts.CacheControl))
	}
	return p.Bucket.PutObject(key, reader, options...)
}

func (p *OSSStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Bucket.DeleteObject(key)
}

func (p *OSSStorageProvider) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Bucket.BucketName, p.Endpoint, key)
}

// StorageService fronts the configured provider and classifies its failures.
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("minio storage unavailable, falling back to local", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("oss storage unavailable, falling back to local", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = NewLocalStorageProvider(&cfg.Storage)
	}

	return &StorageService{Provider: provider}
}

// Backend names the provider in use: local, minio or oss.
func (s *StorageService) Backend() string {
	switch s.Provider.(type) {
	case *MinioStorageProvider:
		return util.StorageMinio
	case *OSSStorageProvider:
		return util.StorageOSS
	case *LocalStorageProvider:
		return util.StorageLocal
	default:
		return "custom"
	}
}

// Put stores the object and returns its public URL.
func (s *StorageService) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, opts PutOptions) (string, error) {
	if err := s.Provider.Put(ctx, key, reader, size, contentType, opts); err != nil {
		return "", util.WrapError("storage.Put", util.ErrStorage, "could not store file", err)
	}
	return s.Provider.PublicURL(key), nil
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	if err := s.Provider.Delete(ctx, key); err != nil {
		return util.WrapError("storage.Delete", util.ErrStorage, "could not delete file", err)
	}
	return nil
}
