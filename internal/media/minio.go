package media

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig locates an S3-compatible bucket.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL prefixes object URLs; defaults to the endpoint.
	PublicURL string
}

// Minio uploads to any S3-compatible object store.
type Minio struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinio connects to the store and creates the bucket when missing.
func NewMinio(ctx context.Context, cfg MinioConfig) (*Minio, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio endpoint and bucket are required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}
	return &Minio{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (m *Minio) Provider() string { return "minio" }

func (m *Minio) Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error) {
	name := objectName(kind, localPath)
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := m.client.FPutObject(ctx, m.bucket, name, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, err
	}
	return &Asset{
		URL:      fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, name),
		PublicID: name,
		Kind:     kind,
	}, nil
}

func (m *Minio) Destroy(ctx context.Context, publicID string, _ Kind) error {
	return m.client.RemoveObject(ctx, m.bucket, publicID, minio.RemoveObjectOptions{})
}
