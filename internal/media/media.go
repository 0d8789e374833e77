// Package media moves staged uploads to the configured media host.
package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"vidtube/internal/config"

	"github.com/google/uuid"
)

// Kind is the asset class, which decides how the host stores it.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Asset is a hosted file.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Kind     Kind   `json:"kind"`
}

// Uploader stores local files on a media host and removes them again.
type Uploader interface {
	Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error)
	Destroy(ctx context.Context, publicID string, kind Kind) error
	Provider() string
}

// New builds the uploader selected by MEDIA_PROVIDER, wrapped with the
// outbound rate limit and timeout.
func New(ctx context.Context, cfg *config.Config) (Uploader, error) {
	var (
		up  Uploader
		err error
	)
	switch cfg.MediaProvider {
	case "minio":
		up, err = NewMinio(ctx, MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
	case "cloudinary", "":
		up, err = NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	default:
		err = fmt.Errorf("unknown media provider %q", cfg.MediaProvider)
	}
	if err != nil {
		return nil, err
	}
	return WithLimits(up, cfg.MediaUploadsPerSecond, cfg.MediaUploadTimeout), nil
}

// objectName returns a collision-free key that keeps the file extension.
func objectName(kind Kind, localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return fmt.Sprintf("%ss/%s%s", kind, uuid.NewString(), ext)
}
