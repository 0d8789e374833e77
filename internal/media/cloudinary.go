package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const cloudinaryFolder = "vidtube"

// Cloudinary uploads to a Cloudinary account.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary creates a Cloudinary uploader from account credentials.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Provider() string { return "cloudinary" }

func (c *Cloudinary) Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error) {
	resp, err := c.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       cloudinaryFolder,
		ResourceType: resourceType(kind),
	})
	if err != nil {
		return nil, err
	}
	if resp.Error.Message != "" {
		return nil, errors.New(resp.Error.Message)
	}
	return &Asset{URL: resp.SecureURL, PublicID: resp.PublicID, Kind: kind}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID string, kind Kind) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType(kind),
	})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	return nil
}

func resourceType(kind Kind) string {
	if kind == KindVideo {
		return "video"
	}
	return "image"
}
