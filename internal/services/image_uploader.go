package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"nwptourism/pkg/metrics"
	"nwptourism/pkg/utils"
)

const (
	FeedbackImageFolder = "tourist-feedback"
	AssetImageFolder    = "tourism-assets"
)

// Upload is an image attached to a submission.
type Upload struct {
	Filename string
	Reader   io.Reader
}

type ImageUploader interface {
	// Upload stores the image and returns its public URL. An empty URL with
	// a nil error means hosting is not configured and the image is dropped.
	Upload(ctx context.Context, folder string, img *Upload) (string, error)
}

type NoopImageUploader struct{}

func (NoopImageUploader) Upload(context.Context, string, *Upload) (string, error) {
	metrics.ImageUploadsTotal.WithLabelValues("skipped").Inc()
	return "", nil
}

type cloudinaryUploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

type cloudinaryUploader struct {
	api cloudinaryUploadAPI
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (ImageUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &cloudinaryUploader{api: &cld.Upload}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, folder string, img *Upload) (string, error) {
	resp, err := u.api.Upload(ctx, img.Reader, uploader.UploadParams{Folder: folder})
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("%w: %v", utils.ErrUpload, err)
	}
	if resp == nil || resp.SecureURL == "" {
		metrics.ImageUploadsTotal.WithLabelValues("failed").Inc()
		msg := "empty response"
		if resp != nil && resp.Error.Message != "" {
			msg = resp.Error.Message
		}
		return "", fmt.Errorf("%w: %s", utils.ErrUpload, msg)
	}
	metrics.ImageUploadsTotal.WithLabelValues("uploaded").Inc()
	return resp.SecureURL, nil
}
