// Package uploads stores product photos with an external image host.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("image uploads are not configured")

const productFolder = "lapsell/products"

type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Uploader interface {
	UploadProductImage(ctx context.Context, file io.Reader) (*Result, error)
}

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// New returns a Cloudinary uploader for CLOUDINARY_URL, or an uploader that
// fails with ErrNotConfigured when the URL is empty.
func New(cloudinaryURL string) (Uploader, error) {
	if cloudinaryURL == "" {
		return unconfigured{}, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init from URL failed: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

func (u *Cloudinary) UploadProductImage(ctx context.Context, file io.Reader) (*Result, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: fmt.Sprintf("product_%d", time.Now().UnixNano()),
		Folder:   productFolder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp == nil {
		return nil, errors.New("cloudinary response is nil")
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}

	url := resp.SecureURL
	if url == "" {
		url = resp.URL
	}
	if url == "" {
		return nil, errors.New("cloudinary returned no URL")
	}
	return &Result{URL: url, PublicID: resp.PublicID}, nil
}

type unconfigured struct{}

func (unconfigured) UploadProductImage(context.Context, io.Reader) (*Result, error) {
	return nil, ErrNotConfigured
}
