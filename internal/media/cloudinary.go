// Package media uploads product images to Cloudinary.
package media

import (
	"context"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
)

// UploadResult is the subset of the Cloudinary response the catalog needs.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Uploader wraps the Cloudinary client. A nil Uploader (no credentials
// configured) disables uploads without failing product creation.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewUploader builds an uploader from a cloudinary:// URL. An empty URL
// returns nil.
func NewUploader(cloudURL, folder string) (*Uploader, error) {
	if cloudURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary init")
	}
	return &Uploader{cld: cld, folder: folder}, nil
}

// Upload sends a multipart file to Cloudinary and returns its secure URL
// and public id.
func (u *Uploader) Upload(ctx context.Context, fh *multipart.FileHeader) (*UploadResult, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer file.Close()

	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary upload")
	}
	return &UploadResult{SecureURL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Destroy removes a previously uploaded asset, used when a product row is
// deleted. Failures are returned for logging only.
func (u *Uploader) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return errors.Wrap(err, "cloudinary destroy")
}
