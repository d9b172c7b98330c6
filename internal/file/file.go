package file

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("file uploads are not configured")

const uploadFolder = "crm"

type FileUploader struct {
	cloudName string
	apiKey    string
	apiSecret string
}

func New(cloudName, apiKey, apiSecret string) *FileUploader {
	return &FileUploader{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

// UploadFile stores the content of file in Cloudinary and returns its public URL.
func (f *FileUploader) UploadFile(ctx context.Context, file io.Reader) (string, error) {
	if f.cloudName == "" || f.apiKey == "" || f.apiSecret == "" {
		return "", ErrNotConfigured
	}

	cld, err := cloudinary.NewFromParams(f.cloudName, f.apiKey, f.apiSecret)
	if err != nil {
		return "", err
	}

	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         uploadFolder,
		ResourceType:   "auto",
		UseFilename:    boolPtr(true),
		UniqueFilename: boolPtr(true),
	})
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}

func boolPtr(b bool) *bool {
	return &b
}
