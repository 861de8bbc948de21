package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var cld *cloudinary.Cloudinary

// InitCloudinary reads CLOUDINARY_URL. Optional: without it the image proxy
// streams supplier images directly instead of caching them.
func InitCloudinary() error {
	cloudinaryURL := os.Getenv("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		return fmt.Errorf("CLOUDINARY_URL environment variable is required")
	}

	var err error
	cld, err = cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Cloudinary: %v", err)
	}

	log.Println("Cloudinary initialized")
	return nil
}

func CloudinaryReady() bool {
	return cld != nil
}

// UploadResult is the subset of the upload response we keep.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
	Bytes     int    `json:"bytes"`
}

// UploadImageBytes pushes a fetched supplier image into the Cloudinary cache.
// PublicID is derived from the item code so re-uploads overwrite.
func UploadImageBytes(ctx context.Context, data []byte, itemCode, folder string) (*UploadResult, error) {
	if cld == nil {
		return nil, fmt.Errorf("cloudinary not initialized")
	}

	result, err := cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     itemCode,
		ResourceType: "image",
		Folder:       folder,
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %v", err)
	}

	return &UploadResult{
		PublicID:  result.PublicID,
		URL:       result.URL,
		SecureURL: result.SecureURL,
		Format:    result.Format,
		Bytes:     result.Bytes,
	}, nil
}

// DeleteImage removes a cached image, used when an item disappears upstream.
func DeleteImage(ctx context.Context, publicID string) error {
	if cld == nil {
		return fmt.Errorf("cloudinary not initialized")
	}

	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	return err
}
