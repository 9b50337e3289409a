package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	cloudFolder      = "prepwise_notes"
	cloudTimeout     = 30 * time.Second
	cloudResourceRaw = "raw"
)

// CloudinaryStore keeps notes as raw resources; the stored reference is the
// secure delivery URL.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cloudTimeout)
	defer cancel()

	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     path.Join(cloudFolder, strings.ReplaceAll(folder, " ", "_"), name),
		ResourceType: cloudResourceRaw,
	})
	if err != nil {
		return "", fmt.Errorf("upload note: %w", err)
	}
	if result.Error.Message != "" {
		return "", errors.New(result.Error.Message)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStore) Remove(ctx context.Context, fileURL string) error {
	publicID, err := PublicIDFromURL(fileURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cloudTimeout)
	defer cancel()

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: cloudResourceRaw})
	if err != nil {
		return fmt.Errorf("destroy note: %w", err)
	}
	if result.Error.Message != "" {
		return errors.New(result.Error.Message)
	}
	return nil
}

var deliveryPath = regexp.MustCompile(`/upload/(?:v\d+/)?(.+)$`)

// PublicIDFromURL extracts the asset id from a delivery URL such as
// https://res.cloudinary.com/demo/raw/upload/v1700000000/prepwise_notes/OS/1-a.pdf.
func PublicIDFromURL(fileURL string) (string, error) {
	m := deliveryPath.FindStringSubmatch(fileURL)
	if m == nil {
		return "", fmt.Errorf("not a cloudinary delivery url: %q", fileURL)
	}
	return m[1], nil
}
