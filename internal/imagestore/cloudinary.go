package imagestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const cloudinaryFolder = "products"

// CloudinaryStorage uploads to a Cloudinary bucket and returns the
// hosted secure URL. Selected when CLOUDINARY_URL is configured.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cloudinaryURL string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func (c *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, _ string) (string, error) {
	result, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: cloudinaryFolder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return result.SecureURL, nil
}

func (c *CloudinaryStorage) Remove(ctx context.Context, imageURL string) error {
	publicID := publicIDFromURL(imageURL)
	if publicID == "" {
		return fmt.Errorf("cannot derive public id from %q", imageURL)
	}
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// publicIDFromURL recovers the Cloudinary public id from a delivery URL
// such as https://res.cloudinary.com/demo/image/upload/v17/products/x.jpg
// -> products/x.
func publicIDFromURL(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part != "upload" || i+1 >= len(parts) {
			continue
		}
		rest := parts[i+1:]
		if versionSegment.MatchString(rest[0]) {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return ""
		}
		id := strings.Join(rest, "/")
		return strings.TrimSuffix(id, filepathExt(id))
	}
	return ""
}

func filepathExt(p string) string {
	if i := strings.LastIndex(p, "."); i >= 0 && !strings.Contains(p[i:], "/") {
		return p[i:]
	}
	return ""
}
