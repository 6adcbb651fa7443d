package imagestore

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// DiskStorage saves resized JPEGs under the upload directory and serves
// them from /static/uploads.
type DiskStorage struct {
	Dir string
}

func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStorage{Dir: dir}, nil
}

func (d *DiskStorage) Upload(_ context.Context, file io.Reader, filename string) (string, error) {
	var img image.Image
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Max width 800px, preserve aspect ratio
	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	name := fmt.Sprintf("%s.jpg", uuid.New().String())
	out, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return "/static/uploads/" + name, nil
}

func (d *DiskStorage) Remove(_ context.Context, imageURL string) error {
	name := filepath.Base(imageURL)
	if name == "." || name == "/" || name == "" {
		return fmt.Errorf("cannot derive file name from %q", imageURL)
	}
	return os.Remove(filepath.Join(d.Dir, name))
}
