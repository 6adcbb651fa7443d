// Package imagestore puts product images behind one interface so the
// handlers don't care whether files land on local disk or Cloudinary.
// Upload returns a public URL; Remove is best effort and callers are
// expected to log-not-fail when it errors.
package imagestore

import (
	"context"
	"errors"
	"io"
)

var ErrUnsupportedFormat = errors.New("unsupported image format, only PNG, JPG, JPEG are allowed")

type Storage interface {
	// Upload stores the image and returns its public URL. filename is
	// the client-provided name, used only for extension sniffing.
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
	// Remove deletes the image a previous Upload returned url for.
	Remove(ctx context.Context, imageURL string) error
}
