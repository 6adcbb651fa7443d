package imagestore

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return &buf
}

func TestDiskStorageUploadAndRemove(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewDiskStorage(dir)
	if err != nil {
		t.Fatalf("NewDiskStorage: %v", err)
	}

	url, err := storage.Upload(context.Background(), pngBytes(t, 10, 10), "photo.png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(url, "/static/uploads/") || !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("unexpected public URL: %s", url)
	}

	path := filepath.Join(dir, filepath.Base(url))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}

	if err := storage.Remove(context.Background(), url); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file should be gone after Remove, stat err: %v", err)
	}
}

func TestDiskStorageRejectsUnknownFormats(t *testing.T) {
	storage, err := NewDiskStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStorage: %v", err)
	}
	if _, err := storage.Upload(context.Background(), bytes.NewBufferString("GIF89a"), "anim.gif"); err != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPublicIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1700000000/products/abc123.jpg": "products/abc123",
		"https://res.cloudinary.com/demo/image/upload/products/abc123.png":             "products/abc123",
		"https://example.com/no/upload/marker": "marker",
		"https://example.com/plain.jpg":        "",
	}
	for in, want := range cases {
		if got := publicIDFromURL(in); got != want {
			t.Errorf("publicIDFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}
