package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"meetapp.app/api/core/config"
)

var ErrNotFound = errors.New("object not found")

// Storage persists uploaded blobs under flat keys.
type Storage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// URL is the public address of key.
	URL(key string) string
}

// NewKey returns a fresh object key ending in ext, e.g. "0b5c...e1.png".
func NewKey(ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return uuid.NewString() + strings.ToLower(ext)
}

// ValidKey rejects keys that could escape the storage root.
func ValidKey(key string) bool {
	return key != "" &&
		key != "." &&
		key != ".." &&
		!strings.ContainsAny(key, `/\`) &&
		filepath.Base(key) == key
}

// FileURL is the address at which the API serves key.
func FileURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/files/" + key
}

func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal:
		return NewLocal(cfg.UploadDir, cfg.AssetBaseURL)
	case config.StorageDriverS3:
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
