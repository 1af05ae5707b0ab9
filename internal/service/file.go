package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"meetapp.app/api/common/id"
	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/storage"
	"meetapp.app/api/internal/store"
)

// MaxUploadSize bounds a single uploaded image.
const MaxUploadSize = 5 << 20

var imageExtensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

type FileService interface {
	// Upload stores an image under a generated key and records it.
	// name is the client's original filename.
	Upload(ctx context.Context, name string, body io.Reader) (*model.File, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

type fileService struct {
	fileStore store.FileStore
	storage   storage.Storage
}

func NewFileService(fileStore store.FileStore, storage storage.Storage) FileService {
	return &fileService{fileStore: fileStore, storage: storage}
}

func (s *fileService) Upload(ctx context.Context, name string, body io.Reader) (*model.File, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, NewValidationError("Missing file")
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, NewValidationError("File too large")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, NewValidationError("File is not a supported image")
	}
	ext, ok := imageExtensions[format]
	if !ok {
		return nil, NewValidationError("File is not a supported image")
	}

	key := storage.NewKey(ext)
	if err := s.storage.Put(ctx, key, "image/"+format, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	file := &model.File{
		ID:   id.New(),
		Name: name,
		Path: key,
	}
	if err := s.fileStore.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("recording upload: %w", err)
	}
	file.URL = s.storage.URL(file.Path)

	slog.InfoContext(ctx, "file uploaded", "file_id", file.ID, "path", file.Path, "format", format, "size", len(data))
	return file, nil
}

func (s *fileService) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, err := s.storage.Open(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("file %w", ErrNotFound)
		}
		return nil, err
	}
	return rc, nil
}
