package store

import (
	"context"

	"meetapp.app/api/core/db/sqlc"
	"meetapp.app/api/internal/model"
)

type fileStore struct {
	queries *sqlc.Queries
}

func newFileStore(queries *sqlc.Queries) FileStore {
	return &fileStore{queries: queries}
}

func (s *fileStore) Create(ctx context.Context, file *model.File) error {
	row, err := s.queries.CreateFile(ctx, sqlc.CreateFileParams{
		ID:   file.ID,
		Name: file.Name,
		Path: file.Path,
	})
	if err != nil {
		return translateErr(err)
	}
	*file = *toFileModel(row)
	return nil
}

func (s *fileStore) GetByPath(ctx context.Context, path string) (*model.File, error) {
	row, err := s.queries.GetFileByPath(ctx, path)
	if err != nil {
		return nil, translateErr(err)
	}
	return toFileModel(row), nil
}

func toFileModel(row sqlc.File) *model.File {
	return &model.File{
		ID:        row.ID,
		Name:      row.Name,
		Path:      row.Path,
		CreatedAt: row.CreatedAt.Time,
	}
}
