package dto

import "meetapp.app/api/internal/model"

type FileResponse struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

func ToFileResponse(f *model.File) *FileResponse {
	return &FileResponse{
		ID:   f.ID,
		Name: f.Name,
		Path: f.Path,
		URL:  f.URL,
	}
}
