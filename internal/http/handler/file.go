package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"meetapp.app/api/internal/http/dto"
	"meetapp.app/api/internal/service"
)

// multipart framing on top of the image itself
const uploadOverhead = 1 << 20

type FileHandler struct {
	fileService service.FileService
}

func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload accepts a multipart form with the image in the "file" field.
func (h *FileHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxUploadSize+uploadOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			badRequest(c, "File too large")
			return
		}
		slog.WarnContext(ctx, "missing upload", "error", err)
		badRequest(c, "Missing file")
		return
	}

	src, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	file, err := h.fileService.Upload(ctx, header.Filename, src)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFileResponse(file))
}

// Serve streams a stored upload back to the client.
func (h *FileHandler) Serve(c *gin.Context) {
	ctx := c.Request.Context()
	key := c.Param("path")

	body, err := h.fileService.Open(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		respondError(c, err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Status(http.StatusOK)
	c.Header("Content-Type", contentType)
	if _, err := io.Copy(c.Writer, body); err != nil {
		slog.WarnContext(ctx, "failed to stream file", "error", err, "path", key)
	}
}
