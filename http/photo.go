package http

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/waichung/safetyhub"
	"github.com/waichung/safetyhub/internal/validation"
)

// UploadPhotoResponse returns where an uploaded evidence photo landed.
// The URL goes into the finding's photoUrl field.
type UploadPhotoResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (s *Server) handleUploadPhoto(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	header, err := c.FormFile("photo")
	if err != nil {
		return safetyhub.Invalid("photo file is required")
	}

	if err := validation.ValidateFileUpload(header, safetyhub.MaxUploadSize, safetyhub.AcceptedImageTypes); err != nil {
		return safetyhub.Invalid("%s", err.Error())
	}

	file, err := header.Open()
	if err != nil {
		return safetyhub.Internal("could not open uploaded file", err)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	key := fmt.Sprintf("findings/%s%s", uuid.New().String(), filepath.Ext(header.Filename))

	url, err := s.fileStorage.Upload(ctx, key, file, contentType)
	if err != nil {
		return safetyhub.Internal("could not store uploaded file", err)
	}

	s.log(c).Info("evidence photo uploaded",
		slog.String("key", key),
		slog.Int64("size", header.Size))

	return RespondCreated(c, UploadPhotoResponse{Key: key, URL: url})
}

func (s *Server) handleDeletePhoto(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	key, err := requireParam(c, "key")
	if err != nil {
		return err
	}

	if err := s.fileStorage.Delete(ctx, key); err != nil {
		return safetyhub.Internal("could not delete stored file", err)
	}
	return RespondNoContent(c)
}
