package ginserver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"farmstay/internal/app/commands"
	"farmstay/internal/app/dto"
	imageapp "farmstay/internal/app/handlers/images"
	"farmstay/internal/app/queries"
	"farmstay/internal/infra/storage/s3"
)

const maxFarmPhotoSizeBytes int64 = 10 * 1024 * 1024

type ImageHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Uploader s3.Uploader
	Logger   *slog.Logger
}

func (h ImageHandler) List(c *gin.Context) {
	if h.Queries == nil {
		respondError(c, h.Logger, errors.New("queries bus unavailable"))
		return
	}
	query := imageapp.ListImagesQuery{FarmID: c.Param("id")}
	result, err := queries.Ask[imageapp.ListImagesQuery, []dto.Image](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ImageHandler) Upload(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if h.Commands == nil {
		respondError(c, h.Logger, errors.New("commands bus unavailable"))
		return
	}

	farmID := strings.TrimSpace(c.Param("id"))
	if farmID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "farm id is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file is required: %v", err)})
		return
	}
	if fileHeader.Size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
		return
	}
	if fileHeader.Size > maxFarmPhotoSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file too large (max %d MB)", maxFarmPhotoSizeBytes/1024/1024)})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFarmPhotoSizeBytes+1024))
	if err != nil {
		respondError(c, h.Logger, fmt.Errorf("cannot read file: %w", err))
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
		return
	}
	if int64(len(data)) > maxFarmPhotoSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file too large (max %d MB)", maxFarmPhotoSizeBytes/1024/1024)})
		return
	}

	contentType := http.DetectContentType(data)
	if !isAllowedImageType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported content type: %s", contentType)})
		return
	}

	cmd := imageapp.UploadImageCommand{
		FarmID:      farmID,
		Caller:      principal,
		ObjectKey:   buildPhotoObjectKey(farmID, fileHeader.Filename, contentType),
		ContentType: contentType,
		Reader:      bytes.NewReader(data),
	}
	result, err := commands.Dispatch[imageapp.UploadImageCommand, *dto.Image](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ImageHandler) Remove(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if h.Commands == nil {
		respondError(c, h.Logger, errors.New("commands bus unavailable"))
		return
	}

	cmd := imageapp.RemoveImageCommand{
		FarmID:  c.Param("id"),
		ImageID: c.Param("imageID"),
		Caller:  principal,
	}
	result, err := commands.Dispatch[imageapp.RemoveImageCommand, *imageapp.RemoveImageResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	// The record is committed by now. A failed blob delete only leaves
	// recoverable garbage, so it never fails the request.
	if h.Uploader != nil && result.URL != "" {
		if err := h.Uploader.Delete(c.Request.Context(), result.URL); err != nil && h.Logger != nil {
			h.Logger.Warn("blob cleanup failed", "url", result.URL, "error", err)
		}
	}
	c.JSON(http.StatusOK, result)
}

func (h ImageHandler) SetPrimary(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if h.Commands == nil {
		respondError(c, h.Logger, errors.New("commands bus unavailable"))
		return
	}

	cmd := imageapp.SetPrimaryCommand{
		FarmID:  c.Param("id"),
		ImageID: c.Param("imageID"),
		Caller:  principal,
	}
	result, err := commands.Dispatch[imageapp.SetPrimaryCommand, *imageapp.SetPrimaryResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func isAllowedImageType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}

func extensionForContentType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

func buildPhotoObjectKey(farmID, filename, contentType string) string {
	ext := extensionForContentType(contentType)
	if ext == "" {
		ext = strings.ToLower(path.Ext(filename))
	}
	if ext == "" {
		ext = ".img"
	}
	return fmt.Sprintf("farms/%s/%s%s", sanitizePathToken(farmID), uuid.NewString(), ext)
}

func sanitizePathToken(value string) string {
	if strings.TrimSpace(value) == "" {
		return "farm"
	}
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	result := strings.Trim(b.String(), "-")
	if result == "" {
		return "farm"
	}
	return result
}
