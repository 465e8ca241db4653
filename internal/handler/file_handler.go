package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/datasec-api/internal/middleware"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
	"github.com/yourusername/datasec-api/internal/service"
)

// maxUploadSize bounds file uploads at 32 MiB.
const maxUploadSize = 32 << 20

// FileHandler handles file encryption, decryption and deletion.
type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

type DecryptFileRequest struct {
	FileName string `json:"file_name" binding:"required"`
	KeyName  string `json:"key_name" binding:"required"`
}

// EncryptFile accepts a multipart upload ("file" field + "key_name" field).
func (h *FileHandler) EncryptFile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	keyName := c.PostForm("key_name")
	if keyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key_name is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, maxUploadSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	record, err := h.fileService.EncryptFile(userID, fileHeader.Filename, content, keyName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encrypt file."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "File encrypted successfully",
		"file":    record,
	})
}

func (h *FileHandler) DecryptFile(c *gin.Context) {
	var req DecryptFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relPath, err := h.fileService.DecryptFile(req.FileName, req.KeyName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Key or file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decrypt file."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "File decrypted successfully",
		"file_path": relPath,
	})
}

func (h *FileHandler) DeleteFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	if err := h.fileService.DeleteFile(uint(id)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully."})
}
