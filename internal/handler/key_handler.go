package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/datasec-api/internal/middleware"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
	"github.com/yourusername/datasec-api/internal/service"
)

// KeyHandler handles encryption key generation and listing.
type KeyHandler struct {
	keyService *service.KeyService
}

func NewKeyHandler(keyService *service.KeyService) *KeyHandler {
	return &KeyHandler{keyService: keyService}
}

type GenerateKeyRequest struct {
	KeyName string `json:"key_name" binding:"required,max=100"`
}

// GenerateKey creates a named key. The key value is returned once on
// creation and never listed again.
func (h *KeyHandler) GenerateKey(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req GenerateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.keyService.Generate(userID, req.KeyName)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Key name '" + req.KeyName + "' already exists. Please choose a different name.",
			})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate key."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key_name":  key.KeyName,
		"key_value": key.KeyValue,
		"success":   true,
	})
}

// ListKeys returns the caller's keys (names and metadata only).
func (h *KeyHandler) ListKeys(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	keys, err := h.keyService.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list keys."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}
