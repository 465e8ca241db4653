package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/datasec-api/internal/middleware"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
	"github.com/yourusername/datasec-api/internal/service"
)

// DataHandler handles text encryption and decryption.
type DataHandler struct {
	dataService *service.DataService
}

func NewDataHandler(dataService *service.DataService) *DataHandler {
	return &DataHandler{dataService: dataService}
}

type EncryptDataRequest struct {
	DataName  string `json:"data_name" binding:"required,max=100"`
	DataValue string `json:"data_value" binding:"required"`
	KeyName   string `json:"key_name" binding:"required"`
}

type DecryptDataRequest struct {
	DataName string `json:"data_name" binding:"required"`
	KeyName  string `json:"key_name" binding:"required"`
}

func (h *DataHandler) EncryptData(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req EncryptDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.dataService.Encrypt(userID, req.DataName, req.DataValue, req.KeyName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encrypt data."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"encrypted_value": record.EncryptedValue})
}

func (h *DataHandler) DecryptData(c *gin.Context) {
	var req DecryptDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plaintext, err := h.dataService.Decrypt(req.DataName, req.KeyName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Key or data not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decrypt data."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decrypted_value": plaintext})
}
