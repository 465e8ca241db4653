package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/datasec-api/internal/service"
)

// AuthHandler handles registration and the two-step login flow.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=50"`
}

// LoginRequest is the payload for the first login step.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyRequest is the payload for the code submission step.
type VerifyRequest struct {
	LoginToken string `json:"login_token" binding:"required"`
	Code       string `json:"code" binding:"required"`
}

// Register creates an account and returns an access token right away.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use.", "error_type": "email_taken"})
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already in use.", "error_type": "username_taken"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	log.Printf("[AuthHandler] user id=%d (%s) registered", user.ID, user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"user":        user,
		"accessToken": token,
		"tokenType":   "Bearer",
		"expiresIn":   h.authService.TokenExpiresIn(),
	})
}

// Login checks credentials and kicks off code delivery. The response carries
// only the opaque login token; the code travels by email (or, in degraded
// mode, the server log).
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loginToken, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password.", "error_type": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"login_token": loginToken,
		"message":     "Verification code sent.",
	})
}

// Verify2FA finalizes the login with the emailed code.
func (h *AuthHandler) Verify2FA(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.VerifyCode(c.Request.Context(), req.LoginToken, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVerificationExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Code expired. Please login again.", "error_type": "verification_expired"})
		case errors.Is(err, service.ErrNoActiveVerification):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No active verification. Please login again.", "error_type": "no_active_verification"})
		case errors.Is(err, service.ErrInvalidVerificationCode):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid code.", "error_type": "invalid_verification_code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"accessToken": token,
		"tokenType":   "Bearer",
		"expiresIn":   h.authService.TokenExpiresIn(),
	})
}
