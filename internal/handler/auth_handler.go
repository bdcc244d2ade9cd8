package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jengzang/run-tracker-go/internal/config"
	"github.com/jengzang/run-tracker-go/pkg/response"
)

// AuthHandler exchanges the configured device key for an API token
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type tokenRequest struct {
	DeviceKey string `json:"deviceKey" binding:"required"`
}

// IssueToken handles POST /api/v1/auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Device key is required")
		return
	}

	if h.cfg.DeviceKey == "" || req.DeviceKey != h.cfg.DeviceKey {
		response.Unauthorized(c, "Invalid device key")
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "device",
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		response.InternalError(c, "Failed to sign token")
		return
	}

	response.Success(c, gin.H{"token": signed})
}
