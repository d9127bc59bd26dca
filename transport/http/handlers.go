package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/marketauth/core"
	"github.com/layer-3/marketauth/service"
)

// HealthCheck reports whether a backing dependency is reachable
type HealthCheck func(ctx context.Context) error

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
	healthCheck HealthCheck
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, healthCheck HealthCheck) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		healthCheck: healthCheck,
	}
}

// LoginRequest is the sign-in body. Timestamp is not required at binding so
// that zero reaches the freshness check and fails as an expired login.
type LoginRequest struct {
	PublicKey   string `json:"publicKey" binding:"required"`
	Address     string `json:"address" binding:"required"`
	WalletType  string `json:"walletType" binding:"required,wallet_type"`
	Timestamp   uint64 `json:"timestamp"`
	Signature   string `json:"signature" binding:"required"`
	SignatureID *int32 `json:"signatureId"`
}

// Login handles the login request
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	walletType, err := core.ParseWalletType(req.WalletType)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := h.authService.Authorize(c.Request.Context(), core.LoginRequest{
		PublicKey:   req.PublicKey,
		Address:     req.Address,
		WalletType:  walletType,
		Timestamp:   req.Timestamp,
		Signature:   req.Signature,
		SignatureID: req.SignatureID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int64(h.authService.TokenLifetime() / time.Second),
	})
}

// Me returns information about the authenticated user
func (h *AuthHandlers) Me(c *gin.Context) {
	address, exists := c.Get(UserAddressKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address,
	})
}

// Authorize checks if a user is authorized
func (h *AuthHandlers) Authorize(c *gin.Context) {
	// The auth middleware has already validated the token.
	address, exists := c.Get(UserAddressKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": true,
		"address":    address,
	})
}

// Health reports liveness and, when configured, dependency reachability
func (h *AuthHandlers) Health(c *gin.Context) {
	if h.healthCheck != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.healthCheck(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// errorStatus maps sign-in and session errors to a status code and a reason
// that is safe to return to clients.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrAddressParse):
		return http.StatusBadRequest, "Invalid address"
	case errors.Is(err, core.ErrInvalidPublicKey):
		return http.StatusBadRequest, "Invalid public key"
	case errors.Is(err, core.ErrUnsupportedWalletType):
		return http.StatusBadRequest, "Unsupported wallet type"
	case errors.Is(err, core.ErrAddressMismatch):
		return http.StatusUnauthorized, "Address does not match public key"
	case errors.Is(err, core.ErrSignatureFormat):
		return http.StatusBadRequest, "Invalid signature format"
	case errors.Is(err, core.ErrInvalidSignature):
		return http.StatusUnauthorized, "Invalid signature"
	case errors.Is(err, core.ErrTimestampFromFuture):
		return http.StatusBadRequest, "Login timestamp is in the future"
	case errors.Is(err, core.ErrLoginExpired):
		return http.StatusUnauthorized, "Login expired"
	case errors.Is(err, core.ErrNoAuthHeader):
		return http.StatusUnauthorized, "Authorization header is required"
	case errors.Is(err, core.ErrInvalidAuthHeader):
		return http.StatusUnauthorized, "Invalid authorization header"
	case errors.Is(err, core.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, core.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	default:
		return http.StatusInternalServerError, "Authentication failed"
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, msg := errorStatus(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
