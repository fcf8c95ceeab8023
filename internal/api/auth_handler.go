package api

import (
	"errors"
	"net/http"

	"exercise-api/internal/domain"
	"exercise-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{ID: user.ID, Username: user.Username}
}

// --- Handler Methods ---

// Register creates a new user account and issues an initial token pair.
func (h *AuthHandler) Register(c *gin.Context) {
	body, ok := decodeBody(c)
	if !ok {
		return
	}
	username, password, errs := validateRegisterBody(body)
	if len(errs) > 0 {
		abortWithValidationErrors(c, errs)
		return
	}

	user, tokens, err := h.authService.Register(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			abortWithError(c, http.StatusBadRequest, "Username already exists")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User created successfully",
		"user":         MapUserToResponse(user),
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// Login authenticates a user. An unknown username and a wrong password yield
// the same 401 so accounts cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	body, ok := decodeBody(c)
	if !ok {
		return
	}
	username, password, errs := validateLoginBody(body)
	if len(errs) > 0 {
		abortWithValidationErrors(c, errs)
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, "Invalid username or password")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         MapUserToResponse(user),
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// RefreshToken trades a valid refresh token for a fresh pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		abortWithError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			abortWithError(c, http.StatusUnauthorized, "Invalid refresh token")
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, "User not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Token refreshed successfully",
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// Me returns the identity resolved from the access token.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication token required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": identity.UserID, "username": identity.Username})
}
