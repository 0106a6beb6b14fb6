package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yumeno/gachapon-api/internal/middleware"
	"github.com/yumeno/gachapon-api/pkg/auth"
	"github.com/yumeno/gachapon-api/pkg/database/models"
	"github.com/yumeno/gachapon-api/pkg/database/repository"
	"github.com/yumeno/gachapon-api/pkg/logging"
)

// AuthHandler serves account registration, login and identity lookup
type AuthHandler struct {
	users  *repository.UserRepository
	tokens *auth.TokenService
	logger logging.Logger
}

func NewAuthHandler(users *repository.UserRepository, tokens *auth.TokenService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.users.GetUserByEmail(req.Email)
	if err != nil {
		h.logger.Error("failed to look up email", err, map[string]interface{}{"route": "POST /api/auth/register"})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", err, map[string]interface{}{"route": "POST /api/auth/register"})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
		Role:         "user",
	}
	if err := h.users.CreateUser(user); err != nil {
		h.logger.Error("failed to create user", err, map[string]interface{}{"route": "POST /api/auth/register"})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email, "role": user.Role})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetUserByEmail(req.Email)
	if err != nil {
		h.logger.Error("failed to look up email", err, map[string]interface{}{"route": "POST /api/auth/login"})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.IsLocked(time.Now()) {
		c.JSON(http.StatusLocked, gin.H{"error": "Account locked. Try later."})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		if err := h.users.RecordFailedLogin(user); err != nil {
			h.logger.Error("failed to record login failure", err, map[string]interface{}{"user_id": user.ID.String()})
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := h.users.ResetLoginCounters(user.ID); err != nil {
		h.logger.Error("failed to reset login counters", err, map[string]interface{}{"user_id": user.ID.String()})
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		h.logger.Error("failed to issue token", err, map[string]interface{}{"user_id": user.ID.String()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresIn":   int(auth.TokenTTL.Seconds()),
		"user":        gin.H{"id": user.ID, "email": user.Email, "role": user.Role},
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no_token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    userID,
		"email": c.GetString(middleware.ContextUserEmail),
		"role":  c.GetString(middleware.ContextUserRole),
	})
}
