package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkotenko/botgate/internal/common"
	"github.com/dkotenko/botgate/internal/logging"
	"github.com/dkotenko/botgate/internal/server/users"
)

type Handler struct {
	users  *users.Service
	logger logging.Logger
}

// Request DTOs. Validation happens here at the boundary, before anything
// reaches the auth core.

type createUserRequest struct {
	TelegramID string `json:"telegramId" binding:"required"`
	FullName   string `json:"fullName" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type loginRequest struct {
	TelegramID string `json:"telegramId" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Token      string `json:"token" binding:"required"`
}

type verifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// userResponse is the public projection of a user record. The password
// digest never leaves the server.
type userResponse struct {
	TelegramID string `json:"telegramId"`
	FullName   string `json:"fullName"`
	IsAdmin    bool   `json:"isAdmin"`
}

func toUserResponse(u *users.User) userResponse {
	return userResponse{
		TelegramID: u.TelegramID,
		FullName:   u.FullName,
		IsAdmin:    u.IsAdmin,
	}
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.users.CreateUser(c.Request.Context(), req.TelegramID, req.FullName, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": "User already exists",
				"token":   nil,
			})
			return
		}
		h.logger.Error(c.Request.Context(), "create user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created",
		"token":   res.Token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.TelegramID, req.Password, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidToken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		default:
			h.logger.Error(c.Request.Context(), "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  toUserResponse(user),
	})
}

func (h *Handler) VerifyToken(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.users.VerifyToken(req.Token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, true)
}
