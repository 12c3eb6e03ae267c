package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rag-chat/internal/service"
	"rag-chat/pkg/logger"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameTaken),
			errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Error creating user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("user with id %d not found", userID)})
		} else {
			logger.L.Error("Error getting user", zap.Error(err), zap.Uint("userID", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		logger.L.Error("Error listing users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.Update(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("user with id %d not found", userID)})
		case errors.Is(err, service.ErrNameTaken),
			errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrConflict),
			errors.Is(err, service.ErrInvalidCredential),
			errors.Is(err, service.ErrCurrentPasswordRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Error updating user", zap.Error(err), zap.Uint("userID", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.userService.SoftDelete(userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("user with id %d not found", userID)})
		} else {
			logger.L.Error("Error deleting user", zap.Error(err), zap.Uint("userID", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "deleted_count": 1})
}

func (h *UserHandler) DeleteAllUsers(c *gin.Context) {
	count, err := h.userService.SoftDeleteAll()
	if err != nil {
		logger.L.Error("Error deleting all users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("%d users deleted successfully", count),
		"deleted_count": count,
	})
}
