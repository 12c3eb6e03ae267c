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

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrGroupNameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.L.Error("Error creating group", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		}
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, ok := idParam(c, "group_id")
	if !ok {
		return
	}

	group, err := h.groupService.GetByID(groupID)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("group with id %d not found", groupID)})
		} else {
			logger.L.Error("Error getting group", zap.Error(err), zap.Uint("groupID", groupID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve group"})
		}
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.List()
	if err != nil {
		logger.L.Error("Error listing groups", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups, "total": len(groups)})
}

func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	groupID, ok := idParam(c, "group_id")
	if !ok {
		return
	}

	var req service.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.Update(groupID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("group with id %d not found", groupID)})
		case errors.Is(err, service.ErrGroupNameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Error updating group", zap.Error(err), zap.Uint("groupID", groupID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
		}
		return
	}

	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	groupID, ok := idParam(c, "group_id")
	if !ok {
		return
	}

	if err := h.groupService.SoftDelete(groupID); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("group with id %d not found", groupID)})
		} else {
			logger.L.Error("Error deleting group", zap.Error(err), zap.Uint("groupID", groupID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully", "deleted_count": 1})
}

func (h *GroupHandler) DeleteAllGroups(c *gin.Context) {
	count, err := h.groupService.SoftDeleteAll()
	if err != nil {
		logger.L.Error("Error deleting all groups", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("%d groups deleted successfully", count),
		"deleted_count": count,
	})
}
