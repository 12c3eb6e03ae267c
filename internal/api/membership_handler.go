package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rag-chat/internal/service"
	"rag-chat/pkg/logger"
)

type MembershipHandler struct {
	membershipService *service.MembershipService
}

func NewMembershipHandler(membershipService *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

func (h *MembershipHandler) AddMember(c *gin.Context) {
	var req service.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	membership, err := h.membershipService.AddMember(req.GroupID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound),
			errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyMember):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Error adding member", zap.Error(err),
				zap.Uint("groupID", req.GroupID), zap.Uint("userID", req.UserID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		}
		return
	}

	c.JSON(http.StatusCreated, membership)
}

func (h *MembershipHandler) RemoveMember(c *gin.Context) {
	groupID, ok := idParam(c, "group_id")
	if !ok {
		return
	}
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.membershipService.RemoveMember(groupID, userID); err != nil {
		if errors.Is(err, service.ErrMembershipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.L.Error("Error removing member", zap.Error(err),
				zap.Uint("groupID", groupID), zap.Uint("userID", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully", "deleted_count": 1})
}

func (h *MembershipHandler) GetGroupMembers(c *gin.Context) {
	groupID, ok := idParam(c, "group_id")
	if !ok {
		return
	}

	members, err := h.membershipService.GroupMembers(groupID, includeDeletedQuery(c))
	if err != nil {
		logger.L.Error("Error listing group members", zap.Error(err), zap.Uint("groupID", groupID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve group members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id":    groupID,
		"members":     members,
		"total_count": len(members),
	})
}

func (h *MembershipHandler) GetUserGroups(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}

	groups, err := h.membershipService.UserGroups(userID, includeDeletedQuery(c))
	if err != nil {
		logger.L.Error("Error listing user groups", zap.Error(err), zap.Uint("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":     userID,
		"groups":      groups,
		"total_count": len(groups),
	})
}

func (h *MembershipHandler) BulkAddMembers(c *gin.Context) {
	var req service.BulkMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.membershipService.AddMembers(req.GroupID, req.UserIDs)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.L.Error("Error bulk-adding members", zap.Error(err), zap.Uint("groupID", req.GroupID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add members"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":              "Bulk member addition completed",
		"group_id":             req.GroupID,
		"added_count":          result.AddedCount,
		"already_member_count": result.AlreadyMemberCount,
		"errors":               result.Errors,
	})
}

func (h *MembershipHandler) BulkRemoveMembers(c *gin.Context) {
	var req service.BulkMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.membershipService.RemoveMembers(req.GroupID, req.UserIDs)
	if err != nil {
		logger.L.Error("Error bulk-removing members", zap.Error(err), zap.Uint("groupID", req.GroupID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Bulk member removal completed",
		"group_id":         req.GroupID,
		"removed_count":    result.RemovedCount,
		"not_member_count": result.NotMemberCount,
		"errors":           result.Errors,
	})
}

func (h *MembershipHandler) CheckMembership(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	groupID, ok := idParam(c, "group_id")
	if !ok {
		return
	}

	isMember, err := h.membershipService.IsMember(userID, groupID)
	if err != nil {
		logger.L.Error("Error checking membership", zap.Error(err),
			zap.Uint("userID", userID), zap.Uint("groupID", groupID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":   userID,
		"group_id":  groupID,
		"is_member": isMember,
	})
}
