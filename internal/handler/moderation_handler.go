package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/middleware"
	"github.com/talkwave/talkwave-backend/internal/service"
)

// ModerationHandler handles manual moderation requests
type ModerationHandler struct {
	service *service.ModerationService
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(service *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

type moderationRequest struct {
	Action domain.RuleAction `json:"action" binding:"required"`
	Reason *string           `json:"reason,omitempty"`
}

// ModeratePost handles POST /api/v1/posts/:id/moderate
func (h *ModerationHandler) ModeratePost(c *gin.Context) {
	h.moderate(c, domain.TargetPost)
}

// ModerateComment handles POST /api/v1/comments/:id/moderate
func (h *ModerationHandler) ModerateComment(c *gin.Context) {
	h.moderate(c, domain.TargetComment)
}

func (h *ModerationHandler) moderate(c *gin.Context, targetType domain.TargetType) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid target ID", nil)
		return
	}

	var req moderationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err = h.service.ApplyManual(middleware.GetUserID(c), targetType, targetID, req.Action, req.Reason)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"applied": true}, nil)
}

// ListReports handles GET /api/v1/topics/:id/reports
func (h *ModerationHandler) ListReports(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid topic ID", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reports, total, err := h.service.ListReports(middleware.GetUserID(c), topicID, page, limit)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, reports, &common.Meta{Page: page, Limit: limit, Total: total})
}
