package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/service"
)

// ModLogHandler serves the read side of the moderation audit trail
type ModLogHandler struct {
	service *service.ModLogService
}

// NewModLogHandler creates a new ModLogHandler
func NewModLogHandler(service *service.ModLogService) *ModLogHandler {
	return &ModLogHandler{service: service}
}

// ListTopic handles GET /api/v1/topics/:id/modlog
func (h *ModLogHandler) ListTopic(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid topic ID", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	moderatorID, _ := strconv.ParseUint(c.Query("moderator_id"), 10, 64)

	filter := domain.ModLogFilter{
		Action:      domain.RuleAction(c.Query("action")),
		ModeratorID: moderatorID,
		Page:        page,
		Limit:       limit,
	}

	entries, total, err := h.service.ListTopic(topicID, filter)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, entries, &common.Meta{Page: filter.Page, Limit: filter.Limit, Total: total})
}

// ListModerator handles GET /api/v1/modlog/moderators/:id
func (h *ModLogHandler) ListModerator(c *gin.Context) {
	moderatorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid moderator ID", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, total, err := h.service.ListModerator(moderatorID, page, limit)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, entries, &common.Meta{Page: page, Limit: limit, Total: total})
}

// ListGlobal handles GET /api/v1/modlog. Superuser only, enforced in routes.
func (h *ModLogHandler) ListGlobal(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, total, err := h.service.ListGlobal(page, limit)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, entries, &common.Meta{Page: page, Limit: limit, Total: total})
}
