package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/middleware"
	"github.com/talkwave/talkwave-backend/internal/service"
)

// MentionHandler serves a user's mention inbox
type MentionHandler struct {
	service *service.MentionService
}

// NewMentionHandler creates a new MentionHandler
func NewMentionHandler(service *service.MentionService) *MentionHandler {
	return &MentionHandler{service: service}
}

// ListMine handles GET /api/v1/mentions
func (h *MentionHandler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := h.service.ListMentions(middleware.GetUserID(c), page, limit)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, items, &common.Meta{Page: page, Limit: limit, Total: total})
}
