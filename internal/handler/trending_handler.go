package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/service"
)

// TrendingHandler serves trending topic and post listings
type TrendingHandler struct {
	service *service.TrendingService
}

// NewTrendingHandler creates a new TrendingHandler
func NewTrendingHandler(service *service.TrendingService) *TrendingHandler {
	return &TrendingHandler{service: service}
}

// TrendingTopics handles GET /api/v1/trending/topics
func (h *TrendingHandler) TrendingTopics(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := h.service.TrendingTopics(c.Request.Context(), limit)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, entries, nil)
}

// TrendingPosts handles GET /api/v1/trending/posts
func (h *TrendingHandler) TrendingPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := h.service.TrendingPosts(c.Request.Context(), limit)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, entries, nil)
}

// ForceRefresh handles POST /api/v1/trending/refresh. Superuser only,
// enforced in routes.
func (h *TrendingHandler) ForceRefresh(c *gin.Context) {
	if err := h.service.ForceRefresh(c.Request.Context()); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"refreshed": true}, nil)
}
