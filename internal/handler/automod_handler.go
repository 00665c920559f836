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

// AutomodHandler handles automod rule management requests
type AutomodHandler struct {
	service *service.AutomodService
}

// NewAutomodHandler creates a new AutomodHandler
func NewAutomodHandler(service *service.AutomodService) *AutomodHandler {
	return &AutomodHandler{service: service}
}

// ListRules handles GET /api/v1/topics/:id/automod-rules
func (h *AutomodHandler) ListRules(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid topic ID", nil)
		return
	}

	rules, err := h.service.ListTopicRules(middleware.GetUserID(c), topicID)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, rules, nil)
}

// GetRule handles GET /api/v1/automod-rules/:id
func (h *AutomodHandler) GetRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid rule ID", nil)
		return
	}

	rule, err := h.service.GetRule(middleware.GetUserID(c), ruleID)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, rule, nil)
}

// CreateRule handles POST /api/v1/automod-rules
func (h *AutomodHandler) CreateRule(c *gin.Context) {
	var req domain.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rule, err := h.service.CreateRule(middleware.GetUserID(c), &req)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.CreatedResponse(c, rule)
}

// UpdateRule handles PATCH /api/v1/automod-rules/:id
func (h *AutomodHandler) UpdateRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid rule ID", nil)
		return
	}

	var req domain.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rule, err := h.service.UpdateRule(middleware.GetUserID(c), ruleID, &req)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, rule, nil)
}

// DeleteRule handles DELETE /api/v1/automod-rules/:id
func (h *AutomodHandler) DeleteRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid rule ID", nil)
		return
	}

	if err := h.service.DeleteRule(middleware.GetUserID(c), ruleID); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
