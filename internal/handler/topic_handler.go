package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/middleware"
	"github.com/talkwave/talkwave-backend/internal/service"
)

// TopicHandler handles topic and membership requests
type TopicHandler struct {
	service *service.TopicService
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(service *service.TopicService) *TopicHandler {
	return &TopicHandler{service: service}
}

type createTopicRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// Create handles POST /api/v1/topics
func (h *TopicHandler) Create(c *gin.Context) {
	var req createTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	topic, err := h.service.CreateTopic(middleware.GetUserID(c), req.Name, req.Description)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.CreatedResponse(c, topic)
}

// Get handles GET /api/v1/topics/:id
func (h *TopicHandler) Get(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid topic ID", nil)
		return
	}

	topic, err := h.service.GetTopic(topicID)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, topic, nil)
}

// Join handles POST /api/v1/topics/:id/join
func (h *TopicHandler) Join(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid topic ID", nil)
		return
	}

	if err := h.service.Join(c.Request.Context(), middleware.GetUserID(c), topicID); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"joined": true}, nil)
}

// Leave handles POST /api/v1/topics/:id/leave
func (h *TopicHandler) Leave(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid topic ID", nil)
		return
	}

	if err := h.service.Leave(middleware.GetUserID(c), topicID); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"left": true}, nil)
}

type banRequest struct {
	Banned bool    `json:"banned"`
	Reason *string `json:"reason,omitempty"`
}

// SetBanned handles PUT /api/v1/topics/:id/members/:userID/ban
func (h *TopicHandler) SetBanned(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid topic ID", nil)
		return
	}
	userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err = h.service.SetBanned(middleware.GetUserID(c), topicID, userID, req.Banned, req.Reason)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"banned": req.Banned}, nil)
}

type roleRequest struct {
	Moderator bool `json:"moderator"`
}

// SetModerator handles PUT /api/v1/topics/:id/members/:userID/role
func (h *TopicHandler) SetModerator(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid topic ID", nil)
		return
	}
	userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err = h.service.SetModerator(middleware.GetUserID(c), topicID, userID, req.Moderator)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"moderator": req.Moderator}, nil)
}
