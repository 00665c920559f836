package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/middleware"
	"github.com/talkwave/talkwave-backend/internal/service"
)

// SubmissionHandler handles content submission requests
type SubmissionHandler struct {
	service *service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(service *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

type createPostRequest struct {
	TopicID uint64 `json:"topic_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// CreatePost handles POST /api/v1/posts
func (h *SubmissionHandler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.service.SubmitPost(c.Request.Context(), middleware.GetUserID(c), req.TopicID, req.Title, req.Body)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.CreatedResponse(c, post)
}

type createCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CreateComment handles POST /api/v1/posts/:id/comments
func (h *SubmissionHandler) CreateComment(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.service.SubmitComment(c.Request.Context(), middleware.GetUserID(c), postID, req.Body)
	if err != nil {
		common.FailFromError(c, err)
		return
	}
	common.CreatedResponse(c, comment)
}

type voteRequest struct {
	Value int `json:"value" binding:"required"`
}

// Vote handles POST /api/v1/posts/:id/vote
func (h *SubmissionHandler) Vote(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.service.RecordVote(c.Request.Context(), middleware.GetUserID(c), postID, req.Value); err != nil {
		common.FailFromError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"voted": true}, nil)
}
