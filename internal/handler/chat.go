package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/policydraft/backend/internal/repository"
	"github.com/policydraft/backend/internal/service"
	"github.com/policydraft/backend/internal/service/previewrender"
)

type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler 创建会话处理器
func NewChatHandler(service *service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type SubmitRequest struct {
	Content string `json:"content"`
}

// CreateSession 创建新会话
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	// 请求体可以为空，标题可选
	_ = c.ShouldBindJSON(&req)

	session, err := h.service.CreateSession(req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListSessions 查询全部会话
func (h *ChatHandler) ListSessions(c *gin.Context) {
	sessions, err := h.service.ListSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// GetSession 查询单个会话
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.service.GetSession(c.Param("key"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":  session,
		"awaiting": h.service.Awaiting(session.SessionKey),
	})
}

// GetMessages 查询会话消息（追加顺序）
func (h *ChatHandler) GetMessages(c *gin.Context) {
	messages, err := h.service.Transcript(c.Param("key"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Submit 提交用户输入并等待编排结果
// 同会话已有在途请求时返回 409，不排队
func (h *ChatHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionKey := c.Param("key")
	reply, err := h.service.Submit(c.Request.Context(), sessionKey, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPrompt):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSessionBusy):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	preview, err := h.service.Preview(sessionKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": reply,
		"preview": preview,
	})
}

// GetPreview 查询当前预览投影（原始视图模型）
func (h *ChatHandler) GetPreview(c *gin.Context) {
	preview, err := h.service.Preview(c.Param("key"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, preview)
}

// GetPreviewRender 查询渲染模型；两侧都缺席时返回 null（什么都不渲染）
func (h *ChatHandler) GetPreviewRender(c *gin.Context) {
	preview, err := h.service.Preview(c.Param("key"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, previewrender.Render(preview.Policy, preview.Compliance))
}
