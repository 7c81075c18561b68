package handler

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"

	"gemini-chat/internal/application"
	"gemini-chat/internal/domain"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10 MiB

// allowedImageTypes is the upload MIME whitelist.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ChatHandler struct {
	chat   *application.ChatService
	images domain.ImageStore
}

func NewChatHandler(chat *application.ChatService, images domain.ImageStore) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		images: images,
	}
}

func (h *ChatHandler) Register(r *gin.Engine) {
	r.POST("/chat", h.SendMessage)
	r.GET("/chat/:sessionId", h.GetHistory)
	r.DELETE("/chat/:sessionId", h.ClearSession)
	r.POST("/upload-image", h.UploadImage)
	r.POST("/generate-image", h.GenerateImage)
	r.GET("/images/:filename", h.GetImage)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		Message   string `json:"message" binding:"required"`
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "message and sessionId are required"})
		return
	}

	userMsg, assistantMsg, err := h.chat.SendMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userMessage":      userMsg,
		"assistantMessage": assistantMsg,
	})
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	messages, err := h.chat.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) ClearSession(c *gin.Context) {
	if err := h.chat.ClearSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}

func (h *ChatHandler) UploadImage(c *gin.Context) {
	// Reject everything before any persistence happens.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+4096)

	sessionID := c.PostForm("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sessionId is required"})
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image file is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image exceeds the 10 MiB limit"})
		return
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[mimeType] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unsupported image type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		h.fail(c, err)
		return
	}

	userMsg, assistantMsg, err := h.chat.AnalyzeImage(c.Request.Context(), sessionID, c.PostForm("message"), data, mimeType)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userMessage":      userMsg,
		"assistantMessage": assistantMsg,
	})
}

func (h *ChatHandler) GenerateImage(c *gin.Context) {
	var req struct {
		Prompt    string `json:"prompt" binding:"required"`
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "prompt and sessionId are required"})
		return
	}

	userMsg, assistantMsg, err := h.chat.GenerateImage(c.Request.Context(), req.SessionID, req.Prompt)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userMessage":      userMsg,
		"assistantMessage": assistantMsg,
	})
}

func (h *ChatHandler) GetImage(c *gin.Context) {
	filename := c.Param("filename")
	data, err := h.images.Resolve(filename)
	if err != nil {
		h.fail(c, err)
		return
	}
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, contentType, data)
}

// fail maps the domain error taxonomy to HTTP responses. Internal detail
// is logged, never returned.
func (h *ChatHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, domain.ErrExternalService):
		log.Printf("model call failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "the model service is temporarily unavailable"})
	default:
		log.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
