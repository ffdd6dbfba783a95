package handler

import (
	"github.com/ashwinyue/monster-ai/internal/service"
	"github.com/ashwinyue/monster-ai/internal/service/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.svc.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, user)
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, resp)
}

// Logout 退出登录
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		badRequest(c, "missing user")
		return
	}

	if err := h.svc.Auth.Logout(c.Request.Context(), userID); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, nil)
}
