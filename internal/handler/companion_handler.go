package handler

import (
	"github.com/ashwinyue/monster-ai/internal/service"
	"github.com/ashwinyue/monster-ai/internal/service/companion"
	"github.com/gin-gonic/gin"
)

// CompanionHandler 伙伴处理器
type CompanionHandler struct {
	svc *service.Services
}

// NewCompanionHandler 创建伙伴处理器
func NewCompanionHandler(svc *service.Services) *CompanionHandler {
	return &CompanionHandler{svc: svc}
}

// CreateCompanion 创建伙伴（onboarding）
func (h *CompanionHandler) CreateCompanion(c *gin.Context) {
	var req companion.CreateCompanionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.svc.Companion.CreateCompanion(c.Request.Context(), getUserID(c), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, result)
}

// GetMyCompanion 获取当前用户的伙伴
func (h *CompanionHandler) GetMyCompanion(c *gin.Context) {
	result, err := h.svc.Companion.GetCompanionByUser(c.Request.Context(), getUserID(c))
	if err != nil {
		notFound(c, "companion not found")
		return
	}

	success(c, result)
}

// GetCompanion 获取伙伴
func (h *CompanionHandler) GetCompanion(c *gin.Context) {
	result, err := h.svc.Companion.GetCompanion(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, "companion not found")
		return
	}

	success(c, result)
}

// UpdateCompanion 更新伙伴
func (h *CompanionHandler) UpdateCompanion(c *gin.Context) {
	var req companion.UpdateCompanionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.svc.Companion.UpdateCompanion(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, result)
}

// DeleteCompanion 删除伙伴
func (h *CompanionHandler) DeleteCompanion(c *gin.Context) {
	if err := h.svc.Companion.DeleteCompanion(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, nil)
}
