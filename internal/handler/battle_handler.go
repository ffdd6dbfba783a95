package handler

import (
	"errors"

	"github.com/ashwinyue/monster-ai/internal/service"
	"github.com/ashwinyue/monster-ai/internal/service/battle"
	"github.com/gin-gonic/gin"
)

// BattleHandler 战斗处理器
type BattleHandler struct {
	svc *service.Services
}

// NewBattleHandler 创建战斗处理器
func NewBattleHandler(svc *service.Services) *BattleHandler {
	return &BattleHandler{svc: svc}
}

// GetBattle 获取战斗会话
func (h *BattleHandler) GetBattle(c *gin.Context) {
	sess := h.svc.Battle.Get(c.Request.Context(), c.Param("id"))
	success(c, sess)
}

// StartBattleRequest 开始战斗请求
type StartBattleRequest struct {
	CompanionID string `json:"companion_id" binding:"required"`
}

// StartBattle 开始战斗
func (h *BattleHandler) StartBattle(c *gin.Context) {
	var req StartBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sess, err := h.svc.Battle.Start(c.Request.Context(), c.Param("id"), req.CompanionID)
	if err != nil {
		if errors.Is(err, battle.ErrBattleActive) {
			conflict(c, err.Error())
			return
		}
		errorResponse(c, err)
		return
	}

	success(c, sess)
}

// PlayMoveRequest 出招请求
type PlayMoveRequest struct {
	Move     string `json:"move" binding:"required"`
	Guidance string `json:"guidance"`
}

// PlayMove 出招
func (h *BattleHandler) PlayMove(c *gin.Context) {
	var req PlayMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sess, err := h.svc.Battle.PlayMove(c.Request.Context(), c.Param("id"), req.Move, req.Guidance)
	if err != nil {
		if errors.Is(err, battle.ErrBattleNotActive) ||
			errors.Is(err, battle.ErrNotPlayerTurn) ||
			errors.Is(err, battle.ErrUnknownMove) {
			conflict(c, err.Error())
			return
		}
		errorResponse(c, err)
		return
	}

	success(c, sess)
}

// ResetBattle 重置战斗
func (h *BattleHandler) ResetBattle(c *gin.Context) {
	sess := h.svc.Battle.Reset(c.Request.Context(), c.Param("id"))
	success(c, sess)
}
