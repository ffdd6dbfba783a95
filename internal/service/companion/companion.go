// Package companion 提供伙伴档案服务
// 承接 onboarding 流程：创建并维护伙伴档案，交互引擎对其只读
package companion

import (
	"context"
	"errors"
	"fmt"

	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/google/uuid"
)

// Repository 伙伴仓库接口（用于测试）
type Repository interface {
	Create(companion *model.Companion) error
	GetByID(id string) (*model.Companion, error)
	GetByUserID(userID string) (*model.Companion, error)
	Update(companion *model.Companion) error
	Delete(id string) error
}

// Service 伙伴服务
type Service struct {
	repo Repository
}

// NewService 创建伙伴服务
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCompanionRequest 创建伙伴请求
type CreateCompanionRequest struct {
	Name              string   `json:"name" binding:"required,max=255"`
	SystemPrompt      string   `json:"system_prompt" binding:"required"`
	Moves             []string `json:"moves" binding:"required,min=1"`
	VisualDescription string   `json:"visual_description"`
}

// CreateCompanion 创建伙伴
// 每个用户只允许一个伙伴
func (s *Service) CreateCompanion(ctx context.Context, userID string, req *CreateCompanionRequest) (*model.Companion, error) {
	if existing, _ := s.repo.GetByUserID(userID); existing != nil {
		return nil, errors.New("companion already exists for this user")
	}
	if len(req.Moves) == 0 {
		return nil, errors.New("companion needs at least one move")
	}

	companion := &model.Companion{
		ID:                uuid.New().String(),
		UserID:            userID,
		Name:              req.Name,
		SystemPrompt:      req.SystemPrompt,
		Moves:             req.Moves,
		VisualDescription: req.VisualDescription,
	}

	if err := s.repo.Create(companion); err != nil {
		return nil, fmt.Errorf("failed to create companion: %w", err)
	}

	return companion, nil
}

// GetCompanion 获取伙伴
func (s *Service) GetCompanion(ctx context.Context, id string) (*model.Companion, error) {
	return s.repo.GetByID(id)
}

// GetCompanionByUser 获取用户的伙伴
func (s *Service) GetCompanionByUser(ctx context.Context, userID string) (*model.Companion, error) {
	return s.repo.GetByUserID(userID)
}

// UpdateCompanionRequest 更新伙伴请求
type UpdateCompanionRequest struct {
	Name              *string  `json:"name"`
	SystemPrompt      *string  `json:"system_prompt"`
	Moves             []string `json:"moves"`
	VisualDescription *string  `json:"visual_description"`
}

// UpdateCompanion 更新伙伴
func (s *Service) UpdateCompanion(ctx context.Context, id string, req *UpdateCompanionRequest) (*model.Companion, error) {
	companion, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("companion not found: %w", err)
	}

	if req.Name != nil {
		companion.Name = *req.Name
	}
	if req.SystemPrompt != nil {
		companion.SystemPrompt = *req.SystemPrompt
	}
	if len(req.Moves) > 0 {
		companion.Moves = req.Moves
	}
	if req.VisualDescription != nil {
		companion.VisualDescription = *req.VisualDescription
	}

	if err := s.repo.Update(companion); err != nil {
		return nil, fmt.Errorf("failed to update companion: %w", err)
	}

	return companion, nil
}

// DeleteCompanion 删除伙伴
func (s *Service) DeleteCompanion(ctx context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete companion: %w", err)
	}
	return nil
}
