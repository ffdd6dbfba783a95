package repository

import (
	"github.com/ashwinyue/monster-ai/internal/model"
	"gorm.io/gorm"
)

// CompanionRepository 伙伴档案数据访问
type CompanionRepository struct {
	db *gorm.DB
}

// NewCompanionRepository 创建伙伴仓库
func NewCompanionRepository(db *gorm.DB) *CompanionRepository {
	return &CompanionRepository{db: db}
}

// Create 创建伙伴
func (r *CompanionRepository) Create(companion *model.Companion) error {
	return r.db.Create(companion).Error
}

// GetByID 获取伙伴
func (r *CompanionRepository) GetByID(id string) (*model.Companion, error) {
	var companion model.Companion
	err := r.db.Where("id = ?", id).First(&companion).Error
	if err != nil {
		return nil, err
	}
	return &companion, nil
}

// GetByUserID 获取用户的伙伴
// 每个用户只有一个伙伴，取最早创建的一条
func (r *CompanionRepository) GetByUserID(userID string) (*model.Companion, error) {
	var companion model.Companion
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").First(&companion).Error
	if err != nil {
		return nil, err
	}
	return &companion, nil
}

// Update 更新伙伴
func (r *CompanionRepository) Update(companion *model.Companion) error {
	return r.db.Save(companion).Error
}

// Delete 删除伙伴
func (r *CompanionRepository) Delete(id string) error {
	return r.db.Delete(&model.Companion{}, "id = ?", id).Error
}
