package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Companion 伙伴档案
// 由 onboarding 流程创建，引擎只读；SystemPrompt 定义伙伴的性格与语气
type Companion struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	UserID            string         `gorm:"index;size:36;not null" json:"user_id"`
	Name              string         `gorm:"size:255;not null" json:"name"`
	SystemPrompt      string         `gorm:"type:text;not null" json:"system_prompt"`
	Moves             pq.StringArray `gorm:"type:varchar(100)[]" json:"moves"`
	VisualDescription string         `gorm:"type:text" json:"visual_description"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Companion) TableName() string {
	return "companions"
}
