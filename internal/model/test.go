package model

import (
	"time"

	"gorm.io/gorm"
)

// Test lifecycle status. A test is created as draft, flipped to published only
// after its questions are fully persisted, and marked failed when question
// persistence errors out.
const (
	TestStatusDraft     = "draft"
	TestStatusPublished = "published"
	TestStatusFailed    = "failed"
)

type Test struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description,omitempty" gorm:"type:text"`
	Instructions   string         `json:"instructions,omitempty" gorm:"type:text"`
	TestType       string         `json:"test_type" gorm:"not null;index"` // "TOEIC", "IELTS"
	Difficulty     string         `json:"difficulty" gorm:"not null"`
	Duration       int            `json:"duration" gorm:"not null"` // minutes
	Tags           []string       `json:"tags,omitempty" gorm:"serializer:json"`
	IsAIGenerated  bool           `json:"is_ai_generated" gorm:"default:false"`
	IsPublished    bool           `json:"is_published" gorm:"default:false;index"`
	Status         string         `json:"status" gorm:"default:'draft';index"`
	CreatorID      *uint          `json:"creator_id,omitempty" gorm:"index"`
	Popularity     int            `json:"popularity" gorm:"default:0"`
	CompletionRate float64        `json:"completion_rate" gorm:"default:0"`
	Questions      []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
