package model

import (
	"time"

	"gorm.io/gorm"
)

type TestAttempt struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	TestID      uint           `json:"test_id" gorm:"not null;index"`
	Test        Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	UserID      *uint          `json:"user_id,omitempty" gorm:"index"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	Score       *float64       `json:"score,omitempty"` // fraction of auto-scored questions answered correctly
	Status      string         `json:"status" gorm:"default:'completed'"`
	Answers     []Answer       `json:"answers,omitempty" gorm:"foreignKey:TestAttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
