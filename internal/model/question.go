package model

import (
	"time"

	"gorm.io/gorm"
)

// Canonical question types produced by normalization.
const (
	QuestionTypeSingle   = "single"
	QuestionTypeMultiple = "multiple"
	QuestionTypeFill     = "fill"
	QuestionTypeEssay    = "essay"
	QuestionTypeSpeaking = "speaking"
)

// Question is the normalized, persisted record. Rows are only ever inserted,
// never updated. For single/multiple questions with non-empty options,
// CorrectAnswer is always an element of Options (repaired at ingest time).
type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	Content       string         `json:"content" gorm:"type:text;not null"`
	Type          string         `json:"type" gorm:"not null"`
	Options       []string       `json:"options,omitempty" gorm:"serializer:json"`
	CorrectAnswer string         `json:"correct_answer,omitempty" gorm:"type:text"`
	Part          int            `json:"part" gorm:"not null"`
	SectionType   string         `json:"section_type" gorm:"not null;index"` // listening/reading/writing/speaking
	Explanation   string         `json:"explanation,omitempty" gorm:"type:text"`
	AudioURL      *string        `json:"audio_url,omitempty"`
	OrderInTest   int            `json:"order_in_test" gorm:"not null"`
	GroupID       int            `json:"group_id" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
