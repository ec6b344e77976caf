package dto

import "time"

// QuestionResponseDTO is used for displaying question details to users.
type QuestionResponseDTO struct {
	ID            uint     `json:"id"`
	TestID        uint     `json:"test_id"`
	Content       string   `json:"content"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Part          int      `json:"part"`
	SectionType   string   `json:"section_type"`
	Explanation   string   `json:"explanation,omitempty"`
	AudioURL      *string  `json:"audio_url,omitempty"`
	OrderInTest   int      `json:"order_in_test"`
	GroupID       int      `json:"group_id"`
}

// TestResponseDTO is used for displaying full test details to users.
type TestResponseDTO struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description,omitempty"`
	Instructions  string                `json:"instructions,omitempty"`
	TestType      string                `json:"test_type"`
	Difficulty    string                `json:"difficulty"`
	Duration      int                   `json:"duration"`
	Tags          []string              `json:"tags,omitempty"`
	IsAIGenerated bool                  `json:"is_ai_generated"`
	Questions     []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// TestSummaryDTO is used for listing published tests.
type TestSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	TestType      string    `json:"test_type"`
	Difficulty    string    `json:"difficulty"`
	Duration      int       `json:"duration"`
	IsAIGenerated bool      `json:"is_ai_generated"`
	QuestionCount int       `json:"question_count"`
	Popularity    int       `json:"popularity"`
	CreatedAt     time.Time `json:"created_at"`
}
