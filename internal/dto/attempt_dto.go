package dto

import "time"

// UserAnswerDTO represents a user's answer to a single question within a test submission.
type UserAnswerDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	UserAnswer string `json:"user_answer" binding:"required"`
}

// TestAttemptSubmitDTO is the request DTO for a user submitting all answers for a test.
type TestAttemptSubmitDTO struct {
	UserID  *uint           `json:"user_id"`
	Answers []UserAnswerDTO `json:"answers" binding:"required,dive"`
}

// AnswerResponseDTO is used for displaying individual answer details within a test attempt.
type AnswerResponseDTO struct {
	ID         uint                `json:"id"`
	QuestionID uint                `json:"question_id"`
	Question   QuestionResponseDTO `json:"question,omitempty"`
	UserAnswer string              `json:"user_answer"`
	IsCorrect  *bool               `json:"is_correct,omitempty"`
}

// TestAttemptDetailDTO is for displaying the full details of a specific test attempt.
type TestAttemptDetailDTO struct {
	ID          uint                `json:"id"`
	TestID      uint                `json:"test_id"`
	TestTitle   string              `json:"test_title,omitempty"`
	UserID      *uint               `json:"user_id,omitempty"`
	SubmittedAt time.Time           `json:"submitted_at"`
	Score       *float64            `json:"score,omitempty"`
	Status      string              `json:"status"`
	Answers     []AnswerResponseDTO `json:"answers,omitempty"`
}
