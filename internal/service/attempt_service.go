package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/testforge/internal/dto"
	"github.com/lshigami/testforge/internal/model"
	"github.com/lshigami/testforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService records test submissions. Objective question types are
// auto-scored against the stored correct answer; essay and speaking answers
// are recorded unscored.
type AttemptService interface {
	SubmitAttempt(testID uint, req dto.TestAttemptSubmitDTO) (*dto.TestAttemptDetailDTO, error)
	GetAttemptDetails(attemptID uint) (*dto.TestAttemptDetailDTO, error)
}

type attemptService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.TestAttemptRepository
}

func NewAttemptService(testRepo repository.TestRepository, questionRepo repository.QuestionRepository, attemptRepo repository.TestAttemptRepository) AttemptService {
	return &attemptService{testRepo: testRepo, questionRepo: questionRepo, attemptRepo: attemptRepo}
}

func (s *attemptService) SubmitAttempt(testID uint, req dto.TestAttemptSubmitDTO) (*dto.TestAttemptDetailDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}
	if !test.IsPublished {
		return nil, ErrTestNotPublished
	}

	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions for test %d: %w", testID, err)
	}

	questionMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	attempt := model.TestAttempt{
		TestID:      testID,
		UserID:      req.UserID,
		SubmittedAt: time.Now(),
		Status:      "completed",
	}

	correct, scorable := 0, 0
	for _, answerDto := range req.Answers {
		question, exists := questionMap[answerDto.QuestionID]
		if !exists {
			log.Warn().Uint("questionID", answerDto.QuestionID).Uint("testID", testID).Msg("Answer submitted for question outside this test, skipping")
			continue
		}
		answer := model.Answer{
			QuestionID: question.ID,
			UserAnswer: answerDto.UserAnswer,
		}
		if isAutoScorable(question.Type) {
			scorable++
			matched := answersMatch(question, answerDto.UserAnswer)
			answer.IsCorrect = &matched
			if matched {
				correct++
			}
		}
		attempt.Answers = append(attempt.Answers, answer)
	}

	if len(attempt.Answers) == 0 {
		return nil, fmt.Errorf("no valid answers provided for the questions in test %d", testID)
	}

	if scorable > 0 {
		score := float64(correct) / float64(scorable)
		attempt.Score = &score
	}

	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to create test attempt")
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	s.updateTestStats(test, attempt.Score)

	detail, err := s.attemptRepo.FindByIDWithDetails(attempt.ID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to reload attempt, responding from in-memory state")
		return s.buildDetailDTO(&attempt, test.Title, questionMap), nil
	}
	return s.buildDetailDTO(detail, test.Title, questionMap), nil
}

func (s *attemptService) GetAttemptDetails(attemptID uint) (*dto.TestAttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("test attempt not found with ID %d", attemptID)
		}
		return nil, fmt.Errorf("error fetching attempt %d: %w", attemptID, err)
	}
	return s.buildDetailDTO(attempt, attempt.Test.Title, nil), nil
}

func (s *attemptService) buildDetailDTO(attempt *model.TestAttempt, testTitle string, questionMap map[uint]model.Question) *dto.TestAttemptDetailDTO {
	var resp dto.TestAttemptDetailDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to copy attempt to DTO")
	}
	resp.TestTitle = testTitle

	resp.Answers = make([]dto.AnswerResponseDTO, len(attempt.Answers))
	for i, answer := range attempt.Answers {
		var answerDTO dto.AnswerResponseDTO
		copier.Copy(&answerDTO, &answer)
		if answer.Question.ID != 0 {
			copier.Copy(&answerDTO.Question, &answer.Question)
		} else if questionMap != nil {
			question := questionMap[answer.QuestionID]
			copier.Copy(&answerDTO.Question, &question)
		}
		resp.Answers[i] = answerDTO
	}
	return &resp
}

// updateTestStats bumps popularity and folds this attempt's score into the
// running completion rate. Best effort.
func (s *attemptService) updateTestStats(test *model.Test, score *float64) {
	fields := map[string]interface{}{
		"popularity": gorm.Expr("popularity + 1"),
	}
	if score != nil {
		// The attempt being recorded is already persisted, so the count
		// includes it.
		attempts, err := s.attemptRepo.CountByTestID(test.ID)
		if err != nil || attempts == 0 {
			attempts = int64(test.Popularity) + 1
		}
		newRate := test.CompletionRate + (*score*100-test.CompletionRate)/float64(attempts)
		fields["completion_rate"] = newRate
	}
	if err := s.testRepo.UpdateFields(test.ID, fields); err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("Failed to update test stats")
	}
}

func isAutoScorable(questionType string) bool {
	switch questionType {
	case model.QuestionTypeSingle, model.QuestionTypeMultiple, model.QuestionTypeFill:
		return true
	}
	return false
}

func answersMatch(question model.Question, userAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(question.CorrectAnswer))
}
