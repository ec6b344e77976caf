package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/testforge/internal/dto"
	"github.com/lshigami/testforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TestCatalogService serves published tests to test-takers.
type TestCatalogService interface {
	ListPublishedTests() ([]dto.TestSummaryDTO, error)
	GetTestWithQuestions(id uint) (*dto.TestResponseDTO, error)
}

type testCatalogService struct {
	testRepo repository.TestRepository
}

func NewTestCatalogService(testRepo repository.TestRepository) TestCatalogService {
	return &testCatalogService{testRepo: testRepo}
}

func (s *testCatalogService) ListPublishedTests() ([]dto.TestSummaryDTO, error) {
	results, err := s.testRepo.FindPublishedWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list published tests")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	summaries := make([]dto.TestSummaryDTO, 0, len(results))
	for _, result := range results {
		var summary dto.TestSummaryDTO
		if err := copier.Copy(&summary, &result.Test); err != nil {
			log.Error().Err(err).Uint("testID", result.Test.ID).Msg("Failed to copy test to summary DTO")
			continue
		}
		summary.QuestionCount = result.QuestionCount
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *testCatalogService) GetTestWithQuestions(id uint) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("error fetching test %d: %w", id, err)
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("Failed to copy test to response DTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}
