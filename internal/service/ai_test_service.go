package service

import (
	"context"
	"fmt"

	"github.com/lshigami/testforge/internal/dto"
	"github.com/lshigami/testforge/internal/model"
	"github.com/lshigami/testforge/internal/repository"
	"github.com/rs/zerolog/log"
)

// AITestService runs the full generation pipeline: configuration, draft test
// creation, content generation, normalization and publication.
type AITestService interface {
	GenerateTest(ctx context.Context, req dto.GenerateTestRequest) (*dto.GenerateTestResponse, error)
}

type aiTestService struct {
	configSvc  TestConfigService
	generation TestGenerationService
	ingest     QuestionIngestService
	testRepo   repository.TestRepository
}

func NewAITestService(
	configSvc TestConfigService,
	generation TestGenerationService,
	ingest QuestionIngestService,
	testRepo repository.TestRepository,
) AITestService {
	return &aiTestService{
		configSvc:  configSvc,
		generation: generation,
		ingest:     ingest,
		testRepo:   testRepo,
	}
}

func (s *aiTestService) GenerateTest(ctx context.Context, req dto.GenerateTestRequest) (*dto.GenerateTestResponse, error) {
	cfg := s.configSvc.BuildConfig(req.TestType, req.Difficulty, req.IsFullTest, req.SpecificSections, req.SpecificTopics)

	// The test row exists as a draft before the generated content is known to
	// be valid; it only becomes visible once publication succeeds.
	test := model.Test{
		Title:         cfg.Title,
		Description:   cfg.Description,
		Instructions:  cfg.Instructions,
		TestType:      req.TestType,
		Difficulty:    req.Difficulty,
		Duration:      cfg.Duration,
		Tags:          cfg.Tags,
		IsAIGenerated: true,
		IsPublished:   false,
		Status:        model.TestStatusDraft,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Msg("Failed to create draft test")
		return nil, fmt.Errorf("failed to create test: %w", err)
	}

	doc, err := s.generation.GenerateDocument(ctx, req.TestType, req.Difficulty, cfg, req.SpecificTopics)
	if err != nil {
		s.markFailed(test.ID)
		return nil, err
	}

	count, err := s.ingest.IngestDocument(test.ID, req.TestType, doc)
	if err != nil {
		s.markFailed(test.ID)
		return nil, err
	}

	log.Info().Uint("testID", test.ID).Int("questions", count).Str("title", test.Title).Msg("Test generated and published")
	return &dto.GenerateTestResponse{
		ID:      test.ID,
		Title:   test.Title,
		Message: fmt.Sprintf("Test created successfully with %d questions", count),
	}, nil
}

// markFailed is best effort; the draft row stays queryable either way.
func (s *aiTestService) markFailed(testID uint) {
	if err := s.testRepo.UpdateFields(testID, map[string]interface{}{"status": model.TestStatusFailed}); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to mark test as failed")
	}
}
