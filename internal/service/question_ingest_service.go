package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lshigami/testforge/internal/model"
	"github.com/lshigami/testforge/internal/repository"
	"github.com/rs/zerolog/log"
)

const questionBatchSize = 50

// SkipReason records one dropped item during normalization, so callers and
// tests can assert exactly which inputs were rejected and why.
type SkipReason struct {
	Section string
	Part    int
	Index   int
	Reason  string
}

// QuestionIngestService normalizes a generated document into Question rows,
// tops up below-minimum results with sample questions, persists in batches,
// and publishes the test.
type QuestionIngestService interface {
	Normalize(testType string, doc *GeneratedTestDocument) ([]model.Question, []SkipReason)
	IngestDocument(testID uint, testType string, doc *GeneratedTestDocument) (int, error)
}

type questionIngestService struct {
	questionRepo repository.QuestionRepository
	testRepo     repository.TestRepository
	sample       SampleContentService
}

func NewQuestionIngestService(questionRepo repository.QuestionRepository, testRepo repository.TestRepository, sample SampleContentService) QuestionIngestService {
	return &questionIngestService{
		questionRepo: questionRepo,
		testRepo:     testRepo,
		sample:       sample,
	}
}

// IngestDocument runs normalize → top-up → batched insert → publish. A
// storage failure is fatal for the request; everything before it degrades.
func (s *questionIngestService) IngestDocument(testID uint, testType string, doc *GeneratedTestDocument) (int, error) {
	questions, skips := s.Normalize(testType, doc)
	for _, skip := range skips {
		log.Warn().
			Str("section", skip.Section).
			Int("part", skip.Part).
			Int("index", skip.Index).
			Str("reason", skip.Reason).
			Msg("Skipped generated question")
	}

	if len(questions) == 0 {
		log.Warn().Uint("testID", testID).Msg("Normalization produced no questions, generating sample set")
		questions = s.sample.SampleQuestions(testType, 20)
	} else if len(questions) < minUsableQuestions {
		needed := minUsableQuestions - len(questions)
		log.Warn().Uint("testID", testID).Int("have", len(questions)).Int("topUp", needed).Msg("Topping up question list with samples")
		// Normalizer order values are persisted as-is; top-up samples
		// continue after the highest assigned order.
		maxOrder := questions[len(questions)-1].OrderInTest
		topUp := s.sample.SampleQuestions(testType, needed)
		for i := range topUp {
			topUp[i].OrderInTest = maxOrder + i + 1
		}
		questions = append(questions, topUp...)
	}

	if len(questions) == 0 {
		return 0, ErrNoQuestionsFound
	}

	for i := range questions {
		questions[i].TestID = testID
	}

	if err := s.questionRepo.CreateInBatches(questions, questionBatchSize); err != nil {
		return 0, fmt.Errorf("failed to persist questions for test %d: %w", testID, err)
	}

	if err := s.testRepo.UpdateFields(testID, map[string]interface{}{
		"is_published": true,
		"status":       model.TestStatusPublished,
		"updated_at":   time.Now(),
	}); err != nil {
		return 0, fmt.Errorf("failed to publish test %d: %w", testID, err)
	}

	return len(questions), nil
}

// Normalize flattens the document into Question records. Items that cannot be
// used are skipped with a reason, never fatal.
func (s *questionIngestService) Normalize(testType string, doc *GeneratedTestDocument) ([]model.Question, []SkipReason) {
	var questions []model.Question
	var skips []SkipReason

	counter := 1
	usedOrders := make(map[int]bool)

	for _, sectionName := range orderedSectionNames(doc) {
		section := doc.Sections[sectionName]
		if len(section.Parts) == 0 {
			skips = append(skips, SkipReason{Section: sectionName, Reason: "section has no parts"})
			continue
		}
		for _, part := range section.Parts {
			partNo := int(part.Part)
			if len(part.Questions) == 0 {
				skips = append(skips, SkipReason{Section: sectionName, Part: partNo, Reason: "part has no questions"})
				continue
			}
			groupID := int(part.GroupID)
			if groupID == 0 {
				groupID = partNo
			}
			for i, raw := range part.Questions {
				if strings.TrimSpace(raw.Text) == "" {
					skips = append(skips, SkipReason{Section: sectionName, Part: partNo, Index: i, Reason: "question has no text"})
					continue
				}

				qType := normalizeQuestionType(raw.Type, sectionName)
				options := append([]string{}, raw.Options...)
				if qType == model.QuestionTypeSingle && len(options) < 2 {
					options = padOptions(options)
				}

				correct := strings.TrimSpace(string(raw.CorrectAnswer))
				if qType == model.QuestionTypeSingle || qType == model.QuestionTypeMultiple {
					correct = repairCorrectAnswer(correct, options)
				}

				order := int(raw.ID)
				if order <= 0 || usedOrders[order] {
					order = counter
					for usedOrders[order] {
						order++
						counter = order
					}
				}
				usedOrders[order] = true
				counter++

				questions = append(questions, model.Question{
					Content:       raw.Text,
					Type:          qType,
					Options:       options,
					CorrectAnswer: correct,
					Part:          partNo,
					SectionType:   sectionName,
					Explanation:   raw.Explanation,
					AudioURL:      nil,
					OrderInTest:   order,
					GroupID:       groupID,
				})
			}
		}
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].OrderInTest < questions[j].OrderInTest
	})
	return questions, skips
}

// normalizeQuestionType canonicalizes a raw type string by keyword matching.
// Unmatched non-empty strings pass through unchanged; absent types default by
// section.
func normalizeQuestionType(raw, section string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case lowered == "":
		return defaultTypeForSection(section)
	case strings.Contains(lowered, "multiple choice"), strings.Contains(lowered, "single"):
		return model.QuestionTypeSingle
	case strings.Contains(lowered, "multi"):
		return model.QuestionTypeMultiple
	case strings.Contains(lowered, "fill"), strings.Contains(lowered, "completion"):
		return model.QuestionTypeFill
	case strings.Contains(lowered, "essay"), strings.Contains(lowered, "writing"):
		return model.QuestionTypeEssay
	case strings.Contains(lowered, "speak"), strings.Contains(lowered, "oral"):
		return model.QuestionTypeSpeaking
	default:
		return raw
	}
}

func defaultTypeForSection(section string) string {
	switch section {
	case "writing":
		return model.QuestionTypeEssay
	case "speaking":
		return model.QuestionTypeSpeaking
	default:
		return model.QuestionTypeSingle
	}
}

var placeholderOptions = []string{"A", "B", "C", "D"}

func padOptions(options []string) []string {
	for _, p := range placeholderOptions {
		if len(options) >= 4 {
			break
		}
		options = append(options, p)
	}
	return options
}

// repairCorrectAnswer guarantees the invariant correctAnswer ∈ options for
// choice questions. Best-effort repair, not a validation failure.
func repairCorrectAnswer(correct string, options []string) string {
	if len(options) == 0 {
		if correct == "" {
			return "A"
		}
		return correct
	}
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), correct) {
			return opt
		}
	}
	return options[0]
}

func orderedSectionNames(doc *GeneratedTestDocument) []string {
	var names []string
	seen := make(map[string]bool)
	for _, name := range canonicalSectionOrder {
		if _, ok := doc.Sections[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range doc.Sections {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
