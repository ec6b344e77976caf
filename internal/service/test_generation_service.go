package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lshigami/testforge/config"
	"github.com/rs/zerolog/log"
)

const minUsableQuestions = 5

// TestGenerationService produces a GeneratedTestDocument for a config. Apart
// from strict-mode transport failures it never errors: any malformed output
// degrades to the deterministic sample document.
type TestGenerationService interface {
	GenerateDocument(ctx context.Context, testType, difficulty string, cfg TestConfig, topics []string) (*GeneratedTestDocument, error)
}

type testGenerationService struct {
	llm    LLMClient
	sample SampleContentService
	strict bool
}

func NewTestGenerationService(appCfg *config.Config, llm LLMClient, sample SampleContentService) TestGenerationService {
	return &testGenerationService{
		llm:    llm,
		sample: sample,
		strict: appCfg.LLM.Strict,
	}
}

func (s *testGenerationService) GenerateDocument(ctx context.Context, testType, difficulty string, cfg TestConfig, topics []string) (*GeneratedTestDocument, error) {
	systemPrompt := buildSystemPrompt(testType)
	userPrompt := buildUserPrompt(testType, difficulty, cfg, topics)

	raw, err := s.llm.GenerateJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		if s.strict {
			return nil, err
		}
		log.Warn().Err(err).Str("testType", testType).Msg("Generation service unavailable, using sample document")
		return s.sample.SampleDocument(testType, cfg.SectionOrder), nil
	}

	doc, parseErr := parseGeneratedDocument(raw, testType)
	if parseErr != nil {
		log.Warn().Err(parseErr).Str("testType", testType).Msg("Generated output unusable, using sample document")
		return s.sample.SampleDocument(testType, cfg.SectionOrder), nil
	}
	return doc, nil
}

// parseGeneratedDocument runs the recovery ladder over the raw response text:
// direct parse, fence-stripped parse, then first balanced-object extraction.
// The parsed shape is then validated and the total question count checked.
func parseGeneratedDocument(raw, testType string) (*GeneratedTestDocument, error) {
	candidates := []string{
		strings.TrimSpace(raw),
		stripCodeFences(raw),
	}
	if extracted := extractJSONObject(raw); extracted != "" {
		candidates = append(candidates, extracted)
	}

	var lastErr error = ErrInvalidTestFormat
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		doc, err := decodeAndValidate(candidate, testType)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		// Shape and count violations will not improve with a different
		// extraction of the same text.
		if errors.Is(err, ErrInvalidTestFormat) || errors.Is(err, ErrInsufficientQuestions) {
			return nil, err
		}
	}
	return nil, lastErr
}

func decodeAndValidate(text, testType string) (*GeneratedTestDocument, error) {
	var shape struct {
		Sections map[string]json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal([]byte(text), &shape); err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	if shape.Sections == nil {
		return nil, fmt.Errorf("%w: missing sections key", ErrInvalidTestFormat)
	}

	doc := &GeneratedTestDocument{Sections: make(map[string]GeneratedSection)}
	for name, rawSection := range shape.Sections {
		var probe struct {
			Parts json.RawMessage `json:"parts"`
		}
		if err := json.Unmarshal(rawSection, &probe); err != nil {
			return nil, fmt.Errorf("%w: section %q is not an object", ErrInvalidTestFormat, name)
		}
		if _, known := miniTestPlans[testType][name]; known {
			trimmed := strings.TrimSpace(string(probe.Parts))
			if trimmed == "" || trimmed == "null" || trimmed[0] != '[' {
				return nil, fmt.Errorf("%w: section %q has no parts array", ErrInvalidTestFormat, name)
			}
		}
		var section GeneratedSection
		if err := json.Unmarshal(rawSection, &section); err != nil {
			return nil, fmt.Errorf("%w: section %q parts are malformed", ErrInvalidTestFormat, name)
		}
		doc.Sections[name] = section
	}

	if total := doc.TotalQuestions(); total < minUsableQuestions {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrInsufficientQuestions, total, minUsableQuestions)
	}
	return doc, nil
}

// stripCodeFences removes leading/trailing markdown code-fence markers.
func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSONObject pulls the widest {...} span out of surrounding prose.
func extractJSONObject(raw string) string {
	return jsonObjectPattern.FindString(raw)
}

func buildSystemPrompt(testType string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert ")
	sb.WriteString(testType)
	sb.WriteString(" test designer who produces complete practice tests as strict JSON.\n\n")

	switch testType {
	case "TOEIC":
		sb.WriteString("Follow the official TOEIC structure:\n")
		sb.WriteString("- listening: 4 parts (photographs, question-response, conversations, talks)\n")
		sb.WriteString("- reading: 3 parts (incomplete sentences, text completion, reading comprehension)\n")
	case "IELTS":
		sb.WriteString("Follow the official IELTS structure:\n")
		sb.WriteString("- listening: 4 parts (everyday conversation, monologue, academic discussion, academic lecture)\n")
		sb.WriteString("- reading: 3 parts (long academic passages of increasing difficulty)\n")
		sb.WriteString("- writing: 2 tasks (data/letter description, discursive essay)\n")
		sb.WriteString("- speaking: 3 parts (introduction, cue card long turn, discussion)\n")
	}

	sb.WriteString("\nEvery question must include: id (number), type, text, and for multiple-choice questions options (array of strings) and correctAnswer (one of the options).\n")
	sb.WriteString("Listening questions must include an audioScript field. Include a short explanation for each answer.\n")
	sb.WriteString("Respond with ONLY a single JSON object. No markdown, no code fences, no commentary.")
	return sb.String()
}

func buildUserPrompt(testType, difficulty string, cfg TestConfig, topics []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a %s practice test at %s level.\n\n", testType, difficulty)

	sb.WriteString("Required structure:\n")
	for _, name := range cfg.SectionOrder {
		plan := cfg.Sections[name]
		fmt.Fprintf(&sb, "- %s: %d parts, %d questions total (distribute questions across parts)\n",
			name, plan.Parts, plan.Questions)
	}

	if len(topics) > 0 {
		fmt.Fprintf(&sb, "\nFocus the content on these topics: %s.\n", strings.Join(topics, ", "))
	}

	sb.WriteString("\nReturn JSON matching exactly this schema:\n")
	sb.WriteString(targetSchema)
	return sb.String()
}

// targetSchema is appended verbatim to the user prompt.
const targetSchema = `{
  "sections": {
    "<sectionName>": {
      "parts": [
        {
          "part": 1,
          "instructions": "string",
          "passage": "string (optional, reading only)",
          "questions": [
            {
              "id": 1,
              "type": "single|multiple|fill|essay|speaking",
              "text": "string",
              "options": ["string", "string", "string", "string"],
              "correctAnswer": "string (must be one of options)",
              "audioScript": "string (listening only)",
              "explanation": "string"
            }
          ]
        }
      ]
    }
  }
}`
