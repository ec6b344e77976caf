package service

import (
	"fmt"

	"github.com/lshigami/testforge/internal/model"
)

// SampleContentService deterministically synthesizes placeholder content. It
// is the terminal fallback of the generation pipeline and the top-up source of
// the normalizer; it always produces at least one question per invocation.
type SampleContentService interface {
	SampleDocument(testType string, sections []string) *GeneratedTestDocument
	SampleQuestions(testType string, count int) []model.Question
}

type sampleContentService struct{}

func NewSampleContentService() SampleContentService {
	return &sampleContentService{}
}

const sampleQuestionsPerPart = 5

var sampleOptions = []string{"Option A", "Option B", "Option C", "Option D"}

var samplePrompts = map[string]string{
	"listening": "Listen to the recording. What is the speaker mainly discussing?",
	"reading":   "Read the passage. Which statement best reflects the author's view?",
	"writing":   "Write a short response addressing the situation described below.",
	"speaking":  "Describe the situation below and give your opinion with reasons.",
}

var sampleAudioScripts = map[string]string{
	"listening": "Good morning everyone, and thank you for joining today's meeting about the upcoming schedule changes.",
}

// SampleDocument builds a placeholder document for the requested sections
// using the mini-test part layout for the given test type.
func (s *sampleContentService) SampleDocument(testType string, sections []string) *GeneratedTestDocument {
	if len(sections) == 0 {
		sections = defaultMiniSections[testType]
	}

	doc := &GeneratedTestDocument{Sections: make(map[string]GeneratedSection)}
	questionID := 1
	for _, name := range canonicalSectionOrder {
		if !containsSection(sections, name) {
			continue
		}
		plan, ok := miniTestPlans[testType][name]
		if !ok {
			continue
		}
		section := GeneratedSection{}
		for partNo := 1; partNo <= plan.Parts; partNo++ {
			part := GeneratedPart{
				Part:         FlexInt(partNo),
				Instructions: fmt.Sprintf("Part %d: answer all questions in this part.", partNo),
			}
			perPart := sampleQuestionsPerPart
			if name == "writing" || name == "speaking" {
				perPart = 1
			}
			for i := 0; i < perPart; i++ {
				q := RawQuestion{
					ID:          FlexInt(questionID),
					Type:        sampleTypeForSection(name),
					Text:        fmt.Sprintf("%s (sample question %d)", samplePrompts[name], questionID),
					Explanation: "Sample explanation: this placeholder question was generated locally.",
				}
				if name == "listening" || name == "reading" {
					q.Options = append(FlexStrings{}, sampleOptions...)
					q.CorrectAnswer = FlexString(sampleOptions[questionID%len(sampleOptions)])
				}
				if script, ok := sampleAudioScripts[name]; ok {
					q.AudioScript = script
				}
				part.Questions = append(part.Questions, q)
				questionID++
			}
			section.Parts = append(section.Parts, part)
		}
		doc.Sections[name] = section
	}
	return doc
}

// SampleQuestions synthesizes count ready-to-persist questions distributed
// across the sections appropriate to the test type. TestID and final order are
// assigned by the caller.
func (s *sampleContentService) SampleQuestions(testType string, count int) []model.Question {
	if count <= 0 {
		count = 20
	}
	sections := []string{"listening", "reading"}
	if testType == "IELTS" {
		sections = canonicalSectionOrder
	}

	questions := make([]model.Question, 0, count)
	for i := 0; i < count; i++ {
		sectionType := sections[i%len(sections)]
		q := model.Question{
			Content:     fmt.Sprintf("%s (sample question %d)", samplePrompts[sectionType], i+1),
			Type:        sampleTypeForSection(sectionType),
			Part:        i%2 + 1,
			SectionType: sectionType,
			Explanation: "Sample explanation: this placeholder question was generated locally.",
			OrderInTest: i + 1,
			GroupID:     i%2 + 1,
		}
		if sectionType == "listening" || sectionType == "reading" {
			q.Options = append([]string{}, sampleOptions...)
			q.CorrectAnswer = sampleOptions[i%len(sampleOptions)]
		}
		questions = append(questions, q)
	}
	return questions
}

func sampleTypeForSection(section string) string {
	switch section {
	case "writing":
		return model.QuestionTypeEssay
	case "speaking":
		return model.QuestionTypeSpeaking
	default:
		return model.QuestionTypeSingle
	}
}

func containsSection(sections []string, name string) bool {
	for _, s := range sections {
		if s == name {
			return true
		}
	}
	return false
}
