package service

import (
	"fmt"
	"strings"
)

// SectionPlan is the per-section structural target handed to the generator.
type SectionPlan struct {
	Parts     int
	Questions int
}

// TestConfig is the transient structural plan for one generated test. Built
// once per request and discarded after the test row is created.
type TestConfig struct {
	Title        string
	Description  string
	Instructions string
	Duration     int // minutes
	Sections     map[string]SectionPlan
	SectionOrder []string
	Tags         []string
}

type TestConfigService interface {
	BuildConfig(testType, difficulty string, isFullTest bool, specificSections, specificTopics []string) TestConfig
}

type testConfigService struct{}

func NewTestConfigService() TestConfigService {
	return &testConfigService{}
}

var canonicalSectionOrder = []string{"listening", "reading", "writing", "speaking"}

var fullTestPlans = map[string]map[string]SectionPlan{
	"TOEIC": {
		"listening": {Parts: 4, Questions: 100},
		"reading":   {Parts: 3, Questions: 100},
	},
	"IELTS": {
		"listening": {Parts: 4, Questions: 40},
		"reading":   {Parts: 3, Questions: 40},
		"writing":   {Parts: 2, Questions: 2},
		"speaking":  {Parts: 3, Questions: 3},
	},
}

var miniTestPlans = map[string]map[string]SectionPlan{
	"TOEIC": {
		"listening": {Parts: 4, Questions: 50},
		"reading":   {Parts: 3, Questions: 50},
	},
	"IELTS": {
		"listening": {Parts: 4, Questions: 40},
		"reading":   {Parts: 3, Questions: 40},
		"writing":   {Parts: 2, Questions: 2},
		"speaking":  {Parts: 3, Questions: 3},
	},
}

var fullTestDurations = map[string]int{
	"TOEIC": 120,
	"IELTS": 165,
}

var ieltsSectionMinutes = map[string]int{
	"listening": 30,
	"reading":   60,
	"writing":   45,
	"speaking":  15,
}

var defaultMiniSections = map[string][]string{
	"TOEIC": {"listening"},
	"IELTS": {"reading"},
}

// BuildConfig derives the structural plan purely from its inputs; no external
// calls. Unrecognized section names are silently ignored.
func (s *testConfigService) BuildConfig(testType, difficulty string, isFullTest bool, specificSections, specificTopics []string) TestConfig {
	cfg := TestConfig{
		Sections: make(map[string]SectionPlan),
		Tags:     []string{testType, difficulty},
	}

	if isFullTest {
		cfg.Duration = fullTestDurations[testType]
		for _, name := range canonicalSectionOrder {
			if plan, ok := fullTestPlans[testType][name]; ok {
				cfg.Sections[name] = plan
				cfg.SectionOrder = append(cfg.SectionOrder, name)
			}
		}
		cfg.Title = fmt.Sprintf("%s Full Test (%s)", testType, difficulty)
	} else {
		requested := specificSections
		if len(requested) == 0 {
			requested = defaultMiniSections[testType]
		}
		included := make(map[string]bool)
		for _, name := range requested {
			if _, known := miniTestPlans[testType][name]; known {
				included[name] = true
			}
		}
		for _, name := range canonicalSectionOrder {
			if included[name] {
				cfg.Sections[name] = miniTestPlans[testType][name]
				cfg.SectionOrder = append(cfg.SectionOrder, name)
			}
		}
		cfg.Duration = miniDuration(testType, included)
		cfg.Title = fmt.Sprintf("%s Mini Test - %s (%s)", testType, joinCapitalized(cfg.SectionOrder), difficulty)
	}

	cfg.Tags = append(cfg.Tags, cfg.SectionOrder...)
	cfg.Description = fmt.Sprintf("AI-generated %s practice test at %s level covering %s.",
		testType, difficulty, strings.Join(cfg.SectionOrder, ", "))
	cfg.Instructions = fmt.Sprintf("This test contains %d section(s) and should be completed in %d minutes. Answer every question in order.",
		len(cfg.SectionOrder), cfg.Duration)

	if len(specificTopics) > 0 {
		topics := strings.Join(specificTopics, ", ")
		cfg.Title += " - " + topics
		cfg.Description += " Chủ đề: " + topics
		cfg.Tags = append(cfg.Tags, specificTopics...)
	}

	return cfg
}

func miniDuration(testType string, included map[string]bool) int {
	switch testType {
	case "TOEIC":
		if included["listening"] && included["reading"] {
			return 90
		}
		return 45
	case "IELTS":
		total := 0
		for name, minutes := range ieltsSectionMinutes {
			if included[name] {
				total += minutes
			}
		}
		return total
	}
	return 0
}

func joinCapitalized(sections []string) string {
	caps := make([]string, 0, len(sections))
	for _, s := range sections {
		if s == "" {
			continue
		}
		caps = append(caps, strings.ToUpper(s[:1])+s[1:])
	}
	return strings.Join(caps, " & ")
}
