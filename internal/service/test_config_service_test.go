package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig_FullTests(t *testing.T) {
	svc := NewTestConfigService()

	tests := []struct {
		name         string
		testType     string
		wantDuration int
		wantSections map[string]SectionPlan
	}{
		{
			name:         "TOEIC full test",
			testType:     "TOEIC",
			wantDuration: 120,
			wantSections: map[string]SectionPlan{
				"listening": {Parts: 4, Questions: 100},
				"reading":   {Parts: 3, Questions: 100},
			},
		},
		{
			name:         "IELTS full test",
			testType:     "IELTS",
			wantDuration: 165,
			wantSections: map[string]SectionPlan{
				"listening": {Parts: 4, Questions: 40},
				"reading":   {Parts: 3, Questions: 40},
				"writing":   {Parts: 2, Questions: 2},
				"speaking":  {Parts: 3, Questions: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, difficulty := range []string{"Beginner", "Intermediate", "Advanced", "Expert"} {
				cfg := svc.BuildConfig(tt.testType, difficulty, true, nil, nil)
				assert.Equal(t, tt.wantDuration, cfg.Duration)
				assert.Equal(t, tt.wantSections, cfg.Sections)
				assert.Contains(t, cfg.Title, difficulty)
			}
		})
	}
}

func TestBuildConfig_MiniDurations(t *testing.T) {
	svc := NewTestConfigService()

	tests := []struct {
		name         string
		testType     string
		sections     []string
		wantDuration int
	}{
		{"TOEIC listening only", "TOEIC", []string{"listening"}, 45},
		{"TOEIC reading only", "TOEIC", []string{"reading"}, 45},
		{"TOEIC listening and reading", "TOEIC", []string{"listening", "reading"}, 90},
		{"IELTS listening and writing", "IELTS", []string{"listening", "writing"}, 75},
		{"IELTS all sections", "IELTS", []string{"listening", "reading", "writing", "speaking"}, 150},
		{"IELTS speaking only", "IELTS", []string{"speaking"}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := svc.BuildConfig(tt.testType, "Intermediate", false, tt.sections, nil)
			assert.Equal(t, tt.wantDuration, cfg.Duration)
		})
	}
}

func TestBuildConfig_ToeicMiniListeningScenario(t *testing.T) {
	svc := NewTestConfigService()

	cfg := svc.BuildConfig("TOEIC", "Beginner", false, []string{"listening"}, nil)

	assert.Equal(t, 45, cfg.Duration)
	require.Len(t, cfg.Sections, 1)
	assert.Equal(t, SectionPlan{Parts: 4, Questions: 50}, cfg.Sections["listening"])
	assert.True(t, strings.HasPrefix(cfg.Title, "TOEIC Mini Test - Listening (Beginner)"), "title was %q", cfg.Title)
}

func TestBuildConfig_DefaultMiniSections(t *testing.T) {
	svc := NewTestConfigService()

	toeic := svc.BuildConfig("TOEIC", "Advanced", false, nil, nil)
	assert.Equal(t, []string{"listening"}, toeic.SectionOrder)

	ielts := svc.BuildConfig("IELTS", "Advanced", false, nil, nil)
	assert.Equal(t, []string{"reading"}, ielts.SectionOrder)
}

func TestBuildConfig_UnknownSectionIgnored(t *testing.T) {
	svc := NewTestConfigService()

	cfg := svc.BuildConfig("TOEIC", "Beginner", false, []string{"listening", "grammar"}, nil)

	assert.Equal(t, []string{"listening"}, cfg.SectionOrder)
	assert.NotContains(t, cfg.Sections, "grammar")
}

func TestBuildConfig_TopicsAugmentation(t *testing.T) {
	svc := NewTestConfigService()

	cfg := svc.BuildConfig("IELTS", "Expert", false, []string{"reading"}, []string{"travel", "technology"})

	assert.True(t, strings.HasSuffix(cfg.Title, " - travel, technology"), "title was %q", cfg.Title)
	assert.Contains(t, cfg.Description, "Chủ đề: travel, technology")
	assert.Contains(t, cfg.Tags, "travel")
	assert.Contains(t, cfg.Tags, "technology")
}

func TestBuildConfig_SectionOrderIsCanonical(t *testing.T) {
	svc := NewTestConfigService()

	cfg := svc.BuildConfig("IELTS", "Beginner", false, []string{"speaking", "listening"}, nil)

	assert.Equal(t, []string{"listening", "speaking"}, cfg.SectionOrder)
	assert.Contains(t, cfg.Title, "Listening & Speaking")
}
