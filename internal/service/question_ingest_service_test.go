package service

import (
	"testing"

	"github.com/lshigami/testforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIngestFixture() (*questionIngestService, *fakeTestRepo, *fakeQuestionRepo) {
	questionRepo := newFakeQuestionRepo()
	testRepo := newFakeTestRepo()
	testRepo.questions = questionRepo
	svc := NewQuestionIngestService(questionRepo, testRepo, NewSampleContentService()).(*questionIngestService)
	return svc, testRepo, questionRepo
}

func TestNormalize_SampleDocumentRoundTrips(t *testing.T) {
	svc, _, _ := newIngestFixture()
	sample := NewSampleContentService()

	for _, testType := range []string{"TOEIC", "IELTS"} {
		sections := []string{"listening", "reading"}
		if testType == "IELTS" {
			sections = []string{"listening", "reading", "writing", "speaking"}
		}
		doc := sample.SampleDocument(testType, sections)

		questions, skips := svc.Normalize(testType, doc)

		assert.Empty(t, skips, "%s sample document must normalize without drops", testType)
		assert.Equal(t, doc.TotalQuestions(), len(questions), "%s sample document question count must survive normalization", testType)
	}
}

func TestNormalize_TypeCanonicalization(t *testing.T) {
	svc, _, _ := newIngestFixture()

	tests := []struct {
		rawType  string
		section  string
		wantType string
	}{
		{"Multiple Choice", "listening", model.QuestionTypeSingle},
		{"single", "reading", model.QuestionTypeSingle},
		{"multi-select", "reading", model.QuestionTypeMultiple},
		{"fill in the blank", "reading", model.QuestionTypeFill},
		{"sentence completion", "listening", model.QuestionTypeFill},
		{"Essay", "writing", model.QuestionTypeEssay},
		{"writing task", "writing", model.QuestionTypeEssay},
		{"Speaking prompt", "speaking", model.QuestionTypeSpeaking},
		{"oral interview", "speaking", model.QuestionTypeSpeaking},
		{"matching", "reading", "matching"}, // unmatched passes through
		{"", "listening", model.QuestionTypeSingle},
		{"", "reading", model.QuestionTypeSingle},
		{"", "writing", model.QuestionTypeEssay},
		{"", "speaking", model.QuestionTypeSpeaking},
	}

	for _, tt := range tests {
		doc := &GeneratedTestDocument{Sections: map[string]GeneratedSection{
			tt.section: {Parts: []GeneratedPart{{
				Part:      1,
				Questions: []RawQuestion{{Text: "Question text", Type: tt.rawType}},
			}}},
		}}
		questions, skips := svc.Normalize("TOEIC", doc)
		require.Len(t, questions, 1, "type %q", tt.rawType)
		assert.Empty(t, skips)
		assert.Equal(t, tt.wantType, questions[0].Type, "raw type %q in %s", tt.rawType, tt.section)
	}
}

func TestNormalize_CorrectAnswerRepair(t *testing.T) {
	svc, _, _ := newIngestFixture()

	doc := &GeneratedTestDocument{Sections: map[string]GeneratedSection{
		"reading": {Parts: []GeneratedPart{{
			Part: 1,
			Questions: []RawQuestion{
				{Text: "Q1", Type: "single", Options: FlexStrings{"Paris", "London"}, CorrectAnswer: "Berlin"},
				{Text: "Q2", Type: "single", Options: FlexStrings{"Paris", "London"}, CorrectAnswer: ""},
				{Text: "Q3", Type: "single", Options: FlexStrings{"Paris", "London"}, CorrectAnswer: "london"},
				{Text: "Q4", Type: "multiple", CorrectAnswer: ""},
			},
		}}},
	}}

	questions, _ := svc.Normalize("TOEIC", doc)
	require.Len(t, questions, 4)

	// Answer not in options is replaced by the first option.
	assert.Equal(t, "Paris", questions[0].CorrectAnswer)
	// Absent answer is replaced by the first option.
	assert.Equal(t, "Paris", questions[1].CorrectAnswer)
	// Case-insensitive match resolves to the stored option spelling.
	assert.Equal(t, "London", questions[2].CorrectAnswer)
	// No options at all: literal "A".
	assert.Equal(t, "A", questions[3].CorrectAnswer)

	for _, q := range questions {
		if (q.Type == model.QuestionTypeSingle || q.Type == model.QuestionTypeMultiple) && len(q.Options) > 0 {
			assert.Contains(t, q.Options, q.CorrectAnswer, "invariant: correctAnswer must be an element of options")
		}
	}
}

func TestNormalize_SingleWithFewOptionsGetsPlaceholders(t *testing.T) {
	svc, _, _ := newIngestFixture()

	doc := &GeneratedTestDocument{Sections: map[string]GeneratedSection{
		"listening": {Parts: []GeneratedPart{{
			Part:      2,
			Questions: []RawQuestion{{Text: "Pick one", Type: "single", Options: FlexStrings{"Yes"}}},
		}}},
	}}

	questions, _ := svc.Normalize("TOEIC", doc)
	require.Len(t, questions, 1)
	assert.Len(t, questions[0].Options, 4)
	assert.Equal(t, "Yes", questions[0].Options[0])
	assert.Contains(t, questions[0].Options, questions[0].CorrectAnswer)
}

func TestNormalize_SkipReasons(t *testing.T) {
	svc, _, _ := newIngestFixture()

	doc := &GeneratedTestDocument{Sections: map[string]GeneratedSection{
		"listening": {}, // no parts
		"reading": {Parts: []GeneratedPart{
			{Part: 1}, // no questions
			{Part: 2, Questions: []RawQuestion{
				{Text: ""},                 // no text
				{Text: "A real question?"}, // kept
			}},
		}},
	}}

	questions, skips := svc.Normalize("TOEIC", doc)

	require.Len(t, questions, 1)
	require.Len(t, skips, 3)
	reasons := make(map[string]bool)
	for _, skip := range skips {
		reasons[skip.Reason] = true
	}
	assert.True(t, reasons["section has no parts"])
	assert.True(t, reasons["part has no questions"])
	assert.True(t, reasons["question has no text"])
}

func TestNormalize_GroupIDDefaultsToPart(t *testing.T) {
	svc, _, _ := newIngestFixture()

	doc := &GeneratedTestDocument{Sections: map[string]GeneratedSection{
		"reading": {Parts: []GeneratedPart{
			{Part: 3, Questions: []RawQuestion{{Text: "Q"}}},
			{Part: 4, GroupID: 99, Questions: []RawQuestion{{Text: "Q"}}},
		}},
	}}

	questions, _ := svc.Normalize("TOEIC", doc)
	require.Len(t, questions, 2)
	assert.Equal(t, 3, questions[0].GroupID)
	assert.Equal(t, 99, questions[1].GroupID)
}

func TestIngestDocument_PersistsAndPublishes(t *testing.T) {
	svc, testRepo, questionRepo := newIngestFixture()
	test := &model.Test{Title: "T", TestType: "TOEIC", Status: model.TestStatusDraft}
	require.NoError(t, testRepo.Create(test))

	doc := NewSampleContentService().SampleDocument("TOEIC", []string{"listening"})
	count, err := svc.IngestDocument(test.ID, "TOEIC", doc)
	require.NoError(t, err)

	assert.Equal(t, doc.TotalQuestions(), count)
	assert.GreaterOrEqual(t, count, minUsableQuestions)
	assert.Len(t, questionRepo.created, count)
	assert.Equal(t, []int{questionBatchSize}, questionRepo.batchSizes)

	// Orders are unique and monotonically assigned.
	for i, q := range questionRepo.created {
		assert.Equal(t, i+1, q.OrderInTest)
		assert.Equal(t, test.ID, q.TestID)
	}

	published, err := testRepo.FindByID(test.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	assert.Equal(t, model.TestStatusPublished, published.Status)
}

func TestIngestDocument_TopsUpToMinimum(t *testing.T) {
	svc, testRepo, questionRepo := newIngestFixture()
	test := &model.Test{Title: "T", TestType: "TOEIC"}
	require.NoError(t, testRepo.Create(test))

	doc := &GeneratedTestDocument{Sections: map[string]GeneratedSection{
		"reading": {Parts: []GeneratedPart{{
			Part: 1,
			Questions: []RawQuestion{
				{Text: "Q1", Type: "single", Options: FlexStrings{"A", "B"}, CorrectAnswer: "A"},
				{Text: "Q2", Type: "single", Options: FlexStrings{"A", "B"}, CorrectAnswer: "B"},
				{Text: "Q3", Type: "single", Options: FlexStrings{"A", "B"}, CorrectAnswer: "A"},
			},
		}}},
	}}

	count, err := svc.IngestDocument(test.ID, "TOEIC", doc)
	require.NoError(t, err)
	assert.Equal(t, minUsableQuestions, count)
	require.Len(t, questionRepo.created, minUsableQuestions)

	// Top-up samples take orders after the normalized questions.
	orders := make([]int, 0, len(questionRepo.created))
	for _, q := range questionRepo.created {
		orders = append(orders, q.OrderInTest)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, orders)
}

func TestIngestDocument_PreservesIDDerivedOrder(t *testing.T) {
	svc, testRepo, questionRepo := newIngestFixture()
	test := &model.Test{Title: "T", TestType: "TOEIC"}
	require.NoError(t, testRepo.Create(test))

	doc := &GeneratedTestDocument{Sections: map[string]GeneratedSection{
		"reading": {Parts: []GeneratedPart{{
			Part: 1,
			Questions: []RawQuestion{
				{ID: 40, Text: "Q40", Type: "single", Options: FlexStrings{"A", "B"}, CorrectAnswer: "A"},
				{ID: 10, Text: "Q10", Type: "single", Options: FlexStrings{"A", "B"}, CorrectAnswer: "A"},
				{ID: 25, Text: "Q25", Type: "single", Options: FlexStrings{"A", "B"}, CorrectAnswer: "B"},
				{ID: 20, Text: "Q20", Type: "single", Options: FlexStrings{"A", "B"}, CorrectAnswer: "B"},
				{ID: 30, Text: "Q30", Type: "single", Options: FlexStrings{"A", "B"}, CorrectAnswer: "A"},
			},
		}}},
	}}

	count, err := svc.IngestDocument(test.ID, "TOEIC", doc)
	require.NoError(t, err)
	require.Equal(t, 5, count)

	// Sparse id-derived orders are persisted verbatim, sorted ascending.
	wantOrders := []int{10, 20, 25, 30, 40}
	wantContents := []string{"Q10", "Q20", "Q25", "Q30", "Q40"}
	for i, q := range questionRepo.created {
		assert.Equal(t, wantOrders[i], q.OrderInTest)
		assert.Equal(t, wantContents[i], q.Content)
	}
}

func TestIngestDocument_EmptyDocumentGetsSampleSet(t *testing.T) {
	svc, testRepo, questionRepo := newIngestFixture()
	test := &model.Test{Title: "T", TestType: "IELTS"}
	require.NoError(t, testRepo.Create(test))

	count, err := svc.IngestDocument(test.ID, "IELTS", &GeneratedTestDocument{Sections: map[string]GeneratedSection{}})
	require.NoError(t, err)
	assert.Equal(t, 20, count)
	assert.Len(t, questionRepo.created, 20)
}

func TestIngestDocument_StorageFailureIsFatal(t *testing.T) {
	svc, testRepo, questionRepo := newIngestFixture()
	test := &model.Test{Title: "T", TestType: "TOEIC"}
	require.NoError(t, testRepo.Create(test))
	questionRepo.createErr = errFakeStorage

	doc := NewSampleContentService().SampleDocument("TOEIC", []string{"listening"})
	_, err := svc.IngestDocument(test.ID, "TOEIC", doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, errFakeStorage)

	stored, findErr := testRepo.FindByID(test.ID)
	require.NoError(t, findErr)
	assert.False(t, stored.IsPublished)
}
