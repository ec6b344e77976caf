package service

import (
	"context"
	"errors"

	"github.com/lshigami/testforge/internal/model"
	"github.com/lshigami/testforge/internal/repository"
	"gorm.io/gorm"
)

// In-memory doubles for the repository interfaces, so the pipeline is tested
// without a database.

type fakeTestRepo struct {
	tests     map[uint]*model.Test
	nextID    uint
	updates   []fieldUpdate
	createErr error
	updateErr error
	questions *fakeQuestionRepo
}

type fieldUpdate struct {
	id     uint
	fields map[string]interface{}
}

func newFakeTestRepo() *fakeTestRepo {
	return &fakeTestRepo{tests: make(map[uint]*model.Test), nextID: 1}
}

func (r *fakeTestRepo) Create(test *model.Test) error {
	if r.createErr != nil {
		return r.createErr
	}
	test.ID = r.nextID
	r.nextID++
	copied := *test
	r.tests[test.ID] = &copied
	return nil
}

func (r *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	test, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *test
	return &copied, nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	test, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if r.questions != nil {
		test.Questions, _ = r.questions.FindByTestID(id)
	}
	return test, nil
}

func (r *fakeTestRepo) FindPublishedWithQuestionCount() ([]repository.TestWithQuestionCount, error) {
	var results []repository.TestWithQuestionCount
	for _, test := range r.tests {
		if !test.IsPublished {
			continue
		}
		count := 0
		if r.questions != nil {
			qs, _ := r.questions.FindByTestID(test.ID)
			count = len(qs)
		}
		results = append(results, repository.TestWithQuestionCount{Test: *test, QuestionCount: count})
	}
	return results, nil
}

func (r *fakeTestRepo) UpdateFields(id uint, fields map[string]interface{}) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, fieldUpdate{id: id, fields: fields})
	test, ok := r.tests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := fields["status"].(string); ok {
		test.Status = status
	}
	if published, ok := fields["is_published"].(bool); ok {
		test.IsPublished = published
	}
	return nil
}

type fakeQuestionRepo struct {
	created    []model.Question
	batchSizes []int
	nextID     uint
	createErr  error
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{nextID: 1}
}

func (r *fakeQuestionRepo) CreateInBatches(questions []model.Question, batchSize int) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.batchSizes = append(r.batchSizes, batchSize)
	for _, q := range questions {
		q.ID = r.nextID
		r.nextID++
		r.created = append(r.created, q)
	}
	return nil
}

func (r *fakeQuestionRepo) FindByTestID(testID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.created {
		if q.TestID == testID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeAttemptRepo struct {
	attempts map[uint]*model.TestAttempt
	nextID   uint
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: make(map[uint]*model.TestAttempt), nextID: 1}
}

func (r *fakeAttemptRepo) Create(attempt *model.TestAttempt) error {
	attempt.ID = r.nextID
	r.nextID++
	for i := range attempt.Answers {
		attempt.Answers[i].ID = uint(i + 1)
		attempt.Answers[i].TestAttemptID = attempt.ID
	}
	copied := *attempt
	r.attempts[attempt.ID] = &copied
	return nil
}

func (r *fakeAttemptRepo) FindByIDWithDetails(id uint) (*model.TestAttempt, error) {
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *attempt
	return &copied, nil
}

func (r *fakeAttemptRepo) CountByTestID(testID uint) (int64, error) {
	var count int64
	for _, attempt := range r.attempts {
		if attempt.TestID == testID {
			count++
		}
	}
	return count, nil
}

type fakeLLMClient struct {
	response string
	err      error
	calls    int
}

func (c *fakeLLMClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

var errFakeStorage = errors.New("storage unavailable")
