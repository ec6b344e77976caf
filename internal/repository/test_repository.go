package repository

import (
	"github.com/lshigami/testforge/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindPublishedWithQuestionCount() ([]TestWithQuestionCount, error)
	UpdateFields(id uint, fields map[string]interface{}) error
}

type TestWithQuestionCount struct {
	model.Test
	QuestionCount int
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_test ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindPublishedWithQuestionCount() ([]TestWithQuestionCount, error) {
	var results []TestWithQuestionCount
	err := r.db.Model(&model.Test{}).
		Select("tests.*, (SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id AND questions.deleted_at IS NULL) as question_count").
		Where("tests.is_published = ? AND tests.deleted_at IS NULL", true).
		Order("tests.created_at DESC").
		Scan(&results).Error
	return results, err
}

// UpdateFields applies a partial update, used for status transitions
// (draft→published/failed) and popularity/completion stats.
func (r *testRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.Test{}).Where("id = ?", id).Updates(fields).Error
}
