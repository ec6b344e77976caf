package repository

import (
	"github.com/lshigami/testforge/internal/model"
	"gorm.io/gorm"
)

type TestAttemptRepository interface {
	Create(attempt *model.TestAttempt) error
	FindByIDWithDetails(id uint) (*model.TestAttempt, error)
	CountByTestID(testID uint) (int64, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) FindByIDWithDetails(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.
		Preload("Test").
		Preload("Answers").
		Preload("Answers.Question").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) CountByTestID(testID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.TestAttempt{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}
