package repository

import (
	"github.com/lshigami/testforge/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	CreateInBatches(questions []model.Question, batchSize int) error
	FindByTestID(testID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateInBatches(questions []model.Question, batchSize int) error {
	return r.db.CreateInBatches(questions, batchSize).Error
}

func (r *questionRepository) FindByTestID(testID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("test_id = ?", testID).Order("order_in_test ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
