package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"gorm.io/gorm"
)

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

// Create inserts the quiz and its questions in one transaction.
func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
	return translate(err)
}

func (r *quizRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &quiz, nil
}

func (r *quizRepository) ListByCreator(ctx context.Context, teacherID uuid.UUID) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		Where("created_by_id = ?", teacherID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, translate(err)
}

func (r *quizRepository) ListByBatch(ctx context.Context, batch models.Batch) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		Where("regulation = ? AND year = ? AND semester = ?", batch.Regulation, batch.Year, batch.Semester).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, translate(err)
}

func (r *quizRepository) ListIDsByCreator(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.WithContext(ctx).Model(&models.Quiz{}).Where("created_by_id = ?", teacherID).Pluck("id", &ids).Error
	return ids, translate(err)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return translate(r.db.WithContext(ctx).Create(submission).Error)
}

func (r *submissionRepository) Exists(ctx context.Context, quizID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *submissionRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("quiz_id = ?", quizID).
		Order("total_score DESC").
		Find(&submissions).Error
	return submissions, translate(err)
}

func (r *submissionRepository) ListQuizIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.WithContext(ctx).Model(&models.Submission{}).Where("student_id = ?", studentID).Pluck("quiz_id", &ids).Error
	return ids, translate(err)
}

func (r *submissionRepository) ListByQuizzes(ctx context.Context, quizIDs []uuid.UUID) ([]models.Submission, error) {
	if len(quizIDs) == 0 {
		return []models.Submission{}, nil
	}
	var submissions []models.Submission
	err := r.db.WithContext(ctx).Where("quiz_id IN ?", quizIDs).Find(&submissions).Error
	return submissions, translate(err)
}
