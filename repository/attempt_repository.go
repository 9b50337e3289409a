package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"gorm.io/gorm"
)

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	return translate(r.db.WithContext(ctx).Create(attempt).Error)
}

func (r *attemptRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, translate(err)
}

func (r *attemptRepository) ListByStudents(ctx context.Context, studentIDs []uuid.UUID) ([]models.QuizAttempt, error) {
	if len(studentIDs) == 0 {
		return []models.QuizAttempt{}, nil
	}
	var attempts []models.QuizAttempt
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id IN ?", studentIDs).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, translate(err)
}

func (r *attemptRepository) CountByStudent(ctx context.Context, studentIDs, quizIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	if len(studentIDs) == 0 || len(quizIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		StudentID uuid.UUID
		Count     int
	}
	err := r.db.WithContext(ctx).Model(&models.QuizAttempt{}).
		Select("student_id, COUNT(*) AS count").
		Where("student_id IN ? AND quiz_id IN ?", studentIDs, quizIDs).
		Group("student_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, row := range rows {
		counts[row.StudentID] = row.Count
	}
	return counts, nil
}
