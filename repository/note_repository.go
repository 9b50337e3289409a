package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"gorm.io/gorm"
)

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	return translate(r.db.WithContext(ctx).Create(note).Error)
}

func (r *noteRepository) FindOwned(ctx context.Context, id, teacherID uuid.UUID) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND uploaded_by_id = ?", id, teacherID).
		First(&note).Error
	if err != nil {
		return nil, translate(err)
	}
	return &note, nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Note{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *noteRepository) List(ctx context.Context, filter NoteFilter) ([]models.Note, error) {
	query := r.db.WithContext(ctx).Preload("UploadedBy")
	if filter.UploadedBy != nil {
		if len(filter.UploadedBy) == 0 {
			return []models.Note{}, nil
		}
		query = query.Where("uploaded_by_id IN ?", filter.UploadedBy)
	}
	if filter.Batch != nil {
		query = query.Where("regulation = ? AND year = ? AND semester = ?",
			filter.Batch.Regulation, filter.Batch.Year, filter.Batch.Semester)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Unit != 0 {
		query = query.Where("unit = ?", filter.Unit)
	}

	var notes []models.Note
	err := query.Order("created_at DESC").Find(&notes).Error
	return notes, translate(err)
}
