package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
)

type noteRepository struct {
	s *Store
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := note.BeforeCreate(nil); err != nil {
		return err
	}
	stamp(&note.CreatedAt, &note.UpdatedAt)
	cp := *note
	cp.UploadedBy = nil
	r.s.notes = append(r.s.notes, &cp)
	return nil
}

func (r *noteRepository) FindOwned(ctx context.Context, id, teacherID uuid.UUID) (*models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, n := range r.s.notes {
		if n.ID == id && n.UploadedByID == teacherID {
			cp := *n
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, n := range r.s.notes {
		if n.ID == id {
			r.s.notes = append(r.s.notes[:i], r.s.notes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *noteRepository) List(ctx context.Context, filter repository.NoteFilter) ([]models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []models.Note{}
	for _, n := range r.s.notes {
		if filter.UploadedBy != nil && !contains(filter.UploadedBy, n.UploadedByID) {
			continue
		}
		if filter.Batch != nil && (n.Regulation != filter.Batch.Regulation || n.Year != filter.Batch.Year || n.Semester != filter.Batch.Semester) {
			continue
		}
		if filter.Subject != "" && n.Subject != filter.Subject {
			continue
		}
		if filter.Unit != 0 && n.Unit != filter.Unit {
			continue
		}
		cp := *n
		cp.UploadedBy = r.s.teacherByID(n.UploadedByID)
		matched = append(matched, cp)
	}
	return newestFirst(matched, func(n models.Note) time.Time { return n.CreatedAt }), nil
}
