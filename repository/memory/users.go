package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
)

type teacherRepository struct {
	s *Store
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.teachers {
		if t.Email == teacher.Email || t.EmployeeID == teacher.EmployeeID {
			return repository.ErrDuplicate
		}
	}
	if err := teacher.BeforeCreate(nil); err != nil {
		return err
	}
	stamp(&teacher.CreatedAt, &teacher.UpdatedAt)
	cp := *teacher
	r.s.teachers = append(r.s.teachers, &cp)
	return nil
}

func (r *teacherRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if t := r.s.teacherByID(id); t != nil {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (r *teacherRepository) find(match func(*models.Teacher) bool) (*models.Teacher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.teachers {
		if match(t) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *teacherRepository) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	return r.find(func(t *models.Teacher) bool { return t.Email == email })
}

func (r *teacherRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error) {
	return r.find(func(t *models.Teacher) bool { return t.EmployeeID == employeeID })
}

func (r *teacherRepository) ListIDsBySection(ctx context.Context, section string) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := []uuid.UUID{}
	for _, t := range r.s.teachers {
		if t.Section == section {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

type studentRepository struct {
	s *Store
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, st := range r.s.students {
		if st.Email == student.Email || st.RollNo == student.RollNo {
			return repository.ErrDuplicate
		}
	}
	if err := student.BeforeCreate(nil); err != nil {
		return err
	}
	stamp(&student.CreatedAt, &student.UpdatedAt)
	cp := *student
	r.s.students = append(r.s.students, &cp)
	return nil
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if st := r.s.studentByID(id); st != nil {
		return st, nil
	}
	return nil, repository.ErrNotFound
}

func (r *studentRepository) find(match func(*models.Student) bool) (*models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, st := range r.s.students {
		if match(st) {
			cp := *st
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return st.Email == email })
}

func (r *studentRepository) FindByRollNo(ctx context.Context, rollNo string) (*models.Student, error) {
	return r.find(func(st *models.Student) bool { return st.RollNo == rollNo })
}

func (r *studentRepository) List(ctx context.Context, filter repository.StudentFilter) ([]models.Student, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Student{}
	for _, st := range r.s.students {
		if filter.Section != "" && st.Section != filter.Section {
			continue
		}
		if filter.Batch != nil && st.Batch() != *filter.Batch {
			continue
		}
		out = append(out, *st)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RollNo < out[j].RollNo })
	return out, nil
}
