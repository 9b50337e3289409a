// Package memory is a process-local implementation of the repository interfaces.
// It enforces the same unique constraints as the SQL schema and is used for
// development without Postgres and by the test suites.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
)

type Store struct {
	mu sync.RWMutex

	teachers    []*models.Teacher
	students    []*models.Student
	notes       []*models.Note
	quizzes     []*models.Quiz
	submissions []*models.Submission
	attempts    []*models.QuizAttempt
}

func New() *Store {
	return &Store{}
}

func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Teachers:    &teacherRepository{s},
		Students:    &studentRepository{s},
		Notes:       &noteRepository{s},
		Quizzes:     &quizRepository{s},
		Submissions: &submissionRepository{s},
		Attempts:    &attemptRepository{s},
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = *created
	}
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// newestFirst sorts by the given timestamp, most recent first; ties keep the
// latest insertion first.
func newestFirst[T any](items []T, at func(T) time.Time) []T {
	out := make([]T, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return at(out[i]).After(at(out[j])) })
	return out
}

func (s *Store) teacherByID(id uuid.UUID) *models.Teacher {
	for _, t := range s.teachers {
		if t.ID == id {
			cp := *t
			return &cp
		}
	}
	return nil
}

func (s *Store) studentByID(id uuid.UUID) *models.Student {
	for _, st := range s.students {
		if st.ID == id {
			cp := *st
			return &cp
		}
	}
	return nil
}

func (s *Store) quizByID(id uuid.UUID) *models.Quiz {
	for _, q := range s.quizzes {
		if q.ID == id {
			return copyQuiz(q)
		}
	}
	return nil
}

func copyQuiz(q *models.Quiz) *models.Quiz {
	cp := *q
	cp.Questions = append([]models.Question(nil), q.Questions...)
	return &cp
}
