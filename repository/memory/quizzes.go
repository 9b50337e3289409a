package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
)

type quizRepository struct {
	s *Store
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := quiz.BeforeCreate(nil); err != nil {
		return err
	}
	for i := range quiz.Questions {
		if err := quiz.Questions[i].BeforeCreate(nil); err != nil {
			return err
		}
		quiz.Questions[i].QuizID = quiz.ID
	}
	stamp(&quiz.CreatedAt, &quiz.UpdatedAt)
	r.s.quizzes = append(r.s.quizzes, copyQuiz(quiz))
	return nil
}

func (r *quizRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if q := r.s.quizByID(id); q != nil {
		return q, nil
	}
	return nil, repository.ErrNotFound
}

func (r *quizRepository) list(match func(*models.Quiz) bool) []models.Quiz {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []models.Quiz{}
	for _, q := range r.s.quizzes {
		if match(q) {
			matched = append(matched, *copyQuiz(q))
		}
	}
	return newestFirst(matched, func(q models.Quiz) time.Time { return q.CreatedAt })
}

func (r *quizRepository) ListByCreator(ctx context.Context, teacherID uuid.UUID) ([]models.Quiz, error) {
	return r.list(func(q *models.Quiz) bool { return q.CreatedByID == teacherID }), nil
}

func (r *quizRepository) ListByBatch(ctx context.Context, batch models.Batch) ([]models.Quiz, error) {
	return r.list(func(q *models.Quiz) bool { return q.Batch() == batch }), nil
}

func (r *quizRepository) ListIDsByCreator(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for _, q := range r.list(func(q *models.Quiz) bool { return q.CreatedByID == teacherID }) {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

type submissionRepository struct {
	s *Store
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, sub := range r.s.submissions {
		if sub.QuizID == submission.QuizID && sub.StudentID == submission.StudentID {
			return repository.ErrDuplicate
		}
	}
	if err := submission.BeforeCreate(nil); err != nil {
		return err
	}
	stamp(&submission.CreatedAt, &submission.UpdatedAt)
	cp := *submission
	cp.Student = nil
	r.s.submissions = append(r.s.submissions, &cp)
	return nil
}

func (r *submissionRepository) Exists(ctx context.Context, quizID, studentID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sub := range r.s.submissions {
		if sub.QuizID == quizID && sub.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *submissionRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]models.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Submission{}
	for _, sub := range r.s.submissions {
		if sub.QuizID == quizID {
			cp := *sub
			cp.Student = r.s.studentByID(sub.StudentID)
			out = append(out, cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return out, nil
}

func (r *submissionRepository) ListQuizIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := []uuid.UUID{}
	for _, sub := range r.s.submissions {
		if sub.StudentID == studentID {
			ids = append(ids, sub.QuizID)
		}
	}
	return ids, nil
}

func (r *submissionRepository) ListByQuizzes(ctx context.Context, quizIDs []uuid.UUID) ([]models.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Submission{}
	for _, sub := range r.s.submissions {
		if contains(quizIDs, sub.QuizID) {
			out = append(out, *sub)
		}
	}
	return out, nil
}

type attemptRepository struct {
	s *Store
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.attempts {
		if a.StudentID == attempt.StudentID && a.QuizID == attempt.QuizID {
			return repository.ErrDuplicate
		}
	}
	if err := attempt.BeforeCreate(nil); err != nil {
		return err
	}
	stamp(&attempt.CreatedAt, &attempt.UpdatedAt)
	cp := *attempt
	cp.Student, cp.Quiz = nil, nil
	r.s.attempts = append(r.s.attempts, &cp)
	return nil
}

func (r *attemptRepository) list(match func(*models.QuizAttempt) bool) []models.QuizAttempt {
	matched := []models.QuizAttempt{}
	for _, a := range r.s.attempts {
		if match(a) {
			cp := *a
			cp.Student = r.s.studentByID(a.StudentID)
			cp.Quiz = r.s.quizByID(a.QuizID)
			matched = append(matched, cp)
		}
	}
	return newestFirst(matched, func(a models.QuizAttempt) time.Time { return a.SubmittedAt })
}

func (r *attemptRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.QuizAttempt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.list(func(a *models.QuizAttempt) bool { return a.StudentID == studentID }), nil
}

func (r *attemptRepository) ListByStudents(ctx context.Context, studentIDs []uuid.UUID) ([]models.QuizAttempt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.list(func(a *models.QuizAttempt) bool { return contains(studentIDs, a.StudentID) }), nil
}

func (r *attemptRepository) CountByStudent(ctx context.Context, studentIDs, quizIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[uuid.UUID]int)
	for _, a := range r.s.attempts {
		if contains(studentIDs, a.StudentID) && contains(quizIDs, a.QuizID) {
			counts[a.StudentID]++
		}
	}
	return counts, nil
}
