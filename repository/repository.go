package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prepwise/prepwise_api/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error)
	FindByEmail(ctx context.Context, email string) (*models.Teacher, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error)
	ListIDsBySection(ctx context.Context, section string) ([]uuid.UUID, error)
}

// StudentFilter narrows a student listing. Zero values are ignored.
type StudentFilter struct {
	Section string
	Batch   *models.Batch
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByRollNo(ctx context.Context, rollNo string) (*models.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]models.Student, error)
}

// NoteFilter narrows a note listing. UploadedBy is always applied when non-nil,
// so an empty slice matches nothing.
type NoteFilter struct {
	UploadedBy []uuid.UUID
	Batch      *models.Batch
	Subject    string
	Unit       int
}

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	FindOwned(ctx context.Context, id, teacherID uuid.UUID) (*models.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter NoteFilter) ([]models.Note, error)
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	ListByCreator(ctx context.Context, teacherID uuid.UUID) ([]models.Quiz, error)
	ListByBatch(ctx context.Context, batch models.Batch) ([]models.Quiz, error)
	ListIDsByCreator(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error)
}

type SubmissionRepository interface {
	// Create returns ErrDuplicate when the student already submitted the quiz.
	Create(ctx context.Context, submission *models.Submission) error
	Exists(ctx context.Context, quizID, studentID uuid.UUID) (bool, error)
	ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]models.Submission, error)
	ListQuizIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
	ListByQuizzes(ctx context.Context, quizIDs []uuid.UUID) ([]models.Submission, error)
}

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.QuizAttempt, error)
	ListByStudents(ctx context.Context, studentIDs []uuid.UUID) ([]models.QuizAttempt, error)
	CountByStudent(ctx context.Context, studentIDs, quizIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// Repositories bundles every store the services need.
type Repositories struct {
	Teachers    TeacherRepository
	Students    StudentRepository
	Notes       NoteRepository
	Quizzes     QuizRepository
	Submissions SubmissionRepository
	Attempts    AttemptRepository
}

func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Teachers:    NewTeacherRepository(db),
		Students:    NewStudentRepository(db),
		Notes:       NewNoteRepository(db),
		Quizzes:     NewQuizRepository(db),
		Submissions: NewSubmissionRepository(db),
		Attempts:    NewAttemptRepository(db),
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
