package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueConstraints(t *testing.T) {
	repos := New().Repositories()
	ctx := context.Background()

	require.NoError(t, repos.Teachers.Create(ctx, &models.Teacher{EmployeeID: "E1", Email: "a@x.in"}))
	assert.ErrorIs(t, repos.Teachers.Create(ctx, &models.Teacher{EmployeeID: "E2", Email: "a@x.in"}), repository.ErrDuplicate)
	assert.ErrorIs(t, repos.Teachers.Create(ctx, &models.Teacher{EmployeeID: "E1", Email: "b@x.in"}), repository.ErrDuplicate)

	require.NoError(t, repos.Students.Create(ctx, &models.Student{RollNo: "R1", Email: "s@x.in"}))
	assert.ErrorIs(t, repos.Students.Create(ctx, &models.Student{RollNo: "R1", Email: "t@x.in"}), repository.ErrDuplicate)

	quizID, studentID := uuid.New(), uuid.New()
	require.NoError(t, repos.Submissions.Create(ctx, &models.Submission{QuizID: quizID, StudentID: studentID}))
	assert.ErrorIs(t, repos.Submissions.Create(ctx, &models.Submission{QuizID: quizID, StudentID: studentID}), repository.ErrDuplicate)

	require.NoError(t, repos.Attempts.Create(ctx, &models.QuizAttempt{QuizID: quizID, StudentID: studentID, SubmittedAt: time.Now()}))
	assert.ErrorIs(t, repos.Attempts.Create(ctx, &models.QuizAttempt{QuizID: quizID, StudentID: studentID, SubmittedAt: time.Now()}), repository.ErrDuplicate)
}

func TestCreateAssignsIdentity(t *testing.T) {
	repos := New().Repositories()
	ctx := context.Background()

	quiz := &models.Quiz{Title: "Q", Questions: []models.Question{{Text: "a"}, {Text: "b"}}}
	require.NoError(t, repos.Quizzes.Create(ctx, quiz))
	assert.NotEqual(t, uuid.Nil, quiz.ID)
	assert.False(t, quiz.CreatedAt.IsZero())
	for _, q := range quiz.Questions {
		assert.NotEqual(t, uuid.Nil, q.ID)
		assert.Equal(t, quiz.ID, q.QuizID)
	}

	stored, err := repos.Quizzes.FindByID(ctx, quiz.ID)
	require.NoError(t, err)
	stored.Questions[0].Text = "changed"
	again, err := repos.Quizzes.FindByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", again.Questions[0].Text)

	_, err = repos.Quizzes.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNoteListing(t *testing.T) {
	repos := New().Repositories()
	ctx := context.Background()
	teacher := &models.Teacher{EmployeeID: "E1", Email: "a@x.in", EmployeeName: "Rao"}
	require.NoError(t, repos.Teachers.Create(ctx, teacher))

	for _, title := range []string{"first", "second"} {
		require.NoError(t, repos.Notes.Create(ctx, &models.Note{Title: title, Unit: 1, UploadedByID: teacher.ID}))
	}

	notes, err := repos.Notes.List(ctx, repository.NoteFilter{UploadedBy: []uuid.UUID{teacher.ID}})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Title)
	require.NotNil(t, notes[0].UploadedBy)
	assert.Equal(t, "Rao", notes[0].UploadedBy.EmployeeName)
	newest := notes[0].ID

	notes, err = repos.Notes.List(ctx, repository.NoteFilter{UploadedBy: []uuid.UUID{}})
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = repos.Notes.FindOwned(ctx, newest, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	owned, err := repos.Notes.FindOwned(ctx, newest, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", owned.Title)
}

func TestAttemptCounts(t *testing.T) {
	repos := New().Repositories()
	ctx := context.Background()
	s1, s2 := uuid.New(), uuid.New()
	q1, q2, foreign := uuid.New(), uuid.New(), uuid.New()

	for _, a := range []struct{ student, quiz uuid.UUID }{{s1, q1}, {s1, q2}, {s1, foreign}, {s2, q1}} {
		require.NoError(t, repos.Attempts.Create(ctx, &models.QuizAttempt{StudentID: a.student, QuizID: a.quiz, SubmittedAt: time.Now()}))
	}

	counts, err := repos.Attempts.CountByStudent(ctx, []uuid.UUID{s1, s2}, []uuid.UUID{q1, q2})
	require.NoError(t, err)
	assert.Equal(t, 2, counts[s1])
	assert.Equal(t, 1, counts[s2])
}
