package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
	"github.com/prepwise/prepwise_api/repository/memory"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testDomain = "@vnrvjiet.in"

type fixture struct {
	repos     repository.Repositories
	auth      *AuthService
	quizzes   *QuizService
	notes     *NoteService
	analytics *AnalyticsService
	files     *memoryFiles
	events    *recordingPublisher
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.New().Repositories()
	f := &fixture{
		repos:  repos,
		files:  &memoryFiles{data: map[string]string{}},
		events: &recordingPublisher{},
		now:    time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	}
	tokens, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	f.auth = NewAuthService(repos, tokens, testDomain)
	f.quizzes = NewQuizService(repos, f.events)
	f.quizzes.SetClock(func() time.Time { return f.now })
	f.notes = NewNoteService(repos, f.files, "http://localhost:5000")
	f.notes.now = func() time.Time { return f.now }
	f.analytics = NewAnalyticsService(repos)
	return f
}

func (f *fixture) teacher(t *testing.T, employeeID, section string) *models.Teacher {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	teacher := &models.Teacher{
		EmployeeID:     employeeID,
		EmployeeName:   "Teacher " + employeeID,
		SubjectDealing: "Operating System",
		Section:        section,
		Email:          strings.ToLower(employeeID) + testDomain,
		Password:       string(hashed),
	}
	require.NoError(t, f.repos.Teachers.Create(context.Background(), teacher))
	return teacher
}

func (f *fixture) student(t *testing.T, rollNo, section string) *models.Student {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	student := &models.Student{
		Name:       "Student " + rollNo,
		RollNo:     rollNo,
		Section:    section,
		Year:       models.PinnedYear,
		Semester:   models.PinnedSemester,
		Regulation: models.PinnedRegulation,
		Email:      strings.ToLower(rollNo) + testDomain,
		Password:   string(hashed),
	}
	require.NoError(t, f.repos.Students.Create(context.Background(), student))
	return student
}

func sampleQuizInput() CreateQuizInput {
	return CreateQuizInput{
		Title:   "Processes",
		Subject: "Operating System",
		Unit:    2,
		Questions: []QuestionInput{
			{Type: models.QuestionMCQ, Text: "1+1?", Options: []string{"1", "2", "3"}, CorrectAnswer: "2", Points: 2},
			{Type: models.QuestionFITB, Text: "Capital of France", CorrectAnswer: "Paris", Points: 3},
			{Type: models.QuestionDescriptive, Text: "Explain scheduling", Points: 4},
		},
	}
}

func (f *fixture) quiz(t *testing.T, teacher *models.Teacher, input CreateQuizInput) *models.Quiz {
	t.Helper()
	quiz, err := f.quizzes.Create(context.Background(), teacher, input)
	require.NoError(t, err)
	return quiz
}

func answersFor(quiz *models.Quiz, values ...string) []AnswerInput {
	answers := make([]AnswerInput, 0, len(values))
	for i, v := range values {
		answers = append(answers, AnswerInput{QuestionID: quiz.Questions[i].ID.String(), Answer: v})
	}
	return answers
}

type memoryFiles struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryFiles) Save(ctx context.Context, folder, name string, r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	ref := "uploads/" + folder + "/" + name
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[ref] = string(body)
	return ref, nil
}

func (m *memoryFiles) Remove(ctx context.Context, fileURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, fileURL)
	return nil
}

func (m *memoryFiles) has(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[ref]
	return ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	events map[uuid.UUID][]SubmissionEvent
}

func (p *recordingPublisher) PublishSubmission(teacherID uuid.UUID, event SubmissionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = make(map[uuid.UUID][]SubmissionEvent)
	}
	p.events[teacherID] = append(p.events[teacherID], event)
}

func (p *recordingPublisher) For(teacherID uuid.UUID) []SubmissionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[teacherID]
}

func requireStatus(t *testing.T, err error, code int, message string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, StatusOf(err), err.Error())
	if message != "" {
		require.Equal(t, message, err.Error())
	}
}
