package models

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuiz() Quiz {
	return Quiz{
		Title:   "Unit test",
		Subject: "Operating System",
		Questions: []Question{
			{Type: QuestionMCQ, Text: "1+1?", Options: pq.StringArray{"1", "2"}, CorrectAnswer: "2"},
		},
	}
}

func TestQuizValidate(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	tests := []struct {
		name    string
		mutate  func(q *Quiz)
		wantMsg []string
	}{
		{name: "valid", mutate: func(q *Quiz) {}},
		{
			name:    "mcq needs two options",
			mutate:  func(q *Quiz) { q.Questions[0].Options = pq.StringArray{"only"} },
			wantMsg: []string{"MCQ questions must have at least 2 options."},
		},
		{
			name:    "fitb needs correct answer",
			mutate:  func(q *Quiz) { q.Questions[0] = Question{Type: QuestionFITB, Text: "Capital?"} },
			wantMsg: []string{"Correct answer is required for MCQ and FITB questions"},
		},
		{
			name:   "descriptive needs no answer",
			mutate: func(q *Quiz) { q.Questions[0] = Question{Type: QuestionDescriptive, Text: "Explain paging"} },
		},
		{
			name:    "unknown type",
			mutate:  func(q *Quiz) { q.Questions[0].Type = "ESSAY" },
			wantMsg: []string{"Question type must be MCQ, FITB, or DESCRIPTIVE"},
		},
		{
			name:    "subject outside allow-list for R22",
			mutate:  func(q *Quiz) { q.Subject = "Astrology" },
			wantMsg: []string{"Subject must be one of: Software Engineering, Operating System, Design and Analysis of Algorithm, Computer Organisation, Economics and Engineering Accountancy"},
		},
		{
			name:   "any subject for R19",
			mutate: func(q *Quiz) { q.Subject = "Astrology"; q.Regulation = "R19" },
		},
		{
			name:    "no questions",
			mutate:  func(q *Quiz) { q.Questions = nil },
			wantMsg: []string{"Quiz must have at least one question"},
		},
		{
			name:    "end before start",
			mutate:  func(q *Quiz) { q.StartTime = &start; q.EndTime = &before },
			wantMsg: []string{"End time must be after start time"},
		},
		{
			name:    "time limit too long",
			mutate:  func(q *Quiz) { q.TimeLimit = 181 },
			wantMsg: []string{"Time limit must be between 1 and 180 minutes"},
		},
		{
			name: "messages are collected",
			mutate: func(q *Quiz) {
				q.Title = ""
				q.Unit = 9
			},
			wantMsg: []string{"Quiz title is required", "Unit must be between 1 and 5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuiz()
			tt.mutate(&q)
			q.ApplyDefaults()

			err := q.Validate()
			if len(tt.wantMsg) == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ElementsMatch(t, tt.wantMsg, verr.Messages)
		})
	}
}

func TestQuizDefaultsAndTotalMarks(t *testing.T) {
	q := Quiz{
		Title:   "Marks",
		Subject: "Software Engineering",
		Questions: []Question{
			{Type: QuestionMCQ, Text: "a", Options: pq.StringArray{"x", "y"}, CorrectAnswer: "x", Points: 3},
			{Type: QuestionFITB, Text: "b", CorrectAnswer: "z"},
			{Type: QuestionDescriptive, Text: "c", Points: 5},
		},
	}
	q.ApplyDefaults()

	assert.Equal(t, 1, q.Unit)
	assert.Equal(t, "R22", q.Regulation)
	assert.Equal(t, 2, q.Year)
	assert.Equal(t, 1, q.Semester)
	assert.Equal(t, 30, q.TimeLimit)
	assert.Equal(t, 1, q.Questions[1].Points)
	assert.Equal(t, 9, q.TotalMarks())
}

func TestQuizStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  QuizStatus
	}{
		{name: "no window", want: QuizAvailable},
		{name: "starts later", start: &future, want: QuizScheduled},
		{name: "open window", start: &past, end: &future, want: QuizAvailable},
		{name: "ended", start: &past, end: &past, want: QuizClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quiz{StartTime: tt.start, EndTime: tt.end}
			assert.Equal(t, tt.want, q.Status(now))
		})
	}
}

func TestNoteFullFileURL(t *testing.T) {
	tests := []struct {
		stored string
		want   string
	}{
		{stored: "uploads/Operating System/1700000000000-paging.pdf", want: "http://localhost:5000/uploads/Operating System/1700000000000-paging.pdf"},
		{stored: `C:\srv\backend\uploads\General\a.pdf`, want: "http://localhost:5000/uploads/General/a.pdf"},
		{stored: "https://res.cloudinary.com/demo/raw/upload/a.pdf", want: "https://res.cloudinary.com/demo/raw/upload/a.pdf"},
	}
	for _, tt := range tests {
		n := Note{FileURL: tt.stored}
		assert.Equal(t, tt.want, n.FullFileURL("http://localhost:5000/"))
	}
}
