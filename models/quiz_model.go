package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionMCQ         QuestionType = "MCQ"
	QuestionFITB        QuestionType = "FITB"
	QuestionDescriptive QuestionType = "DESCRIPTIVE"
)

// AutoGraded reports whether answers to this type are scored by string match.
func (t QuestionType) AutoGraded() bool {
	return t == QuestionMCQ || t == QuestionFITB
}

type QuizStatus string

const (
	QuizScheduled QuizStatus = "SCHEDULED"
	QuizAvailable QuizStatus = "AVAILABLE"
	QuizClosed    QuizStatus = "CLOSED"
)

type Question struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"_id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Position      int            `gorm:"not null" json:"-"`
	Type          QuestionType   `gorm:"size:20;not null" json:"type" validate:"required,oneof=MCQ FITB DESCRIPTIVE"`
	Text          string         `gorm:"type:text;not null" json:"text" validate:"required"`
	Options       pq.StringArray `gorm:"type:text[]" json:"options"`
	CorrectAnswer string         `gorm:"type:text" json:"correctAnswer,omitempty" validate:"required_unless=Type DESCRIPTIVE"`
	Points        int            `gorm:"not null;default:1" json:"points" validate:"min=1"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type Quiz struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"_id"`
	Title       string     `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description string     `gorm:"size:1000" json:"description" validate:"max=1000"`
	Subject     string     `gorm:"size:255;not null;index:idx_quiz_subject_unit" json:"subject" validate:"required"`
	Unit        int        `gorm:"not null;default:1;index:idx_quiz_subject_unit" json:"unit" validate:"min=1,max=5"`
	Regulation  string     `gorm:"size:10;not null;default:'R22';index:idx_quiz_batch" json:"regulation" validate:"oneof=R19 R20 R22"`
	Year        int        `gorm:"not null;default:2;index:idx_quiz_batch" json:"year" validate:"oneof=1 2 3 4"`
	Semester    int        `gorm:"not null;default:1;index:idx_quiz_batch" json:"semester" validate:"oneof=1 2"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"createdBy"`
	Questions   []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions" validate:"min=1,dive"`
	TimeLimit   int        `gorm:"not null;default:30" json:"timeLimit" validate:"min=1,max=180"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// ApplyDefaults fills the fields a client may omit.
func (q *Quiz) ApplyDefaults() {
	q.Title = strings.TrimSpace(q.Title)
	q.Description = strings.TrimSpace(q.Description)
	q.Subject = strings.TrimSpace(q.Subject)
	if q.Unit == 0 {
		q.Unit = 1
	}
	if q.Regulation == "" {
		q.Regulation = PinnedRegulation
	}
	if q.Year == 0 {
		q.Year = PinnedYear
	}
	if q.Semester == 0 {
		q.Semester = PinnedSemester
	}
	if q.TimeLimit == 0 {
		q.TimeLimit = 30
	}
	for i := range q.Questions {
		q.Questions[i].Position = i
		if q.Questions[i].Points == 0 {
			q.Questions[i].Points = 1
		}
		if q.Questions[i].Options == nil {
			q.Questions[i].Options = pq.StringArray{}
		}
	}
}

// TotalMarks is the sum of question points.
func (q *Quiz) TotalMarks() int {
	total := 0
	for _, question := range q.Questions {
		if question.Points > 0 {
			total += question.Points
		} else {
			total++
		}
	}
	return total
}

func (q *Quiz) Status(now time.Time) QuizStatus {
	if q.StartTime != nil && q.StartTime.After(now) {
		return QuizScheduled
	}
	if q.EndTime != nil && q.EndTime.Before(now) {
		return QuizClosed
	}
	return QuizAvailable
}

func (q *Quiz) Batch() Batch {
	return Batch{Regulation: q.Regulation, Year: q.Year, Semester: q.Semester}
}

func (q *Quiz) QuestionByID(id uuid.UUID) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

func (q Quiz) MarshalJSON() ([]byte, error) {
	type quiz Quiz
	return json.Marshal(struct {
		quiz
		TotalMarks int `json:"totalMarks"`
	}{quiz(q), q.TotalMarks()})
}
