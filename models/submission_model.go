package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EvaluatedAnswer struct {
	QuestionID   uuid.UUID `json:"questionId"`
	Answer       string    `json:"answer"`
	IsCorrect    bool      `json:"isCorrect"`
	EarnedPoints int       `json:"earnedPoints"`
}

// Submission is the once-only record of a student's answers to a quiz.
type Submission struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"_id"`
	QuizID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_submission_quiz_student,priority:1" json:"quiz"`
	StudentID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_submission_quiz_student,priority:2" json:"student"`
	Answers     []EvaluatedAnswer `gorm:"-" json:"answers"`
	AnswersData datatypes.JSON    `gorm:"column:answers;type:jsonb;not null" json:"-"`
	TotalScore  int               `gorm:"not null;default:0" json:"totalScore"`
	MaxScore    int               `gorm:"not null" json:"maxScore"`
	SubmittedAt time.Time         `gorm:"not null" json:"submittedAt"`

	Student *Student `gorm:"foreignkey:StudentID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	data, err := json.Marshal(s.Answers)
	if err != nil {
		return err
	}
	s.AnswersData = datatypes.JSON(data)
	return nil
}

func (s *Submission) AfterFind(tx *gorm.DB) error {
	if len(s.AnswersData) == 0 {
		return nil
	}
	return json.Unmarshal(s.AnswersData, &s.Answers)
}
