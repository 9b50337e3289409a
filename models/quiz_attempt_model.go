package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizAttempt is a denormalised copy of a submission's result, kept for analytics.
type QuizAttempt struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"_id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_student_quiz,priority:1;index:idx_attempt_student_submitted,priority:1" json:"-"`
	QuizID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_student_quiz,priority:2;index" json:"-"`
	Subject     string    `gorm:"size:255;not null;index:idx_attempt_subject_unit" json:"subject"`
	Unit        int       `gorm:"not null;index:idx_attempt_subject_unit" json:"unit"`
	Regulation  string    `gorm:"size:10;not null" json:"regulation"`
	Year        int       `gorm:"not null" json:"year"`
	Semester    int       `gorm:"not null" json:"semester"`
	Score       int       `gorm:"not null;default:0" json:"score"`
	TotalMarks  int       `gorm:"not null" json:"totalMarks"`
	Accuracy    int       `gorm:"not null;default:0" json:"accuracy"`
	TimeTaken   int       `gorm:"not null;default:0" json:"timeTaken"`
	SubmittedAt time.Time `gorm:"not null;index:idx_attempt_student_submitted,priority:2,sort:desc" json:"submittedAt"`

	Student *Student `gorm:"foreignkey:StudentID" json:"-"`
	Quiz    *Quiz    `gorm:"foreignkey:QuizID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Percentage is score/totalMarks*100 for this attempt alone.
func (a *QuizAttempt) Percentage() float64 {
	if a.TotalMarks == 0 {
		return 0
	}
	return float64(a.Score) / float64(a.TotalMarks) * 100
}
