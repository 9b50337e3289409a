package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	RollNo     string    `gorm:"size:50;not null;uniqueIndex" json:"rollNo"`
	Section    string    `gorm:"size:10;not null;index:idx_student_batch" json:"section"`
	Year       int       `gorm:"not null;index:idx_student_batch" json:"year"`
	Semester   int       `gorm:"not null;default:1;index:idx_student_batch" json:"semester"`
	Regulation string    `gorm:"size:10;not null;default:'R22';index:idx_student_batch" json:"regulation"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	Role       Role      `gorm:"size:20;not null;default:'student';<-:create" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Role = RoleStudent
	return nil
}

func (s *Student) Batch() Batch {
	return Batch{Regulation: s.Regulation, Year: s.Year, Semester: s.Semester}
}

func (s *Student) PrincipalID() uuid.UUID { return s.ID }
func (s *Student) PrincipalRole() Role { return RoleStudent }
func (s *Student) PrincipalEmail() string { return s.Email }
func (s *Student) PasswordHash() string { return s.Password }
func (s *Student) DisplayName() string { return s.Name }
