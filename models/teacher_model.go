package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Teacher struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"_id"`
	EmployeeID     string    `gorm:"size:50;not null;uniqueIndex" json:"employeeId"`
	EmployeeName   string    `gorm:"size:255;not null" json:"employeeName"`
	SubjectDealing string    `gorm:"size:255;not null" json:"subjectDealing"`
	Section        string    `gorm:"size:10;not null;index" json:"section"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Role           Role      `gorm:"size:20;not null;default:'teacher';<-:create" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Teacher) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.Role = RoleTeacher
	return nil
}

func (t *Teacher) PrincipalID() uuid.UUID { return t.ID }
func (t *Teacher) PrincipalRole() Role { return RoleTeacher }
func (t *Teacher) PrincipalEmail() string { return t.Email }
func (t *Teacher) PasswordHash() string { return t.Password }
func (t *Teacher) DisplayName() string { return t.EmployeeName }
