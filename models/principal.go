package models

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// Principal is an authenticated account of either role.
type Principal interface {
	PrincipalID() uuid.UUID
	PrincipalRole() Role
	PrincipalEmail() string
	PasswordHash() string
	DisplayName() string
}

// The batch every registration, note and analytics query is pinned to in this deployment.
const (
	PinnedRegulation = "R22"
	PinnedYear       = 2
	PinnedSemester   = 1
)

var Regulations = []string{"R19", "R20", "R22"}

var AllowedSubjects = []string{
	"Software Engineering",
	"Operating System",
	"Design and Analysis of Algorithm",
	"Computer Organisation",
	"Economics and Engineering Accountancy",
}

func IsAllowedSubject(subject string) bool {
	for _, s := range AllowedSubjects {
		if s == subject {
			return true
		}
	}
	return false
}

// Batch identifies a curriculum cohort.
type Batch struct {
	Regulation string
	Year       int
	Semester   int
}

func PinnedBatch() Batch {
	return Batch{Regulation: PinnedRegulation, Year: PinnedYear, Semester: PinnedSemester}
}
