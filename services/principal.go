package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
)

type principalFinder func(ctx context.Context, id uuid.UUID) (models.Principal, error)

// PrincipalStore resolves a token's role to the repository holding that account.
type PrincipalStore struct {
	finders map[models.Role]principalFinder
}

func NewPrincipalStore(teachers repository.TeacherRepository, students repository.StudentRepository) *PrincipalStore {
	return &PrincipalStore{finders: map[models.Role]principalFinder{
		models.RoleTeacher: func(ctx context.Context, id uuid.UUID) (models.Principal, error) {
			t, err := teachers.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
		models.RoleStudent: func(ctx context.Context, id uuid.UUID) (models.Principal, error) {
			s, err := students.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	}}
}

var errUnknownRole = errors.New("unknown role")

func (s *PrincipalStore) Find(ctx context.Context, role models.Role, id uuid.UUID) (models.Principal, error) {
	find, ok := s.finders[role]
	if !ok {
		return nil, errUnknownRole
	}
	return find(ctx, id)
}
