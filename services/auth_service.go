package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
	"github.com/prepwise/prepwise_api/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

const minPasswordLength = 6

type RegisterTeacherInput struct {
	EmployeeID      string `json:"employeeId" validate:"required"`
	EmployeeName    string `json:"employeeName" validate:"required"`
	SubjectDealing  string `json:"subjectDealing" validate:"required"`
	Section         string `json:"section" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type RegisterStudentInput struct {
	Name            string        `json:"name" validate:"required"`
	RollNo          string        `json:"rollNo" validate:"required"`
	Section         string        `json:"section" validate:"required"`
	Year            utils.FlexInt `json:"year"`
	Email           string        `json:"email" validate:"required"`
	Password        string        `json:"password" validate:"required"`
	ConfirmPassword string        `json:"confirmPassword" validate:"required"`
}

type LoginInput struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type TeacherAccount struct {
	ID             uuid.UUID   `json:"id"`
	EmployeeID     string      `json:"employeeId"`
	EmployeeName   string      `json:"employeeName"`
	SubjectDealing string      `json:"subjectDealing"`
	Section        string      `json:"section"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
}

type StudentAccount struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	RollNo  string      `json:"rollNo"`
	Section string      `json:"section"`
	Year    int         `json:"year"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
}

// SessionUser is the account summary returned on login.
type SessionUser struct {
	ID    uuid.UUID   `json:"id"`
	Role  models.Role `json:"role"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type StudentPerformanceSummary struct {
	QuizzesAttempted  int    `json:"quizzesAttempted"`
	TotalScore        int    `json:"totalScore"`
	MaxScore          int    `json:"maxScore"`
	AveragePercentage string `json:"averagePercentage"`
}

type SectionStudent struct {
	*models.Student
	Performance StudentPerformanceSummary `json:"performance"`
}

type SectionRoster struct {
	Section  string           `json:"section"`
	Students []SectionStudent `json:"students"`
}

type AuthService struct {
	repos       repository.Repositories
	principals  *PrincipalStore
	tokens      *TokenIssuer
	emailDomain string
}

func NewAuthService(repos repository.Repositories, tokens *TokenIssuer, emailDomain string) *AuthService {
	return &AuthService{
		repos:       repos,
		principals:  NewPrincipalStore(repos.Teachers, repos.Students),
		tokens:      tokens,
		emailDomain: strings.ToLower(emailDomain),
	}
}

func (s *AuthService) Tokens() *TokenIssuer {
	return s.tokens
}

// checkCredentials runs the checks shared by both registration forms, in the
// order clients expect to see them. No storage is touched here.
func (s *AuthService) checkCredentials(input any, email, password, confirm string) error {
	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return BadRequest("All fields are required including confirmPassword")
		}
		return err
	}
	if password != confirm {
		return BadRequest("Passwords do not match")
	}
	if !strings.HasSuffix(email, s.emailDomain) {
		return BadRequest(fmt.Sprintf("Invalid email. Only %s emails are allowed.", s.emailDomain))
	}
	return nil
}

func accountMessages(email, password string) []string {
	var messages []string
	if err := validate.Var(email, "email"); err != nil {
		messages = append(messages, "Please enter a valid email address")
	}
	if len(password) < minPasswordLength {
		messages = append(messages, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	return messages
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *AuthService) RegisterTeacher(ctx context.Context, input RegisterTeacherInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.checkCredentials(input, input.Email, input.Password, input.ConfirmPassword); err != nil {
		return nil, err
	}

	messages := accountMessages(input.Email, input.Password)
	if !models.IsAllowedSubject(strings.TrimSpace(input.SubjectDealing)) {
		messages = append(messages, "Subject must be one of: "+strings.Join(models.AllowedSubjects, ", "))
	}
	if len(messages) > 0 {
		return nil, BadRequest(strings.Join(messages, ", "))
	}

	if _, err := s.repos.Teachers.FindByEmail(ctx, input.Email); err == nil {
		return nil, BadRequest("A teacher with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	employeeID := strings.ToUpper(strings.TrimSpace(input.EmployeeID))
	if _, err := s.repos.Teachers.FindByEmployeeID(ctx, employeeID); err == nil {
		return nil, BadRequest("Employee ID is already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		EmployeeID:     employeeID,
		EmployeeName:   strings.TrimSpace(input.EmployeeName),
		SubjectDealing: strings.TrimSpace(input.SubjectDealing),
		Section:        strings.ToUpper(strings.TrimSpace(input.Section)),
		Email:          input.Email,
		Password:       hashed,
	}
	if err := s.repos.Teachers.Create(ctx, teacher); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, BadRequest("A teacher with this email or employee ID already exists")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(teacher)
	if err != nil {
		return nil, err
	}
	log.Info().Str("teacher_id", teacher.ID.String()).Msg("teacher registered")

	return &AuthResult{Token: token, User: TeacherAccount{
		ID:             teacher.ID,
		EmployeeID:     teacher.EmployeeID,
		EmployeeName:   teacher.EmployeeName,
		SubjectDealing: teacher.SubjectDealing,
		Section:        teacher.Section,
		Email:          teacher.Email,
		Role:           models.RoleTeacher,
	}}, nil
}

func (s *AuthService) RegisterStudent(ctx context.Context, input RegisterStudentInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.checkCredentials(input, input.Email, input.Password, input.ConfirmPassword); err != nil {
		return nil, err
	}
	if input.Year != 0 && (input.Year < 1 || input.Year > 4) {
		return nil, BadRequest("Year must be 1, 2, 3, or 4")
	}
	if messages := accountMessages(input.Email, input.Password); len(messages) > 0 {
		return nil, BadRequest(strings.Join(messages, ", "))
	}

	if _, err := s.repos.Students.FindByEmail(ctx, input.Email); err == nil {
		return nil, BadRequest("A student with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	rollNo := strings.ToUpper(strings.TrimSpace(input.RollNo))
	if _, err := s.repos.Students.FindByRollNo(ctx, rollNo); err == nil {
		return nil, BadRequest("Roll number is already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:       strings.TrimSpace(input.Name),
		RollNo:     rollNo,
		Section:    strings.ToUpper(strings.TrimSpace(input.Section)),
		Year:       models.PinnedYear,
		Semester:   models.PinnedSemester,
		Regulation: models.PinnedRegulation,
		Email:      input.Email,
		Password:   hashed,
	}
	if err := s.repos.Students.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, BadRequest("A student with this email or roll number already exists")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(student)
	if err != nil {
		return nil, err
	}
	log.Info().Str("student_id", student.ID.String()).Msg("student registered")

	return &AuthResult{Token: token, User: StudentAccount{
		ID:      student.ID,
		Name:    student.Name,
		RollNo:  student.RollNo,
		Section: student.Section,
		Year:    student.Year,
		Email:   student.Email,
		Role:    models.RoleStudent,
	}}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" || input.Role == "" {
		return nil, BadRequest("email, password, and role are required")
	}
	if !input.Role.Valid() {
		return nil, BadRequest("Role must be 'teacher' or 'student'")
	}

	var (
		principal models.Principal
		err       error
	)
	switch input.Role {
	case models.RoleTeacher:
		var t *models.Teacher
		if t, err = s.repos.Teachers.FindByEmail(ctx, email); err == nil {
			principal = t
		}
	case models.RoleStudent:
		var st *models.Student
		if st, err = s.repos.Students.FindByEmail(ctx, email); err == nil {
			principal = st
		}
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash()), []byte(input.Password)); err != nil {
		return nil, Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: SessionUser{
		ID:    principal.PrincipalID(),
		Role:  principal.PrincipalRole(),
		Email: principal.PrincipalEmail(),
		Name:  principal.DisplayName(),
	}}, nil
}

// Authenticate verifies a raw bearer token and loads its account.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (models.Principal, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, Unauthorized("Not authorized, invalid token")
	}
	return s.LoadPrincipal(ctx, claims)
}

// LoadPrincipal re-reads the account named by verified claims.
func (s *AuthService) LoadPrincipal(ctx context.Context, claims *Claims) (models.Principal, error) {
	principal, err := s.principals.Find(ctx, claims.Role, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, errUnknownRole) {
			return nil, Unauthorized("User no longer exists")
		}
		return nil, err
	}
	return principal, nil
}

// MyStudents lists the teacher's section with a score summary over the
// teacher's own quizzes.
func (s *AuthService) MyStudents(ctx context.Context, teacher *models.Teacher) (*SectionRoster, error) {
	students, err := s.repos.Students.List(ctx, repository.StudentFilter{Section: teacher.Section})
	if err != nil {
		return nil, err
	}
	quizIDs, err := s.repos.Quizzes.ListIDsByCreator(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.repos.Submissions.ListByQuizzes(ctx, quizIDs)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uuid.UUID]*StudentPerformanceSummary)
	for _, sub := range submissions {
		summary, ok := byStudent[sub.StudentID]
		if !ok {
			summary = &StudentPerformanceSummary{}
			byStudent[sub.StudentID] = summary
		}
		summary.QuizzesAttempted++
		summary.TotalScore += sub.TotalScore
		summary.MaxScore += sub.MaxScore
	}

	roster := &SectionRoster{Section: teacher.Section, Students: make([]SectionStudent, 0, len(students))}
	for i := range students {
		summary := StudentPerformanceSummary{AveragePercentage: "N/A"}
		if found, ok := byStudent[students[i].ID]; ok {
			summary = *found
		}
		if summary.MaxScore > 0 {
			summary.AveragePercentage = fmt.Sprintf("%.1f%%", float64(summary.TotalScore)/float64(summary.MaxScore)*100)
		} else {
			summary.AveragePercentage = "N/A"
		}
		roster.Students = append(roster.Students, SectionStudent{Student: &students[i], Performance: summary})
	}
	return roster, nil
}
