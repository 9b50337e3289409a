package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTeacherInput() RegisterTeacherInput {
	return RegisterTeacherInput{
		EmployeeID:      "emp01",
		EmployeeName:    "Dr. Rao",
		SubjectDealing:  "Operating System",
		Section:         "a",
		Email:           "Rao@VNRVJIET.in",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func validStudentInput() RegisterStudentInput {
	return RegisterStudentInput{
		Name:            "Asha",
		RollNo:          "22071a0501",
		Section:         "a",
		Year:            3,
		Email:           "asha@vnrvjiet.in",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterTeacher(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.auth.RegisterTeacher(ctx, validTeacherInput())
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	account, ok := result.User.(TeacherAccount)
	require.True(t, ok)
	assert.Equal(t, "EMP01", account.EmployeeID)
	assert.Equal(t, "A", account.Section)
	assert.Equal(t, "rao@vnrvjiet.in", account.Email)
	assert.Equal(t, models.RoleTeacher, account.Role)

	stored, err := f.repos.Teachers.FindByEmail(ctx, "rao@vnrvjiet.in")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)

	claims, err := f.auth.Tokens().Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.ID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestRegisterTeacherRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *RegisterTeacherInput)
		message string
	}{
		{"missing confirm", func(in *RegisterTeacherInput) { in.ConfirmPassword = "" }, "All fields are required including confirmPassword"},
		{"missing section", func(in *RegisterTeacherInput) { in.Section = "" }, "All fields are required including confirmPassword"},
		{"mismatch", func(in *RegisterTeacherInput) { in.ConfirmPassword = "other1" }, "Passwords do not match"},
		{"foreign domain", func(in *RegisterTeacherInput) { in.Email = "rao@gmail.com" }, "Invalid email. Only @vnrvjiet.in emails are allowed."},
		{"short password", func(in *RegisterTeacherInput) { in.Password, in.ConfirmPassword = "abc", "abc" }, "Password must be at least 6 characters"},
		{"unknown subject", func(in *RegisterTeacherInput) { in.SubjectDealing = "Chemistry" },
			"Subject must be one of: Software Engineering, Operating System, Design and Analysis of Algorithm, Computer Organisation, Economics and Engineering Accountancy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validTeacherInput()
			tt.mutate(&in)

			_, err := f.auth.RegisterTeacher(context.Background(), in)
			requireStatus(t, err, http.StatusBadRequest, tt.message)

			_, err = f.repos.Teachers.FindByEmployeeID(context.Background(), "EMP01")
			assert.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestRegisterTeacherDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.RegisterTeacher(ctx, validTeacherInput())
	require.NoError(t, err)

	sameEmail := validTeacherInput()
	sameEmail.EmployeeID = "EMP02"
	_, err = f.auth.RegisterTeacher(ctx, sameEmail)
	requireStatus(t, err, http.StatusBadRequest, "A teacher with this email already exists")

	sameID := validTeacherInput()
	sameID.Email = "other@vnrvjiet.in"
	sameID.EmployeeID = "Emp01"
	_, err = f.auth.RegisterTeacher(ctx, sameID)
	requireStatus(t, err, http.StatusBadRequest, "Employee ID is already registered")
}

func TestRegisterStudent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.auth.RegisterStudent(ctx, validStudentInput())
	require.NoError(t, err)

	account := result.User.(StudentAccount)
	assert.Equal(t, "22071A0501", account.RollNo)
	assert.Equal(t, models.PinnedYear, account.Year)

	stored, err := f.repos.Students.FindByRollNo(ctx, "22071A0501")
	require.NoError(t, err)
	assert.Equal(t, models.PinnedBatch(), stored.Batch())
	assert.Equal(t, "A", stored.Section)

	dup := validStudentInput()
	dup.Email = "other@vnrvjiet.in"
	_, err = f.auth.RegisterStudent(ctx, dup)
	requireStatus(t, err, http.StatusBadRequest, "Roll number is already registered")

	dup = validStudentInput()
	dup.RollNo = "22071A0599"
	_, err = f.auth.RegisterStudent(ctx, dup)
	requireStatus(t, err, http.StatusBadRequest, "A student with this email already exists")
}

func TestRegisterStudentRejections(t *testing.T) {
	f := newFixture(t)

	in := validStudentInput()
	in.Year = 7
	_, err := f.auth.RegisterStudent(context.Background(), in)
	requireStatus(t, err, http.StatusBadRequest, "Year must be 1, 2, 3, or 4")

	in = validStudentInput()
	in.Email = "asha@example.com"
	_, err = f.auth.RegisterStudent(context.Background(), in)
	requireStatus(t, err, http.StatusBadRequest, "Invalid email. Only @vnrvjiet.in emails are allowed.")

	_, err = f.repos.Students.FindByEmail(context.Background(), "asha@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.teacher(t, "EMP09", "B")
	student := f.student(t, "R100", "B")

	t.Run("teacher", func(t *testing.T) {
		result, err := f.auth.Login(ctx, LoginInput{Email: "EMP09@VNRVJIET.IN", Password: "secret1", Role: models.RoleTeacher})
		require.NoError(t, err)
		user := result.User.(SessionUser)
		assert.Equal(t, teacher.ID, user.ID)
		assert.Equal(t, teacher.EmployeeName, user.Name)
	})

	t.Run("student", func(t *testing.T) {
		result, err := f.auth.Login(ctx, LoginInput{Email: student.Email, Password: "secret1", Role: models.RoleStudent})
		require.NoError(t, err)
		assert.Equal(t, student.Name, result.User.(SessionUser).Name)
	})

	tests := []struct {
		name    string
		input   LoginInput
		code    int
		message string
	}{
		{"missing role", LoginInput{Email: student.Email, Password: "secret1"}, http.StatusBadRequest, "email, password, and role are required"},
		{"bad role", LoginInput{Email: student.Email, Password: "secret1", Role: "admin"}, http.StatusBadRequest, "Role must be 'teacher' or 'student'"},
		{"wrong password", LoginInput{Email: student.Email, Password: "nope", Role: models.RoleStudent}, http.StatusUnauthorized, "Invalid credentials"},
		{"wrong role", LoginInput{Email: student.Email, Password: "secret1", Role: models.RoleTeacher}, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown email", LoginInput{Email: "ghost@vnrvjiet.in", Password: "secret1", Role: models.RoleStudent}, http.StatusUnauthorized, "Invalid credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Login(ctx, tt.input)
			requireStatus(t, err, tt.code, tt.message)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.student(t, "R200", "C")

	token, err := f.auth.Tokens().Issue(student)
	require.NoError(t, err)

	principal, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, student.ID, principal.PrincipalID())
	_, ok := principal.(*models.Student)
	assert.True(t, ok)

	_, err = f.auth.Authenticate(ctx, token+"x")
	requireStatus(t, err, http.StatusUnauthorized, "Not authorized, invalid token")

	_, err = f.auth.LoadPrincipal(ctx, &Claims{ID: uuid.New(), Role: models.RoleStudent})
	requireStatus(t, err, http.StatusUnauthorized, "User no longer exists")

	other, err := NewTokenIssuer("another-secret", 0)
	require.NoError(t, err)
	forged, err := other.Issue(student)
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, forged)
	requireStatus(t, err, http.StatusUnauthorized, "Not authorized, invalid token")
}

func TestMyStudents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.teacher(t, "EMP01", "A")
	otherTeacher := f.teacher(t, "EMP02", "A")
	s2 := f.student(t, "R002", "A")
	s1 := f.student(t, "R001", "A")
	f.student(t, "R003", "B")

	own := f.quiz(t, teacher, sampleQuizInput())
	foreign := f.quiz(t, otherTeacher, sampleQuizInput())

	_, err := f.quizzes.Submit(ctx, s1, own.ID, SubmitQuizInput{Answers: answersFor(own, "2", "paris")})
	require.NoError(t, err)
	_, err = f.quizzes.Submit(ctx, s1, foreign.ID, SubmitQuizInput{Answers: answersFor(foreign, "2", "paris")})
	require.NoError(t, err)

	roster, err := f.auth.MyStudents(ctx, teacher)
	require.NoError(t, err)

	assert.Equal(t, "A", roster.Section)
	require.Len(t, roster.Students, 2)
	assert.Equal(t, s1.ID, roster.Students[0].ID)
	assert.Equal(t, s2.ID, roster.Students[1].ID)

	assert.Equal(t, StudentPerformanceSummary{QuizzesAttempted: 1, TotalScore: 5, MaxScore: 9, AveragePercentage: "55.6%"}, roster.Students[0].Performance)
	assert.Equal(t, "N/A", roster.Students[1].Performance.AveragePercentage)
}
