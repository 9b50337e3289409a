package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
	"github.com/prepwise/prepwise_api/utils"
)

const (
	overviewRecentAttempts      = 10
	myPerformanceRecentAttempts = 5
)

type QuizSummary struct {
	ID         uuid.UUID `json:"_id"`
	Title      string    `json:"title"`
	Subject    string    `json:"subject"`
	Unit       int       `json:"unit"`
	TimeLimit  int       `json:"timeLimit"`
	TotalMarks int       `json:"totalMarks"`
}

// AttemptView is a QuizAttempt with its quiz and student summarised.
type AttemptView struct {
	ID          uuid.UUID       `json:"_id"`
	Subject     string          `json:"subject"`
	Unit        int             `json:"unit"`
	Regulation  string          `json:"regulation"`
	Year        int             `json:"year"`
	Semester    int             `json:"semester"`
	Score       int             `json:"score"`
	TotalMarks  int             `json:"totalMarks"`
	Accuracy    int             `json:"accuracy"`
	TimeTaken   int             `json:"timeTaken"`
	SubmittedAt time.Time       `json:"submittedAt"`
	QuizInfo    *QuizSummary    `json:"quiz,omitempty"`
	StudentInfo *StudentSummary `json:"student,omitempty"`
}

type StudentRow struct {
	ID           uuid.UUID `json:"_id"`
	Name         string    `json:"name"`
	RollNo       string    `json:"rollNo"`
	Section      string    `json:"section"`
	Email        string    `json:"email"`
	AttemptCount int       `json:"attemptCount"`
}

type SubjectBreakdown struct {
	Subject         string `json:"subject"`
	TotalAttempts   int    `json:"totalAttempts"`
	AverageScore    int    `json:"averageScore"`
	AverageAccuracy int    `json:"averageAccuracy"`
}

type UnitBreakdown struct {
	Unit            int `json:"unit"`
	TotalAttempts   int `json:"totalAttempts"`
	AverageScore    int `json:"averageScore"`
	AverageAccuracy int `json:"averageAccuracy"`
}

type StudentPerformance struct {
	Student                *StudentSummary    `json:"student"`
	TotalAttempts          int                `json:"totalAttempts"`
	OverallAverageAccuracy int                `json:"overallAverageAccuracy"`
	OverallAverageScore    int                `json:"overallAverageScore"`
	Attempts               []AttemptView      `json:"attempts"`
	SubjectWise            []SubjectBreakdown `json:"subjectWise"`
	UnitWise               []UnitBreakdown    `json:"unitWise"`
}

type SubjectAnalytics struct {
	Subject        string `json:"subject"`
	TotalAttempts  int    `json:"totalAttempts"`
	UniqueStudents int    `json:"uniqueStudents"`
	AverageScore   int    `json:"averageScore"`
}

type UnitAnalytics struct {
	Unit          int `json:"unit"`
	TotalAttempts int `json:"totalAttempts"`
	AverageScore  int `json:"averageScore"`
}

type Overview struct {
	TotalAttempts          int                `json:"totalAttempts"`
	TotalStudentsAttempted int                `json:"totalStudentsAttempted"`
	OverallAverageAccuracy int                `json:"overallAverageAccuracy"`
	SubjectAnalytics       []SubjectAnalytics `json:"subjectAnalytics"`
	UnitAnalytics          []UnitAnalytics    `json:"unitAnalytics"`
	RecentAttempts         []AttemptView      `json:"recentAttempts"`
}

type SubjectAccuracy struct {
	Subject         string `json:"subject"`
	Attempts        int    `json:"attempts"`
	AverageAccuracy int    `json:"averageAccuracy"`
}

type MyPerformance struct {
	TotalAttempts          int               `json:"totalAttempts"`
	OverallAverageAccuracy int               `json:"overallAverageAccuracy"`
	OverallPercentage      int               `json:"overallPercentage"`
	SubjectWise            []SubjectAccuracy `json:"subjectWise"`
	RecentAttempts         []AttemptView     `json:"recentAttempts"`
}

type AnalyticsService struct {
	students repository.StudentRepository
	quizzes  repository.QuizRepository
	attempts repository.AttemptRepository
}

func NewAnalyticsService(repos repository.Repositories) *AnalyticsService {
	return &AnalyticsService{
		students: repos.Students,
		quizzes:  repos.Quizzes,
		attempts: repos.Attempts,
	}
}

func sectionFilter(teacher *models.Teacher) repository.StudentFilter {
	batch := models.PinnedBatch()
	return repository.StudentFilter{Section: teacher.Section, Batch: &batch}
}

func attemptViews(attempts []models.QuizAttempt) ([]AttemptView, error) {
	views := make([]AttemptView, 0, len(attempts))
	for i := range attempts {
		a := &attempts[i]
		var view AttemptView
		if err := copier.Copy(&view, a); err != nil {
			return nil, err
		}
		if a.Quiz != nil {
			view.QuizInfo = &QuizSummary{
				ID:         a.Quiz.ID,
				Title:      a.Quiz.Title,
				Subject:    a.Quiz.Subject,
				Unit:       a.Quiz.Unit,
				TimeLimit:  a.Quiz.TimeLimit,
				TotalMarks: a.TotalMarks,
			}
		}
		if a.Student != nil {
			view.StudentInfo = &StudentSummary{
				ID:      a.Student.ID,
				Name:    a.Student.Name,
				RollNo:  a.Student.RollNo,
				Section: a.Student.Section,
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func meanRounded(total, n int) int {
	if n == 0 {
		return 0
	}
	return utils.Round(float64(total) / float64(n))
}

// Students lists the teacher's section in the current batch with how many of
// the teacher's quizzes each student attempted.
func (s *AnalyticsService) Students(ctx context.Context, teacher *models.Teacher) ([]StudentRow, error) {
	students, err := s.students.List(ctx, sectionFilter(teacher))
	if err != nil {
		return nil, err
	}
	quizIDs, err := s.quizzes.ListIDsByCreator(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}
	studentIDs := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}
	counts, err := s.attempts.CountByStudent(ctx, studentIDs, quizIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]StudentRow, 0, len(students))
	for _, st := range students {
		rows = append(rows, StudentRow{
			ID:           st.ID,
			Name:         st.Name,
			RollNo:       st.RollNo,
			Section:      st.Section,
			Email:        st.Email,
			AttemptCount: counts[st.ID],
		})
	}
	return rows, nil
}

type groupTotals struct {
	attempts int
	score    int
	marks    int
	accuracy int
	students map[uuid.UUID]struct{}
}

func (g *groupTotals) add(a *models.QuizAttempt) {
	g.attempts++
	g.score += a.Score
	g.marks += a.TotalMarks
	g.accuracy += a.Accuracy
	if g.students == nil {
		g.students = make(map[uuid.UUID]struct{})
	}
	g.students[a.StudentID] = struct{}{}
}

// groups keeps keys in first-seen order.
type groups[K comparable] struct {
	order  []K
	totals map[K]*groupTotals
}

func newGroups[K comparable]() *groups[K] {
	return &groups[K]{totals: make(map[K]*groupTotals)}
}

func (g *groups[K]) add(key K, a *models.QuizAttempt) {
	t, ok := g.totals[key]
	if !ok {
		t = &groupTotals{}
		g.totals[key] = t
		g.order = append(g.order, key)
	}
	t.add(a)
}

// StudentPerformance breaks one student's attempts down by subject and unit.
// Group averages are mean raw scores; the overall score averages per-attempt
// percentages.
func (s *AnalyticsService) StudentPerformance(ctx context.Context, studentID uuid.UUID) (*StudentPerformance, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Student not found")
		}
		return nil, err
	}
	attempts, err := s.attempts.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	subjects := newGroups[string]()
	units := newGroups[int]()
	accuracyTotal := 0
	percentTotal := 0.0
	for i := range attempts {
		a := &attempts[i]
		subjects.add(a.Subject, a)
		units.add(a.Unit, a)
		accuracyTotal += a.Accuracy
		percentTotal += a.Percentage()
	}

	out := &StudentPerformance{
		Student:                &StudentSummary{ID: student.ID, Name: student.Name, RollNo: student.RollNo, Section: student.Section},
		TotalAttempts:          len(attempts),
		OverallAverageAccuracy: meanRounded(accuracyTotal, len(attempts)),
		SubjectWise:            make([]SubjectBreakdown, 0, len(subjects.order)),
		UnitWise:               make([]UnitBreakdown, 0, len(units.order)),
	}
	if len(attempts) > 0 {
		out.OverallAverageScore = utils.Round(percentTotal / float64(len(attempts)))
	}
	for _, subject := range subjects.order {
		t := subjects.totals[subject]
		out.SubjectWise = append(out.SubjectWise, SubjectBreakdown{
			Subject:         subject,
			TotalAttempts:   t.attempts,
			AverageScore:    meanRounded(t.score, t.attempts),
			AverageAccuracy: meanRounded(t.accuracy, t.attempts),
		})
	}
	for _, unit := range units.order {
		t := units.totals[unit]
		out.UnitWise = append(out.UnitWise, UnitBreakdown{
			Unit:            unit,
			TotalAttempts:   t.attempts,
			AverageScore:    meanRounded(t.score, t.attempts),
			AverageAccuracy: meanRounded(t.accuracy, t.attempts),
		})
	}

	if out.Attempts, err = attemptViews(attempts); err != nil {
		return nil, err
	}
	return out, nil
}

// Overview aggregates every attempt by students of the teacher's section.
// Subject and unit averages are ratios of summed scores to summed marks.
func (s *AnalyticsService) Overview(ctx context.Context, teacher *models.Teacher) (*Overview, error) {
	students, err := s.students.List(ctx, sectionFilter(teacher))
	if err != nil {
		return nil, err
	}
	studentIDs := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}
	attempts, err := s.attempts.ListByStudents(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	subjects := newGroups[string]()
	units := newGroups[int]()
	everyone := &groupTotals{}
	for i := range attempts {
		a := &attempts[i]
		subjects.add(a.Subject, a)
		units.add(a.Unit, a)
		everyone.add(a)
	}

	out := &Overview{
		TotalAttempts:          len(attempts),
		TotalStudentsAttempted: len(everyone.students),
		OverallAverageAccuracy: meanRounded(everyone.accuracy, everyone.attempts),
		SubjectAnalytics:       make([]SubjectAnalytics, 0, len(subjects.order)),
		UnitAnalytics:          make([]UnitAnalytics, 0, len(units.order)),
	}
	for _, subject := range subjects.order {
		t := subjects.totals[subject]
		out.SubjectAnalytics = append(out.SubjectAnalytics, SubjectAnalytics{
			Subject:        subject,
			TotalAttempts:  t.attempts,
			UniqueStudents: len(t.students),
			AverageScore:   utils.Percent(t.score, t.marks),
		})
	}
	sort.Ints(units.order)
	for _, unit := range units.order {
		t := units.totals[unit]
		out.UnitAnalytics = append(out.UnitAnalytics, UnitAnalytics{
			Unit:          unit,
			TotalAttempts: t.attempts,
			AverageScore:  utils.Percent(t.score, t.marks),
		})
	}

	recent := attempts
	if len(recent) > overviewRecentAttempts {
		recent = recent[:overviewRecentAttempts]
	}
	if out.RecentAttempts, err = attemptViews(recent); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AnalyticsService) MyPerformance(ctx context.Context, student *models.Student) (*MyPerformance, error) {
	attempts, err := s.attempts.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	subjects := newGroups[string]()
	everyone := &groupTotals{}
	for i := range attempts {
		subjects.add(attempts[i].Subject, &attempts[i])
		everyone.add(&attempts[i])
	}

	out := &MyPerformance{
		TotalAttempts:          len(attempts),
		OverallAverageAccuracy: meanRounded(everyone.accuracy, everyone.attempts),
		OverallPercentage:      utils.Percent(everyone.score, everyone.marks),
		SubjectWise:            make([]SubjectAccuracy, 0, len(subjects.order)),
	}
	for _, subject := range subjects.order {
		t := subjects.totals[subject]
		out.SubjectWise = append(out.SubjectWise, SubjectAccuracy{
			Subject:         subject,
			Attempts:        t.attempts,
			AverageAccuracy: meanRounded(t.accuracy, t.attempts),
		})
	}

	recent := attempts
	if len(recent) > myPerformanceRecentAttempts {
		recent = recent[:myPerformanceRecentAttempts]
	}
	if out.RecentAttempts, err = attemptViews(recent); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AnalyticsService) MyAttempts(ctx context.Context, student *models.Student) ([]AttemptView, error) {
	attempts, err := s.attempts.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	return attemptViews(attempts)
}
