package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lib/pq"
	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/repository"
	"github.com/prepwise/prepwise_api/utils"
	"github.com/rs/zerolog/log"
)

type QuestionInput struct {
	Type          models.QuestionType `json:"type"`
	Text          string              `json:"text"`
	Options       []string            `json:"options"`
	CorrectAnswer string              `json:"correctAnswer"`
	Points        utils.FlexInt       `json:"points"`
}

type CreateQuizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Subject     string          `json:"subject"`
	Unit        utils.FlexInt   `json:"unit"`
	Regulation  string          `json:"regulation"`
	Year        utils.FlexInt   `json:"year"`
	Semester    utils.FlexInt   `json:"semester"`
	TimeLimit   utils.FlexInt   `json:"timeLimit"`
	StartTime   utils.FlexTime  `json:"startTime"`
	EndTime     utils.FlexTime  `json:"endTime"`
	Questions   []QuestionInput `json:"questions"`
}

type SubmitQuizInput struct {
	Answers   []AnswerInput `json:"answers"`
	TimeTaken utils.FlexInt `json:"timeTaken"`
}

// StudentQuestion is a question with its answer key removed.
type StudentQuestion struct {
	ID      uuid.UUID           `json:"_id"`
	Type    models.QuestionType `json:"type"`
	Text    string              `json:"text"`
	Options pq.StringArray      `json:"options"`
	Points  int                 `json:"points"`
}

// StudentQuiz is the student-facing view of a quiz.
type StudentQuiz struct {
	ID          uuid.UUID         `json:"_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Subject     string            `json:"subject"`
	Unit        int               `json:"unit"`
	Regulation  string            `json:"regulation"`
	Year        int               `json:"year"`
	Semester    int               `json:"semester"`
	CreatedBy   uuid.UUID         `json:"createdBy"`
	TimeLimit   int               `json:"timeLimit"`
	StartTime   *time.Time        `json:"startTime"`
	EndTime     *time.Time        `json:"endTime"`
	TotalMarks  int               `json:"totalMarks"`
	QuestionSet []StudentQuestion `json:"questions,omitempty"`
	QuizStatus  models.QuizStatus `json:"status"`
	IsSubmitted bool              `json:"isSubmitted"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type StudentSummary struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	RollNo  string    `json:"rollNo"`
	Section string    `json:"section"`
}

type SubmissionView struct {
	ID          uuid.UUID                `json:"_id"`
	QuizID      uuid.UUID                `json:"quiz"`
	Student     *StudentSummary          `json:"student"`
	Answers     []models.EvaluatedAnswer `json:"answers"`
	TotalScore  int                      `json:"totalScore"`
	MaxScore    int                      `json:"maxScore"`
	SubmittedAt time.Time                `json:"submittedAt"`
}

// TeacherQuiz is a quiz with its answer key and every submission received.
type TeacherQuiz struct {
	Quiz        *models.Quiz
	Submissions []SubmissionView
}

func (v TeacherQuiz) MarshalJSON() ([]byte, error) {
	type quizFields models.Quiz
	return json.Marshal(struct {
		quizFields
		TotalMarks  int              `json:"totalMarks"`
		Submissions []SubmissionView `json:"submissions"`
	}{quizFields(*v.Quiz), v.Quiz.TotalMarks(), v.Submissions})
}

type SubmissionResult struct {
	Score      int `json:"score"`
	TotalMarks int `json:"totalMarks"`
	Accuracy   int `json:"accuracy"`
	TimeTaken  int `json:"timeTaken"`
}

type SubmitOutcome struct {
	Submission *models.Submission `json:"submission"`
	Result     SubmissionResult   `json:"result"`
}

// SubmissionEvent is pushed to the quiz author when a student submits.
type SubmissionEvent struct {
	Type        string    `json:"type"`
	QuizID      uuid.UUID `json:"quizId"`
	QuizTitle   string    `json:"quizTitle"`
	StudentID   uuid.UUID `json:"studentId"`
	StudentName string    `json:"studentName"`
	RollNo      string    `json:"rollNo"`
	Score       int       `json:"score"`
	TotalMarks  int       `json:"totalMarks"`
	Accuracy    int       `json:"accuracy"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type SubmissionPublisher interface {
	PublishSubmission(teacherID uuid.UUID, event SubmissionEvent)
}

type QuizService struct {
	quizzes     repository.QuizRepository
	submissions repository.SubmissionRepository
	attempts    repository.AttemptRepository
	publisher   SubmissionPublisher
	now         func() time.Time
}

func NewQuizService(repos repository.Repositories, publisher SubmissionPublisher) *QuizService {
	return &QuizService{
		quizzes:     repos.Quizzes,
		submissions: repos.Submissions,
		attempts:    repos.Attempts,
		publisher:   publisher,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for scheduling checks.
func (s *QuizService) SetClock(now func() time.Time) {
	s.now = now
}

func (in CreateQuizInput) toModel(teacherID uuid.UUID) *models.Quiz {
	quiz := &models.Quiz{
		Title:       in.Title,
		Description: in.Description,
		Subject:     in.Subject,
		Unit:        in.Unit.Int(),
		Regulation:  in.Regulation,
		Year:        in.Year.Int(),
		Semester:    in.Semester.Int(),
		CreatedByID: teacherID,
		TimeLimit:   in.TimeLimit.Int(),
		StartTime:   in.StartTime.Ptr(),
		EndTime:     in.EndTime.Ptr(),
		Questions:   make([]models.Question, 0, len(in.Questions)),
	}
	for _, q := range in.Questions {
		quiz.Questions = append(quiz.Questions, models.Question{
			Type:          q.Type,
			Text:          q.Text,
			Options:       pq.StringArray(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points.Int(),
		})
	}
	return quiz
}

func (s *QuizService) Create(ctx context.Context, teacher *models.Teacher, input CreateQuizInput) (*models.Quiz, error) {
	quiz := input.toModel(teacher.ID)
	quiz.ApplyDefaults()
	if err := quiz.Validate(); err != nil {
		return nil, BadRequest(err.Error())
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}
	log.Info().Str("quiz_id", quiz.ID.String()).Str("teacher_id", teacher.ID.String()).Msg("quiz created")
	return quiz, nil
}

func (s *QuizService) ListForTeacher(ctx context.Context, teacher *models.Teacher) ([]models.Quiz, error) {
	return s.quizzes.ListByCreator(ctx, teacher.ID)
}

func (s *QuizService) studentView(quiz *models.Quiz, submitted bool) (StudentQuiz, error) {
	var view StudentQuiz
	if err := copier.Copy(&view, quiz); err != nil {
		return view, err
	}
	view.CreatedBy = quiz.CreatedByID
	view.TotalMarks = quiz.TotalMarks()
	view.QuizStatus = quiz.Status(s.now())
	view.IsSubmitted = submitted

	if view.QuizStatus != models.QuizScheduled {
		view.QuestionSet = make([]StudentQuestion, 0, len(quiz.Questions))
		if err := copier.Copy(&view.QuestionSet, &quiz.Questions); err != nil {
			return view, err
		}
	}
	return view, nil
}

func (s *QuizService) ListForStudent(ctx context.Context, student *models.Student) ([]StudentQuiz, error) {
	quizzes, err := s.quizzes.ListByBatch(ctx, student.Batch())
	if err != nil {
		return nil, err
	}
	submittedIDs, err := s.submissions.ListQuizIDsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	submitted := make(map[uuid.UUID]bool, len(submittedIDs))
	for _, id := range submittedIDs {
		submitted[id] = true
	}

	views := make([]StudentQuiz, 0, len(quizzes))
	for i := range quizzes {
		view, err := s.studentView(&quizzes[i], submitted[quizzes[i].ID])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *QuizService) find(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	quiz, err := s.quizzes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Quiz not found")
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetForTeacher(ctx context.Context, teacher *models.Teacher, id uuid.UUID) (*TeacherQuiz, error) {
	quiz, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.CreatedByID != teacher.ID {
		return nil, Forbidden("Unauthorized access")
	}

	submissions, err := s.submissions.ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	views := make([]SubmissionView, 0, len(submissions))
	for _, sub := range submissions {
		view := SubmissionView{
			ID:          sub.ID,
			QuizID:      sub.QuizID,
			Answers:     sub.Answers,
			TotalScore:  sub.TotalScore,
			MaxScore:    sub.MaxScore,
			SubmittedAt: sub.SubmittedAt,
		}
		if sub.Student != nil {
			view.Student = &StudentSummary{}
			if err := copier.Copy(view.Student, sub.Student); err != nil {
				return nil, err
			}
		}
		views = append(views, view)
	}
	return &TeacherQuiz{Quiz: quiz, Submissions: views}, nil
}

func (s *QuizService) GetForStudent(ctx context.Context, student *models.Student, id uuid.UUID) (*StudentQuiz, error) {
	quiz, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.Batch() != student.Batch() {
		return nil, Forbidden("Unauthorized access")
	}
	if quiz.Status(s.now()) == models.QuizScheduled {
		return nil, Forbidden("Quiz has not started yet")
	}

	submitted, err := s.submissions.Exists(ctx, quiz.ID, student.ID)
	if err != nil {
		return nil, err
	}
	view, err := s.studentView(quiz, submitted)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Submit grades and records a student's only submission for a quiz. The
// submission and its analytics attempt are written separately.
func (s *QuizService) Submit(ctx context.Context, principal models.Principal, id uuid.UUID, input SubmitQuizInput) (*SubmitOutcome, error) {
	student, ok := principal.(*models.Student)
	if !ok {
		return nil, Forbidden("Only students can submit quizzes")
	}

	quiz, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	switch quiz.Status(now) {
	case models.QuizScheduled:
		return nil, BadRequest("Quiz has not started yet")
	case models.QuizClosed:
		return nil, BadRequest("Quiz submission period has ended")
	}

	exists, err := s.submissions.Exists(ctx, quiz.ID, student.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, BadRequest("You have already submitted this quiz")
	}

	graded := Grade(quiz, input.Answers)
	timeTaken := input.TimeTaken.Int()
	if timeTaken < 0 {
		timeTaken = 0
	}

	submission := &models.Submission{
		QuizID:      quiz.ID,
		StudentID:   student.ID,
		Answers:     graded.Answers,
		TotalScore:  graded.Score,
		MaxScore:    graded.MaxScore,
		SubmittedAt: now,
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, BadRequest("You have already submitted this quiz")
		}
		return nil, err
	}

	attempt := &models.QuizAttempt{
		StudentID:   student.ID,
		QuizID:      quiz.ID,
		Subject:     quiz.Subject,
		Unit:        quiz.Unit,
		Regulation:  quiz.Regulation,
		Year:        quiz.Year,
		Semester:    quiz.Semester,
		Score:       graded.Score,
		TotalMarks:  graded.MaxScore,
		Accuracy:    graded.Accuracy,
		TimeTaken:   timeTaken,
		SubmittedAt: now,
	}
	if attempt.Unit == 0 {
		attempt.Unit = 1
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, BadRequest("You have already submitted this quiz")
		}
		log.Error().Err(err).Str("submission_id", submission.ID.String()).Msg("submission saved without analytics attempt")
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishSubmission(quiz.CreatedByID, SubmissionEvent{
			Type:        "submission",
			QuizID:      quiz.ID,
			QuizTitle:   quiz.Title,
			StudentID:   student.ID,
			StudentName: student.Name,
			RollNo:      student.RollNo,
			Score:       graded.Score,
			TotalMarks:  graded.MaxScore,
			Accuracy:    graded.Accuracy,
			SubmittedAt: now,
		})
	}

	return &SubmitOutcome{
		Submission: submission,
		Result: SubmissionResult{
			Score:      graded.Score,
			TotalMarks: graded.MaxScore,
			Accuracy:   graded.Accuracy,
			TimeTaken:  timeTaken,
		},
	}, nil
}
