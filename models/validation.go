package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(questionRules, Question{})
	v.RegisterStructValidation(quizRules, Quiz{})
	return v
}

// ValidationError carries every rule violation found on a document.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func questionRules(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	if q.Type == QuestionMCQ && len(q.Options) < 2 {
		sl.ReportError(q.Options, "options", "Options", "mcqoptions", "")
	}
}

func quizRules(sl validator.StructLevel) {
	q := sl.Current().Interface().(Quiz)
	if q.Regulation == PinnedRegulation && q.Subject != "" && !IsAllowedSubject(q.Subject) {
		sl.ReportError(q.Subject, "subject", "Subject", "allowedsubject", "")
	}
	if q.StartTime != nil && q.EndTime != nil && !q.EndTime.After(*q.StartTime) {
		sl.ReportError(q.EndTime, "endTime", "EndTime", "afterstart", "")
	}
}

var fieldMessages = map[string]string{
	"Quiz.Title.required":                    "Quiz title is required",
	"Quiz.Title.max":                         "Title cannot exceed 200 characters",
	"Quiz.Description.max":                   "Description cannot exceed 1000 characters",
	"Quiz.Subject.required":                  "Subject is required",
	"Quiz.Unit.min":                          "Unit must be between 1 and 5",
	"Quiz.Unit.max":                          "Unit must be between 1 and 5",
	"Quiz.Regulation.oneof":                  "Regulation must be R19, R20, or R22",
	"Quiz.Year.oneof":                        "Year must be 1, 2, 3, or 4",
	"Quiz.Semester.oneof":                    "Semester must be 1 or 2",
	"Quiz.Questions.min":                     "Quiz must have at least one question",
	"Quiz.TimeLimit.min":                     "Time limit must be between 1 and 180 minutes",
	"Quiz.TimeLimit.max":                     "Time limit must be between 1 and 180 minutes",
	"Quiz.EndTime.afterstart":                "End time must be after start time",
	"Question.Type.required":                 "Question type is required",
	"Question.Type.oneof":                    "Question type must be MCQ, FITB, or DESCRIPTIVE",
	"Question.Text.required":                 "Question text is required",
	"Question.Options.mcqoptions":            "MCQ questions must have at least 2 options.",
	"Question.CorrectAnswer.required_unless": "Correct answer is required for MCQ and FITB questions",
	"Question.Points.min":                    "Points must be at least 1",
}

func messageFor(fe validator.FieldError) string {
	key := fe.StructField() + "." + fe.Tag()
	ns := fe.StructNamespace()
	switch {
	case strings.Contains(ns, "Questions["):
		key = "Question." + key
	default:
		key = "Quiz." + key
	}
	if key == "Quiz.Subject.allowedsubject" {
		return "Subject must be one of: " + strings.Join(AllowedSubjects, ", ")
	}
	if msg, ok := fieldMessages[key]; ok {
		return msg
	}
	return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
}

// Validate checks the quiz and all of its questions.
func (q *Quiz) Validate() error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	seen := make(map[string]bool)
	out := &ValidationError{}
	for _, fe := range verrs {
		msg := messageFor(fe)
		if seen[msg] {
			continue
		}
		seen[msg] = true
		out.Messages = append(out.Messages, msg)
	}
	return out
}
