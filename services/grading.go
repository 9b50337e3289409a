package services

import (
	"strings"

	"github.com/prepwise/prepwise_api/models"
	"github.com/prepwise/prepwise_api/utils"
)

type AnswerInput struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type GradeResult struct {
	Answers    []models.EvaluatedAnswer
	Score      int
	MaxScore   int
	Correct    int
	AutoGraded int
	Accuracy   int
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Grade scores answers against the quiz key. MCQ and FITB answers match on
// trimmed, case-insensitive equality; descriptive answers always earn zero.
// Accuracy counts only auto-graded questions.
func Grade(quiz *models.Quiz, answers []AnswerInput) GradeResult {
	given := make(map[string]string, len(answers))
	for _, a := range answers {
		if _, seen := given[a.QuestionID]; !seen {
			given[a.QuestionID] = a.Answer
		}
	}

	result := GradeResult{Answers: make([]models.EvaluatedAnswer, 0, len(quiz.Questions))}
	for _, question := range quiz.Questions {
		points := question.Points
		if points <= 0 {
			points = 1
		}
		answer := given[question.ID.String()]
		evaluated := models.EvaluatedAnswer{QuestionID: question.ID, Answer: answer}
		result.MaxScore += points

		if question.Type.AutoGraded() {
			result.AutoGraded++
			key := normalizeAnswer(question.CorrectAnswer)
			if key != "" && normalizeAnswer(answer) == key {
				evaluated.IsCorrect = true
				evaluated.EarnedPoints = points
				result.Score += points
				result.Correct++
			}
		}
		result.Answers = append(result.Answers, evaluated)
	}
	result.Accuracy = utils.Percent(result.Correct, result.AutoGraded)
	return result
}
