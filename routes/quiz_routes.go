package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/prepwise_api/handlers"
)

// QuizRoutes registers the fixed paths ahead of /:id so they never read as
// a quiz id. The live feed sits outside the group so it can authenticate
// with socket instead of protected.
func QuizRoutes(app *fiber.App, h *handlers.Handler, protected, socket fiber.Handler) {
	app.Get("/api/quizzes/live", socket, h.LiveUpgrade, h.LiveSubmissions())

	quizzes := app.Group("/api/quizzes", protected)

	quizzes.Post("", h.CreateQuiz)
	quizzes.Get("", h.GetQuizzes)

	quizzes.Get("/students", h.GetStudents)
	quizzes.Get("/students/:id/performance", h.GetStudentPerformance)
	quizzes.Get("/analytics/overview", h.GetAnalyticsOverview)
	quizzes.Get("/my-performance", h.GetMyPerformance)
	quizzes.Get("/my-attempts", h.GetMyAttempts)

	quizzes.Get("/:id", h.GetQuiz)
	quizzes.Post("/:id/submit", h.SubmitQuiz)
}
