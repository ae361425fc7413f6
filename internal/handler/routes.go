package handler

import (
	"career-guide/internal/middleware"
	"career-guide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Routes groups what SetupRoutes needs to mount the API.
type Routes struct {
	Auth        service.AuthService
	Assessments *AssessmentHandler
	Users       *UserHandler
	Validation  *middleware.ValidationMiddleware
}

// SetupRoutes mounts every API route under router. All routes require a
// bearer access token.
func SetupRoutes(router fiber.Router, r Routes) {
	protected := middleware.Protected(r.Auth)

	assessments := router.Group("/assessments", protected)
	assessments.Post("/", r.Assessments.CreateAssessment)
	assessments.Get("/", r.Validation.ValidateListQuery(), r.Assessments.ListAssessments)
	assessments.Get("/:id", r.Assessments.GetAssessment)
	assessments.Post("/:id/start", r.Assessments.StartAssessment)
	assessments.Post("/:id/responses", r.Assessments.SubmitResponse)
	assessments.Post("/:id/complete", r.Assessments.CompleteAssessment)
	assessments.Post("/:id/abandon", r.Assessments.AbandonAssessment)

	users := router.Group("/users", protected)
	users.Get("/me/psychometric-profile", r.Users.GetMyPsychometricProfile)
}
