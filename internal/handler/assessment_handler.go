package handler

import (
	"context"

	"career-guide/internal/domain"
	"career-guide/internal/dto"
	"career-guide/internal/logger"
	"career-guide/internal/middleware"
	"career-guide/internal/service"
	"career-guide/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssessmentHandler handles assessment lifecycle HTTP requests. Errors are
// returned to the fiber ErrorHandler, which renders them.
type AssessmentHandler struct {
	service   service.AssessmentService
	validator *validation.Validator
}

// NewAssessmentHandler creates a new AssessmentHandler instance
func NewAssessmentHandler(service service.AssessmentService, validator *validation.Validator) *AssessmentHandler {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &AssessmentHandler{service: service, validator: validator}
}

func identity(c *fiber.Ctx) (dto.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		logger.Get().Warn("User ID not found in context", zap.String("path", c.Path()))
		return dto.Identity{}, domain.NewUnauthorizedError("User ID not found in context")
	}
	return id, nil
}

// CreateAssessment godoc
// @Summary Create an assessment
// @Description Creates a draft assessment with a fixed set of questions. Admins may set user_id.
// @Tags assessments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAssessmentRequest true "Assessment definition"
// @Success 201 {object} dto.AssessmentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /assessments [post]
func (h *AssessmentHandler) CreateAssessment(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req dto.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}
	if errs := h.validator.ValidateCreateAssessmentRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.CreateAssessment(c.Context(), actor, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListAssessments godoc
// @Summary List my assessments
// @Description Returns summaries of the caller's assessments, newest first.
// @Tags assessments
// @Security ApiKeyAuth
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, in_progress, completed, abandoned)
// @Param type query string false "Filter by assessment type"
// @Param limit query int false "Page size (1-100)" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.AssessmentListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /assessments [get]
func (h *AssessmentHandler) ListAssessments(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	q := middleware.ListQueryFrom(c)
	resp, err := h.service.ListAssessments(c.Context(), actor, &q)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAssessment godoc
// @Summary Get an assessment
// @Description Returns one assessment with progress and timing.
// @Tags assessments
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	resp, err := h.service.GetAssessment(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// StartAssessment godoc
// @Summary Start an assessment
// @Tags assessments
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Invalid state transition"
// @Router /assessments/{id}/start [post]
func (h *AssessmentHandler) StartAssessment(c *fiber.Ctx) error {
	return h.transition(c, h.service.StartAssessment)
}

// SubmitResponse godoc
// @Summary Submit an answer
// @Description Records the answer to one question. Answering the last open question completes and scores the assessment.
// @Tags assessments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID"
// @Param request body dto.SubmitResponseRequest true "Answer"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Invalid state transition or concurrent modification"
// @Router /assessments/{id}/responses [post]
func (h *AssessmentHandler) SubmitResponse(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req dto.SubmitResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}
	if errs := h.validator.ValidateSubmitResponseRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitResponse(c.Context(), actor, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CompleteAssessment godoc
// @Summary Complete an assessment
// @Description Completes and scores the assessment. Confirming an already completed assessment returns it unchanged.
// @Tags assessments
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Invalid state transition"
// @Router /assessments/{id}/complete [post]
func (h *AssessmentHandler) CompleteAssessment(c *fiber.Ctx) error {
	return h.transition(c, h.service.CompleteAssessment)
}

// AbandonAssessment godoc
// @Summary Abandon an assessment
// @Tags assessments
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Invalid state transition"
// @Router /assessments/{id}/abandon [post]
func (h *AssessmentHandler) AbandonAssessment(c *fiber.Ctx) error {
	return h.transition(c, h.service.AbandonAssessment)
}

type transitionFunc func(ctx context.Context, actor dto.Identity, id string) (*dto.AssessmentResponse, error)

func (h *AssessmentHandler) transition(c *fiber.Ctx, fn transitionFunc) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	resp, err := fn(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
