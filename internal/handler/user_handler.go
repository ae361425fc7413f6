package handler

import (
	"career-guide/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMyPsychometricProfile retrieves the psychometric profile of the currently authenticated user.
// @Summary Get My Psychometric Profile
// @Description Returns the profile derived from the caller's most recent psychometric assessment.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.PsychometricProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "No psychometric assessment completed yet"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me/psychometric-profile [get]
func (h *UserHandler) GetMyPsychometricProfile(c *fiber.Ctx) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.GetPsychometricProfile(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
