package handler

import (
	"quizmaker/internal/domain"
	"quizmaker/internal/dto"
	"quizmaker/internal/middleware"
	"quizmaker/internal/service"
	"quizmaker/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles endpoints scoped to the authenticated user.
type UserHandler struct {
	userService   service.UserService
	resultService service.ResultService
	validator     *validation.Validator
}

func NewUserHandler(
	userService service.UserService,
	resultService service.ResultService,
	validator *validation.Validator,
) *UserHandler {
	return &UserHandler{
		userService:   userService,
		resultService: resultService,
		validator:     validator,
	}
}

// userIDFromLocals reads the user ID set by the auth middleware.
func userIDFromLocals(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.NewUnauthorizedError("User not identified")
	}
	return userID, nil
}

// GetMyProfile godoc
// @Summary Get my profile
// @Description Returns the authenticated user's profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := userIDFromLocals(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// SubmitResult godoc
// @Summary Submit a completed quiz
// @Description Grades the submitted answers and stores the result for the authenticated user
// @Tags results
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitResultRequest true "Quiz answers"
// @Success 201 {object} dto.ResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results [post]
func (h *UserHandler) SubmitResult(c *fiber.Ctx) error {
	userID, err := userIDFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.SubmitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateSubmitResultRequest(&req); len(errs) > 0 {
		return errs
	}

	result, err := h.resultService.SubmitResult(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetMyResults godoc
// @Summary List my quiz results
// @Description Returns all stored quiz results for the authenticated user, newest first
// @Tags results
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ResultResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/results [get]
func (h *UserHandler) GetMyResults(c *fiber.Ctx) error {
	userID, err := userIDFromLocals(c)
	if err != nil {
		return err
	}

	results, err := h.resultService.GetResultsForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}
