package handler

import (
	"path/filepath"
	"strconv"
	"strings"

	"quizmaker/internal/domain"
	"quizmaker/internal/dto"
	"quizmaker/internal/logger"
	"quizmaker/internal/service"
	"quizmaker/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	quizService       service.QuizService
	generationService service.GenerationService
	validator         *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(
	quizService service.QuizService,
	generationService service.GenerationService,
	validator *validation.Validator,
) *QuizHandler {
	return &QuizHandler{
		quizService:       quizService,
		generationService: generationService,
		validator:         validator,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a URL
// @Description Fetches the page at the given URL and generates a multiple-choice quiz from its content
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation parameters"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidateGenerateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	quiz, err := h.generationService.GenerateFromURL(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// GenerateQuizFromPDF godoc
// @Summary Generate a quiz from an uploaded PDF
// @Description Extracts text from the uploaded PDF and generates a multiple-choice quiz from it
// @Tags quizzes
// @Accept multipart/form-data
// @Produce json
// @Param pdf_file formData file true "PDF document"
// @Param num_questions formData int false "Number of questions (default 5)"
// @Param difficulty formData string false "easy, medium or hard (default medium)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quizzes/generate-from-pdf [post]
func (h *QuizHandler) GenerateQuizFromPDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("pdf_file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("pdf_file")}
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return domain.NewInvalidInputError("Only PDF files are accepted")
	}

	numQuestions := 0
	if raw := c.FormValue("num_questions"); raw != "" {
		numQuestions, err = strconv.Atoi(raw)
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("num_questions", raw)}
		}
	}
	difficulty := c.FormValue("difficulty")

	if errs := h.validator.ValidateGenerationParams(numQuestions, difficulty); len(errs) > 0 {
		return errs
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("Failed to read uploaded file", err)
	}
	defer file.Close()

	quiz, err := h.generationService.GenerateFromPDF(c.UserContext(), file, fileHeader.Size, numQuestions, difficulty)
	if err != nil {
		return err
	}

	logger.Get().Info("Generated quiz from PDF upload",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
	)
	return c.JSON(quiz)
}

// GetTopics godoc
// @Summary List all quiz topics
// @Description Returns every stored quiz topic with its classification and timestamps
// @Tags topics
// @Produce json
// @Success 200 {array} dto.TopicResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /topics [get]
func (h *QuizHandler) GetTopics(c *fiber.Ctx) error {
	topics, err := h.quizService.GetTopics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(topics)
}

// GetQuiz godoc
// @Summary Get a quiz by topic ID
// @Description Returns a stored quiz along with its questions
// @Tags quizzes
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	topicID := c.Params("id")
	if errs := h.validator.ValidateTopicID(topicID); len(errs) > 0 {
		return errs
	}

	quiz, err := h.quizService.GetQuiz(c.UserContext(), topicID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// GetCategories godoc
// @Summary List categories
// @Description Returns all unique categories mapped to their subcategories
// @Tags topics
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories [get]
func (h *QuizHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.quizService.GetCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// RecordAttempt godoc
// @Summary Record a quiz attempt
// @Description Records that the quiz for the given topic was taken
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.RecordAttemptRequest true "Attempt details"
// @Success 201 {object} dto.RecordAttemptResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /attempts [post]
func (h *QuizHandler) RecordAttempt(c *fiber.Ctx) error {
	var req dto.RecordAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateTopicID(req.TopicID); len(errs) > 0 {
		return errs
	}

	resp, err := h.quizService.RecordAttempt(c.UserContext(), req.TopicID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetAttempts godoc
// @Summary List attempts for a topic
// @Description Returns all attempt timestamps recorded for a quiz topic
// @Tags attempts
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} dto.AttemptsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /topics/{id}/attempts [get]
func (h *QuizHandler) GetAttempts(c *fiber.Ctx) error {
	topicID := c.Params("id")
	if errs := h.validator.ValidateTopicID(topicID); len(errs) > 0 {
		return errs
	}

	attempts, err := h.quizService.GetAttempts(c.UserContext(), topicID)
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}
