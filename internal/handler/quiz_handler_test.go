package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizmaker/internal/domain"
	"quizmaker/internal/dto"
	"quizmaker/internal/handler"
	"quizmaker/internal/middleware"
	"quizmaker/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	GetTopicsFunc     func(ctx context.Context) ([]dto.TopicResponse, error)
	GetQuizFunc       func(ctx context.Context, topicID string) (*dto.QuizResponse, error)
	GetCategoriesFunc func(ctx context.Context) (dto.CategoriesResponse, error)
	RecordAttemptFunc func(ctx context.Context, topicID string) (*dto.RecordAttemptResponse, error)
	GetAttemptsFunc   func(ctx context.Context, topicID string) (*dto.AttemptsResponse, error)
}

func (m *MockQuizService) GetTopics(ctx context.Context) ([]dto.TopicResponse, error) {
	if m.GetTopicsFunc != nil {
		return m.GetTopicsFunc(ctx)
	}
	panic("MockQuizService.GetTopicsFunc not implemented")
}
func (m *MockQuizService) GetQuiz(ctx context.Context, topicID string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, topicID)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}
func (m *MockQuizService) GetCategories(ctx context.Context) (dto.CategoriesResponse, error) {
	if m.GetCategoriesFunc != nil {
		return m.GetCategoriesFunc(ctx)
	}
	panic("MockQuizService.GetCategoriesFunc not implemented")
}
func (m *MockQuizService) RecordAttempt(ctx context.Context, topicID string) (*dto.RecordAttemptResponse, error) {
	if m.RecordAttemptFunc != nil {
		return m.RecordAttemptFunc(ctx, topicID)
	}
	panic("MockQuizService.RecordAttemptFunc not implemented")
}
func (m *MockQuizService) GetAttempts(ctx context.Context, topicID string) (*dto.AttemptsResponse, error) {
	if m.GetAttemptsFunc != nil {
		return m.GetAttemptsFunc(ctx, topicID)
	}
	panic("MockQuizService.GetAttemptsFunc not implemented")
}

// MockGenerationService
type MockGenerationService struct {
	GenerateFromURLFunc func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	GenerateFromPDFFunc func(ctx context.Context, pdf io.ReaderAt, size int64, numQuestions int, difficulty string) (*dto.QuizResponse, error)
}

func (m *MockGenerationService) GenerateFromURL(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	if m.GenerateFromURLFunc != nil {
		return m.GenerateFromURLFunc(ctx, req)
	}
	panic("MockGenerationService.GenerateFromURLFunc not implemented")
}
func (m *MockGenerationService) GenerateFromPDF(ctx context.Context, pdf io.ReaderAt, size int64, numQuestions int, difficulty string) (*dto.QuizResponse, error) {
	if m.GenerateFromPDFFunc != nil {
		return m.GenerateFromPDFFunc(ctx, pdf, size, numQuestions, difficulty)
	}
	panic("MockGenerationService.GenerateFromPDFFunc not implemented")
}

// --- Test setup ---

const testTopicID = "01HV5XK3J9M2Q4R6T8W0Y2A4C6"

func setupQuizTestApp(quizSvc *MockQuizService, genSvc *MockGenerationService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := handler.NewQuizHandler(quizSvc, genSvc, validation.NewValidator(20))

	app.Post("/api/quizzes/generate", h.GenerateQuiz)
	app.Post("/api/quizzes/generate-from-pdf", h.GenerateQuizFromPDF)
	app.Get("/api/quizzes/:id", h.GetQuiz)
	app.Get("/api/topics", h.GetTopics)
	app.Get("/api/topics/:id/attempts", h.GetAttempts)
	app.Get("/api/categories", h.GetCategories)
	app.Post("/api/attempts", h.RecordAttempt)
	return app
}

func sampleQuizResponse() *dto.QuizResponse {
	return &dto.QuizResponse{
		ID:                testTopicID,
		Topic:             "Go Concurrency",
		Category:          "Programming",
		Subcategory:       "Go",
		CreationTimestamp: time.Now().UTC(),
		Questions: []dto.QuestionResponse{
			{
				ID:          "q1",
				Question:    "Which keyword starts a goroutine?",
				Options:     []string{"go", "run", "spawn", "async"},
				RightOption: "go",
			},
		},
	}
}

// --- Tests ---

func TestGenerateQuiz(t *testing.T) {
	genSvc := &MockGenerationService{
		GenerateFromURLFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
			assert.Equal(t, "https://example.com/article", req.URL)
			assert.Equal(t, 5, req.NumQuestions)
			assert.Equal(t, "easy", req.Difficulty)
			return sampleQuizResponse(), nil
		},
	}
	app := setupQuizTestApp(&MockQuizService{}, genSvc)

	body, _ := json.Marshal(dto.GenerateQuizRequest{
		URL:          "https://example.com/article",
		NumQuestions: 5,
		Difficulty:   "easy",
	})
	req := httptest.NewRequest("POST", "/api/quizzes/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var quiz dto.QuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quiz))
	assert.Equal(t, "Go Concurrency", quiz.Topic)
	assert.Len(t, quiz.Questions, 1)
}

func TestGenerateQuiz_ValidationFailure(t *testing.T) {
	app := setupQuizTestApp(&MockQuizService{}, &MockGenerationService{})

	body, _ := json.Marshal(dto.GenerateQuizRequest{URL: "not a url"})
	req := httptest.NewRequest("POST", "/api/quizzes/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody middleware.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, string(domain.CodeValidation), errBody.Code)
	assert.NotEmpty(t, errBody.Errors)
}

func TestGenerateQuiz_ServiceUnavailable(t *testing.T) {
	genSvc := &MockGenerationService{
		GenerateFromURLFunc: func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
			return nil, domain.NewLLMServiceError(assert.AnError)
		},
	}
	app := setupQuizTestApp(&MockQuizService{}, genSvc)

	body, _ := json.Marshal(dto.GenerateQuizRequest{URL: "https://example.com/article"})
	req := httptest.NewRequest("POST", "/api/quizzes/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGenerateQuizFromPDF(t *testing.T) {
	genSvc := &MockGenerationService{
		GenerateFromPDFFunc: func(ctx context.Context, pdf io.ReaderAt, size int64, numQuestions int, difficulty string) (*dto.QuizResponse, error) {
			assert.Equal(t, 3, numQuestions)
			assert.Equal(t, "hard", difficulty)
			assert.Positive(t, size)
			return sampleQuizResponse(), nil
		},
	}
	app := setupQuizTestApp(&MockQuizService{}, genSvc)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("pdf_file", "notes.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 fake body"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("num_questions", "3"))
	require.NoError(t, w.WriteField("difficulty", "hard"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/quizzes/generate-from-pdf", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateQuizFromPDF_WrongExtension(t *testing.T) {
	app := setupQuizTestApp(&MockQuizService{}, &MockGenerationService{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("pdf_file", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/quizzes/generate-from-pdf", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateQuizFromPDF_MissingFile(t *testing.T) {
	app := setupQuizTestApp(&MockQuizService{}, &MockGenerationService{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("difficulty", "easy"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/quizzes/generate-from-pdf", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetQuiz(t *testing.T) {
	quizSvc := &MockQuizService{
		GetQuizFunc: func(ctx context.Context, topicID string) (*dto.QuizResponse, error) {
			assert.Equal(t, testTopicID, topicID)
			return sampleQuizResponse(), nil
		},
	}
	app := setupQuizTestApp(quizSvc, &MockGenerationService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quizzes/"+testTopicID, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetQuiz_NotFound(t *testing.T) {
	quizSvc := &MockQuizService{
		GetQuizFunc: func(ctx context.Context, topicID string) (*dto.QuizResponse, error) {
			return nil, domain.NewTopicNotFoundError(topicID)
		},
	}
	app := setupQuizTestApp(quizSvc, &MockGenerationService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quizzes/"+testTopicID, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errBody middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, string(domain.CodeTopicNotFound), errBody.Code)
}

func TestGetQuiz_MalformedID(t *testing.T) {
	app := setupQuizTestApp(&MockQuizService{}, &MockGenerationService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quizzes/not-a-ulid", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTopics(t *testing.T) {
	quizSvc := &MockQuizService{
		GetTopicsFunc: func(ctx context.Context) ([]dto.TopicResponse, error) {
			return []dto.TopicResponse{
				{ID: testTopicID, Topic: "Go Concurrency", Category: "Programming", Subcategory: "Go"},
			}, nil
		},
	}
	app := setupQuizTestApp(quizSvc, &MockGenerationService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/topics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var topics []dto.TopicResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&topics))
	require.Len(t, topics, 1)
	assert.Equal(t, "Go Concurrency", topics[0].Topic)
}

func TestGetCategories(t *testing.T) {
	quizSvc := &MockQuizService{
		GetCategoriesFunc: func(ctx context.Context) (dto.CategoriesResponse, error) {
			return dto.CategoriesResponse{"Programming": {"Go", "Python"}}, nil
		},
	}
	app := setupQuizTestApp(quizSvc, &MockGenerationService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/categories", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var categories dto.CategoriesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	assert.Equal(t, []string{"Go", "Python"}, categories["Programming"])
}

func TestRecordAttempt(t *testing.T) {
	quizSvc := &MockQuizService{
		RecordAttemptFunc: func(ctx context.Context, topicID string) (*dto.RecordAttemptResponse, error) {
			assert.Equal(t, testTopicID, topicID)
			return &dto.RecordAttemptResponse{Message: "Attempt recorded", Timestamp: time.Now().UTC()}, nil
		},
	}
	app := setupQuizTestApp(quizSvc, &MockGenerationService{})

	body, _ := json.Marshal(dto.RecordAttemptRequest{TopicID: testTopicID})
	req := httptest.NewRequest("POST", "/api/attempts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGetAttempts(t *testing.T) {
	quizSvc := &MockQuizService{
		GetAttemptsFunc: func(ctx context.Context, topicID string) (*dto.AttemptsResponse, error) {
			return &dto.AttemptsResponse{
				Topic:    "Go Concurrency",
				Attempts: []time.Time{time.Now().UTC()},
			}, nil
		},
	}
	app := setupQuizTestApp(quizSvc, &MockGenerationService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/topics/"+testTopicID+"/attempts", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var attempts dto.AttemptsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&attempts))
	assert.Equal(t, "Go Concurrency", attempts.Topic)
	assert.Len(t, attempts.Attempts, 1)
}
