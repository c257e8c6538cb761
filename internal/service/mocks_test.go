package service

import (
	"context"
	"io"
	"sync"
	"time"

	"quizmaker/internal/domain"
)

// Hand-written fakes shared by the service tests. Function fields default to
// benign no-ops so each test only wires what it cares about.

type fakeTopicRepo struct {
	SaveTopicFn             func(ctx context.Context, topic *domain.Topic) error
	SaveQuestionsFn         func(ctx context.Context, topicID string, questions []*domain.Question) error
	GetTopicByIDFn          func(ctx context.Context, id string) (*domain.Topic, error)
	GetAllTopicsFn          func(ctx context.Context) ([]*domain.Topic, error)
	GetQuestionsByTopicIDFn func(ctx context.Context, topicID string) ([]*domain.Question, error)
	UpdateLastAttemptFn     func(ctx context.Context, topicID string, at time.Time) error
}

func (f *fakeTopicRepo) SaveTopic(ctx context.Context, topic *domain.Topic) error {
	if f.SaveTopicFn != nil {
		return f.SaveTopicFn(ctx, topic)
	}
	if topic.ID == "" {
		topic.ID = "generated-topic-id"
	}
	return nil
}

func (f *fakeTopicRepo) SaveQuestions(ctx context.Context, topicID string, questions []*domain.Question) error {
	if f.SaveQuestionsFn != nil {
		return f.SaveQuestionsFn(ctx, topicID, questions)
	}
	return nil
}

func (f *fakeTopicRepo) GetTopicByID(ctx context.Context, id string) (*domain.Topic, error) {
	if f.GetTopicByIDFn != nil {
		return f.GetTopicByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeTopicRepo) GetAllTopics(ctx context.Context) ([]*domain.Topic, error) {
	if f.GetAllTopicsFn != nil {
		return f.GetAllTopicsFn(ctx)
	}
	return nil, nil
}

func (f *fakeTopicRepo) GetQuestionsByTopicID(ctx context.Context, topicID string) ([]*domain.Question, error) {
	if f.GetQuestionsByTopicIDFn != nil {
		return f.GetQuestionsByTopicIDFn(ctx, topicID)
	}
	return nil, nil
}

func (f *fakeTopicRepo) UpdateLastAttempt(ctx context.Context, topicID string, at time.Time) error {
	if f.UpdateLastAttemptFn != nil {
		return f.UpdateLastAttemptFn(ctx, topicID, at)
	}
	return nil
}

type fakeAttemptRepo struct {
	SaveAttemptFn          func(ctx context.Context, attempt *domain.Attempt) error
	GetAttemptsByTopicIDFn func(ctx context.Context, topicID string) ([]*domain.Attempt, error)
	saved                  []*domain.Attempt
}

func (f *fakeAttemptRepo) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if f.SaveAttemptFn != nil {
		return f.SaveAttemptFn(ctx, attempt)
	}
	f.saved = append(f.saved, attempt)
	return nil
}

func (f *fakeAttemptRepo) GetAttemptsByTopicID(ctx context.Context, topicID string) ([]*domain.Attempt, error) {
	if f.GetAttemptsByTopicIDFn != nil {
		return f.GetAttemptsByTopicIDFn(ctx, topicID)
	}
	return nil, nil
}

type fakeResultRepo struct {
	SaveResultFn             func(ctx context.Context, result *domain.QuizResult) error
	GetResultsByUserIDFn     func(ctx context.Context, userID string) ([]*domain.QuizResult, error)
	GetLatestResultForUserFn func(ctx context.Context, userID, topicID string) (*domain.QuizResult, error)
	saved                    []*domain.QuizResult
}

func (f *fakeResultRepo) SaveResult(ctx context.Context, result *domain.QuizResult) error {
	if f.SaveResultFn != nil {
		return f.SaveResultFn(ctx, result)
	}
	f.saved = append(f.saved, result)
	return nil
}

func (f *fakeResultRepo) GetResultsByUserID(ctx context.Context, userID string) ([]*domain.QuizResult, error) {
	if f.GetResultsByUserIDFn != nil {
		return f.GetResultsByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeResultRepo) GetLatestResultForUser(ctx context.Context, userID, topicID string) (*domain.QuizResult, error) {
	if f.GetLatestResultForUserFn != nil {
		return f.GetLatestResultForUserFn(ctx, userID, topicID)
	}
	return nil, nil
}

type fakeUserRepo struct {
	CreateUserFn        func(ctx context.Context, user *domain.User) error
	GetUserByGoogleIDFn func(ctx context.Context, googleID string) (*domain.User, error)
	GetUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	UpdateLastLoginFn   func(ctx context.Context, userID string, at time.Time) error
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	if f.CreateUserFn != nil {
		return f.CreateUserFn(ctx, user)
	}
	if user.ID == "" {
		user.ID = "generated-user-id"
	}
	return nil
}

func (f *fakeUserRepo) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	if f.GetUserByGoogleIDFn != nil {
		return f.GetUserByGoogleIDFn(ctx, googleID)
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if f.GetUserByIDFn != nil {
		return f.GetUserByIDFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	if f.UpdateLastLoginFn != nil {
		return f.UpdateLastLoginFn(ctx, userID, at)
	}
	return nil
}

// fakeTxManager runs the callback directly without a real transaction.
type fakeTxManager struct {
	WithTransactionFn func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (f *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.WithTransactionFn != nil {
		return f.WithTransactionFn(ctx, fn)
	}
	return fn(ctx)
}

// fakeCache is an in-memory domain.Cache.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

type fakeExtractor struct {
	ExtractURLFn func(ctx context.Context, url string) (string, error)
	ExtractPDFFn func(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

func (f *fakeExtractor) ExtractURL(ctx context.Context, url string) (string, error) {
	if f.ExtractURLFn != nil {
		return f.ExtractURLFn(ctx, url)
	}
	return "extracted content", nil
}

func (f *fakeExtractor) ExtractPDF(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	if f.ExtractPDFFn != nil {
		return f.ExtractPDFFn(ctx, r, size)
	}
	return "extracted pdf content", nil
}

type fakeGenerator struct {
	GenerateFn func(ctx context.Context, content string, numQuestions int, difficulty string) (*domain.GeneratedQuiz, error)
	calls      int
}

func (f *fakeGenerator) Generate(ctx context.Context, content string, numQuestions int, difficulty string) (*domain.GeneratedQuiz, error) {
	f.calls++
	if f.GenerateFn != nil {
		return f.GenerateFn(ctx, content, numQuestions, difficulty)
	}
	return sampleGeneratedQuiz(numQuestions), nil
}

func sampleGeneratedQuiz(numQuestions int) *domain.GeneratedQuiz {
	quiz := &domain.GeneratedQuiz{
		Topic:       "Go Concurrency",
		Category:    "Programming",
		Subcategory: "Go",
	}
	for i := 0; i < numQuestions; i++ {
		quiz.Questions = append(quiz.Questions, domain.GeneratedQuestion{
			Question:    "What starts a goroutine?",
			Options:     []string{"go", "run", "spawn", "async"},
			RightOption: "go",
		})
	}
	return quiz
}
