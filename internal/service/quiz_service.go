package service

import (
	"context"
	"time"

	"quizmaker/internal/domain"
	"quizmaker/internal/dto"
	"quizmaker/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz read and attempt operations
type QuizService interface {
	GetTopics(ctx context.Context) ([]dto.TopicResponse, error)
	GetQuiz(ctx context.Context, topicID string) (*dto.QuizResponse, error)
	GetCategories(ctx context.Context) (dto.CategoriesResponse, error)
	RecordAttempt(ctx context.Context, topicID string) (*dto.RecordAttemptResponse, error)
	GetAttempts(ctx context.Context, topicID string) (*dto.AttemptsResponse, error)
}

// quizService implements QuizService
type quizService struct {
	topicRepo   domain.TopicRepository
	attemptRepo domain.AttemptRepository
	txManager   domain.TransactionManager
	quizCache   QuizCacheService
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	topicRepo domain.TopicRepository,
	attemptRepo domain.AttemptRepository,
	txManager domain.TransactionManager,
	quizCache QuizCacheService,
) QuizService {
	return &quizService{
		topicRepo:   topicRepo,
		attemptRepo: attemptRepo,
		txManager:   txManager,
		quizCache:   quizCache,
	}
}

// GetTopics implements QuizService
func (s *quizService) GetTopics(ctx context.Context) ([]dto.TopicResponse, error) {
	if cached, err := s.quizCache.GetTopics(ctx); err != nil {
		logger.Get().Warn("Topic list cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	topics, err := s.topicRepo.GetAllTopics(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get topics", err)
	}

	responses := make([]dto.TopicResponse, 0, len(topics))
	for _, t := range topics {
		responses = append(responses, toTopicResponse(t))
	}

	if err := s.quizCache.PutTopics(ctx, responses); err != nil {
		logger.Get().Warn("Topic list cache write failed", zap.Error(err))
	}
	return responses, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, topicID string) (*dto.QuizResponse, error) {
	if cached, err := s.quizCache.GetQuiz(ctx, topicID); err != nil {
		logger.Get().Warn("Quiz cache read failed", zap.Error(err), zap.String("topic_id", topicID))
	} else if cached != nil {
		return cached, nil
	}

	topic, err := s.topicRepo.GetTopicByID(ctx, topicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get topic", err)
	}
	if topic == nil {
		return nil, domain.NewTopicNotFoundError(topicID)
	}

	questions, err := s.topicRepo.GetQuestionsByTopicID(ctx, topicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get questions", err)
	}
	topic.Questions = questions

	response := toQuizResponse(topic)
	if err := s.quizCache.PutQuiz(ctx, topicID, response); err != nil {
		logger.Get().Warn("Quiz cache write failed", zap.Error(err), zap.String("topic_id", topicID))
	}
	return response, nil
}

// GetCategories implements QuizService. Categories are derived from stored
// topics rather than kept as a separate table.
func (s *quizService) GetCategories(ctx context.Context) (dto.CategoriesResponse, error) {
	if cached, err := s.quizCache.GetCategories(ctx); err != nil {
		logger.Get().Warn("Categories cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	topics, err := s.topicRepo.GetAllTopics(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get topics", err)
	}

	categories := dto.CategoriesResponse{}
	for _, t := range topics {
		subs := categories[t.Category]
		seen := false
		for _, sub := range subs {
			if sub == t.Subcategory {
				seen = true
				break
			}
		}
		if !seen {
			categories[t.Category] = append(subs, t.Subcategory)
		}
	}

	if err := s.quizCache.PutCategories(ctx, categories); err != nil {
		logger.Get().Warn("Categories cache write failed", zap.Error(err))
	}
	return categories, nil
}

// RecordAttempt implements QuizService. The attempt row and the topic's
// last-attempt stamp are written in one transaction.
func (s *quizService) RecordAttempt(ctx context.Context, topicID string) (*dto.RecordAttemptResponse, error) {
	topic, err := s.topicRepo.GetTopicByID(ctx, topicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get topic", err)
	}
	if topic == nil {
		return nil, domain.NewTopicNotFoundError(topicID)
	}

	attempt := domain.NewAttempt(topicID)
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.attemptRepo.SaveAttempt(txCtx, attempt); err != nil {
			return err
		}
		return s.topicRepo.UpdateLastAttempt(txCtx, topicID, attempt.AttemptedAt)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to record attempt", err)
	}

	if err := s.quizCache.InvalidateListings(ctx); err != nil {
		logger.Get().Warn("Failed to invalidate listing caches", zap.Error(err))
	}

	return &dto.RecordAttemptResponse{
		Message:   "Quiz attempt recorded successfully",
		Timestamp: attempt.AttemptedAt,
	}, nil
}

// GetAttempts implements QuizService
func (s *quizService) GetAttempts(ctx context.Context, topicID string) (*dto.AttemptsResponse, error) {
	topic, err := s.topicRepo.GetTopicByID(ctx, topicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get topic", err)
	}
	if topic == nil {
		return nil, domain.NewTopicNotFoundError(topicID)
	}

	attempts, err := s.attemptRepo.GetAttemptsByTopicID(ctx, topicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get attempts", err)
	}

	timestamps := make([]time.Time, 0, len(attempts))
	for _, a := range attempts {
		timestamps = append(timestamps, a.AttemptedAt)
	}

	return &dto.AttemptsResponse{
		Topic:    topic.Name,
		Attempts: timestamps,
	}, nil
}

func toTopicResponse(t *domain.Topic) dto.TopicResponse {
	return dto.TopicResponse{
		ID:                t.ID,
		Topic:             t.Name,
		Category:          t.Category,
		Subcategory:       t.Subcategory,
		CreationTimestamp: t.CreatedAt,
		LastAttemptDate:   t.LastAttemptAt,
	}
}

func toQuizResponse(t *domain.Topic) *dto.QuizResponse {
	questions := make([]dto.QuestionResponse, 0, len(t.Questions))
	for _, q := range t.Questions {
		questions = append(questions, dto.QuestionResponse{
			ID:          q.ID,
			Question:    q.Text,
			Options:     q.Options,
			RightOption: q.RightOption,
		})
	}
	return &dto.QuizResponse{
		ID:                t.ID,
		Topic:             t.Name,
		Category:          t.Category,
		Subcategory:       t.Subcategory,
		CreationTimestamp: t.CreatedAt,
		Questions:         questions,
	}
}
