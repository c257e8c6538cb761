package service

import (
	"context"
	"encoding/json"
	"errors"

	"quizmaker/internal/cache"
	"quizmaker/internal/config"
	"quizmaker/internal/domain"
	"quizmaker/internal/dto"
	"quizmaker/internal/logger"

	"go.uber.org/zap"
)

const cacheServiceName = "quiz"

// QuizCacheService caches quiz payloads and topic listings. All methods are
// no-ops when no cache backend is configured, so the service degrades to
// direct database reads.
type QuizCacheService interface {
	GetQuiz(ctx context.Context, topicID string) (*dto.QuizResponse, error)
	PutQuiz(ctx context.Context, topicID string, quiz *dto.QuizResponse) error
	GetTopics(ctx context.Context) ([]dto.TopicResponse, error)
	PutTopics(ctx context.Context, topics []dto.TopicResponse) error
	GetCategories(ctx context.Context) (dto.CategoriesResponse, error)
	PutCategories(ctx context.Context, categories dto.CategoriesResponse) error
	InvalidateTopic(ctx context.Context, topicID string) error
	InvalidateListings(ctx context.Context) error
}

// quizCacheServiceImpl implements QuizCacheService
type quizCacheServiceImpl struct {
	cache domain.Cache
	cfg   *config.Config
}

// NewQuizCacheService creates a new instance of QuizCacheService. A nil cache
// is allowed and turns every operation into a miss.
func NewQuizCacheService(c domain.Cache, cfg *config.Config) QuizCacheService {
	return &quizCacheServiceImpl{cache: c, cfg: cfg}
}

func quizKey(topicID string) string {
	return cache.GenerateCacheKey(cacheServiceName, "topic", topicID)
}

func topicsKey() string {
	return cache.GenerateCacheKey(cacheServiceName, "topics", "all")
}

func categoriesKey() string {
	return cache.GenerateCacheKey(cacheServiceName, "categories", "all")
}

// GetQuiz implements QuizCacheService. A miss returns nil, nil.
func (s *quizCacheServiceImpl) GetQuiz(ctx context.Context, topicID string) (*dto.QuizResponse, error) {
	if s.cache == nil {
		return nil, nil
	}
	val, err := s.cache.Get(ctx, quizKey(topicID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}

	var quiz dto.QuizResponse
	if err := json.Unmarshal([]byte(val), &quiz); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		logger.Get().Warn("Dropping corrupt cached quiz", zap.String("topic_id", topicID), zap.Error(err))
		_ = s.cache.Delete(ctx, quizKey(topicID))
		return nil, nil
	}
	return &quiz, nil
}

// PutQuiz implements QuizCacheService
func (s *quizCacheServiceImpl) PutQuiz(ctx context.Context, topicID string, quiz *dto.QuizResponse) error {
	if s.cache == nil {
		return nil
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, quizKey(topicID), string(data), s.cfg.Generation.QuizCacheTTL)
}

// GetTopics implements QuizCacheService. A miss returns nil, nil.
func (s *quizCacheServiceImpl) GetTopics(ctx context.Context) ([]dto.TopicResponse, error) {
	if s.cache == nil {
		return nil, nil
	}
	val, err := s.cache.Get(ctx, topicsKey())
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}

	var topics []dto.TopicResponse
	if err := json.Unmarshal([]byte(val), &topics); err != nil {
		_ = s.cache.Delete(ctx, topicsKey())
		return nil, nil
	}
	return topics, nil
}

// PutTopics implements QuizCacheService
func (s *quizCacheServiceImpl) PutTopics(ctx context.Context, topics []dto.TopicResponse) error {
	if s.cache == nil {
		return nil
	}
	data, err := json.Marshal(topics)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, topicsKey(), string(data), s.cfg.Generation.TopicsCacheTTL)
}

// GetCategories implements QuizCacheService. A miss returns nil, nil.
func (s *quizCacheServiceImpl) GetCategories(ctx context.Context) (dto.CategoriesResponse, error) {
	if s.cache == nil {
		return nil, nil
	}
	val, err := s.cache.Get(ctx, categoriesKey())
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}

	var categories dto.CategoriesResponse
	if err := json.Unmarshal([]byte(val), &categories); err != nil {
		_ = s.cache.Delete(ctx, categoriesKey())
		return nil, nil
	}
	return categories, nil
}

// PutCategories implements QuizCacheService
func (s *quizCacheServiceImpl) PutCategories(ctx context.Context, categories dto.CategoriesResponse) error {
	if s.cache == nil {
		return nil
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, categoriesKey(), string(data), s.cfg.Generation.TopicsCacheTTL)
}

// InvalidateTopic implements QuizCacheService
func (s *quizCacheServiceImpl) InvalidateTopic(ctx context.Context, topicID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, quizKey(topicID))
}

// InvalidateListings drops the topic list and category map entries, typically
// after a new quiz is generated or an attempt updates a topic.
func (s *quizCacheServiceImpl) InvalidateListings(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, topicsKey()); err != nil {
		return err
	}
	return s.cache.Delete(ctx, categoriesKey())
}
