package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"quizmaker/internal/config"
	"quizmaker/internal/domain"
	"quizmaker/internal/dto"
	"quizmaker/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// GenerationService defines the interface for creating quizzes from source
// material.
type GenerationService interface {
	GenerateFromURL(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	GenerateFromPDF(ctx context.Context, pdf io.ReaderAt, size int64, numQuestions int, difficulty string) (*dto.QuizResponse, error)
}

// generationService implements GenerationService
type generationService struct {
	extractor domain.ContentExtractor
	generator domain.QuizGenerator
	topicRepo domain.TopicRepository
	txManager domain.TransactionManager
	quizCache QuizCacheService
	cfg       *config.Config

	// urlGroup collapses concurrent generation requests for the same URL and
	// parameters into a single LLM call.
	urlGroup singleflight.Group
}

// NewGenerationService creates a new instance of generationService
func NewGenerationService(
	extractor domain.ContentExtractor,
	generator domain.QuizGenerator,
	topicRepo domain.TopicRepository,
	txManager domain.TransactionManager,
	quizCache QuizCacheService,
	cfg *config.Config,
) GenerationService {
	return &generationService{
		extractor: extractor,
		generator: generator,
		topicRepo: topicRepo,
		txManager: txManager,
		quizCache: quizCache,
		cfg:       cfg,
	}
}

// GenerateFromURL implements GenerationService
func (s *generationService) GenerateFromURL(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	url := strings.TrimSuffix(strings.TrimSpace(req.URL), "/")
	numQuestions, difficulty, err := s.normalizeParams(req.NumQuestions, req.Difficulty)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%d|%s", url, numQuestions, difficulty)
	result, err, shared := s.urlGroup.Do(key, func() (interface{}, error) {
		content, err := s.extractor.ExtractURL(ctx, url)
		if err != nil {
			return nil, err
		}
		return s.generateAndPersist(ctx, content, numQuestions, difficulty)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Info("Generation request deduplicated", zap.String("url", url))
	}
	return result.(*dto.QuizResponse), nil
}

// GenerateFromPDF implements GenerationService
func (s *generationService) GenerateFromPDF(ctx context.Context, pdf io.ReaderAt, size int64, numQuestions int, difficulty string) (*dto.QuizResponse, error) {
	numQuestions, difficulty, err := s.normalizeParams(numQuestions, difficulty)
	if err != nil {
		return nil, err
	}

	content, err := s.extractor.ExtractPDF(ctx, pdf, size)
	if err != nil {
		return nil, err
	}

	return s.generateAndPersist(ctx, content, numQuestions, difficulty)
}

// normalizeParams applies defaults and bounds to generation parameters.
func (s *generationService) normalizeParams(numQuestions int, difficulty string) (int, string, error) {
	if numQuestions == 0 {
		numQuestions = s.cfg.Generation.DefaultNumQuestions
	}
	if numQuestions < 1 || numQuestions > s.cfg.Generation.MaxNumQuestions {
		return 0, "", domain.NewError(domain.CodeOutOfRange,
			fmt.Sprintf("num_questions must be between 1 and %d", s.cfg.Generation.MaxNumQuestions), nil)
	}

	if difficulty == "" {
		difficulty = domain.DifficultyMedium
	}
	if !domain.IsValidDifficulty(difficulty) {
		return 0, "", domain.NewInvalidDifficultyError(difficulty)
	}
	return numQuestions, difficulty, nil
}

// generateAndPersist runs the LLM generation and stores the topic with its
// questions atomically.
func (s *generationService) generateAndPersist(ctx context.Context, content string, numQuestions int, difficulty string) (*dto.QuizResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewInvalidInputError("no text content could be extracted from the source")
	}

	generated, err := s.generator.Generate(ctx, content, numQuestions, difficulty)
	if err != nil {
		return nil, err
	}

	topic := domain.NewTopic(generated.Topic, generated.Category, generated.Subcategory)
	questions := make([]*domain.Question, 0, len(generated.Questions))
	for _, gq := range generated.Questions {
		questions = append(questions, &domain.Question{
			Text:        gq.Question,
			Options:     gq.Options,
			RightOption: gq.RightOption,
		})
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.topicRepo.SaveTopic(txCtx, topic); err != nil {
			return err
		}
		return s.topicRepo.SaveQuestions(txCtx, topic.ID, questions)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to persist generated quiz", err)
	}
	topic.Questions = questions

	logger.Get().Info("Stored generated quiz",
		zap.String("topic_id", topic.ID),
		zap.String("topic", topic.Name),
		zap.Int("num_questions", len(questions)),
	)

	if err := s.quizCache.InvalidateListings(ctx); err != nil {
		logger.Get().Warn("Failed to invalidate listing caches", zap.Error(err))
	}

	response := toQuizResponse(topic)
	if err := s.quizCache.PutQuiz(ctx, topic.ID, response); err != nil {
		logger.Get().Warn("Quiz cache write failed", zap.Error(err), zap.String("topic_id", topic.ID))
	}
	return response, nil
}
