package service

import (
	"context"
	"time"

	"quizmaker/internal/domain"
	"quizmaker/internal/dto"
	"quizmaker/internal/logger"

	"go.uber.org/zap"
)

// streakScoreThreshold is the minimum score that keeps a user's streak on a
// topic alive.
const streakScoreThreshold = 0.8

// ResultService handles submission and retrieval of per-user quiz results.
type ResultService interface {
	SubmitResult(ctx context.Context, userID string, req *dto.SubmitResultRequest) (*dto.ResultResponse, error)
	GetResultsForUser(ctx context.Context, userID string) ([]dto.ResultResponse, error)
}

// resultService implements ResultService
type resultService struct {
	topicRepo   domain.TopicRepository
	attemptRepo domain.AttemptRepository
	resultRepo  domain.ResultRepository
	txManager   domain.TransactionManager
	quizCache   QuizCacheService
}

// NewResultService creates a new instance of resultService
func NewResultService(
	topicRepo domain.TopicRepository,
	attemptRepo domain.AttemptRepository,
	resultRepo domain.ResultRepository,
	txManager domain.TransactionManager,
	quizCache QuizCacheService,
) ResultService {
	return &resultService{
		topicRepo:   topicRepo,
		attemptRepo: attemptRepo,
		resultRepo:  resultRepo,
		txManager:   txManager,
		quizCache:   quizCache,
	}
}

// SubmitResult grades a completed quiz run against the stored questions and
// persists the result, its per-question answers, and the implied attempt in
// one transaction.
func (s *resultService) SubmitResult(ctx context.Context, userID string, req *dto.SubmitResultRequest) (*dto.ResultResponse, error) {
	topic, err := s.topicRepo.GetTopicByID(ctx, req.TopicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get topic", err)
	}
	if topic == nil {
		return nil, domain.NewTopicNotFoundError(req.TopicID)
	}

	questions, err := s.topicRepo.GetQuestionsByTopicID(ctx, req.TopicID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewInternalError("Topic has no questions", nil)
	}

	questionsByID := make(map[string]*domain.Question, len(questions))
	for _, q := range questions {
		questionsByID[q.ID] = q
	}

	now := time.Now()
	correct := 0
	answered := make(map[string]bool, len(req.Answers))
	answers := make([]*domain.QuestionAnswer, 0, len(req.Answers))
	for _, sub := range req.Answers {
		q, ok := questionsByID[sub.QuestionID]
		if !ok {
			return nil, domain.NewInvalidInputError("answer references a question outside this quiz")
		}
		if answered[sub.QuestionID] {
			return nil, domain.NewInvalidInputError("duplicate answer for question " + sub.QuestionID)
		}
		answered[sub.QuestionID] = true
		isCorrect := sub.UserAnswer == q.RightOption
		if isCorrect {
			correct++
		}
		answers = append(answers, &domain.QuestionAnswer{
			QuestionID:       sub.QuestionID,
			UserAnswer:       sub.UserAnswer,
			IsCorrect:        isCorrect,
			TimeTakenSeconds: sub.TimeTakenSeconds,
		})
	}

	total := len(questions)
	score := float64(correct) / float64(total)

	result := &domain.QuizResult{
		UserID:           userID,
		TopicID:          req.TopicID,
		Score:            score,
		TotalQuestions:   total,
		CorrectAnswers:   correct,
		TimeTakenSeconds: req.TimeTakenSeconds,
		Difficulty:       req.Difficulty,
		DayOfWeek:        now.Weekday().String(),
		TimeOfDay:        domain.TimeOfDayBucket(now),
		CompletedAt:      now,
		Answers:          answers,
	}
	if req.TimeTakenSeconds > 0 {
		result.AvgSecondsPerQuestion = float64(req.TimeTakenSeconds) / float64(total)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	attempt := domain.NewAttempt(req.TopicID)
	attempt.AttemptedAt = now
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		// The streak read shares the write transaction so concurrent
		// submissions by the same user cannot both continue the same streak.
		streak, err := s.nextStreak(txCtx, userID, req.TopicID, score)
		if err != nil {
			return err
		}
		result.Streak = streak
		if err := s.resultRepo.SaveResult(txCtx, result); err != nil {
			return err
		}
		if err := s.attemptRepo.SaveAttempt(txCtx, attempt); err != nil {
			return err
		}
		return s.topicRepo.UpdateLastAttempt(txCtx, req.TopicID, now)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to save quiz result", err)
	}

	if err := s.quizCache.InvalidateListings(ctx); err != nil {
		logger.Get().Warn("Failed to invalidate listing caches", zap.Error(err))
	}

	logger.Get().Info("Recorded quiz result",
		zap.String("user_id", userID),
		zap.String("topic_id", req.TopicID),
		zap.Float64("score", score),
		zap.Int("streak", result.Streak),
	)
	return toResultResponse(result), nil
}

// nextStreak continues the user's streak on a topic when the new score clears
// the threshold, otherwise resets it.
func (s *resultService) nextStreak(ctx context.Context, userID, topicID string, score float64) (int, error) {
	if score < streakScoreThreshold {
		return 0, nil
	}
	previous, err := s.resultRepo.GetLatestResultForUser(ctx, userID, topicID)
	if err != nil {
		return 0, domain.NewInternalError("Failed to get previous result", err)
	}
	if previous == nil {
		return 1, nil
	}
	return previous.Streak + 1, nil
}

// GetResultsForUser implements ResultService
func (s *resultService) GetResultsForUser(ctx context.Context, userID string) ([]dto.ResultResponse, error) {
	results, err := s.resultRepo.GetResultsByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get results", err)
	}

	responses := make([]dto.ResultResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, *toResultResponse(r))
	}
	return responses, nil
}

func toResultResponse(r *domain.QuizResult) *dto.ResultResponse {
	return &dto.ResultResponse{
		ID:                    r.ID,
		TopicID:               r.TopicID,
		Score:                 r.Score,
		TotalQuestions:        r.TotalQuestions,
		CorrectAnswers:        r.CorrectAnswers,
		TimeTakenSeconds:      r.TimeTakenSeconds,
		Difficulty:            r.Difficulty,
		DayOfWeek:             r.DayOfWeek,
		TimeOfDay:             r.TimeOfDay,
		AvgSecondsPerQuestion: r.AvgSecondsPerQuestion,
		Streak:                r.Streak,
		CompletedAt:           r.CompletedAt,
	}
}
