package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizmaker/internal/domain"
	"quizmaker/internal/repository/models"
	"quizmaker/internal/util"

	"github.com/jmoiron/sqlx"
)

// ResultDatabaseAdapter implements domain.ResultRepository using sqlx.DB
type ResultDatabaseAdapter struct {
	db *sqlx.DB
}

// NewResultDatabaseAdapter creates a new instance of ResultDatabaseAdapter
func NewResultDatabaseAdapter(db *sqlx.DB) domain.ResultRepository {
	return &ResultDatabaseAdapter{db: db}
}

// SaveResult implements domain.ResultRepository. The result row and its
// per-question answers are written with the same executor, so callers wanting
// atomicity run it under the transaction manager.
func (a *ResultDatabaseAdapter) SaveResult(ctx context.Context, result *domain.QuizResult) error {
	if result == nil {
		return fmt.Errorf("cannot save nil result")
	}
	if result.ID == "" {
		result.ID = util.NewULID()
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}

	query := `INSERT INTO quiz_results (
		id, user_id, topic_id, score, total_questions, correct_answers,
		time_taken_seconds, difficulty, day_of_week, time_of_day,
		avg_seconds_per_question, streak, completed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	exec := GetExecutor(ctx, a.db)
	if _, err := exec.ExecContext(ctx, query,
		result.ID,
		result.UserID,
		result.TopicID,
		result.Score,
		result.TotalQuestions,
		result.CorrectAnswers,
		result.TimeTakenSeconds,
		util.StringToNullString(result.Difficulty),
		util.StringToNullString(result.DayOfWeek),
		util.StringToNullString(result.TimeOfDay),
		result.AvgSecondsPerQuestion,
		result.Streak,
		result.CompletedAt,
	); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	answerQuery := `INSERT INTO question_answers (
		id, result_id, question_id, user_answer, is_correct, time_taken_seconds
	) VALUES (?, ?, ?, ?, ?, ?)`

	for _, ans := range result.Answers {
		if ans.ID == "" {
			ans.ID = util.NewULID()
		}
		ans.ResultID = result.ID
		if _, err := exec.ExecContext(ctx, answerQuery,
			ans.ID,
			ans.ResultID,
			ans.QuestionID,
			util.StringToNullString(ans.UserAnswer),
			ans.IsCorrect,
			ans.TimeTakenSeconds,
		); err != nil {
			return fmt.Errorf("failed to save question answer: %w", err)
		}
	}
	return nil
}

// GetResultsByUserID implements domain.ResultRepository
func (a *ResultDatabaseAdapter) GetResultsByUserID(ctx context.Context, userID string) ([]*domain.QuizResult, error) {
	var modelResults []models.QuizResult
	query := `SELECT id, user_id, topic_id, score, total_questions, correct_answers,
	                 time_taken_seconds, difficulty, day_of_week, time_of_day,
	                 avg_seconds_per_question, streak, completed_at
	          FROM quiz_results WHERE user_id = ? ORDER BY completed_at DESC`

	exec := GetExecutor(ctx, a.db)
	if err := exec.SelectContext(ctx, &modelResults, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get results for user %s: %w", userID, err)
	}

	results := make([]*domain.QuizResult, 0, len(modelResults))
	for i := range modelResults {
		results = append(results, toDomainResult(&modelResults[i]))
	}
	return results, nil
}

// GetLatestResultForUser implements domain.ResultRepository. Returns nil, nil
// when the user has no prior result for the topic.
func (a *ResultDatabaseAdapter) GetLatestResultForUser(ctx context.Context, userID, topicID string) (*domain.QuizResult, error) {
	var modelResult models.QuizResult
	query := `SELECT id, user_id, topic_id, score, total_questions, correct_answers,
	                 time_taken_seconds, difficulty, day_of_week, time_of_day,
	                 avg_seconds_per_question, streak, completed_at
	          FROM quiz_results WHERE user_id = ? AND topic_id = ?
	          ORDER BY completed_at DESC LIMIT 1`

	exec := GetExecutor(ctx, a.db)
	if err := exec.GetContext(ctx, &modelResult, query, userID, topicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest result: %w", err)
	}
	return toDomainResult(&modelResult), nil
}

func toDomainResult(m *models.QuizResult) *domain.QuizResult {
	return &domain.QuizResult{
		ID:                    m.ID,
		UserID:                m.UserID,
		TopicID:               m.TopicID,
		Score:                 m.Score,
		TotalQuestions:        m.TotalQuestions,
		CorrectAnswers:        m.CorrectAnswers,
		TimeTakenSeconds:      int(m.TimeTakenSeconds.Int64),
		Difficulty:            m.Difficulty.String,
		DayOfWeek:             m.DayOfWeek.String,
		TimeOfDay:             m.TimeOfDay.String,
		AvgSecondsPerQuestion: m.AvgSecondsPerQuestion.Float64,
		Streak:                m.Streak,
		CompletedAt:           m.CompletedAt,
	}
}
