package repository

import (
	"context"
	"fmt"
	"time"

	"quizmaker/internal/domain"
	"quizmaker/internal/repository/models"
	"quizmaker/internal/util"

	"github.com/jmoiron/sqlx"
)

// AttemptDatabaseAdapter implements domain.AttemptRepository using sqlx.DB
type AttemptDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAttemptDatabaseAdapter creates a new instance of AttemptDatabaseAdapter
func NewAttemptDatabaseAdapter(db *sqlx.DB) domain.AttemptRepository {
	return &AttemptDatabaseAdapter{db: db}
}

// SaveAttempt implements domain.AttemptRepository
func (a *AttemptDatabaseAdapter) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if attempt == nil {
		return fmt.Errorf("cannot save nil attempt")
	}
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	if attempt.AttemptedAt.IsZero() {
		attempt.AttemptedAt = time.Now()
	}

	query := `INSERT INTO quiz_attempts (id, topic_id, attempted_at) VALUES (?, ?, ?)`

	exec := GetExecutor(ctx, a.db)
	if _, err := exec.ExecContext(ctx, query, attempt.ID, attempt.TopicID, attempt.AttemptedAt); err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

// GetAttemptsByTopicID implements domain.AttemptRepository
func (a *AttemptDatabaseAdapter) GetAttemptsByTopicID(ctx context.Context, topicID string) ([]*domain.Attempt, error) {
	var modelAttempts []models.Attempt
	query := `SELECT id, topic_id, attempted_at FROM quiz_attempts
	          WHERE topic_id = ? ORDER BY attempted_at ASC`

	exec := GetExecutor(ctx, a.db)
	if err := exec.SelectContext(ctx, &modelAttempts, query, topicID); err != nil {
		return nil, fmt.Errorf("failed to get attempts for topic %s: %w", topicID, err)
	}

	attempts := make([]*domain.Attempt, 0, len(modelAttempts))
	for _, m := range modelAttempts {
		attempts = append(attempts, &domain.Attempt{
			ID:          m.ID,
			TopicID:     m.TopicID,
			AttemptedAt: m.AttemptedAt,
		})
	}
	return attempts, nil
}
