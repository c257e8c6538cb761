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

// TopicDatabaseAdapter implements domain.TopicRepository using sqlx.DB
type TopicDatabaseAdapter struct {
	db *sqlx.DB
}

// NewTopicDatabaseAdapter creates a new instance of TopicDatabaseAdapter
func NewTopicDatabaseAdapter(db *sqlx.DB) domain.TopicRepository {
	return &TopicDatabaseAdapter{db: db}
}

// SaveTopic implements domain.TopicRepository
func (a *TopicDatabaseAdapter) SaveTopic(ctx context.Context, topic *domain.Topic) error {
	if topic == nil {
		return fmt.Errorf("cannot save nil topic")
	}
	if topic.ID == "" {
		topic.ID = util.NewULID()
	}
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now()
	}

	query := `INSERT INTO quiz_topics (id, topic, category, subcategory, created_at, last_attempt_at)
	          VALUES (?, ?, ?, ?, ?, NULL)`

	exec := GetExecutor(ctx, a.db)
	if _, err := exec.ExecContext(ctx, query,
		topic.ID,
		topic.Name,
		topic.Category,
		topic.Subcategory,
		topic.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to save topic: %w", err)
	}
	return nil
}

// SaveQuestions implements domain.TopicRepository
func (a *TopicDatabaseAdapter) SaveQuestions(ctx context.Context, topicID string, questions []*domain.Question) error {
	query := `INSERT INTO quiz_questions (id, topic_id, question, options, right_option)
	          VALUES (?, ?, ?, ?, ?)`

	exec := GetExecutor(ctx, a.db)
	for _, q := range questions {
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.TopicID = topicID
		if _, err := exec.ExecContext(ctx, query,
			q.ID,
			q.TopicID,
			q.Text,
			models.StringSlice(q.Options),
			q.RightOption,
		); err != nil {
			return fmt.Errorf("failed to save question: %w", err)
		}
	}
	return nil
}

// GetTopicByID implements domain.TopicRepository. Returns nil, nil when the
// topic does not exist.
func (a *TopicDatabaseAdapter) GetTopicByID(ctx context.Context, id string) (*domain.Topic, error) {
	var modelTopic models.Topic
	query := `SELECT id, topic, category, subcategory, created_at, last_attempt_at
	          FROM quiz_topics WHERE id = ?`

	exec := GetExecutor(ctx, a.db)
	if err := exec.GetContext(ctx, &modelTopic, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic by ID %s: %w", id, err)
	}
	return toDomainTopic(&modelTopic), nil
}

// GetAllTopics implements domain.TopicRepository
func (a *TopicDatabaseAdapter) GetAllTopics(ctx context.Context) ([]*domain.Topic, error) {
	var modelTopics []models.Topic
	query := `SELECT id, topic, category, subcategory, created_at, last_attempt_at
	          FROM quiz_topics ORDER BY created_at DESC`

	exec := GetExecutor(ctx, a.db)
	if err := exec.SelectContext(ctx, &modelTopics, query); err != nil {
		return nil, fmt.Errorf("failed to get topics: %w", err)
	}

	topics := make([]*domain.Topic, 0, len(modelTopics))
	for i := range modelTopics {
		topics = append(topics, toDomainTopic(&modelTopics[i]))
	}
	return topics, nil
}

// GetQuestionsByTopicID implements domain.TopicRepository
func (a *TopicDatabaseAdapter) GetQuestionsByTopicID(ctx context.Context, topicID string) ([]*domain.Question, error) {
	var modelQuestions []models.Question
	query := `SELECT id, topic_id, question, options, right_option
	          FROM quiz_questions WHERE topic_id = ?`

	exec := GetExecutor(ctx, a.db)
	if err := exec.SelectContext(ctx, &modelQuestions, query, topicID); err != nil {
		return nil, fmt.Errorf("failed to get questions for topic %s: %w", topicID, err)
	}

	questions := make([]*domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		questions = append(questions, toDomainQuestion(&modelQuestions[i]))
	}
	return questions, nil
}

// UpdateLastAttempt implements domain.TopicRepository
func (a *TopicDatabaseAdapter) UpdateLastAttempt(ctx context.Context, topicID string, at time.Time) error {
	query := `UPDATE quiz_topics SET last_attempt_at = ? WHERE id = ?`

	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, query, at, topicID)
	if err != nil {
		return fmt.Errorf("failed to update last attempt for topic %s: %w", topicID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("topic with ID %s not found", topicID)
	}
	return nil
}

func toDomainTopic(m *models.Topic) *domain.Topic {
	return &domain.Topic{
		ID:            m.ID,
		Name:          m.Topic,
		Category:      m.Category,
		Subcategory:   m.Subcategory,
		CreatedAt:     m.CreatedAt,
		LastAttemptAt: util.NullTimeToPtr(m.LastAttemptAt),
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:          m.ID,
		TopicID:     m.TopicID,
		Text:        m.Question,
		Options:     []string(m.Options),
		RightOption: m.RightOption,
	}
}
