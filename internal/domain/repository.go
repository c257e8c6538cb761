package domain

import (
	"context"
	"time"
)

// TransactionManager runs a function inside a database transaction. The
// transaction is carried through the context so repositories participate
// transparently.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TopicRepository persists quiz topics and their questions.
type TopicRepository interface {
	SaveTopic(ctx context.Context, topic *Topic) error
	SaveQuestions(ctx context.Context, topicID string, questions []*Question) error
	GetTopicByID(ctx context.Context, id string) (*Topic, error)
	GetAllTopics(ctx context.Context) ([]*Topic, error)
	GetQuestionsByTopicID(ctx context.Context, topicID string) ([]*Question, error)
	UpdateLastAttempt(ctx context.Context, topicID string, at time.Time) error
}

// AttemptRepository persists quiz attempts.
type AttemptRepository interface {
	SaveAttempt(ctx context.Context, attempt *Attempt) error
	GetAttemptsByTopicID(ctx context.Context, topicID string) ([]*Attempt, error)
}

// ResultRepository persists user quiz results and their per-question answers.
type ResultRepository interface {
	SaveResult(ctx context.Context, result *QuizResult) error
	GetResultsByUserID(ctx context.Context, userID string) ([]*QuizResult, error)
	GetLatestResultForUser(ctx context.Context, userID, topicID string) (*QuizResult, error)
}
