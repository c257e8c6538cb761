package domain

import (
	"time"
)

// Difficulty levels accepted by the generation API.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// IsValidDifficulty reports whether the given difficulty level is supported.
func IsValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Topic represents a generated quiz topic with its classification.
type Topic struct {
	ID            string
	Name          string
	Category      string
	Subcategory   string
	CreatedAt     time.Time
	LastAttemptAt *time.Time
	Questions     []*Question
}

// NewTopic creates a new Topic instance
func NewTopic(name, category, subcategory string) *Topic {
	return &Topic{
		Name:        name,
		Category:    category,
		Subcategory: subcategory,
		CreatedAt:   time.Now(),
	}
}

// Validate validates the topic
func (t *Topic) Validate() error {
	if t.Name == "" {
		return NewInvalidInputError("topic name is required")
	}
	if t.Category == "" {
		return NewInvalidInputError("category is required")
	}
	if t.Subcategory == "" {
		return NewInvalidInputError("subcategory is required")
	}
	return nil
}

// Question represents a single multiple-choice question belonging to a topic.
type Question struct {
	ID          string
	TopicID     string
	Text        string
	Options     []string
	RightOption string
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) < 2 {
		return NewInvalidInputError("question needs at least two options")
	}
	if !q.HasOption(q.RightOption) {
		return NewInvalidInputError("right option must be one of the question options")
	}
	return nil
}

// HasOption reports whether the given text matches one of the options.
func (q *Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Attempt records that a quiz topic was taken at a point in time.
type Attempt struct {
	ID          string
	TopicID     string
	AttemptedAt time.Time
}

// NewAttempt creates a new Attempt instance
func NewAttempt(topicID string) *Attempt {
	return &Attempt{
		TopicID:     topicID,
		AttemptedAt: time.Now(),
	}
}
