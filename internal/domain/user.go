package domain

import (
	"time"
)

// User is an account created from a Google sign-in.
type User struct {
	ID          string
	GoogleID    string
	Email       string
	Name        string
	PictureURL  string
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// QuizResult is a completed quiz run submitted by a signed-in user.
type QuizResult struct {
	ID                    string
	UserID                string
	TopicID               string
	Score                 float64
	TotalQuestions        int
	CorrectAnswers        int
	TimeTakenSeconds      int
	Difficulty            string
	DayOfWeek             string
	TimeOfDay             string
	AvgSecondsPerQuestion float64
	Streak                int
	CompletedAt           time.Time
	Answers               []*QuestionAnswer
}

// QuestionAnswer is a single answer given during a quiz run.
type QuestionAnswer struct {
	ID               string
	ResultID         string
	QuestionID       string
	UserAnswer       string
	IsCorrect        bool
	TimeTakenSeconds int
}

// Validate validates the quiz result
func (r *QuizResult) Validate() error {
	if r.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if r.TopicID == "" {
		return NewInvalidInputError("topic ID is required")
	}
	if r.TotalQuestions <= 0 {
		return NewInvalidInputError("total questions must be positive")
	}
	if r.CorrectAnswers < 0 || r.CorrectAnswers > r.TotalQuestions {
		return NewInvalidInputError("correct answers out of range")
	}
	return nil
}

// TimeOfDayBucket maps a timestamp to a coarse time-of-day label used for
// result analytics.
func TimeOfDayBucket(t time.Time) string {
	switch h := t.Hour(); {
	case h < 6:
		return "night"
	case h < 12:
		return "morning"
	case h < 18:
		return "afternoon"
	default:
		return "evening"
	}
}
