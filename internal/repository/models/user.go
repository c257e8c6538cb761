package models

import (
	"database/sql"
	"time"
)

// User mirrors the users table that maps external Google identities to
// internal accounts.
type User struct {
	ID          string         `db:"id"`
	GoogleID    string         `db:"google_id"`
	Email       string         `db:"email"`
	Name        sql.NullString `db:"name"`
	PictureURL  sql.NullString `db:"picture_url"`
	CreatedAt   time.Time      `db:"created_at"`
	LastLoginAt sql.NullTime   `db:"last_login_at"`
}

// QuizResult mirrors the quiz_results table.
type QuizResult struct {
	ID                    string          `db:"id"`
	UserID                string          `db:"user_id"`
	TopicID               string          `db:"topic_id"`
	Score                 float64         `db:"score"`
	TotalQuestions        int             `db:"total_questions"`
	CorrectAnswers        int             `db:"correct_answers"`
	TimeTakenSeconds      sql.NullInt64   `db:"time_taken_seconds"`
	Difficulty            sql.NullString  `db:"difficulty"`
	DayOfWeek             sql.NullString  `db:"day_of_week"`
	TimeOfDay             sql.NullString  `db:"time_of_day"`
	AvgSecondsPerQuestion sql.NullFloat64 `db:"avg_seconds_per_question"`
	Streak                int             `db:"streak"`
	CompletedAt           time.Time       `db:"completed_at"`
}

// QuestionAnswer mirrors the question_answers table.
type QuestionAnswer struct {
	ID               string         `db:"id"`
	ResultID         string         `db:"result_id"`
	QuestionID       string         `db:"question_id"`
	UserAnswer       sql.NullString `db:"user_answer"`
	IsCorrect        bool           `db:"is_correct"`
	TimeTakenSeconds sql.NullInt64  `db:"time_taken_seconds"`
}
