package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleUserInfo holds user information obtained from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenResponse represents the response containing access and refresh tokens.
// @Description Response body for authentication tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest represents the request body for refreshing a token.
// @Description Request body for refreshing JWT tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserProfileResponse defines the structure for a user's profile information.
type UserProfileResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	PictureURL string `json:"picture_url,omitempty"`
}

// SubmittedAnswer is a single answer inside a result submission.
type SubmittedAnswer struct {
	QuestionID       string `json:"question_id"`
	UserAnswer       string `json:"user_answer"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

// SubmitResultRequest is the request body for submitting a completed quiz run.
// @Description Request body for submitting a quiz result
type SubmitResultRequest struct {
	TopicID          string            `json:"topic_id"`
	Difficulty       string            `json:"difficulty,omitempty"`
	TimeTakenSeconds int               `json:"time_taken_seconds"`
	Answers          []SubmittedAnswer `json:"answers"`
}

// ResultResponse represents a stored quiz result.
type ResultResponse struct {
	ID                    string    `json:"id"`
	TopicID               string    `json:"topic_id"`
	Score                 float64   `json:"score"`
	TotalQuestions        int       `json:"total_questions"`
	CorrectAnswers        int       `json:"correct_answers"`
	TimeTakenSeconds      int       `json:"time_taken_seconds,omitempty"`
	Difficulty            string    `json:"difficulty,omitempty"`
	DayOfWeek             string    `json:"day_of_week,omitempty"`
	TimeOfDay             string    `json:"time_of_day,omitempty"`
	AvgSecondsPerQuestion float64   `json:"average_time_per_question,omitempty"`
	Streak                int       `json:"streak"`
	CompletedAt           time.Time `json:"completed_at"`
}
