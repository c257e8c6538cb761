package dto

import "time"

// GenerateQuizRequest is the request body for generating a quiz from a URL.
// @Description Request body for URL-based quiz generation
type GenerateQuizRequest struct {
	URL          string `json:"url"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

// QuestionResponse represents a single question in a quiz response.
type QuestionResponse struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	RightOption string   `json:"right_option"`
}

// QuizResponse represents a full quiz in the API response.
// @Description Quiz with its questions
type QuizResponse struct {
	ID                string             `json:"id"`
	Topic             string             `json:"topic"`
	Category          string             `json:"category"`
	Subcategory       string             `json:"subcategory"`
	CreationTimestamp time.Time          `json:"creation_timestamp"`
	Questions         []QuestionResponse `json:"questions"`
}

// TopicResponse represents a quiz topic in list responses.
type TopicResponse struct {
	ID                string     `json:"id"`
	Topic             string     `json:"topic"`
	Category          string     `json:"category"`
	Subcategory       string     `json:"subcategory"`
	CreationTimestamp time.Time  `json:"creation_timestamp"`
	LastAttemptDate   *time.Time `json:"last_attempt_date,omitempty"`
}

// CategoriesResponse maps each category to its unique subcategories.
type CategoriesResponse map[string][]string

// RecordAttemptRequest is the request body for recording a quiz attempt.
// @Description Request body for recording that a quiz was taken
type RecordAttemptRequest struct {
	TopicID string `json:"topic_id"`
}

// RecordAttemptResponse confirms a recorded attempt.
type RecordAttemptResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// AttemptsResponse lists the attempt timestamps for a topic.
type AttemptsResponse struct {
	Topic    string      `json:"topic"`
	Attempts []time.Time `json:"attempts"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache,omitempty"`
}
