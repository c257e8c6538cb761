package validation

import (
	"net/url"
	"regexp"
	"strings"

	"quizmaker/internal/domain"
	"quizmaker/internal/dto"
)

// Validator provides request validation functionality
type Validator struct {
	maxNumQuestions int
}

// NewValidator creates a new validator instance
func NewValidator(maxNumQuestions int) *Validator {
	return &Validator{maxNumQuestions: maxNumQuestions}
}

// ValidateGenerateQuizRequest validates a URL-based generation request.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.URL) == "" {
		errs = append(errs, domain.NewMissingFieldError("url"))
	} else if !isValidHTTPURL(req.URL) {
		errs = append(errs, domain.NewInvalidFormatError("url", req.URL))
	}

	errs = append(errs, v.validateGenerationParams(req.NumQuestions, req.Difficulty)...)
	return errs
}

// ValidateGenerationParams validates the shared num_questions/difficulty pair
// used by both generation endpoints.
func (v *Validator) ValidateGenerationParams(numQuestions int, difficulty string) domain.ValidationErrors {
	return v.validateGenerationParams(numQuestions, difficulty)
}

func (v *Validator) validateGenerationParams(numQuestions int, difficulty string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	// Zero means "use the default"; anything else must be in range.
	if numQuestions != 0 && (numQuestions < 1 || numQuestions > v.maxNumQuestions) {
		errs = append(errs, domain.NewOutOfRangeError("num_questions", numQuestions, 1, v.maxNumQuestions))
	}

	if difficulty != "" && !domain.IsValidDifficulty(difficulty) {
		errs = append(errs, domain.NewInvalidFormatError("difficulty", difficulty))
	}
	return errs
}

// ValidateTopicID validates a topic identifier path or body parameter.
func (v *Validator) ValidateTopicID(topicID string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(topicID) == "" {
		errs = append(errs, domain.NewMissingFieldError("topic_id"))
	} else if !isValidULID(topicID) {
		errs = append(errs, domain.NewInvalidFormatError("topic_id", topicID))
	}
	return errs
}

// ValidateSubmitResultRequest validates a quiz result submission.
func (v *Validator) ValidateSubmitResultRequest(req *dto.SubmitResultRequest) domain.ValidationErrors {
	errs := v.ValidateTopicID(req.TopicID)

	if len(req.Answers) == 0 {
		errs = append(errs, domain.NewMissingFieldError("answers"))
	}
	for _, ans := range req.Answers {
		if !isValidULID(ans.QuestionID) {
			errs = append(errs, domain.NewInvalidFormatError("answers.question_id", ans.QuestionID))
		}
	}
	if req.TimeTakenSeconds < 0 {
		errs = append(errs, domain.NewOutOfRangeError("time_taken_seconds", req.TimeTakenSeconds, 0, 86400))
	}
	if req.Difficulty != "" && !domain.IsValidDifficulty(req.Difficulty) {
		errs = append(errs, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}
	return errs
}

// Helper functions for validation

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	return ulidPattern.MatchString(s)
}

// isValidHTTPURL checks that the string parses as an absolute http(s) URL.
func isValidHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
