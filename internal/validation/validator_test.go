package validation

import (
	"testing"

	"quizmaker/internal/dto"
	"quizmaker/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidateGenerateQuizRequest(t *testing.T) {
	v := NewValidator(20)

	tests := []struct {
		name    string
		req     dto.GenerateQuizRequest
		wantErr bool
	}{
		{"Valid", dto.GenerateQuizRequest{URL: "https://example.com/article", NumQuestions: 5, Difficulty: "easy"}, false},
		{"ValidDefaults", dto.GenerateQuizRequest{URL: "http://example.com"}, false},
		{"MissingURL", dto.GenerateQuizRequest{NumQuestions: 5}, true},
		{"NotAURL", dto.GenerateQuizRequest{URL: "not a url"}, true},
		{"FTPScheme", dto.GenerateQuizRequest{URL: "ftp://example.com/file"}, true},
		{"TooManyQuestions", dto.GenerateQuizRequest{URL: "https://example.com", NumQuestions: 21}, true},
		{"NegativeQuestions", dto.GenerateQuizRequest{URL: "https://example.com", NumQuestions: -1}, true},
		{"BadDifficulty", dto.GenerateQuizRequest{URL: "https://example.com", Difficulty: "impossible"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateGenerateQuizRequest(&tt.req)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateTopicID(t *testing.T) {
	v := NewValidator(20)

	assert.Empty(t, v.ValidateTopicID(util.NewULID()))
	assert.NotEmpty(t, v.ValidateTopicID(""))
	assert.NotEmpty(t, v.ValidateTopicID("short"))
	assert.NotEmpty(t, v.ValidateTopicID("contains-invalid-characters!!!"))
	// Right length, but 'I', 'L', 'O' and 'U' are outside the ULID alphabet.
	assert.NotEmpty(t, v.ValidateTopicID("ILOU56789ABCDEFGHJKMNPQRST"))
}

func TestValidateSubmitResultRequest(t *testing.T) {
	v := NewValidator(20)
	topicID := util.NewULID()
	questionID := util.NewULID()

	valid := dto.SubmitResultRequest{
		TopicID:          topicID,
		Difficulty:       "medium",
		TimeTakenSeconds: 90,
		Answers:          []dto.SubmittedAnswer{{QuestionID: questionID, UserAnswer: "go"}},
	}
	assert.Empty(t, v.ValidateSubmitResultRequest(&valid))

	noAnswers := valid
	noAnswers.Answers = nil
	assert.NotEmpty(t, v.ValidateSubmitResultRequest(&noAnswers))

	badQuestion := valid
	badQuestion.Answers = []dto.SubmittedAnswer{{QuestionID: "nope", UserAnswer: "go"}}
	assert.NotEmpty(t, v.ValidateSubmitResultRequest(&badQuestion))

	negativeTime := valid
	negativeTime.TimeTakenSeconds = -1
	assert.NotEmpty(t, v.ValidateSubmitResultRequest(&negativeTime))

	badDifficulty := valid
	badDifficulty.Difficulty = "nightmare"
	assert.NotEmpty(t, v.ValidateSubmitResultRequest(&badDifficulty))
}
