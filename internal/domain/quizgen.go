package domain

import (
	"context"
	"io"
)

// GeneratedQuestion is a single question as produced by the LLM, before it is
// persisted as a Question.
type GeneratedQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	RightOption string   `json:"right_option"`
}

// GeneratedQuiz is the structured output of a quiz generation call.
type GeneratedQuiz struct {
	Topic       string              `json:"topic"`
	Category    string              `json:"category"`
	Subcategory string              `json:"subcategory"`
	Questions   []GeneratedQuestion `json:"questions"`
}

// Validate checks that the LLM output is usable before persisting it.
func (g *GeneratedQuiz) Validate() error {
	if g.Topic == "" || g.Category == "" || g.Subcategory == "" {
		return NewInvalidInputError("generated quiz is missing topic classification")
	}
	if len(g.Questions) == 0 {
		return NewInvalidInputError("generated quiz contains no questions")
	}
	for _, q := range g.Questions {
		if q.Question == "" {
			return NewInvalidInputError("generated question has no text")
		}
		if len(q.Options) < 2 {
			return NewInvalidInputError("generated question needs at least two options")
		}
		found := false
		for _, o := range q.Options {
			if o == q.RightOption {
				found = true
				break
			}
		}
		if !found {
			return NewInvalidInputError("generated right option is not among the options")
		}
	}
	return nil
}

// QuizGenerator produces a quiz from source material text.
type QuizGenerator interface {
	Generate(ctx context.Context, content string, numQuestions int, difficulty string) (*GeneratedQuiz, error)
}

// ContentExtractor turns external source material into plain text suitable for
// prompting.
type ContentExtractor interface {
	ExtractURL(ctx context.Context, url string) (string, error)
	ExtractPDF(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}
