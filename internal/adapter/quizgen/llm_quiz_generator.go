package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizmaker/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LLMQuizGenerator implements domain.QuizGenerator on top of a langchaingo
// model (ollama or openai, chosen at wiring time).
type LLMQuizGenerator struct {
	llm    llms.Model
	logger *zap.Logger
}

// NewLLMQuizGenerator creates a new instance of LLMQuizGenerator.
func NewLLMQuizGenerator(llm llms.Model, logger *zap.Logger) (domain.QuizGenerator, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm model cannot be nil")
	}
	return &LLMQuizGenerator{llm: llm, logger: logger}, nil
}

const promptTemplate = `You are an expert quiz generator. Based ONLY on the source material below, create %d multiple-choice quiz questions at %s difficulty.

Respond with ONLY a JSON object in the following format:
{
    "topic": "short title of what the material is about",
    "category": "broad category, e.g. Science, History, Technology",
    "subcategory": "narrower classification within the category",
    "questions": [
        {
            "question": "the question text",
            "options": ["option A", "option B", "option C", "option D"],
            "right_option": "the correct option, copied verbatim from options"
        }
    ]
}

Rules:
1. Produce exactly %d questions, each with exactly 4 options.
2. "right_option" must match one of the entries in "options" character for character.
3. Every question must be answerable from the source material alone.
4. Do not include explanations, markdown, or anything outside the JSON object.

Source material:
%s`

// Generate implements domain.QuizGenerator
func (g *LLMQuizGenerator) Generate(ctx context.Context, content string, numQuestions int, difficulty string) (*domain.GeneratedQuiz, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewInvalidInputError("source content is empty")
	}

	prompt := fmt.Sprintf(promptTemplate, numQuestions, difficulty, numQuestions, content)

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	quiz, err := parseQuizResponse(response)
	if err != nil {
		g.logger.Error("Failed to parse LLM quiz response",
			zap.Error(err),
			zap.String("response", response),
		)
		return nil, domain.NewLLMServiceError(err)
	}

	if err := quiz.Validate(); err != nil {
		g.logger.Error("LLM produced an invalid quiz", zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}

	g.logger.Info("Generated quiz from source material",
		zap.String("topic", quiz.Topic),
		zap.Int("num_questions", len(quiz.Questions)),
		zap.String("difficulty", difficulty),
	)
	return quiz, nil
}

// parseQuizResponse strips reasoning blocks and code fences the model may wrap
// around its output, then unmarshals the JSON payload.
func parseQuizResponse(response string) (*domain.GeneratedQuiz, error) {
	responseStr := strings.TrimSpace(response)
	if thinkStart := strings.Index(responseStr, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(responseStr, "</think>"); thinkEnd != -1 {
			responseStr = responseStr[thinkEnd+len("</think>"):]
		}
	}

	responseStr = strings.TrimSpace(responseStr)
	responseStr = strings.TrimPrefix(responseStr, "```json")
	responseStr = strings.TrimPrefix(responseStr, "```")
	responseStr = strings.TrimSuffix(responseStr, "```")
	responseStr = strings.TrimSpace(responseStr)

	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal([]byte(responseStr), &quiz); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as quiz JSON: %w", err)
	}
	return &quiz, nil
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
