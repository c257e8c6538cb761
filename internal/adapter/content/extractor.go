package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"quizmaker/internal/domain"
	"quizmaker/internal/logger"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"go.uber.org/zap"
)

// Extractor implements domain.ContentExtractor. It pulls source material from
// a URL or an uploaded PDF and reduces it to plain text bounded by
// maxContentChars, so prompts stay within model context limits.
type Extractor struct {
	httpClient      *http.Client
	maxContentChars int
}

// NewExtractor creates a new Extractor instance
func NewExtractor(maxContentChars int) domain.ContentExtractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxContentChars: maxContentChars,
	}
}

// ExtractURL fetches the page at the given URL and converts it to text.
func (e *Extractor) ExtractURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", domain.NewInvalidInputError(fmt.Sprintf("invalid URL: %s", url))
	}
	req.Header.Set("User-Agent", "quizmaker/1.0")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", domain.NewContentUnavailableError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", domain.NewContentUnavailableError(url, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return "", domain.NewInternalError(
			fmt.Sprintf("upstream returned status %d for %s", resp.StatusCode, url), nil)
	}

	docs, err := documentloaders.NewHTML(resp.Body).Load(ctx)
	if err != nil {
		return "", domain.NewInternalError("failed to parse HTML content", err)
	}

	return e.joinAndTrim(docs), nil
}

// ExtractPDF converts an uploaded PDF to text.
func (e *Extractor) ExtractPDF(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	docs, err := documentloaders.NewPDF(r, size).Load(ctx)
	if err != nil {
		return "", domain.NewInvalidInputError(fmt.Sprintf("failed to read PDF: %v", err))
	}
	return e.joinAndTrim(docs), nil
}

// joinAndTrim concatenates loaded document pages and truncates the result at a
// chunk boundary rather than mid-sentence.
func (e *Extractor) joinAndTrim(docs []schema.Document) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if content := strings.TrimSpace(doc.PageContent); content != "" {
			parts = append(parts, content)
		}
	}
	text := strings.Join(parts, "\n\n")

	if e.maxContentChars <= 0 || len(text) <= e.maxContentChars {
		return text
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(e.maxContentChars),
		textsplitter.WithChunkOverlap(0),
	)
	chunks, err := splitter.SplitText(text)
	if err != nil || len(chunks) == 0 {
		logger.Get().Warn("content splitter failed, truncating hard",
			zap.Error(err),
			zap.Int("content_len", len(text)),
		)
		return hardTruncate(text, e.maxContentChars)
	}

	logger.Get().Debug("content trimmed for prompting",
		zap.Int("chunks", len(chunks)),
		zap.Int("kept_len", len(chunks[0])),
	)
	return chunks[0]
}

// hardTruncate cuts text at max bytes without leaving a split rune behind.
func hardTruncate(text string, max int) string {
	cut := text[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
