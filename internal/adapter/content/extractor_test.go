package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"quizmaker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "quizmaker/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1>Goroutines</h1><p>A goroutine is a lightweight thread managed by the Go runtime.</p></body></html>`))
	}))
	defer server.Close()

	extractor := NewExtractor(16000)
	text, err := extractor.ExtractURL(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, text, "Goroutines")
	assert.Contains(t, text, "lightweight thread")
	assert.NotContains(t, text, "<p>")
}

func TestExtractURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewExtractor(16000)
	_, err := extractor.ExtractURL(context.Background(), server.URL)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeContentUnavailable, domainErr.Code)
}

func TestExtractURL_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	extractor := NewExtractor(16000)
	_, err := extractor.ExtractURL(context.Background(), server.URL)

	// Only a missing page reads as content-not-found; an upstream failure
	// must not surface as a 404.
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestExtractURL_Unreachable(t *testing.T) {
	extractor := NewExtractor(16000)
	_, err := extractor.ExtractURL(context.Background(), "http://127.0.0.1:1")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeContentUnavailable, domainErr.Code)
}

func TestExtractURL_TrimsLongContent(t *testing.T) {
	long := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer server.Close()

	maxChars := 500
	extractor := NewExtractor(maxChars)
	text, err := extractor.ExtractURL(context.Background(), server.URL)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), maxChars)
	assert.NotEmpty(t, text)
}

func TestHardTruncate(t *testing.T) {
	// "é" is two bytes; an odd cut point lands in the middle of a rune.
	text := strings.Repeat("é", 10)

	cut := hardTruncate(text, 5)

	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, "éé", cut)

	assert.Equal(t, "ééé", hardTruncate(text, 6))
	assert.Equal(t, "abc", hardTruncate("abcdef", 3))
}
