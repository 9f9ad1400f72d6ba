package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	titleExcerptLength = 50

	// DefaultTimeout bounds a single extraction or persistence call when the
	// config leaves it unset. External services may hang; the pipeline must not.
	DefaultTimeout = 60 * time.Second
)

// Service orchestrates the extraction pipeline: extract, persist, format.
type Service struct {
	extractor  *Extractor
	repository Repository
	logger     *slog.Logger

	level   string
	count   int
	timeout time.Duration
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	Level   string
	Count   int
	Timeout time.Duration
}

func NewService(extractor *Extractor, repository Repository, logger *slog.Logger, opts ServiceOptions) *Service {
	if opts.Level == "" {
		opts.Level = DefaultLevel
	}
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Service{
		extractor:  extractor,
		repository: repository,
		logger:     logger,
		level:      opts.Level,
		count:      opts.Count,
		timeout:    opts.Timeout,
	}
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// GenerateAndSave extracts vocabulary items from text, persists the article
// and its items atomically, and returns the items. An extraction soft failure
// yields an empty slice and no error; a persistence failure is a hard error.
func (s *Service) GenerateAndSave(ctx context.Context, text string) ([]Item, error) {
	extractCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	items, diagnostic := s.extractor.Extract(extractCtx, ExtractionRequest{
		Text:  text,
		Level: s.level,
		Count: s.count,
	})
	if len(items) == 0 {
		s.logger.Warn("extraction returned no items", "diagnostic", diagnostic)
		return nil, nil
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	articleID, err := s.repository.SaveArticle(saveCtx, articleTitle(text), text)
	if err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}
	if err := s.repository.SaveVocabularies(saveCtx, &articleID, items); err != nil {
		return nil, fmt.Errorf("save vocabularies: %w", err)
	}

	s.logger.Info("saved article with vocabularies",
		"articleID", articleID,
		"count", len(items),
	)
	return items, nil
}

// ProcessArticle runs the full pipeline and renders the chat reply. Soft
// extraction failures become the fixed apology message, not an error.
func (s *Service) ProcessArticle(ctx context.Context, text string) (string, error) {
	items, err := s.GenerateAndSave(ctx, text)
	if err != nil {
		return "", err
	}
	return FormatItems(items), nil
}

// articleTitle derives a title from the leading excerpt of the text.
func articleTitle(text string) string {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) <= titleExcerptLength {
		return trimmed
	}
	return strings.TrimSpace(string([]rune(trimmed)[:titleExcerptLength])) + "..."
}
