package vocabulary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"ginnybot/internal/inference"
)

const systemPrompt = "You are a helpful German language teacher. Always respond with valid JSON only."

const promptTemplate = `You are a German language instructor. Analyze the following German article and extract exactly %d vocabulary items at the %s level.

For each vocabulary item, provide the following fields:
1. The German word (preserve original casing)
2. The English translation
3. The Traditional Chinese translation
4. A practical daily-life example sentence in German that naturally uses this word (the example must not be taken from the article)

Return the result as a JSON array with the following exact structure and field names:
[
  {
    "german": "German word",
    "english": "English translation",
    "chinese": "繁體中文翻譯",
    "sentence": "Example sentence in German"
  }
]

Text:
%s

Important: Output only the JSON array without any additional text or explanation, and avoid using emojis and em-dashes.`

// Extractor turns free German text into structured vocabulary items via a
// completion call.
type Extractor struct {
	client inference.Client
	logger *slog.Logger
}

func NewExtractor(client inference.Client, logger *slog.Logger) *Extractor {
	return &Extractor{
		client: client,
		logger: logger,
	}
}

// buildPrompt renders the deterministic instruction prompt for a request.
func buildPrompt(req ExtractionRequest) string {
	return fmt.Sprintf(promptTemplate, req.Count, req.Level, req.Text)
}

// Extract asks the model for vocabulary items and parses its response.
// Upstream failures and unparseable completions are soft failures: the item
// list is empty and the diagnostic explains why. Extract never returns more
// than req.Count items; it may return fewer when the model under-delivers.
func (e *Extractor) Extract(ctx context.Context, req ExtractionRequest) ([]Item, string) {
	if req.Level == "" {
		req.Level = DefaultLevel
	}
	if req.Count <= 0 {
		req.Count = DefaultCount
	}

	response, err := e.client.Complete(ctx, inference.CompletionRequest{
		Messages: []inference.Message{
			{Role: inference.RoleSystem, Content: systemPrompt},
			{Role: inference.RoleUser, Content: buildPrompt(req)},
		},
	})
	if err != nil {
		e.logger.Error("completion call failed", "error", err)
		return nil, fmt.Sprintf("completion call failed: %v", err)
	}

	items, diagnostic := parseItems(response.Content)
	if diagnostic != "" {
		e.logger.Error("failed to parse completion as vocabulary items",
			"diagnostic", diagnostic,
			"contentLength", len(response.Content),
		)
		return nil, diagnostic
	}

	items = validItems(items)
	if len(items) > req.Count {
		items = items[:req.Count]
	}
	return items, ""
}

// parseItems decodes a completion into items. It tries the raw text first,
// then the interiors of fenced blocks (json-tagged fences before untagged
// ones). The first payload that decodes wins.
func parseItems(content string) ([]Item, string) {
	if content == "" {
		return nil, "empty completion content"
	}

	var lastErr error
	for _, payload := range candidatePayloads(content) {
		if payload == "" {
			continue
		}
		var items []Item
		if err := json.Unmarshal([]byte(payload), &items); err != nil {
			lastErr = err
			continue
		}
		return items, ""
	}

	if lastErr == nil {
		return nil, "completion contains no parseable payload"
	}
	return nil, fmt.Sprintf("completion is not a JSON array: %v", lastErr)
}

// validItems drops records without a german field. Items missing only the
// optional sentence are kept.
func validItems(items []Item) []Item {
	valid := items[:0]
	for _, item := range items {
		if item.German == "" {
			continue
		}
		valid = append(valid, item)
	}
	return valid
}
