package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ginnybot/internal/inference"
)

// stubClient returns a canned completion and records the last request.
type stubClient struct {
	content string
	err     error

	lastRequest inference.CompletionRequest
}

func (c *stubClient) Complete(ctx context.Context, params inference.CompletionRequest) (inference.CompletionResponse, error) {
	c.lastRequest = params
	if c.err != nil {
		return inference.CompletionResponse{}, c.err
	}
	return inference.CompletionResponse{Content: c.content}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

const singleItemJSON = `[{"german":"Haus","english":"house","chinese":"房子","sentence":"Das Haus ist groß."}]`

func TestExtractor_Extract(t *testing.T) {
	request := ExtractionRequest{Text: "Die Forscher haben eine neue Methode entwickelt.", Level: "B2-C1", Count: 10}

	tests := []struct {
		name       string
		completion string

		wantItems          []Item
		wantDiagnostic     bool
		wantDiagnosticPart string
	}{
		{
			name:       "plain JSON array",
			completion: singleItemJSON,
			wantItems: []Item{
				{German: "Haus", English: "house", Chinese: "房子", Sentence: "Das Haus ist groß."},
			},
		},
		{
			name:       "json-tagged fence",
			completion: "```json\n" + singleItemJSON + "\n```",
			wantItems: []Item{
				{German: "Haus", English: "house", Chinese: "房子", Sentence: "Das Haus ist groß."},
			},
		},
		{
			name:       "untagged fence with surrounding prose",
			completion: "Here you go:\n```\n" + singleItemJSON + "\n```\nHope this helps!",
			wantItems: []Item{
				{German: "Haus", English: "house", Chinese: "房子", Sentence: "Das Haus ist groß."},
			},
		},
		{
			name:       "leading and trailing whitespace",
			completion: "\n\n  " + singleItemJSON + "  \n",
			wantItems: []Item{
				{German: "Haus", English: "house", Chinese: "房子", Sentence: "Das Haus ist groß."},
			},
		},
		{
			name:       "missing optional sentence field",
			completion: `[{"german":"laufen","english":"to run","chinese":"跑"}]`,
			wantItems: []Item{
				{German: "laufen", English: "to run", Chinese: "跑"},
			},
		},
		{
			name:       "items without german are dropped",
			completion: `[{"german":"","english":"nothing","chinese":"無"},{"german":"Haus","english":"house","chinese":"房子"}]`,
			wantItems: []Item{
				{German: "Haus", English: "house", Chinese: "房子"},
			},
		},
		{
			name:               "not json at all",
			completion:         "not json at all",
			wantDiagnostic:     true,
			wantDiagnosticPart: "not a JSON array",
		},
		{
			name:               "empty completion",
			completion:         "",
			wantDiagnostic:     true,
			wantDiagnosticPart: "empty completion content",
		},
		{
			name:               "fenced but still not json",
			completion:         "```\nstill not json\n```",
			wantDiagnostic:     true,
			wantDiagnosticPart: "not a JSON array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{content: tt.completion}
			extractor := NewExtractor(client, testLogger())

			items, diagnostic := extractor.Extract(context.Background(), request)
			if tt.wantDiagnostic {
				assert.Empty(t, items)
				require.NotEmpty(t, diagnostic)
				assert.Contains(t, diagnostic, tt.wantDiagnosticPart)
				return
			}
			assert.Empty(t, diagnostic)
			assert.Equal(t, tt.wantItems, items)
		})
	}
}

func TestExtractor_Extract_Conversation(t *testing.T) {
	client := &stubClient{content: singleItemJSON}
	extractor := NewExtractor(client, testLogger())

	_, diagnostic := extractor.Extract(context.Background(), ExtractionRequest{
		Text:  "Die Katze schläft auf dem Sofa und träumt von Mäusen.",
		Level: "A2",
		Count: 5,
	})
	require.Empty(t, diagnostic)

	messages := client.lastRequest.Messages
	require.Len(t, messages, 2)
	assert.Equal(t, inference.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "valid JSON only")
	assert.Equal(t, inference.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "exactly 5 vocabulary items")
	assert.Contains(t, messages[1].Content, "A2 level")
	assert.Contains(t, messages[1].Content, "Die Katze schläft auf dem Sofa")
	assert.Contains(t, messages[1].Content, "Traditional Chinese")
	assert.Contains(t, messages[1].Content, "must not be taken from the article")
	assert.Contains(t, messages[1].Content, "Output only the JSON array")
}

func TestExtractor_Extract_CountClamp(t *testing.T) {
	var payload []string
	for i := 0; i < 12; i++ {
		payload = append(payload, fmt.Sprintf(`{"german":"Wort%d","english":"word","chinese":"字","sentence":""}`, i))
	}
	client := &stubClient{content: "[" + strings.Join(payload, ",") + "]"}
	extractor := NewExtractor(client, testLogger())

	items, diagnostic := extractor.Extract(context.Background(), ExtractionRequest{
		Text:  "Text mit vielen Wörtern für die Extraktion von Vokabeln.",
		Count: 10,
	})
	assert.Empty(t, diagnostic)
	assert.Len(t, items, 10)
}

func TestExtractor_Extract_CompletionError(t *testing.T) {
	client := &stubClient{err: assert.AnError}
	extractor := NewExtractor(client, testLogger())

	items, diagnostic := extractor.Extract(context.Background(), ExtractionRequest{Text: "irgendein Text"})
	assert.Empty(t, items)
	assert.Contains(t, diagnostic, "completion call failed")
}

func TestExtractor_Extract_Defaults(t *testing.T) {
	client := &stubClient{content: singleItemJSON}
	extractor := NewExtractor(client, testLogger())

	_, diagnostic := extractor.Extract(context.Background(), ExtractionRequest{Text: "Text ohne Level und Anzahl."})
	require.Empty(t, diagnostic)
	assert.Contains(t, client.lastRequest.Messages[1].Content, "exactly 10 vocabulary items")
	assert.Contains(t, client.lastRequest.Messages[1].Content, "B2-C1 level")
}
