package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ginnybot/internal/inference"
	"ginnybot/internal/signature"
	"ginnybot/internal/vocabulary"
)

// Request headers carrying the analyzer service-to-service signature.
const (
	headerAnalyzerSignature = "Analyzer-Signature"
	headerAnalyzerTimestamp = "Analyzer-Timestamp"
	headerAnalyzerToken     = "Analyzer-Token"
)

type analyzerRequest struct {
	Text string `json:"text"`
}

type vocabularyData struct {
	Vocabularies []vocabulary.Item `json:"vocabularies"`
	Count        int               `json:"count"`
}

// AnalyzerHandler handles the authenticated analyzer endpoints /ask_bot and
// /gen_voca.
type AnalyzerHandler struct {
	apiKey       string
	minWordCount int
	aiClient     inference.Client
	vocabService VocabularyService
	logger       *slog.Logger
}

func NewAnalyzerHandler(
	apiKey string,
	minWordCount int,
	aiClient inference.Client,
	vocabService VocabularyService,
	logger *slog.Logger,
) *AnalyzerHandler {
	if minWordCount <= 0 {
		minWordCount = vocabulary.MinWordCount
	}
	return &AnalyzerHandler{
		apiKey:       apiKey,
		minWordCount: minWordCount,
		aiClient:     aiClient,
		vocabService: vocabService,
		logger:       logger,
	}
}

// parseRequest validates the JSON body and the signature headers. It returns
// the request text, or false after writing the error response.
func (h *AnalyzerHandler) parseRequest(c echo.Context) (string, bool) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		_ = respondError(c, http.StatusBadRequest, "Failed to read request body", CodeInvalidJSON, "")
		return "", false
	}

	var req analyzerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		_ = respondError(c, http.StatusBadRequest, "Request body must be valid JSON", CodeInvalidJSON, "")
		return "", false
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		_ = respondError(c, http.StatusBadRequest, "Field 'text' is required", CodeMissingText, "")
		return "", false
	}

	header := c.Request().Header
	sig := header.Get(headerAnalyzerSignature)
	if sig == "" {
		_ = respondError(c, http.StatusUnauthorized, "Missing Analyzer-Signature header", CodeMissingSignature, "")
		return "", false
	}
	timestamp := header.Get(headerAnalyzerTimestamp)
	token := header.Get(headerAnalyzerToken)
	if !signature.Verify(h.apiKey, token, timestamp, sig) {
		h.logger.WarnContext(c.Request().Context(), "analyzer signature mismatch")
		_ = respondError(c, http.StatusUnauthorized, "Invalid request signature", CodeInvalidSignature, "")
		return "", false
	}

	return text, true
}

// HandleAskBot answers a free-form question with a single completion call.
func (h *AnalyzerHandler) HandleAskBot(c echo.Context) error {
	text, ok := h.parseRequest(c)
	if !ok {
		return nil
	}
	ctx := c.Request().Context()

	response, err := h.aiClient.Complete(ctx, inference.UserMessage(text))
	if err != nil {
		h.logger.ErrorContext(ctx, "completion failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "AI service failed to answer", CodeAIError, "")
	}
	if strings.TrimSpace(response.Content) == "" {
		return respondError(c, http.StatusInternalServerError, "AI service returned an empty answer", CodeAIError, "")
	}

	return respondSuccess(c, response.Content, nil)
}

// HandleGenVoca extracts vocabulary items from the submitted text and
// persists them.
func (h *AnalyzerHandler) HandleGenVoca(c echo.Context) error {
	text, ok := h.parseRequest(c)
	if !ok {
		return nil
	}
	ctx := c.Request().Context()

	if words := vocabulary.WordCount(text); words < h.minWordCount {
		return respondError(c, http.StatusBadRequest,
			fmt.Sprintf("Text must contain at least %d words, got %d", h.minWordCount, words),
			CodeTextTooShort, "")
	}

	items, err := h.vocabService.GenerateAndSave(ctx, text)
	if err != nil {
		h.logger.ErrorContext(ctx, "vocabulary pipeline failed", "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to save vocabularies", CodeInternalError, "")
	}
	if len(items) == 0 {
		return respondError(c, http.StatusInternalServerError, "Failed to extract vocabularies", CodeAIError, "")
	}

	return respondSuccess(c, "Vocabularies generated", vocabularyData{
		Vocabularies: items,
		Count:        len(items),
	})
}
