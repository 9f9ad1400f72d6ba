package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ginnybot/internal/inference"
	"ginnybot/internal/signature"
)

const fallbackReply = "Sorry, something went wrong. Please try again later."

type webhookRequest struct {
	Events []webhookEvent `json:"events"`
}

type webhookEvent struct {
	Type       string         `json:"type"`
	ReplyToken string         `json:"replyToken"`
	Message    webhookMessage `json:"message"`
}

type webhookMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// WebhookHandler handles LINE webhook callbacks.
type WebhookHandler struct {
	channelSecret string
	router        *Router
	vocabService  VocabularyService
	aiClient      inference.Client
	lineClient    LineClient
	logger        *slog.Logger
}

func NewWebhookHandler(
	channelSecret string,
	router *Router,
	vocabService VocabularyService,
	aiClient inference.Client,
	lineClient LineClient,
	logger *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		channelSecret: channelSecret,
		router:        router,
		vocabService:  vocabService,
		aiClient:      aiClient,
		lineClient:    lineClient,
		logger:        logger,
	}
}

// Handle verifies the webhook signature against the raw body, then dispatches
// every text message event by intent and replies through the LINE client.
func (h *WebhookHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to read request body", CodeInvalidJSON, "")
	}

	sig := c.Request().Header.Get("X-Line-Signature")
	if sig == "" {
		return respondError(c, http.StatusBadRequest, "Missing X-Line-Signature header", CodeMissingSignature, "")
	}
	if !signature.VerifyWebhook(h.channelSecret, body, sig) {
		h.logger.WarnContext(ctx, "webhook signature mismatch")
		return respondError(c, http.StatusBadRequest, "Invalid webhook signature", CodeInvalidLineSignature, "")
	}

	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid JSON payload", CodeInvalidJSON, "")
	}

	for _, event := range req.Events {
		if event.Type != "message" || event.Message.Type != "text" {
			continue
		}
		if err := h.handleTextMessage(ctx, event); err != nil {
			h.logger.ErrorContext(ctx, "failed to handle message event", "error", err)
			if replyErr := h.lineClient.Reply(ctx, event.ReplyToken, fallbackReply); replyErr != nil {
				h.logger.ErrorContext(ctx, "failed to send fallback reply", "error", replyErr)
			}
			return respondError(c, http.StatusInternalServerError, "Failed to process message", CodeInternalError, "")
		}
	}

	return c.String(http.StatusOK, "OK")
}

func (h *WebhookHandler) handleTextMessage(ctx context.Context, event webhookEvent) error {
	intent := h.router.Route(event.Message.Text)
	h.logger.InfoContext(ctx, "routed message event", "intent", intent.String())

	var reply string
	switch intent {
	case IntentGenerateVocabulary:
		text := strings.TrimSpace(strings.ReplaceAll(event.Message.Text, h.router.trigger, ""))
		result, err := h.vocabService.ProcessArticle(ctx, text)
		if err != nil {
			return err
		}
		reply = result
	default:
		response, err := h.aiClient.Complete(ctx, inference.UserMessage(event.Message.Text))
		if err != nil {
			return err
		}
		reply = response.Content
	}

	return h.lineClient.Reply(ctx, event.ReplyToken, reply)
}
