// Package server exposes the HTTP boundary: the LINE webhook callback, the
// authenticated analyzer endpoints, and the news push trigger.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ginnybot/internal/vocabulary"
)

// VocabularyService runs the extraction pipeline.
type VocabularyService interface {
	GenerateAndSave(ctx context.Context, text string) ([]vocabulary.Item, error)
	ProcessArticle(ctx context.Context, text string) (string, error)
}

// LineClient sends messages through the LINE Messaging API.
type LineClient interface {
	Reply(ctx context.Context, replyToken, text string) error
	Push(ctx context.Context, userID, text string) error
}

// New builds the echo instance with all routes registered.
func New(webhook *WebhookHandler, analyzer *AnalyzerHandler, news *NewsHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Ginny bot is running")
	})
	e.POST("/callback", webhook.Handle)
	e.POST("/ask_bot", analyzer.HandleAskBot)
	e.POST("/gen_voca", analyzer.HandleGenVoca)
	e.GET("/pushnews", news.Handle)

	return e
}
