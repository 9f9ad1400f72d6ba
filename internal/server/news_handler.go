package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"ginnybot/internal/news"
)

// NewsHandler handles /pushnews: scrape the configured source and push the
// latest article to the configured LINE user.
type NewsHandler struct {
	scraper    news.Scraper
	lineClient LineClient
	userID     string
	logger     *slog.Logger
}

func NewNewsHandler(scraper news.Scraper, lineClient LineClient, userID string, logger *slog.Logger) *NewsHandler {
	return &NewsHandler{
		scraper:    scraper,
		lineClient: lineClient,
		userID:     userID,
		logger:     logger,
	}
}

func (h *NewsHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	article, err := h.scraper.Scrape(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to scrape news", "scraper", h.scraper.Name(), "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to scrape news", CodeScrapeFailed, "")
	}

	message := fmt.Sprintf("%s\n%s", article.Title, article.Link)
	if err := h.lineClient.Push(ctx, h.userID, message); err != nil {
		h.logger.ErrorContext(ctx, "failed to push news", "error", err)
		return respondError(c, http.StatusInternalServerError, "Failed to push news message", CodeInternalError, "")
	}

	h.logger.InfoContext(ctx, "pushed news article", "title", article.Title)
	return respondSuccess(c, "News pushed", map[string]string{
		"title": article.Title,
		"link":  article.Link,
	})
}
