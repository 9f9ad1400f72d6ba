// Package tagesschau scrapes the latest article from a Tagesschau section
// page, e.g. https://www.tagesschau.de/wissen.
package tagesschau

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ginnybot/internal/news"
)

const ScraperName = "tagesschau"

func init() {
	news.Register(ScraperName, func(requestURL string) news.Scraper {
		return New(requestURL)
	})
}

type Scraper struct {
	requestURL string
	httpClient *http.Client
}

func New(requestURL string) *Scraper {
	return &Scraper{
		requestURL: requestURL,
		httpClient: http.DefaultClient,
	}
}

func (s *Scraper) Name() string {
	return ScraperName
}

// Scrape fetches the section page, follows the first teaser link and joins
// the article's text paragraphs.
func (s *Scraper) Scrape(ctx context.Context) (*news.Article, error) {
	listDoc, err := s.fetch(ctx, s.requestURL)
	if err != nil {
		return nil, fmt.Errorf("fetch news list: %w", err)
	}

	teaser := listDoc.Find("a.teaser__link").First()
	link, ok := teaser.Attr("href")
	if !ok {
		return nil, fmt.Errorf("no teaser link found on %s", s.requestURL)
	}
	title := strings.TrimSpace(teaser.Find(".teaser__headline").Text())
	if title == "" {
		return nil, fmt.Errorf("teaser on %s has no headline", s.requestURL)
	}

	// Teaser links are relative paths on the same host.
	if strings.HasPrefix(link, "/") {
		link = s.requestURL[:strings.LastIndex(s.requestURL, "/")] + link
	}

	articleDoc, err := s.fetch(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}

	var paragraphs []string
	articleDoc.Find("p.textabsatz").Each(func(i int, sel *goquery.Selection) {
		paragraphs = append(paragraphs, strings.TrimSpace(sel.Text()))
	})

	return &news.Article{
		Title:   title,
		Link:    link,
		Content: strings.TrimSpace(strings.Join(paragraphs, "\n")),
	}, nil
}

func (s *Scraper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext > %w", err)
	}
	response, err := s.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do > %w", err)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("response error %d from %s", response.StatusCode, url)
	}
	return goquery.NewDocumentFromReader(response.Body)
}
