// Package news defines the scraping contract for news sources and the
// registry that maps configured scraper names to constructors.
package news

import (
	"context"
	"fmt"
	"sort"
)

// Article is a scraped news article.
type Article struct {
	Title   string
	Link    string
	Content string
}

// Scraper fetches the latest article from one news source.
type Scraper interface {
	Scrape(ctx context.Context) (*Article, error)
	Name() string
}

// Factory builds a scraper for a request URL.
type Factory func(requestURL string) Scraper

var registry = map[string]Factory{}

// Register adds a scraper factory under a name. Called from scraper package
// init functions.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New returns the scraper registered under name, or an error listing the
// known names.
func New(name, requestURL string) (Scraper, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scraper type %q, available: %v", name, registeredNames())
	}
	return factory(requestURL), nil
}

func registeredNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
