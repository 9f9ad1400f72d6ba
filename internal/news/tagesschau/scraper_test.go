package tagesschau

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage = `<html><body>
<a class="teaser__link" href="/wissen/artikel-101.html">
  <span class="teaser__headline">Neue Methode entdeckt</span>
</a>
<a class="teaser__link" href="/wissen/artikel-102.html">
  <span class="teaser__headline">Zweiter Artikel</span>
</a>
</body></html>`

const articlePage = `<html><body>
<p class="textabsatz">Erster Absatz des Artikels.</p>
<p>Nicht relevanter Absatz.</p>
<p class="textabsatz">Zweiter Absatz.</p>
</body></html>`

func TestScraper_Scrape(t *testing.T) {
	t.Run("follows first teaser and joins paragraphs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/wissen":
				_, _ = w.Write([]byte(listPage))
			case "/wissen/artikel-101.html":
				_, _ = w.Write([]byte(articlePage))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		scraper := New(server.URL + "/wissen")
		article, err := scraper.Scrape(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Neue Methode entdeckt", article.Title)
		assert.Equal(t, server.URL+"/wissen/artikel-101.html", article.Link)
		assert.Equal(t, "Erster Absatz des Artikels.\nZweiter Absatz.", article.Content)
	})

	t.Run("page without teaser fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body>nothing here</body></html>`))
		}))
		defer server.Close()

		scraper := New(server.URL + "/wissen")
		_, err := scraper.Scrape(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no teaser link")
	})

	t.Run("upstream error fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		scraper := New(server.URL + "/wissen")
		_, err := scraper.Scrape(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "response error 503")
	})
}

func TestScraper_Name(t *testing.T) {
	assert.Equal(t, ScraperName, New("https://www.tagesschau.de/wissen").Name())
}
