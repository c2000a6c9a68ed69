package sources

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const (
	bbcOrigin    = "https://www.bbc.com"
	bbcWorldFeed = "https://feeds.bbci.co.uk/news/world/rss.xml"
)

// BBC discovers from the world RSS feed by default and falls back to the
// on-site search page when a query is given.
type BBC struct {
	base
	feedParser *gofeed.Parser
	feedURL    string
}

func NewBBC(f *fetch.Client, logger *slog.Logger) *BBC {
	return &BBC{
		base:       newBase(f, logger),
		feedParser: gofeed.NewParser(),
		feedURL:    bbcWorldFeed,
	}
}

func (s *BBC) Name() string { return "BBC News" }
func (s *BBC) Key() string  { return "bbc" }

func (s *BBC) Discover(ctx context.Context, query string) []string {
	if query != "" {
		return s.searchArticles(ctx, query)
	}

	feed, err := s.feedParser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		s.debug("feed fetch failed", "feed", s.feedURL, "error", err)
		return nil
	}

	var urls []string
	for _, item := range feed.Items {
		if item.Link != "" {
			urls = append(urls, item.Link)
		}
	}
	return dedupeOrdered(urls)
}

func (s *BBC) searchArticles(ctx context.Context, query string) []string {
	searchURL := bbcOrigin + "/search?q=" + url.QueryEscape(query)
	return s.browse(ctx, []string{searchURL}, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find(`a[href*="/news/"], a[href*="/articles/"]`).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			href = absURL(bbcOrigin, href)
			if strings.Contains(href, "/news/") || strings.Contains(href, "/articles/") {
				urls = append(urls, href)
			}
		})
		return urls
	})
}

func (s *BBC) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	content := paragraphText(doc.Find(`article p`))
	if content == "" {
		content = paragraphText(doc.Find("main p"))
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  content,
		ImageURL: metaProperty(doc, "og:image"),
	}
}
