package sources

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const googleNewsFeedBase = "https://news.google.com/rss"

// GoogleNews discovers via the Google News RSS endpoints: top headlines by
// default, keyword search when a query is given. The linked pages come from
// arbitrary publishers, so extraction stays generic: og: meta tags plus the
// page's <article> block rendered to text.
type GoogleNews struct {
	base
	feedParser *gofeed.Parser
	feedBase   string
}

func NewGoogleNews(f *fetch.Client, logger *slog.Logger) *GoogleNews {
	return &GoogleNews{
		base:       newBase(f, logger),
		feedParser: gofeed.NewParser(),
		feedBase:   googleNewsFeedBase,
	}
}

func (s *GoogleNews) Name() string { return "Google News" }
func (s *GoogleNews) Key() string  { return "googlenews" }

func (s *GoogleNews) Discover(ctx context.Context, query string) []string {
	feedURL := s.feedBase + "?hl=en-US&gl=US&ceid=US:en"
	if query != "" {
		feedURL = s.feedBase + "/search?q=" + url.QueryEscape(query) + "&hl=en-US&gl=US&ceid=US:en"
	}

	feed, err := s.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		s.debug("feed fetch failed", "feed", feedURL, "error", err)
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

func (s *GoogleNews) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	title := metaProperty(doc, "og:title")
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	content := s.blockText(doc.Find("article").First())
	if content == "" {
		content = paragraphText(doc.Find("p"))
	}

	return domain.Extracted{
		Title:    title,
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  content,
		ImageURL: metaProperty(doc, "og:image"),
	}
}
