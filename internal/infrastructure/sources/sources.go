// Package sources holds the per-publisher adapters. Each adapter is
// one-off glue around a publisher's markup: a discovery step that lists
// candidate article URLs and an extraction step built on og: meta tags
// plus a site-specific content selector. Adapters are expected to break
// when publishers change markup; they fail soft into empty results.
package sources

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/infrastructure/fetch"
)

// base carries the pieces every adapter shares: the HTTP fetcher, a
// component logger, and the markdown converter for block-level content.
type base struct {
	fetcher   *fetch.Client
	logger    *slog.Logger
	converter *md.Converter
}

func newBase(f *fetch.Client, logger *slog.Logger) base {
	if f == nil {
		f = fetch.New(nil)
	}
	return base{
		fetcher:   f,
		logger:    logger,
		converter: md.NewConverter("", true, nil),
	}
}

// Fetch satisfies the source contract with the shared HTTP transport.
func (b base) Fetch(ctx context.Context, url string) (string, error) {
	return b.fetcher.Text(ctx, url)
}

func (b base) debug(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

// browse fetches listing pages in shuffled order and returns the candidate
// URLs from the first page that yields any, preserving on-page order.
// Every failure is swallowed into trying the next page.
func (b base) browse(ctx context.Context, pages []string, collect func(doc *goquery.Document) []string) []string {
	shuffled := make([]string, len(pages))
	copy(shuffled, pages)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	for _, page := range shuffled {
		html, err := b.fetcher.Text(ctx, page)
		if err != nil {
			b.debug("listing page failed", "page", page, "error", err)
			continue
		}
		doc, err := parseDoc(html)
		if err != nil {
			b.debug("listing page unparseable", "page", page, "error", err)
			continue
		}
		if urls := dedupeOrdered(collect(doc)); len(urls) > 0 {
			return urls
		}
	}
	return nil
}

// blockText converts a content container to readable markdown text.
func (b base) blockText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(b.converter.Convert(sel))
}

func parseDoc(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// metaProperty returns the content of a <meta property=...> tag.
func metaProperty(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// canonicalURL prefers <link rel="canonical">, falling back to og:url.
func canonicalURL(doc *goquery.Document) string {
	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		return strings.TrimSpace(href)
	}
	return metaProperty(doc, "og:url")
}

// publishedAt parses article:published_time or og:published_time.
func publishedAt(doc *goquery.Document) time.Time {
	for _, property := range []string{"article:published_time", "og:published_time"} {
		raw := metaProperty(doc, property)
		if raw == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02"} {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts
			}
		}
	}
	return time.Time{}
}

// metaTopics collects article:tag values, deduplicated in page order.
func metaTopics(doc *goquery.Document) []string {
	var topics []string
	doc.Find(`meta[property="article:tag"]`).Each(func(_ int, s *goquery.Selection) {
		if content, ok := s.Attr("content"); ok && strings.TrimSpace(content) != "" {
			topics = append(topics, strings.TrimSpace(content))
		}
	})
	return dedupeOrdered(topics)
}

// absURL resolves a possibly relative href against a publisher origin.
func absURL(origin, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return strings.TrimSuffix(origin, "/") + href
	default:
		return strings.TrimSuffix(origin, "/") + "/" + href
	}
}

// paragraphText joins the text of matched elements with blank lines.
func paragraphText(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

func dedupeOrdered(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	var out []string
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
