package sources

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const latacoOrigin = "https://lataco.com"

// LATaco browses category pages. Its listing markup carries no stable
// article class, so discovery keeps any single-segment path on the site
// that is not a category or tag page.
type LATaco struct {
	base
}

func NewLATaco(f *fetch.Client, logger *slog.Logger) *LATaco {
	return &LATaco{base: newBase(f, logger)}
}

func (s *LATaco) Name() string { return "L.A. TACO" }
func (s *LATaco) Key() string  { return "lataco" }

func (s *LATaco) Location() domain.Location {
	return domain.Location{Latitude: 34.0522, Longitude: -118.2437, City: "Los Angeles"}
}

func (s *LATaco) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		latacoOrigin + "/category/food",
		latacoOrigin + "/category/news",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			href = absURL(latacoOrigin, href)
			if latacoArticleURL(href) {
				urls = append(urls, href)
			}
		})
		return urls
	})
}

func latacoArticleURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if host != "lataco.com" {
		return false
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" || strings.Contains(path, "/") {
		return false
	}
	switch path {
	case "about", "contact", "newsletter", "membership", "shop":
		return false
	}
	return true
}

func (s *LATaco) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	content := paragraphText(doc.Find("article p"))
	if content == "" {
		content = s.blockText(doc.Find(`div[class*="entry-content"], div[class*="article-content"], div[class*="post-content"]`).First())
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  content,
		ImageURL: metaProperty(doc, "og:image"),
	}
}
