package sources

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const slugmagOrigin = "https://www.slugmag.com"

// SlugMag (SLUG Magazine, Salt Lake City) browses category and event
// pages; queries are ignored.
type SlugMag struct {
	base
}

func NewSlugMag(f *fetch.Client, logger *slog.Logger) *SlugMag {
	return &SlugMag{base: newBase(f, logger)}
}

func (s *SlugMag) Name() string { return "SLUG Magazine" }
func (s *SlugMag) Key() string  { return "slugmag" }

func (s *SlugMag) Location() domain.Location {
	return domain.Location{Latitude: 40.7608, Longitude: -111.8910, City: "Salt Lake City"}
}

func (s *SlugMag) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		slugmagOrigin + "/category/music/",
		slugmagOrigin + "/category/arts/",
		slugmagOrigin + "/events/",
		slugmagOrigin + "/category/community/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("a.wpem-event-action-url").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(slugmagOrigin, href))
		})
		doc.Find("h4.card-title a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(slugmagOrigin, href))
		})
		return urls
	})
}

func (s *SlugMag) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	// Event pages use the WP Event Manager body; articles use entry-content.
	content := paragraphText(doc.Find("div.wpem-single-event-body-content p"))
	if content == "" {
		content = paragraphText(doc.Find("div.entry-content p"))
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  content,
		ImageURL: metaProperty(doc, "og:image"),
	}
}
