package sources

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const stlmagOrigin = "https://www.stlmag.com"

// STLMag (St. Louis Magazine) browses section pages; queries are ignored.
type STLMag struct {
	base
}

func NewSTLMag(f *fetch.Client, logger *slog.Logger) *STLMag {
	return &STLMag{base: newBase(f, logger)}
}

func (s *STLMag) Name() string { return "St. Louis Magazine" }
func (s *STLMag) Key() string  { return "stlmag" }

func (s *STLMag) Location() domain.Location {
	return domain.Location{Latitude: 38.6270, Longitude: -90.1994, City: "St. Louis"}
}

func (s *STLMag) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		stlmagOrigin + "/dining/",
		stlmagOrigin + "/culture/",
		stlmagOrigin + "/health/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("article.c-article-card h2.c-article-card__title a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(stlmagOrigin, href))
		})
		return urls
	})
}

func (s *STLMag) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	// Block-editor pages first, legacy WordPress second.
	content := paragraphText(doc.Find("div.wp-block-post-content p"))
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
