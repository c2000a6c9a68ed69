package sources

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const gothamistOrigin = "https://gothamist.com"

// Gothamist browses section pages; queries are ignored.
type Gothamist struct {
	base
}

func NewGothamist(f *fetch.Client, logger *slog.Logger) *Gothamist {
	return &Gothamist{base: newBase(f, logger)}
}

func (s *Gothamist) Name() string { return "Gothamist" }
func (s *Gothamist) Key() string  { return "gothamist" }

func (s *Gothamist) Location() domain.Location {
	return domain.Location{Latitude: 40.7128, Longitude: -74.0060, City: "New York"}
}

func (s *Gothamist) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		gothamistOrigin + "/arts-entertainment/",
		gothamistOrigin + "/food/",
		gothamistOrigin + "/news/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("a.card-title-link").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(gothamistOrigin, href))
		})
		return urls
	})
}

func (s *Gothamist) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  paragraphText(doc.Find("div.content").First().Find("p, h2, h3, h4, li")),
		ImageURL: metaProperty(doc, "og:image"),
	}
}
