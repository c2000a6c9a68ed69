package sources

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const austinOrigin = "https://www.austinchronicle.com"

// AustinChronicle browses section pages; queries are ignored.
type AustinChronicle struct {
	base
}

func NewAustinChronicle(f *fetch.Client, logger *slog.Logger) *AustinChronicle {
	return &AustinChronicle{base: newBase(f, logger)}
}

func (s *AustinChronicle) Name() string { return "Austin Chronicle" }
func (s *AustinChronicle) Key() string  { return "austinchronicle" }

func (s *AustinChronicle) Location() domain.Location {
	return domain.Location{Latitude: 30.2672, Longitude: -97.7431, City: "Austin"}
}

func (s *AustinChronicle) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		austinOrigin,
		austinOrigin + "/food/",
		austinOrigin + "/arts/",
		austinOrigin + "/music/",
		austinOrigin + "/screens/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("article h3 a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(austinOrigin, href))
		})
		return urls
	})
}

func (s *AustinChronicle) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  paragraphText(doc.Find("article p")),
		ImageURL: metaProperty(doc, "og:image"),
	}
}
