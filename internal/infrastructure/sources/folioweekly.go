package sources

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const folioOrigin = "https://folioweekly.com"

// FolioWeekly browses category pages; queries are ignored.
type FolioWeekly struct {
	base
}

func NewFolioWeekly(f *fetch.Client, logger *slog.Logger) *FolioWeekly {
	return &FolioWeekly{base: newBase(f, logger)}
}

func (s *FolioWeekly) Name() string { return "Folio Weekly" }
func (s *FolioWeekly) Key() string  { return "folioweekly" }

func (s *FolioWeekly) Location() domain.Location {
	return domain.Location{Latitude: 30.3322, Longitude: -81.6557, City: "Jacksonville"}
}

func (s *FolioWeekly) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		folioOrigin + "/category/entertainment/",
		folioOrigin + "/category/lifestyle/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("article h2 a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(folioOrigin, href))
		})
		return urls
	})
}

func (s *FolioWeekly) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  paragraphText(doc.Find("div.entry-content p")),
		ImageURL: metaProperty(doc, "og:image"),
	}
}
