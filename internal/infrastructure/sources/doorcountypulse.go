package sources

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const doorCountyOrigin = "https://doorcountypulse.com"

// DoorCountyPulse browses section pages; queries are ignored.
type DoorCountyPulse struct {
	base
}

func NewDoorCountyPulse(f *fetch.Client, logger *slog.Logger) *DoorCountyPulse {
	return &DoorCountyPulse{base: newBase(f, logger)}
}

func (s *DoorCountyPulse) Name() string { return "Door County Pulse" }
func (s *DoorCountyPulse) Key() string  { return "doorcountypulse" }

func (s *DoorCountyPulse) Location() domain.Location {
	return domain.Location{Latitude: 44.8342, Longitude: -87.3770, City: "Sturgeon Bay"}
}

func (s *DoorCountyPulse) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		doorCountyOrigin + "/food-and-drink/",
		doorCountyOrigin + "/entertainment/",
		doorCountyOrigin + "/outdoor/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find(`li[class*="post"] p.hentry__title a`).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(doorCountyOrigin, href))
		})
		return urls
	})
}

func (s *DoorCountyPulse) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  paragraphText(doc.Find("section.pg-content p")),
		ImageURL: metaProperty(doc, "og:image"),
	}
}
