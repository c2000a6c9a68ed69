package sources

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const urbanMilwaukeeOrigin = "https://urbanmilwaukee.com"

// UrbanMilwaukee browses section pages; queries are ignored.
type UrbanMilwaukee struct {
	base
}

func NewUrbanMilwaukee(f *fetch.Client, logger *slog.Logger) *UrbanMilwaukee {
	return &UrbanMilwaukee{base: newBase(f, logger)}
}

func (s *UrbanMilwaukee) Name() string { return "Urban Milwaukee" }
func (s *UrbanMilwaukee) Key() string  { return "urbanmilwaukee" }

func (s *UrbanMilwaukee) Location() domain.Location {
	return domain.Location{Latitude: 43.0389, Longitude: -87.9065, City: "Milwaukee"}
}

func (s *UrbanMilwaukee) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		urbanMilwaukeeOrigin + "/food-drink/",
		urbanMilwaukeeOrigin + "/arts-entertainment/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find(`div[class*="wide-story-block"] a[href]`).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(urbanMilwaukeeOrigin, href))
		})
		return urls
	})
}

func (s *UrbanMilwaukee) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	imageURL, _ := doc.Find("div.wp-caption img").First().Attr("src")
	if imageURL == "" {
		imageURL = metaProperty(doc, "og:image")
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  paragraphText(doc.Find("div.entry p")),
		ImageURL: imageURL,
	}
}
