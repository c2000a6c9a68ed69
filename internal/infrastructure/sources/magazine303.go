package sources

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const magazine303Origin = "https://303magazine.com"

// Magazine303 (303 Magazine, Denver) browses the current month's archive;
// queries are ignored.
type Magazine303 struct {
	base
	now func() time.Time
}

func NewMagazine303(f *fetch.Client, logger *slog.Logger) *Magazine303 {
	return &Magazine303{base: newBase(f, logger), now: time.Now}
}

func (s *Magazine303) Name() string { return "303 Magazine" }
func (s *Magazine303) Key() string  { return "303magazine" }

func (s *Magazine303) Location() domain.Location {
	return domain.Location{Latitude: 39.7392, Longitude: -104.9903, City: "Denver"}
}

func (s *Magazine303) Discover(ctx context.Context, _ string) []string {
	now := s.now()
	archive := fmt.Sprintf("%s/%d/%02d/", magazine303Origin, now.Year(), int(now.Month()))

	return s.browse(ctx, []string{archive}, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find(".cs-entry__title a").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(magazine303Origin, href))
		})
		return urls
	})
}

func (s *Magazine303) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	imageURL := metaProperty(doc, "og:image")
	if imageURL == "" {
		if src, ok := doc.Find("figure img").First().Attr("src"); ok {
			imageURL = absURL(magazine303Origin, src)
		}
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  paragraphText(doc.Find("p")),
		ImageURL: imageURL,
	}
}
