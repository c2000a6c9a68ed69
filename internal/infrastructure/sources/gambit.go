package sources

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const gambitOrigin = "https://www.nola.com"

// Gambit is the New Orleans arts-and-culture weekly hosted under nola.com.
// It browses the gambit sections; queries are ignored.
type Gambit struct {
	base
}

func NewGambit(f *fetch.Client, logger *slog.Logger) *Gambit {
	return &Gambit{base: newBase(f, logger)}
}

func (s *Gambit) Name() string { return "Gambit" }
func (s *Gambit) Key() string  { return "gambit" }

func (s *Gambit) Location() domain.Location {
	return domain.Location{Latitude: 29.9511, Longitude: -90.0715, City: "New Orleans"}
}

func (s *Gambit) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		gambitOrigin + "/gambit/food_drink/",
		gambitOrigin + "/gambit/events/",
		gambitOrigin + "/gambit/music/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			href = absURL(gambitOrigin, href)
			if strings.Contains(href, "/gambit/") && strings.Contains(href, "article_") {
				urls = append(urls, href)
			}
		})
		return urls
	})
}

func (s *Gambit) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	content := paragraphText(doc.Find("div.asset-body p"))
	if content == "" {
		content = paragraphText(doc.Find("article p"))
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  content,
		ImageURL: metaProperty(doc, "og:image"),
	}
}
