package sources

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const miamiOrigin = "https://www.miamilivingmagazine.com"

// MiamiLiving browses section pages; queries are ignored. The site renders
// no og:title on article pages, so the title comes from the article h1
// with og:title as fallback.
type MiamiLiving struct {
	base
}

func NewMiamiLiving(f *fetch.Client, logger *slog.Logger) *MiamiLiving {
	return &MiamiLiving{base: newBase(f, logger)}
}

func (s *MiamiLiving) Name() string { return "Miami Living" }
func (s *MiamiLiving) Key() string  { return "miamiliving" }

func (s *MiamiLiving) Location() domain.Location {
	return domain.Location{Latitude: 25.7617, Longitude: -80.1918, City: "Miami"}
}

func (s *MiamiLiving) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		miamiOrigin + "/food-drink",
		miamiOrigin + "/culture",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find(`[class*="gallery-item-container"] a`).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(miamiOrigin, href))
		})
		return urls
	})
}

func (s *MiamiLiving) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	article := doc.Find("article").First()
	title := strings.TrimSpace(article.Find("h1").First().Text())
	if title == "" {
		title = metaProperty(doc, "og:title")
	}

	return domain.Extracted{
		Title:    title,
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  s.blockText(article),
		ImageURL: metaProperty(doc, "og:image"),
	}
}
