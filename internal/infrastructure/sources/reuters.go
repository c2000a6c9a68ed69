package sources

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const reutersOrigin = "https://www.reuters.com"

// Reuters browses section pages; it ignores search queries.
type Reuters struct {
	base
}

func NewReuters(f *fetch.Client, logger *slog.Logger) *Reuters {
	return &Reuters{base: newBase(f, logger)}
}

func (s *Reuters) Name() string { return "Reuters" }
func (s *Reuters) Key() string  { return "reuters" }

func (s *Reuters) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		reutersOrigin + "/world/",
		reutersOrigin + "/business/",
		reutersOrigin + "/technology/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find(`a[data-testid="TitleLink"]`).Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(reutersOrigin, href))
		})
		return urls
	})
}

func (s *Reuters) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	content := paragraphText(doc.Find(`[class*="article-body-module__paragraph"]`))
	if content == "" {
		content = paragraphText(doc.Find("article p"))
	}

	imageURL, _ := doc.Find(`img[data-testid="EagerImage"]`).First().Attr("src")
	if imageURL == "" {
		imageURL = metaProperty(doc, "og:image")
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  strings.TrimSpace(content),
		ImageURL: imageURL,
	}
}
