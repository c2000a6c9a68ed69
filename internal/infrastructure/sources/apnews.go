package sources

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const apnewsOrigin = "https://apnews.com"

// APNews searches apnews.com when a query is given and browses the world
// and US news hubs otherwise.
type APNews struct {
	base
}

func NewAPNews(f *fetch.Client, logger *slog.Logger) *APNews {
	return &APNews{base: newBase(f, logger)}
}

func (s *APNews) Name() string { return "AP News" }
func (s *APNews) Key() string  { return "apnews" }

func (s *APNews) Discover(ctx context.Context, query string) []string {
	pages := []string{apnewsOrigin + "/world-news", apnewsOrigin + "/us-news"}
	if query != "" {
		// s=0 sorts by relevance.
		pages = []string{apnewsOrigin + "/search?q=" + url.QueryEscape(query) + "&s=0"}
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("div.PagePromo-title a.Link").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			href = absURL(apnewsOrigin, href)
			// Skip videos, galleries, and other non-article pages.
			if strings.Contains(href, "/article/") {
				urls = append(urls, href)
			}
		})
		if len(urls) == 0 {
			doc.Find(`a[href*="/article/"]`).Each(func(_ int, a *goquery.Selection) {
				href, _ := a.Attr("href")
				urls = append(urls, absURL(apnewsOrigin, href))
			})
		}
		return urls
	})
}

func (s *APNews) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	imageURL := ""
	img := doc.Find("div.Page-content picture img.Image").First()
	for _, attr := range []string{"data-flickity-lazyload", "src"} {
		if v, ok := img.Attr(attr); ok && !strings.HasPrefix(v, "data:") {
			imageURL = v
			break
		}
	}
	if imageURL == "" {
		if srcset, ok := img.Attr("data-flickity-lazyload-srcset"); ok {
			if fields := strings.Fields(srcset); len(fields) > 0 {
				imageURL = fields[0]
			}
		}
	}
	if imageURL == "" {
		imageURL = metaProperty(doc, "og:image")
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      metaProperty(doc, "og:url"),
		PubDate:  publishedAt(doc),
		Content:  strings.TrimSpace(doc.Find("div.RichTextStoryBody.RichTextBody").First().Text()),
		ImageURL: imageURL,
		Topics:   metaTopics(doc),
	}
}
