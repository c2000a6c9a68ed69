package sources

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const iexaminerOrigin = "https://iexaminer.org"

// IExaminer is the International Examiner (Seattle). Browses category
// pages; queries are ignored.
type IExaminer struct {
	base
}

func NewIExaminer(f *fetch.Client, logger *slog.Logger) *IExaminer {
	return &IExaminer{base: newBase(f, logger)}
}

func (s *IExaminer) Name() string { return "International Examiner" }
func (s *IExaminer) Key() string  { return "iexaminer" }

func (s *IExaminer) Location() domain.Location {
	return domain.Location{Latitude: 47.6062, Longitude: -122.3321, City: "Seattle"}
}

func (s *IExaminer) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		iexaminerOrigin + "/category/arts/",
		iexaminerOrigin + "/category/news/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("a.td-image-wrap").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			urls = append(urls, absURL(iexaminerOrigin, href))
		})
		return urls
	})
}

func (s *IExaminer) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	article := doc.Find("article").First()
	imageURL, _ := article.Find(`img[class*="wp-image-"]`).First().Attr("src")
	if imageURL == "" {
		imageURL = metaProperty(doc, "og:image")
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  paragraphText(article.Find("p")),
		ImageURL: imageURL,
	}
}
