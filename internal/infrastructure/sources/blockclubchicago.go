package sources

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"newschomp/internal/domain"
	"newschomp/internal/infrastructure/fetch"
)

const blockClubOrigin = "https://blockclubchicago.org"

// Article permalinks carry a /YYYY/MM/DD/ date path.
var blockClubArticlePath = regexp.MustCompile(`/\d{4}/\d{2}/\d{2}/`)

// BlockClubChicago browses section pages; queries are ignored.
type BlockClubChicago struct {
	base
}

func NewBlockClubChicago(f *fetch.Client, logger *slog.Logger) *BlockClubChicago {
	return &BlockClubChicago{base: newBase(f, logger)}
}

func (s *BlockClubChicago) Name() string { return "Block Club Chicago" }
func (s *BlockClubChicago) Key() string  { return "blockclubchicago" }

func (s *BlockClubChicago) Location() domain.Location {
	return domain.Location{Latitude: 41.8781, Longitude: -87.6298, City: "Chicago"}
}

func (s *BlockClubChicago) Discover(ctx context.Context, _ string) []string {
	pages := []string{
		blockClubOrigin + "/arts-culture/",
		blockClubOrigin + "/food-drink/",
	}
	return s.browse(ctx, pages, func(doc *goquery.Document) []string {
		var urls []string
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			href = absURL(blockClubOrigin, href)
			if blockClubArticlePath.MatchString(href) {
				urls = append(urls, href)
			}
		})
		return urls
	})
}

func (s *BlockClubChicago) Extract(html string) domain.Extracted {
	doc, err := parseDoc(html)
	if err != nil {
		return domain.Extracted{}
	}

	imageURL, _ := doc.Find(`img[class*="attachment-newspack-featured-image"]`).First().Attr("src")
	if imageURL == "" {
		imageURL = metaProperty(doc, "og:image")
	}

	return domain.Extracted{
		Title:    metaProperty(doc, "og:title"),
		URL:      canonicalURL(doc),
		PubDate:  publishedAt(doc),
		Content:  paragraphText(doc.Find("div.entry-content").First().Find("p, h2, h3, h4, li")),
		ImageURL: imageURL,
	}
}
