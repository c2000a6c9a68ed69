package usecase

import (
	"context"
	"errors"
	"testing"

	"newschomp/internal/domain"
	"newschomp/internal/seen"
	"newschomp/internal/source"
)

// scriptedSource plays back canned discovery and extraction results while
// counting fetches.
type scriptedSource struct {
	key        string
	candidates []string
	fetchErr   map[string]error
	extracted  map[string]domain.Extracted
	fetchCount int
}

func (s *scriptedSource) Name() string { return s.key }
func (s *scriptedSource) Key() string  { return s.key }
func (s *scriptedSource) Discover(ctx context.Context, query string) []string {
	return s.candidates
}
func (s *scriptedSource) Fetch(ctx context.Context, url string) (string, error) {
	s.fetchCount++
	if err := s.fetchErr[url]; err != nil {
		return "", err
	}
	return url, nil
}
func (s *scriptedSource) Extract(html string) domain.Extracted {
	return s.extracted[html]
}

type stubSummarizer struct {
	summary *domain.Summary
	calls   int
}

func (s *stubSummarizer) Summarize(ctx context.Context, content string) *domain.Summary {
	s.calls++
	return s.summary
}

func noShuffle(_ []string) {}

func newPipeline(reg *source.Registry, summarizer *stubSummarizer) *Pipeline {
	deps := PipelineDeps{Registry: reg, Shuffle: noShuffle}
	if summarizer != nil {
		deps.Summarizer = summarizer
	}
	return NewPipeline(deps)
}

func TestFetchFreshReturnsFirstUnseen(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key:        "alpha",
		candidates: []string{"https://alpha.example/a"},
		extracted: map[string]domain.Extracted{
			"https://alpha.example/a": {Title: "A Story", URL: "https://alpha.example/a", Content: "body"},
		},
	}
	reg := source.NewRegistry()
	reg.Register(src, "alpha.example")

	p := newPipeline(reg, nil)
	article, err := p.FetchFresh(context.Background(), []string{"alpha"}, "", seen.NewList())
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article == nil {
		t.Fatal("expected an article")
	}
	if article.URL != "https://alpha.example/a" || article.Title != "A Story" {
		t.Fatalf("unexpected article: %+v", article)
	}
	if article.Source != "alpha" {
		t.Fatalf("unexpected source key: %s", article.Source)
	}
}

func TestFetchFreshAllSeenNoFetch(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key:        "alpha",
		candidates: []string{"https://alpha.example/a", "https://alpha.example/b"},
	}
	reg := source.NewRegistry()
	reg.Register(src, "alpha.example")

	seenList := seen.NewList()
	seenList.Add("https://alpha.example/a")
	seenList.Add("https://alpha.example/b")

	p := newPipeline(reg, nil)
	article, err := p.FetchFresh(context.Background(), []string{"alpha"}, "", seenList)
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article != nil {
		t.Fatalf("expected no article, got %+v", article)
	}
	if src.fetchCount != 0 {
		t.Fatalf("expected no fetches for seen candidates, got %d", src.fetchCount)
	}
}

func TestFetchFreshSkipsFailedExtraction(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key:        "alpha",
		candidates: []string{"https://alpha.example/broken", "https://alpha.example/good"},
		extracted: map[string]domain.Extracted{
			"https://alpha.example/broken": {URL: "https://alpha.example/broken"}, // no title
			"https://alpha.example/good":   {Title: "Good", URL: "https://alpha.example/good"},
		},
	}
	reg := source.NewRegistry()
	reg.Register(src, "alpha.example")

	p := newPipeline(reg, nil)
	article, err := p.FetchFresh(context.Background(), []string{"alpha"}, "", seen.NewList())
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article == nil || article.URL != "https://alpha.example/good" {
		t.Fatalf("expected the second candidate, got %+v", article)
	}
	if src.fetchCount != 2 {
		t.Fatalf("expected 2 fetches, got %d", src.fetchCount)
	}
}

func TestFetchFreshSkipsFetchFailure(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key:        "alpha",
		candidates: []string{"https://alpha.example/down", "https://alpha.example/up"},
		fetchErr:   map[string]error{"https://alpha.example/down": errors.New("connection refused")},
		extracted: map[string]domain.Extracted{
			"https://alpha.example/up": {Title: "Up", URL: "https://alpha.example/up"},
		},
	}
	reg := source.NewRegistry()
	reg.Register(src, "alpha.example")

	p := newPipeline(reg, nil)
	article, err := p.FetchFresh(context.Background(), []string{"alpha"}, "", seen.NewList())
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article == nil || article.URL != "https://alpha.example/up" {
		t.Fatalf("expected surviving candidate, got %+v", article)
	}
}

func TestFetchFreshUnknownSourceMovesOn(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key:        "beta",
		candidates: []string{"https://beta.example/a"},
		extracted: map[string]domain.Extracted{
			"https://beta.example/a": {Title: "B", URL: "https://beta.example/a"},
		},
	}
	reg := source.NewRegistry()
	reg.Register(src, "beta.example")

	p := newPipeline(reg, nil)
	article, err := p.FetchFresh(context.Background(), []string{"ghost", "beta"}, "", seen.NewList())
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article == nil || article.Source != "beta" {
		t.Fatalf("expected beta article, got %+v", article)
	}
}

func TestFetchFreshRechecksExtractedURL(t *testing.T) {
	t.Parallel()

	// Discovery URL differs from the canonical URL the page itself reports;
	// the canonical one is already seen.
	src := &scriptedSource{
		key:        "alpha",
		candidates: []string{"https://alpha.example/promo?ref=home"},
		extracted: map[string]domain.Extracted{
			"https://alpha.example/promo?ref=home": {Title: "Promo", URL: "https://alpha.example/story"},
		},
	}
	reg := source.NewRegistry()
	reg.Register(src, "alpha.example")

	seenList := seen.NewList()
	seenList.Add("https://alpha.example/story")

	p := newPipeline(reg, nil)
	article, err := p.FetchFresh(context.Background(), []string{"alpha"}, "", seenList)
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article != nil {
		t.Fatalf("expected nil when extracted URL already seen, got %+v", article)
	}
}

func TestFetchFreshCanonicalizesCandidates(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key:        "alpha",
		candidates: []string{"https://alpha.example/a#frag"},
	}
	reg := source.NewRegistry()
	reg.Register(src, "alpha.example")

	seenList := seen.NewList()
	seenList.Add("https://alpha.example/a")

	p := newPipeline(reg, nil)
	article, err := p.FetchFresh(context.Background(), []string{"alpha"}, "", seenList)
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article != nil {
		t.Fatalf("fragment variant should count as seen, got %+v", article)
	}
	if src.fetchCount != 0 {
		t.Fatalf("expected no fetch, got %d", src.fetchCount)
	}
}

func TestFetchFreshEnrichment(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key:        "alpha",
		candidates: []string{"https://alpha.example/a"},
		extracted: map[string]domain.Extracted{
			"https://alpha.example/a": {Title: "A", URL: "https://alpha.example/a", Content: "long body"},
		},
	}
	reg := source.NewRegistry()
	reg.Register(src, "alpha.example")

	summarizer := &stubSummarizer{summary: &domain.Summary{Title: "Short Title", Body: "line1\nline2"}}
	p := newPipeline(reg, summarizer)

	article, err := p.FetchFresh(context.Background(), []string{"alpha"}, "", seen.NewList())
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article.AITitle != "Short Title" || article.Summary != "line1\nline2" {
		t.Fatalf("enrichment not applied: %+v", article)
	}
	if summarizer.calls != 1 {
		t.Fatalf("expected 1 summarizer call, got %d", summarizer.calls)
	}
}

func TestFetchFreshEnrichmentFailureStillReturnsArticle(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key:        "alpha",
		candidates: []string{"https://alpha.example/a"},
		extracted: map[string]domain.Extracted{
			"https://alpha.example/a": {Title: "A", URL: "https://alpha.example/a", Content: "body"},
		},
	}
	reg := source.NewRegistry()
	reg.Register(src, "alpha.example")

	p := newPipeline(reg, &stubSummarizer{summary: nil})
	article, err := p.FetchFresh(context.Background(), []string{"alpha"}, "", seen.NewList())
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article == nil {
		t.Fatal("expected an article despite summarizer failure")
	}
	if article.AITitle != "" || article.Summary != "" {
		t.Fatalf("expected empty enrichment fields, got %+v", article)
	}
}

func TestFetchFreshSkipsSummaryForEmptyContent(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key:        "alpha",
		candidates: []string{"https://alpha.example/a"},
		extracted: map[string]domain.Extracted{
			"https://alpha.example/a": {Title: "A", URL: "https://alpha.example/a"},
		},
	}
	reg := source.NewRegistry()
	reg.Register(src, "alpha.example")

	summarizer := &stubSummarizer{summary: &domain.Summary{Title: "x"}}
	p := newPipeline(reg, summarizer)

	article, err := p.FetchFresh(context.Background(), []string{"alpha"}, "", seen.NewList())
	if err != nil {
		t.Fatalf("FetchFresh error: %v", err)
	}
	if article == nil {
		t.Fatal("content-less article is still valid")
	}
	if summarizer.calls != 0 {
		t.Fatalf("summarizer should not run without content, got %d calls", summarizer.calls)
	}
}

func TestFetchURL(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key: "alpha",
		extracted: map[string]domain.Extracted{
			"https://alpha.example/a": {Title: "A", URL: "https://alpha.example/a#section"},
		},
	}

	p := newPipeline(source.NewRegistry(), nil)
	article, err := p.FetchURL(context.Background(), src, "https://alpha.example/a")
	if err != nil {
		t.Fatalf("FetchURL error: %v", err)
	}
	if article == nil || article.URL != "https://alpha.example/a" {
		t.Fatalf("expected canonicalized article URL, got %+v", article)
	}
}

func TestFetchURLFallsBackToRequestedURL(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		key: "alpha",
		extracted: map[string]domain.Extracted{
			"https://alpha.example/bare": {Title: "No Canonical Link"},
		},
	}

	p := newPipeline(source.NewRegistry(), nil)
	article, err := p.FetchURL(context.Background(), src, "https://alpha.example/bare")
	if err != nil {
		t.Fatalf("FetchURL error: %v", err)
	}
	if article == nil {
		t.Fatal("title-only extraction should still resolve in a lookup")
	}
	if article.URL != "https://alpha.example/bare" {
		t.Fatalf("URL = %q, want the requested URL", article.URL)
	}
}

func TestFetchURLExtractionFailure(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{key: "alpha"}
	p := newPipeline(source.NewRegistry(), nil)

	article, err := p.FetchURL(context.Background(), src, "https://alpha.example/missing")
	if err != nil {
		t.Fatalf("FetchURL error: %v", err)
	}
	if article != nil {
		t.Fatalf("expected nil on extraction failure, got %+v", article)
	}
}
