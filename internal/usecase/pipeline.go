package usecase

import (
	"context"
	"log/slog"
	"math/rand"

	"newschomp/internal/domain"
	"newschomp/internal/ports"
	"newschomp/internal/seen"
	"newschomp/internal/source"
	"newschomp/internal/urlnorm"
)

// PipelineDeps wires the driven adapters into the discovery pipeline.
type PipelineDeps struct {
	Registry   *source.Registry
	Summarizer ports.Summarizer
	Logger     *slog.Logger
	// Shuffle permutes the source order before iteration; nil uses
	// math/rand. Injectable so tests get deterministic ordering.
	Shuffle func([]string)
}

// Pipeline finds the first unseen, extractable article across a set of
// sources. One run per client request; strictly sequential so "first
// success wins" has a single well-defined winner and no fetch is spent on
// a candidate already known to be seen.
type Pipeline struct {
	registry   *source.Registry
	summarizer ports.Summarizer
	logger     *slog.Logger
	shuffle    func([]string)
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	shuffle := deps.Shuffle
	if shuffle == nil {
		shuffle = func(keys []string) {
			rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		}
	}
	return &Pipeline{
		registry:   deps.Registry,
		summarizer: deps.Summarizer,
		logger:     deps.Logger,
		shuffle:    shuffle,
	}
}

// FetchFresh tries the given sources in shuffled order and returns the
// first article whose canonical URL is not in seenList. Candidate-level
// failures (fetch errors, extraction failure markers) skip to the next
// candidate; a source with no candidates skips to the next source. A nil
// article with nil error means everything currently offered has been seen —
// an expected outcome, not a fault.
func (p *Pipeline) FetchFresh(ctx context.Context, keys []string, query string, seenList *seen.List) (*domain.Article, error) {
	shuffled := make([]string, len(keys))
	copy(shuffled, keys)
	p.shuffle(shuffled)

	for _, key := range shuffled {
		src := p.registry.Get(key)
		if src == nil {
			p.debug("unknown source key, skipping", "key", key)
			continue
		}

		candidates := src.Discover(ctx, query)
		if len(candidates) == 0 {
			p.debug("source has no candidates", "source", key)
			continue
		}

		if article := p.scanCandidates(ctx, src, candidates, seenList); article != nil {
			return article, nil
		}
	}

	return nil, nil
}

// FetchURL fetches and extracts one specific article URL through its
// owning source, with summarizer enrichment. Unlike FetchFresh it does not
// consult a seen-set: the caller asked for this exact page.
func (p *Pipeline) FetchURL(ctx context.Context, src source.Source, rawURL string) (*domain.Article, error) {
	html, err := src.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	extracted := src.Extract(html)
	if extracted.Title == "" {
		return nil, nil
	}
	// Pages without a canonical/og:url still resolve: the caller named the
	// page, so its own URL is good enough here.
	if extracted.URL == "" {
		extracted.URL = rawURL
	}

	canonical, err := urlnorm.Canonicalize(extracted.URL)
	if err != nil {
		return nil, err
	}

	return p.buildArticle(ctx, src, canonical, extracted), nil
}

func (p *Pipeline) scanCandidates(ctx context.Context, src source.Source, candidates []string, seenList *seen.List) *domain.Article {
	for _, candidate := range candidates {
		canonical, err := urlnorm.Canonicalize(candidate)
		if err != nil {
			p.debug("bad candidate url", "source", src.Key(), "url", candidate, "error", err)
			continue
		}
		if seenList.Has(canonical) {
			p.debug("skipping already-seen candidate", "source", src.Key(), "url", canonical)
			continue
		}

		html, err := src.Fetch(ctx, candidate)
		if err != nil {
			p.debug("candidate fetch failed", "source", src.Key(), "url", candidate, "error", err)
			continue
		}

		extracted := src.Extract(html)
		if extracted.Failed() {
			p.debug("candidate extraction failed", "source", src.Key(), "url", candidate)
			continue
		}

		// The extracted record may report a different URL than discovery
		// did (redirects, canonical links); dedup against that one too.
		finalURL, err := urlnorm.Canonicalize(extracted.URL)
		if err != nil {
			p.debug("bad extracted url", "source", src.Key(), "url", extracted.URL, "error", err)
			continue
		}
		if seenList.Has(finalURL) {
			continue
		}

		return p.buildArticle(ctx, src, finalURL, extracted)
	}

	return nil
}

func (p *Pipeline) buildArticle(ctx context.Context, src source.Source, canonicalURL string, extracted domain.Extracted) *domain.Article {
	article := &domain.Article{
		URL:      canonicalURL,
		Title:    extracted.Title,
		PubDate:  extracted.PubDate,
		Content:  extracted.Content,
		ImageURL: extracted.ImageURL,
		Topics:   extracted.Topics,
		Source:   src.Key(),
	}

	if p.summarizer != nil && extracted.Content != "" {
		if summary := p.summarizer.Summarize(ctx, extracted.Content); summary != nil {
			article.AITitle = summary.Title
			article.Summary = summary.Body
		}
	}

	return article
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
