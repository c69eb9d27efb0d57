package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"hn-reader/server/hn"
	"hn-reader/server/store"
)

// ErrMissingParameter indicates the request carried neither a URL nor a
// comment forest (or both at once).
var ErrMissingParameter = errors.New("exactly one of url or comments must be provided")

// PageExtractor turns a URL into readable text.
type PageExtractor interface {
	PageText(ctx context.Context, url string) (string, error)
}

// Request is a tagged summarization input: either page content behind a URL or
// a resolved comment forest. A nil Comments slice means the comment mode was
// not supplied at all; an empty non-nil slice is a valid, empty forest.
type Request struct {
	URL      string
	Comments []*hn.Comment
}

type mode int

const (
	modePage mode = iota + 1
	modeComments
)

func (r Request) mode() (mode, error) {
	hasURL := r.URL != ""
	hasComments := r.Comments != nil
	switch {
	case hasURL && !hasComments:
		return modePage, nil
	case hasComments && !hasURL:
		return modeComments, nil
	default:
		return 0, ErrMissingParameter
	}
}

// Result is a completed summarization. FromCache distinguishes "served from
// cache" from "summarized fresh"; an empty Summary with a nil error means
// there was nothing to summarize.
type Result struct {
	Summary   string `json:"summary"`
	FromCache bool   `json:"-"`
}

// Service composes key derivation, the summary cache, page extraction, and the
// model call. Concurrent requests for the same key within this process share
// one flight; across processes the cache write race stands (last write wins).
type Service struct {
	cache      store.SummaryCache
	summarizer Summarizer
	extractor  PageExtractor
	sf         singleflight.Group
}

func NewService(cache store.SummaryCache, summarizer Summarizer, extractor PageExtractor) *Service {
	return &Service{cache: cache, summarizer: summarizer, extractor: extractor}
}

// Summarize runs one request through the pipeline: derive key, check cache, on
// miss gather text, short-circuit when empty, otherwise call the model and
// write back best-effort.
func (s *Service) Summarize(ctx context.Context, req Request) (Result, error) {
	m, err := req.mode()
	if err != nil {
		return Result{}, err
	}

	var key string
	switch m {
	case modeComments:
		key = KeyForIDs(CollectIDs(req.Comments))
	case modePage:
		key = KeyForURL(req.URL)
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.summarizeKey(ctx, m, key, req)
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (s *Service) summarizeKey(ctx context.Context, m mode, key string, req Request) (Result, error) {
	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		return Result{Summary: cached, FromCache: true}, nil
	}
	if !errors.Is(err, store.ErrCacheMiss) {
		// Unavailable store counts as a miss; summarization proceeds uncached.
		slog.Warn("summary cache unavailable", "error", err)
	}

	var text string
	switch m {
	case modeComments:
		text = strings.Join(CollectTexts(req.Comments), "\n\n")
	case modePage:
		text, err = s.extractor.PageText(ctx, req.URL)
		if err != nil {
			return Result{}, fmt.Errorf("fetch page content: %w", err)
		}
	}

	if strings.TrimSpace(text) == "" {
		return Result{}, nil
	}

	out, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("generate summary: %w", err)
	}

	if err := s.cache.Set(ctx, key, out); err != nil {
		slog.Warn("summary cache write failed", "key", key, "error", err)
	}
	return Result{Summary: out}, nil
}
