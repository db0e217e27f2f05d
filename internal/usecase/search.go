package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/pantrylens/kitchen/internal/metrics"
	"go.uber.org/zap"
)

// Search defaults
const (
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultMinQueryLength = 2
	DefaultSearchLimit    = 10
	DefaultSearchCacheTTL = 10 * time.Minute
)

// SearchConfig holds the ingredient search settings
type SearchConfig struct {
	Debounce       time.Duration
	MinQueryLength int
	Limit          int
	CacheTTL       time.Duration
}

// SearchResult is the outcome of one issued query. Seq is the token returned by Submit.
type SearchResult struct {
	Seq     uint64                          `json:"seq"`
	Query   string                          `json:"query"`
	Results []domain.IngredientSearchResult `json:"results"`
	Err     error                           `json:"-"`
}

// IngredientSearcher runs debounced ingredient lookups. Every Submit supersedes the
// previous query: its timer is stopped and its request cancelled, and a response that
// still arrives for it is discarded. The published result is always the one of the
// most recently issued query.
type IngredientSearcher struct {
	api     domain.IngredientAPI
	cache   domain.CacheRepository
	config  SearchConfig
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	timer  *time.Timer
	closed bool
	wg     sync.WaitGroup

	pubMu     sync.Mutex
	published uint64
	latest    SearchResult
	onResult  func(SearchResult)
}

// NewIngredientSearcher creates a searcher. cache may be nil. onResult, when set, is
// called for every published result and must not call back into the searcher.
func NewIngredientSearcher(
	api domain.IngredientAPI,
	cache domain.CacheRepository,
	config SearchConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
	onResult func(SearchResult),
) *IngredientSearcher {
	if config.Debounce < 0 {
		config.Debounce = 0
	}
	if config.MinQueryLength <= 0 {
		config.MinQueryLength = DefaultMinQueryLength
	}
	if config.Limit <= 0 {
		config.Limit = DefaultSearchLimit
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = DefaultSearchCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngredientSearcher{
		api:      api,
		cache:    cache,
		config:   config,
		metrics:  m,
		logger:   logger.Named("search"),
		onResult: onResult,
	}
}

// Submit issues a new query and returns its sequence token. Queries shorter than the
// minimum length publish an empty result immediately without a remote call.
func (s *IngredientSearcher) Submit(ctx context.Context, query string) uint64 {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	s.seq++
	seq := s.seq
	s.supersedeLocked()

	if utf8.RuneCountInString(query) < s.config.MinQueryLength {
		s.mu.Unlock()
		s.publish(SearchResult{Seq: seq, Query: query, Results: []domain.IngredientSearchResult{}})
		return seq
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.config.Debounce, func() {
		defer s.wg.Done()
		s.run(runCtx, seq, query)
	})
	s.mu.Unlock()
	return seq
}

// supersedeLocked stops the pending timer and cancels the in-flight request
func (s *IngredientSearcher) supersedeLocked() {
	if s.timer != nil {
		if s.timer.Stop() {
			s.wg.Done()
		}
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *IngredientSearcher) run(ctx context.Context, seq uint64, query string) {
	if ctx.Err() != nil {
		return
	}
	results, err := s.Search(ctx, query)
	if ctx.Err() != nil || !s.current(seq) {
		s.metrics.ObserveStaleSearch()
		s.logger.Debug("discarding stale search", zap.Uint64("seq", seq), zap.String("query", query))
		return
	}
	s.publish(SearchResult{Seq: seq, Query: query, Results: results, Err: err})
}

func (s *IngredientSearcher) current(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.seq
}

// publish stores r as the latest result unless a newer query has been issued or published
func (s *IngredientSearcher) publish(r SearchResult) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	if r.Seq < s.published || !s.current(r.Seq) {
		s.metrics.ObserveStaleSearch()
		return
	}
	s.published = r.Seq
	s.latest = r
	if s.onResult != nil {
		s.onResult(r)
	}
}

// Latest returns the most recently published result
func (s *IngredientSearcher) Latest() SearchResult {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	return s.latest
}

// Search looks a query up immediately, going through the result cache.
// Queries shorter than the minimum length return no results.
func (s *IngredientSearcher) Search(ctx context.Context, query string) ([]domain.IngredientSearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < s.config.MinQueryLength {
		return []domain.IngredientSearchResult{}, nil
	}

	key := searchCacheKey(NormalizeQuery(query), s.config.Limit)
	if s.cache != nil {
		var cached []domain.IngredientSearchResult
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("search cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	results, err := s.api.SearchIngredients(ctx, query, s.config.Limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []domain.IngredientSearchResult{}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, results, s.config.CacheTTL); err != nil {
			s.logger.Warn("search cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return results, nil
}

// Close cancels pending work and waits for in-flight lookups to finish
func (s *IngredientSearcher) Close() {
	s.mu.Lock()
	s.closed = true
	s.supersedeLocked()
	s.mu.Unlock()
	s.wg.Wait()
}
