package listing

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/komoralink/komora/dto"
)

// Fetcher loads one page of a list endpoint.
type Fetcher[T any] func(ctx context.Context, q Query) (*dto.ListResponse[T], error)

// State is a snapshot of a pager. Fetched counts the items received from the server, Items holds
// the ones left after the client-side filter. Total, TotalPages and HasMore are the server's view.
type State[T any] struct {
	Query      Query
	Items      []T
	Fetched    int
	Visible    int
	Page       int
	TotalPages int
	Total      int
	HasMore    bool
	Loading    bool
	Err        error
}

type Option[T any] func(*Pager[T])

func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(p *Pager[T]) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClientFilter applies Query.Secondary in memory on field instead of sending it to the server.
func WithClientFilter[T any](field func(T) string) Option[T] {
	return func(p *Pager[T]) {
		p.filter = &Filter[T]{Field: field}
	}
}

// WithDebounce sets the quiet period of SearchDebouncer.
func WithDebounce[T any](d time.Duration) Option[T] {
	return func(p *Pager[T]) {
		p.debounce = d
	}
}

// Pager accumulates the pages of a list endpoint. A filter change replaces the list and restarts
// at page 1; LoadMore appends the next page. Every refresh starts a new generation and cancels
// the request in flight, so a late response of an older query is dropped.
type Pager[T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[T]
	logger   *zap.Logger
	filter   *Filter[T]
	debounce time.Duration

	query      Query
	items      []T
	page       int
	totalPages int
	total      int
	loading    bool
	err        error

	gen    uint64
	cancel context.CancelFunc
}

func NewPager[T any](fetch Fetcher[T], limit int, opts ...Option[T]) *Pager[T] {
	p := &Pager[T]{
		fetch:    fetch,
		logger:   zap.NewNop(),
		debounce: DefaultDebounce,
		query:    Query{Page: 1, Limit: limit}.Normalize(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// serverQuery is the query sent to the fetcher for page.
func (p *Pager[T]) serverQuery(page int) Query {
	q := p.query
	q.Page = page
	if p.filter != nil {
		q.Secondary = ""
	}
	return q
}

// begin starts a request and returns its generation and context. Callers hold p.mu.
func (p *Pager[T]) begin(ctx context.Context, newGeneration bool) (uint64, context.Context) {
	if newGeneration {
		p.gen++
		if p.cancel != nil {
			p.cancel()
		}
	}
	reqCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.loading = true
	return p.gen, reqCtx
}

// finish releases the context of the completed request. Callers hold p.mu.
func (p *Pager[T]) finish() {
	p.loading = false
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Pager[T]) current(gen uint64) bool {
	return gen == p.gen
}

// Refresh reloads page 1 with the current filters and replaces the list. On failure the list is
// emptied and the error recorded in the state.
func (p *Pager[T]) Refresh(ctx context.Context) error {
	p.mu.Lock()
	gen, reqCtx := p.begin(ctx, true)
	q := p.serverQuery(1)
	p.mu.Unlock()

	resp, err := p.fetch(reqCtx, q)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.current(gen) {
		p.logger.Debug("discarding stale list response", zap.Int("page", q.Page), zap.String("search", q.Search))
		return nil
	}
	p.finish()

	if err != nil {
		p.logger.Warn("list refresh failed", zap.String("search", q.Search), zap.Error(err))
		p.items = nil
		p.page = 1
		p.totalPages = 0
		p.total = 0
		p.err = err
		return err
	}

	p.items = append([]T(nil), resp.Data...)
	p.apply(q.Page, resp.Pagination)
	p.err = nil
	return nil
}

// LoadMore appends the next page. It reports false without fetching while a request is in flight
// or when the server has no more pages. On failure the accumulated list is kept.
func (p *Pager[T]) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.loading || p.page >= p.totalPages {
		p.mu.Unlock()
		return false, nil
	}
	gen, reqCtx := p.begin(ctx, false)
	q := p.serverQuery(p.page + 1)
	p.mu.Unlock()

	resp, err := p.fetch(reqCtx, q)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.current(gen) {
		p.logger.Debug("discarding stale page", zap.Int("page", q.Page))
		return false, nil
	}
	p.finish()

	if err != nil {
		p.logger.Warn("loading next page failed", zap.Int("page", q.Page), zap.Error(err))
		p.err = err
		return false, err
	}

	p.items = append(p.items, resp.Data...)
	p.apply(q.Page, resp.Pagination)
	p.err = nil
	return true, nil
}

func (p *Pager[T]) apply(requested int, meta dto.Pagination) {
	p.page = requested
	if meta.Page > 0 {
		p.page = meta.Page
	}
	p.totalPages = meta.TotalPages
	p.total = meta.Total
}

func (p *Pager[T]) SetCategory(ctx context.Context, category string) error {
	p.mu.Lock()
	p.query.Category = category
	p.mu.Unlock()
	return p.Refresh(ctx)
}

func (p *Pager[T]) SetSearch(ctx context.Context, search string) error {
	p.mu.Lock()
	p.query.Search = search
	p.mu.Unlock()
	return p.Refresh(ctx)
}

func (p *Pager[T]) SetSecondary(ctx context.Context, value string) error {
	p.mu.Lock()
	p.query.Secondary = value
	p.mu.Unlock()
	return p.Refresh(ctx)
}

// SearchDebouncer returns a debouncer feeding settled search text into SetSearch.
func (p *Pager[T]) SearchDebouncer(ctx context.Context) *Debouncer {
	return NewDebouncer(p.debounce, func(search string) {
		if err := p.SetSearch(ctx, search); err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Debug("debounced search failed", zap.Error(err))
		}
	})
}

func (p *Pager[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	visible := append([]T(nil), p.items...)
	if p.filter != nil {
		visible = p.filter.Apply(p.items, p.query.Secondary)
	}
	return State[T]{
		Query:      p.query,
		Items:      visible,
		Fetched:    len(p.items),
		Visible:    len(visible),
		Page:       p.page,
		TotalPages: p.totalPages,
		Total:      p.total,
		HasMore:    p.page < p.totalPages,
		Loading:    p.loading,
		Err:        p.err,
	}
}

// Reset cancels any request and forgets the list and filters.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.query = Query{Page: 1, Limit: p.query.Limit}
	p.items = nil
	p.page = 0
	p.totalPages = 0
	p.total = 0
	p.loading = false
	p.err = nil
}
