package listing

import (
	"context"
	"errors"
	"sync"

	"github.com/roomdesk/dashboard-client/internal/api"
	"github.com/roomdesk/dashboard-client/internal/apierror"
	"github.com/roomdesk/dashboard-client/internal/auth"
)

const DefaultLimit = api.DefaultLimit

type (
	// Snapshot is a consistent view of a list's state. Err holds the
	// normalized user-facing message of the last failed fetch, empty when the
	// last fetch succeeded or is still in flight.
	Snapshot[T any] struct {
		Items      []T
		Total      int
		Page       int
		Limit      int
		TotalPages int
		Loading    bool
		Err        string
	}

	fetchFunc[T any] func(ctx context.Context, page, limit int) (api.Page[T], error)

	// List is a paginated read model over one backend resource. Every change
	// to page, limit or filters triggers a fetch; each trigger bumps a
	// generation counter and a completion is applied only when it still
	// belongs to the latest generation, so a late response to a superseded
	// request never overwrites newer state.
	List[T any] struct {
		mu    sync.Mutex
		fetch fetchFunc[T]

		page    int
		limit   int
		items   []T
		total   int
		loading bool
		errMsg  string

		generation uint64
		subs       map[int]func()
		nextSub    int
	}

	Option func(*config)

	config struct {
		page  int
		limit int
	}
)

func WithInitialPage(page int) Option {
	return func(c *config) {
		c.page = page
	}
}

func WithLimit(limit int) Option {
	return func(c *config) {
		c.limit = limit
	}
}

func newList[T any](fetch fetchFunc[T], opts ...Option) *List[T] {
	cfg := config{page: 1, limit: DefaultLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.page < 1 {
		cfg.page = 1
	}
	if cfg.limit < 1 {
		cfg.limit = DefaultLimit
	}

	return &List[T]{
		fetch:   fetch,
		page:    cfg.page,
		limit:   cfg.limit,
		loading: true,
		subs:    map[int]func(){},
	}
}

func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot[T]{
		Items:      l.items,
		Total:      l.total,
		Page:       l.page,
		Limit:      l.limit,
		TotalPages: totalPages(l.total, l.limit),
		Loading:    l.loading,
		Err:        l.errMsg,
	}
}

// Subscribe registers a listener notified after every state change and
// returns an unsubscribe func.
func (l *List[T]) Subscribe(fn func()) func() {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// SetPage moves to the given page, clamped to >= 1.
func (l *List[T]) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}

	l.mu.Lock()
	if page == l.page {
		l.mu.Unlock()
		return
	}
	l.page = page
	l.mu.Unlock()

	l.trigger(ctx)
}

// SetLimit changes the page size, clamped to >= 1, and resets the page to 1
// since the previous page offset is no longer meaningful.
func (l *List[T]) SetLimit(ctx context.Context, limit int) {
	if limit < 1 {
		limit = 1
	}

	l.mu.Lock()
	if limit == l.limit && l.page == 1 {
		l.mu.Unlock()
		return
	}
	l.limit = limit
	l.page = 1
	l.mu.Unlock()

	l.trigger(ctx)
}

// Refetch reloads the current page.
func (l *List[T]) Refetch(ctx context.Context) {
	l.trigger(ctx)
}

func (l *List[T]) trigger(ctx context.Context) {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	page, limit := l.page, l.limit
	l.loading = true
	l.errMsg = ""
	l.mu.Unlock()

	l.notify()

	go l.load(ctx, gen, page, limit)
}

func (l *List[T]) load(ctx context.Context, gen uint64, page, limit int) {
	result, err := l.fetch(ctx, page, limit)

	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		return
	}

	switch {
	case errors.Is(err, auth.ErrSessionExpired):
		// handled globally by the dispatcher, never surfaced as a list error
		l.items = nil
		l.total = 0
	case err != nil:
		l.items = nil
		l.total = 0
		l.errMsg = apierror.Normalize(err.Error())
	default:
		l.items = result.Items
		l.total = result.Total
	}
	l.loading = false
	l.mu.Unlock()

	l.notify()
}

func (l *List[T]) notify() {
	l.mu.Lock()
	subs := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func totalPages(total, limit int) int {
	if limit < 1 {
		limit = 1
	}

	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}

	return pages
}
