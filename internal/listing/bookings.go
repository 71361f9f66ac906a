package listing

import (
	"context"
	"sync"
	"time"

	"github.com/roomdesk/dashboard-client/internal/api"
	"github.com/roomdesk/dashboard-client/pkg/clock"
)

type BookingSource interface {
	ListRoomBookings(ctx context.Context, roomID int64, query api.BookingQuery) (api.Page[api.Booking], error)
}

// BookingList is the paginated read model over one room's bookings. Without a
// selected room every fetch short-circuits to an empty result. An unset
// window bound falls back to the default window computed at fetch time.
type BookingList struct {
	*List[api.Booking]

	source BookingSource
	clock  clock.Clock

	filterMu sync.Mutex
	roomID   *int64
	from     time.Time
	to       time.Time
}

func NewBookingList(source BookingSource, clk clock.Clock, opts ...Option) *BookingList {
	l := &BookingList{
		source: source,
		clock:  clk,
	}
	l.List = newList(l.fetchPage, opts...)

	return l
}

// SetRoom switches the list to another room's bookings; nil deselects and
// empties the list.
func (l *BookingList) SetRoom(ctx context.Context, roomID *int64) {
	l.filterMu.Lock()
	l.roomID = roomID
	l.filterMu.Unlock()

	l.trigger(ctx)
}

// SetWindow narrows the listing to the [from, to) interval; a zero bound
// falls back to its default.
func (l *BookingList) SetWindow(ctx context.Context, from, to time.Time) {
	l.filterMu.Lock()
	l.from = from
	l.to = to
	l.filterMu.Unlock()

	l.trigger(ctx)
}

func (l *BookingList) fetchPage(ctx context.Context, page, limit int) (api.Page[api.Booking], error) {
	l.filterMu.Lock()
	roomID, from, to := l.roomID, l.from, l.to
	l.filterMu.Unlock()

	if roomID == nil {
		return api.Page[api.Booking]{Page: page, Limit: limit}, nil
	}

	if from.IsZero() || to.IsZero() {
		defaultFrom, defaultTo := defaultWindow(l.clock.Now(ctx))
		if from.IsZero() {
			from = defaultFrom
		}
		if to.IsZero() {
			to = defaultTo
		}
	}

	return l.source.ListRoomBookings(ctx, *roomID, api.BookingQuery{
		From:      from.Format(time.RFC3339),
		To:        to.Format(time.RFC3339),
		PageQuery: api.PageQuery{Page: page, Limit: limit},
	})
}

// defaultWindow spans the first day of the current month through the last day
// of the next month.
func defaultWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := time.Date(now.Year(), now.Month()+2, 0, 0, 0, 0, 0, now.Location())
	return from, to
}
