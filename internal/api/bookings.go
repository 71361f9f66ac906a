package api

import (
	"context"
	"fmt"
	"net/http"
)

const bookingsPath = "/api/v1/bookings"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

type (
	Booking struct {
		ID        int64         `json:"id"`
		UserID    int64         `json:"userId"`
		RoomID    int64         `json:"roomId"`
		Title     string        `json:"title"`
		StartAt   string        `json:"start_at"`
		EndAt     string        `json:"end_at"`
		CreatedAt string        `json:"createdAt"`
		UpdatedAt string        `json:"updatedAt"`
		Status    BookingStatus `json:"status"`
	}

	// BookingQuery filters a room's bookings by a half-open [From, To) window
	// of ISO 8601 timestamps; empty bounds are omitted from the request.
	BookingQuery struct {
		From string
		To   string
		PageQuery
	}

	NewBooking struct {
		Title   string        `json:"title"`
		StartAt string        `json:"start_at"`
		EndAt   string        `json:"end_at"`
		Status  BookingStatus `json:"status,omitempty"`
	}

	BookingResult struct {
		Message string  `json:"message"`
		Booking Booking `json:"booking"`
	}

	MessageResult struct {
		Message string `json:"message"`
	}
)

func (c *Client) ListRoomBookings(ctx context.Context, roomID int64, query BookingQuery) (Page[Booking], error) {
	query.PageQuery = query.PageQuery.normalize()

	values := query.values()
	if query.From != "" {
		values.Set("from", query.From)
	}
	if query.To != "" {
		values.Set("to", query.To)
	}

	raw, err := Do[listEnvelope[Booking]](ctx, c.dispatcher, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("%s/%d/bookings", roomsPath, roomID),
		Query:  values,
	})
	if err != nil {
		return Page[Booking]{}, err
	}

	return normalizePage(raw, raw.Bookings, query.PageQuery), nil
}

func (c *Client) CreateBooking(ctx context.Context, roomID int64, booking NewBooking) (BookingResult, error) {
	return Do[BookingResult](ctx, c.dispatcher, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("%s/%d/bookings", roomsPath, roomID),
		Body:   booking,
	})
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) (MessageResult, error) {
	return Do[MessageResult](ctx, c.dispatcher, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("%s/%d", bookingsPath, id),
	})
}
