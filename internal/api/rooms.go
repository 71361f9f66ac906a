package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const roomsPath = "/api/v1/rooms"

type (
	Room struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		CreatedBy *int64 `json:"createdBy,omitempty"`
		CreatedAt string `json:"createdAt,omitempty"`
		UpdatedAt string `json:"updatedAt,omitempty"`
	}

	RoomResult struct {
		Message string `json:"message"`
		Room    Room   `json:"room"`
	}
)

func (c *Client) ListRooms(ctx context.Context, query PageQuery) (Page[Room], error) {
	query = query.normalize()

	raw, err := Do[listEnvelope[Room]](ctx, c.dispatcher, Request{
		Method: http.MethodGet,
		Path:   roomsPath,
		Query:  query.values(),
	})
	if err != nil {
		return Page[Room]{}, err
	}

	return normalizePage(raw, raw.Rooms, query), nil
}

// GetRoom fetches a single room, unwrapping the optional {room} envelope the
// detail endpoint may use.
func (c *Client) GetRoom(ctx context.Context, id int64) (Room, error) {
	raw, err := Do[json.RawMessage](ctx, c.dispatcher, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("%s/%d", roomsPath, id),
	})
	if err != nil {
		return Room{}, err
	}

	var envelope struct {
		Room *Room `json:"room"`
	}
	if err = json.Unmarshal(raw, &envelope); err == nil && envelope.Room != nil {
		return *envelope.Room, nil
	}

	var room Room
	_ = json.Unmarshal(raw, &room)
	return room, nil
}

func (c *Client) CreateRoom(ctx context.Context, name string) (RoomResult, error) {
	return Do[RoomResult](ctx, c.dispatcher, Request{
		Method: http.MethodPost,
		Path:   roomsPath,
		Body:   map[string]string{"name": name},
	})
}

func (c *Client) UpdateRoom(ctx context.Context, id int64, name string) (RoomResult, error) {
	return Do[RoomResult](ctx, c.dispatcher, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("%s/%d", roomsPath, id),
		Body:   map[string]string{"name": name},
	})
}

func (c *Client) DeleteRoom(ctx context.Context, id int64) (RoomResult, error) {
	return Do[RoomResult](ctx, c.dispatcher, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("%s/%d", roomsPath, id),
	})
}
