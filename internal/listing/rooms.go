package listing

import (
	"context"

	"github.com/roomdesk/dashboard-client/internal/api"
)

type RoomSource interface {
	ListRooms(ctx context.Context, query api.PageQuery) (api.Page[api.Room], error)
}

// RoomList is the paginated read model over the rooms collection.
type RoomList struct {
	*List[api.Room]
}

func NewRoomList(source RoomSource, opts ...Option) *RoomList {
	return &RoomList{
		List: newList(func(ctx context.Context, page, limit int) (api.Page[api.Room], error) {
			return source.ListRooms(ctx, api.PageQuery{Page: page, Limit: limit})
		}, opts...),
	}
}
