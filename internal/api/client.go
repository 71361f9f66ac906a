package api

import (
	"github.com/roomdesk/dashboard-client/internal/auth"
	"github.com/roomdesk/dashboard-client/pkg/httpclient"
)

// Client is the typed surface over the room-booking backend. Authenticated
// resource calls go through the dispatcher; the auth endpoints bypass it so a
// 401 on bad credentials is not mistaken for an expired session.
type Client struct {
	transport  httpclient.Client
	dispatcher *Dispatcher
}

func NewClient(transport httpclient.Client, storage auth.Storage, opts ...DispatcherOption) *Client {
	return &Client{
		transport:  transport,
		dispatcher: NewDispatcher(transport, storage, opts...),
	}
}
