package dashboard

import (
	"context"

	"github.com/roomdesk/dashboard-client/internal/api"
	"github.com/roomdesk/dashboard-client/internal/auth"
	"github.com/roomdesk/dashboard-client/internal/listing"
	"github.com/roomdesk/dashboard-client/pkg/clock"
	"github.com/roomdesk/dashboard-client/pkg/httpclient"
	"github.com/roomdesk/dashboard-client/pkg/lazy"
	"github.com/roomdesk/dashboard-client/pkg/log"
)

type DependencyContainer struct {
	APIClient   lazy.Loader[*api.Client]
	Session     lazy.Loader[*auth.Session]
	RoomList    lazy.Loader[*listing.RoomList]
	BookingList lazy.Loader[*listing.BookingList]
}

func NewDependencyContainer(
	transport httpclient.Client,
	storage auth.Storage,
	logger log.Logger,
	opts ...auth.SessionOption,
) *DependencyContainer {
	clk := clock.New()
	container := &DependencyContainer{}

	container.APIClient = lazy.New(func() (*api.Client, error) {
		return api.NewClient(
			transport,
			storage,
			api.WithDispatcherClock(clk),
			api.WithDispatcherLogger(logger),
			api.WithSessionExpiredHandler(func(ctx context.Context) {
				container.Session.MustLoad().Logout(ctx)
			}),
		), nil
	})

	container.Session = lazy.New(func() (*auth.Session, error) {
		sessionOpts := append([]auth.SessionOption{
			auth.WithSessionClock(clk),
			auth.WithSessionLogger(logger),
		}, opts...)

		return auth.NewSession(
			api.NewSessionGateway(container.APIClient.MustLoad()),
			storage,
			sessionOpts...,
		), nil
	})

	container.RoomList = lazy.New(func() (*listing.RoomList, error) {
		return listing.NewRoomList(container.APIClient.MustLoad()), nil
	})

	container.BookingList = lazy.New(func() (*listing.BookingList, error) {
		return listing.NewBookingList(container.APIClient.MustLoad(), clk), nil
	})

	return container
}
