package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"

	"github.com/roomdesk/dashboard-client/internal/api"
	"github.com/roomdesk/dashboard-client/internal/auth"
	"github.com/roomdesk/dashboard-client/internal/dashboard"
	"github.com/roomdesk/dashboard-client/internal/listing"
	"github.com/roomdesk/dashboard-client/pkg/env"
	"github.com/roomdesk/dashboard-client/pkg/httpclient"
	"github.com/roomdesk/dashboard-client/pkg/log"
	metricstub "github.com/roomdesk/dashboard-client/pkg/metric/stub"
	"github.com/roomdesk/dashboard-client/pkg/sig"
)

const (
	destinationRoomdeskAPI = "roomdeskApi"

	defaultBaseURL       = "/api"
	defaultWatchInterval = 30 * time.Second
	fetchTimeout         = 30 * time.Second
)

func main() {
	watch := flag.Bool("watch", false, "keep refreshing the dashboard until interrupted")
	flag.Parse()

	ctx := context.Background()
	_ = godotenv.Load()

	logger := log.New(logLevel())

	baseURL := env.ParseStringWithDefault(baseURLEnv(), defaultBaseURL)
	transport := httpclient.NewClient(
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestID(api.RequestIDHeader),
		httpclient.WithRequestLogging(destinationRoomdeskAPI, logger, log.LevelDebug, log.LevelWarn),
		httpclient.WithRequestMetrics(destinationRoomdeskAPI, metricstub.NewMetrics()),
	)

	storage := auth.NewFileStorage(tokenPath())
	container := dashboard.NewDependencyContainer(transport, storage, logger)

	session := container.Session.MustLoad()
	session.Bootstrap(ctx)
	if !session.State().IsAuthenticated {
		if err := login(ctx, session); err != nil {
			logger.WithError(err).Error(ctx, "authentication failed")
			os.Exit(1)
		}
	}
	logger.Info(ctx, "session is ready")

	rooms := container.RoomList.MustLoad()
	bookings := container.BookingList.MustLoad()
	printDashboard(ctx, rooms, bookings)

	if !*watch {
		return
	}

	interval := env.ParseDurationWithDefault("ROOMDESK_WATCH_INTERVAL", defaultWatchInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	termChan := sig.TermSignals()

	for {
		select {
		case <-termChan:
			logger.Info(ctx, "dashboard stopped")
			return
		case <-ticker.C:
			if !session.CheckAuth(ctx) {
				logger.Warn(ctx, "session is no longer valid, please log in again")
				return
			}
			printDashboard(ctx, rooms, bookings)
		}
	}
}

func login(ctx context.Context, session *auth.Session) error {
	email, err := env.ParseString("ROOMDESK_EMAIL")
	if err != nil {
		return err
	}
	password, err := env.ParseString("ROOMDESK_PASSWORD")
	if err != nil {
		return err
	}

	return session.Login(ctx, auth.Credentials{Email: email, Password: password})
}

func printDashboard(ctx context.Context, rooms *listing.RoomList, bookings *listing.BookingList) {
	roomsSnapshot := awaitFetch(rooms.List, func() { rooms.Refetch(ctx) })
	if roomsSnapshot.Err != "" {
		fmt.Printf("rooms unavailable: %s\n", roomsSnapshot.Err)
		return
	}

	fmt.Printf("rooms (page %d of %d, %d total):\n", roomsSnapshot.Page, roomsSnapshot.TotalPages, roomsSnapshot.Total)
	for _, room := range roomsSnapshot.Items {
		fmt.Printf("  #%d %s\n", room.ID, room.Name)
	}

	if len(roomsSnapshot.Items) == 0 {
		return
	}

	roomID := roomsSnapshot.Items[0].ID
	bookingsSnapshot := awaitFetch(bookings.List, func() { bookings.SetRoom(ctx, &roomID) })
	if bookingsSnapshot.Err != "" {
		fmt.Printf("bookings unavailable: %s\n", bookingsSnapshot.Err)
		return
	}

	fmt.Printf("bookings for room #%d (%d total):\n", roomID, bookingsSnapshot.Total)
	for _, booking := range bookingsSnapshot.Items {
		fmt.Printf("  #%d %s [%s] %s .. %s\n", booking.ID, booking.Title, booking.Status, booking.StartAt, booking.EndAt)
	}
}

func awaitFetch[T any](list *listing.List[T], trigger func()) listing.Snapshot[T] {
	done := make(chan struct{}, 1)
	unsubscribe := list.Subscribe(func() {
		if !list.Snapshot().Loading {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	trigger()

	select {
	case <-done:
	case <-time.After(fetchTimeout):
	}

	return list.Snapshot()
}

func baseURLEnv() string {
	return fmt.Sprintf("%s_SERVICE_URL", strcase.ToScreamingSnake(destinationRoomdeskAPI))
}

func tokenPath() string {
	if path, err := env.ParseString("ROOMDESK_TOKEN_FILE"); err == nil {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return filepath.Join(home, ".roomdesk", "token")
}

func logLevel() log.Level {
	switch env.ParseStringWithDefault("ROOMDESK_LOG_LEVEL", "info") {
	case "disabled":
		return log.LevelDisabled
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
