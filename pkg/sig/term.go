package sig

import (
	"os"
	"os/signal"
	"syscall"
)

// TermSignals returns a channel delivering SIGTERM and SIGINT, the signals
// that stop the dashboard watch loop.
func TermSignals() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
	return ch
}
