package stub

import (
	"context"

	"github.com/roomdesk/dashboard-client/pkg/log"
)

type logger struct{}

func NewLogger() log.Logger {
	return logger{}
}

func (l logger) With(_ log.Fields) log.Logger {
	return l
}

func (l logger) WithField(_ string, _ any) log.Logger {
	return l
}

func (l logger) WithError(_ error) log.Logger {
	return l
}

func (l logger) Log(_ context.Context, _ log.Level, _ string) {}

func (l logger) Debug(_ context.Context, _ string) {}

func (l logger) Info(_ context.Context, _ string) {}

func (l logger) Warn(_ context.Context, _ string) {}

func (l logger) Error(_ context.Context, _ string) {}
