package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/roomdesk/dashboard-client/internal/auth"
	"github.com/roomdesk/dashboard-client/pkg/clock"
	"github.com/roomdesk/dashboard-client/pkg/httpclient"
	"github.com/roomdesk/dashboard-client/pkg/log"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	contentTypeJSON     = "application/json"

	RequestIDHeader = "X-Request-ID"
)

type (
	DispatcherOption func(*Dispatcher)

	// Dispatcher wraps backend calls with the bearer token, uniform error
	// decoding and session-expiry interception. A locally-expired token or a
	// server 401 clears the token store, fires the session-expired handler and
	// yields auth.ErrSessionExpired without surfacing a regular error.
	Dispatcher struct {
		transport        httpclient.Client
		storage          auth.Storage
		clock            clock.Clock
		logger           log.Logger
		onSessionExpired func(context.Context)
	}

	// Request describes a single authenticated backend call. Token overrides
	// the stored token when non-nil; an explicit empty string suppresses the
	// Authorization header. Caller-supplied Headers win on conflict.
	Request struct {
		Method  string
		Path    string
		Query   url.Values
		Body    any
		Token   *string
		Headers map[string]string
	}
)

func NewDispatcher(transport httpclient.Client, storage auth.Storage, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		storage:   storage,
		clock:     clock.New(),
		logger:    log.New(log.LevelDisabled),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func WithDispatcherClock(clk clock.Clock) DispatcherOption {
	return func(d *Dispatcher) {
		d.clock = clk
	}
}

func WithDispatcherLogger(logger log.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithSessionExpiredHandler installs the login-boundary hook invoked after the
// token store has been cleared on expiry.
func WithSessionExpiredHandler(handler func(context.Context)) DispatcherOption {
	return func(d *Dispatcher) {
		d.onSessionExpired = handler
	}
}

// Do issues an authenticated call and decodes the 2xx body into T. The success
// payload is decoded tolerantly: an empty or non-JSON body yields the zero
// value and no schema validation is performed.
func Do[T any](ctx context.Context, d *Dispatcher, req Request) (T, error) {
	var result T

	token, err := d.resolveToken(req.Token)
	if err != nil {
		return result, err
	}

	if token != "" && !auth.IsLocallyValid(ctx, d.clock, token) {
		return result, d.expireSession(ctx)
	}

	r := d.transport.NewRequest(ctx).SetHeader(headerContentType, contentTypeJSON)
	if token != "" {
		r.SetHeader(headerAuthorization, "Bearer "+token)
	}
	for name, value := range req.Headers {
		r.SetHeader(name, value)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return result, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return result, d.expireSession(ctx)
	}
	if resp.IsError() {
		return result, &RequestError{
			StatusCode: resp.StatusCode(),
			Message:    normalizeErrorBody(resp.Body(), resp.StatusCode()),
		}
	}

	if body := resp.Body(); len(body) > 0 {
		_ = json.Unmarshal(body, &result)
	}

	return result, nil
}

func (d *Dispatcher) resolveToken(override *string) (string, error) {
	if override != nil {
		return *override, nil
	}

	token, err := d.storage.Get()
	if err != nil {
		return "", fmt.Errorf("read stored token: %w", err)
	}

	return token, nil
}

func (d *Dispatcher) expireSession(ctx context.Context) error {
	_ = d.storage.Remove()
	d.logger.Warn(ctx, "session expired, token cleared")

	if d.onSessionExpired != nil {
		d.onSessionExpired(ctx)
	}

	return auth.ErrSessionExpired
}
