package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/roomdesk/dashboard-client/pkg/log"
	"github.com/roomdesk/dashboard-client/pkg/metric"
)

type (
	ClientOption func(*ClientImpl)

	Client interface {
		NewRequest(ctx context.Context) *resty.Request
		With(opts ...ClientOption) Client
	}

	ClientImpl struct {
		RESTClient *resty.Client
		opts       []ClientOption
	}
)

func NewClient(opts ...ClientOption) Client {
	client := ClientImpl{
		RESTClient: resty.New(),
		opts:       opts,
	}

	for _, opt := range opts {
		opt(&client)
	}

	return client
}

func (c ClientImpl) NewRequest(ctx context.Context) *resty.Request {
	return c.RESTClient.NewRequest().SetContext(ctx)
}

func (c ClientImpl) With(opts ...ClientOption) Client {
	mergedOpts := make([]ClientOption, 0, len(c.opts)+len(opts))
	mergedOpts = append(mergedOpts, c.opts...)
	mergedOpts = append(mergedOpts, opts...)
	return NewClient(mergedOpts...)
}

func WithBaseURL(url string) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.SetBaseURL(url)
	}
}

func WithRequestHeader(name, value string) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.SetHeader(name, value)
	}
}

func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.SetTimeout(timeout)
	}
}

func WithRequestID(headerName string) ClientOption {
	return func(c *ClientImpl) {
		c.RESTClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader(headerName, uuid.NewString())
			return nil
		})
	}
}

func WithRequestLogging(destinationName string, logger log.Logger, infoLevel, errorLevel log.Level) ClientOption {
	const destinationNameLogField = "destinationName"
	return func(c *ClientImpl) {
		c.RESTClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			loggerWithFields := logger.With(log.Fields{
				destinationNameLogField: destinationName,
				"method":                resp.Request.Method,
				"url":                   resp.Request.URL,
				"statusCode":            resp.StatusCode(),
				"durationMs":            resp.Time().Milliseconds(),
			})

			if resp.StatusCode() >= http.StatusInternalServerError {
				loggerWithFields.Log(resp.Request.Context(), errorLevel, "http call completed with internal error")
			} else {
				loggerWithFields.Log(resp.Request.Context(), infoLevel, "http call completed")
			}

			return nil
		})

		c.RESTClient.OnError(func(req *resty.Request, err error) {
			logger.
				With(log.Fields{
					destinationNameLogField: destinationName,
					"method":                req.Method,
					"url":                   req.URL,
				}).
				WithError(err).
				Log(req.Context(), errorLevel, "http call completed with error")
		})
	}
}

func WithRequestMetrics(destinationName string, metrics metric.Metrics) ClientOption {
	return func(c *ClientImpl) {
		if destinationName == "" {
			destinationName = "none"
		}

		c.RESTClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			metrics.With(metric.Labels{
				"destination": destinationName,
				"method":      resp.Request.Method,
				"code":        fmt.Sprintf("%d", resp.StatusCode()),
			}).Duration("http_client_request_duration_seconds", resp.Time())
			return nil
		})
	}
}
