package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomdesk/dashboard-client/pkg/httpclient"
)

func TestClient_RequestID(t *testing.T) {
	var gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := httpclient.NewClient(
		httpclient.WithBaseURL(server.URL),
		httpclient.WithRequestID("X-Request-ID"),
	)

	resp, err := client.NewRequest(context.Background()).Execute(http.MethodGet, "/ping")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err)
}

func TestClient_WithMergesOptions(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Custom")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	base := httpclient.NewClient(httpclient.WithBaseURL(server.URL))
	derived := base.With(httpclient.WithRequestHeader("X-Custom", "value"))

	_, err := derived.NewRequest(context.Background()).Execute(http.MethodGet, "/ping")
	require.NoError(t, err)
	assert.Equal(t, "value", gotHeader)

	_, err = base.NewRequest(context.Background()).Execute(http.MethodGet, "/ping")
	require.NoError(t, err)
	assert.Empty(t, gotHeader)
}
