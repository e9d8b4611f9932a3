package sandbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthReportsCounts(t *testing.T) {
	c := newClient(t)
	c.register("u@x.y")
	c.do(http.MethodPost, "/accounts", map[string]any{"name": "Main", "type": "CURRENT", "balance": 5})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	st := decode[Status](t, rec)
	assert.Equal(t, "healthy", st.Status)
	assert.Equal(t, ServiceName, st.Service)
	assert.Equal(t, 2, st.Users, "admin is seeded")
	assert.Equal(t, 1, st.Sessions)
	assert.Equal(t, 1, st.Accounts)
	assert.Zero(t, st.Transactions)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New().Run(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReportsListenError(t *testing.T) {
	err := New().Run(context.Background(), "127.0.0.1:-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sandbox http server")
}
