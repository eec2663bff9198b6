package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCleansUpOnServerError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()
	mr := miniredis.RunT(t)

	t.Setenv("SAVA_API_BASE_URL", upstream.URL)
	t.Setenv("SAVA_REDIS_ADDR", mr.Addr())
	t.Setenv("SAVA_PRETTY_LOG", "false")
	t.Setenv("SAVA_LOG_LEVEL", "error")
	t.Setenv("SAVA_REFRESH_INTERVAL", "1h")
	// An unbindable address makes the listener fail immediately.
	t.Setenv("SAVA_LISTEN_PORT", "this-is-not-an-address")

	a := New()
	err := a.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server error")

	// The error path releases resources like the graceful path does.
	assert.Error(t, a.redisClient.Ping(context.Background()).Err(),
		"redis client should be closed after Run returns")
}
