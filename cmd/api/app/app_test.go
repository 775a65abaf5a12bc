package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := lis.Addr().(*net.TCPAddr).Port
	require.NoError(t, lis.Close())
	return fmt.Sprint(port)
}

func TestApp_RunUntilCanceled(t *testing.T) {
	port := freePort(t)
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("HTTP_PORT", port)
	t.Setenv("DB_SQLITE_PATH", filepath.Join(t.TempDir(), "users.db"))
	t.Setenv("LOG_OUTPUT_PATH", "stderr")

	ctx, cancel := context.WithCancel(context.Background())
	a, err := New(ctx)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + port + "/")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("app did not shut down")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("DB_DRIVER", "oracle")

	_, err := New(context.Background())
	assert.ErrorContains(t, err, "config validation failed")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "")
	assert.Equal(t, "development", getEnvironment())

	t.Setenv("APP_ENV", "production")
	assert.Equal(t, "production", getEnvironment())
}
