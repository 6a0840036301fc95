package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelPulse/pkg/config"
	xhttp "TravelPulse/pkg/http"
	applogger "TravelPulse/pkg/logger"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestApp_RunServesUntilCancelled(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	port := freePort(t)
	reg := prometheus.NewRegistry()
	srv := xhttp.NewServer(nil,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(port),
		xhttp.WithMetrics(reg, reg, "/metrics"),
	)
	app := New(cfg, applogger.Nop(), srv)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	url := "http://" + srv.Addr() + "/metrics"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_RunReportsListenError(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	reg := prometheus.NewRegistry()
	srv := xhttp.NewServer(nil,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(ln.Addr().(*net.TCPAddr).Port),
		xhttp.WithMetrics(reg, reg, ""),
	)

	select {
	case err := <-runAsync(New(cfg, applogger.Nop(), srv)):
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("listen error not reported")
	}
}

func runAsync(a *App) <-chan error {
	ch := make(chan error, 1)
	go func() { ch <- a.RunContext(context.Background()) }()
	return ch
}
