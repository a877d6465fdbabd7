package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/pkg/config"
	paywallmocks "github.com/goran-ethernal/ChainPaywall/pkg/paywall/mocks"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Parallel()

	cfg := &config.APIConfig{
		Enabled:       true,
		ListenAddress: "127.0.0.1:9090",
		ReadTimeout:   common.NewDuration(5 * time.Second),
		WriteTimeout:  common.NewDuration(10 * time.Second),
		IdleTimeout:   common.NewDuration(2 * time.Minute),
		CORS: config.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"https://frames.example.com"},
		},
	}

	server := NewServer(cfg, paywallmocks.NewService(t), nil, logger.NewNopLogger())

	require.NotNil(t, server.handler)
	require.Equal(t, "127.0.0.1:9090", server.server.Addr)
	require.Equal(t, 5*time.Second, server.server.ReadTimeout)
	require.Equal(t, 10*time.Second, server.server.WriteTimeout)
	require.Equal(t, 2*time.Minute, server.server.IdleTimeout)
}

func TestServer_CORSOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	for _, enabled := range []bool{true, false} {
		cfg := testAPIConfig()
		cfg.CORS = config.CORSConfig{Enabled: enabled, AllowedOrigins: []string{"*"}}

		server := NewServer(cfg, paywallmocks.NewService(t), nil, logger.NewNopLogger())

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://frames.example.com")

		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)

		if enabled {
			require.Equal(t, "https://frames.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		} else {
			require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		}
	}
}

func TestServer_Start_Disabled(t *testing.T) {
	t.Parallel()

	cfg := testAPIConfig()
	cfg.Enabled = false

	server := NewServer(cfg, paywallmocks.NewService(t), nil, logger.NewNopLogger())

	done := make(chan error, 1)
	go func() { done <- server.Start(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start() did not return when server is disabled")
	}
}

func TestServer_Start_ServesAndShutsDown(t *testing.T) {
	t.Parallel()

	// reserve a free port for the server
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	cfg := testAPIConfig()
	cfg.ListenAddress = addr

	server := NewServer(cfg, paywallmocks.NewService(t), staticStatus{next: 42}, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	url := fmt.Sprintf("http://%s/health", addr)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK && len(body) > 0
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownCtxTimeout + 5*time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_Start_ListenError(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	cfg := testAPIConfig()
	cfg.ListenAddress = listener.Addr().String()

	server := NewServer(cfg, paywallmocks.NewService(t), nil, logger.NewNopLogger())

	err = server.Start(context.Background())
	require.ErrorContains(t, err, "API server error")
}
