package http

import (
	"bnrfx/internal/config"
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestStart_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, config.HTTPServer{Port: "0"}, chi.NewRouter())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStart_InvalidPort(t *testing.T) {
	err := Start(context.Background(), config.HTTPServer{Port: "not-a-port"}, chi.NewRouter())
	require.Error(t, err)
}
