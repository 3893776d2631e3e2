package api

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ServesAndShutsDown(t *testing.T) {
	srv := NewServer(ServerConfig{
		ListenAddr: "127.0.0.1:0",
		Handler:    NewRouter(NewHandler(&fakeSender{}, "")),
	})
	assert.Empty(t, srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe(ctx)
	}()

	select {
	case <-srv.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ListenError(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerConfig{ListenAddr: "invalid-address", Handler: http.NotFoundHandler()})
	err := srv.ListenAndServe(context.Background())
	assert.Error(t, err)
}
