package server

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(ctx context.Context, t *testing.T, args ...string) error {
	t.Helper()

	cmd := NewCommand()
	cmd.Writer = &bytes.Buffer{}
	cmd.ErrWriter = &bytes.Buffer{}

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	argv := append([]string{"server", "--config", missing}, args...)

	return cmd.Run(ctx, argv)
}

func TestServer_ShutdownOnContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := run(ctx, t, "-a", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestServer_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = run(ctx, t, "-a", ln.Addr().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen "+ln.Addr().String())
	assert.Contains(t, err.Error(), "address already in use")
}

func TestServer_HistoryUnreachable(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://127.0.0.1:1/0")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := run(ctx, t, "-a", "127.0.0.1:0", "--redis-disabled=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open history")
}
