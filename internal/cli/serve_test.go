package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_StopsWhenContextDone(t *testing.T) {
	t.Setenv("TODOD_LOG_LEVEL", "error")
	dbPath := filepath.Join(t.TempDir(), "todos.db")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0", "--db", dbPath})
	require.NoError(t, cmd.ExecuteContext(ctx))

	// The database was created and closed cleanly.
	out, err := execute(t, "migrate", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "existing database")
}

func TestServe_BadAddress(t *testing.T) {
	_, err := execute(t, "serve", "--addr", "localhost", "--db", filepath.Join(t.TempDir(), "todos.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "server.addr")
}

func TestServe_RejectsArgs(t *testing.T) {
	_, err := execute(t, "serve", "extra")
	require.Error(t, err)
}
