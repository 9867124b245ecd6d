package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUIHandler_KeepsRecentRecords(t *testing.T) {
	var buf bytes.Buffer
	h := NewTUIHandler(slog.NewTextHandler(&buf, nil), nil)
	logger := slog.New(h)

	for i := range MaxRecords + 5 {
		logger.Info(fmt.Sprintf("message %d", i))
	}

	logs := h.Logs()
	require.Len(t, logs, MaxRecords)
	assert.Equal(t, "message 5", logs[0].Message)
	assert.Equal(t, fmt.Sprintf("message %d", MaxRecords+4), logs[len(logs)-1].Message)
	assert.Contains(t, buf.String(), "message 0", "records still reach the wrapped handler")
}

func TestTUIHandler_ForwardsToChannel(t *testing.T) {
	ch := make(chan tea.Msg, 1)
	h := NewTUIHandler(slog.NewTextHandler(&bytes.Buffer{}, nil), nil)
	h.SetOutput(ch)

	logger := slog.New(h).With("school", "s1")
	logger.Warn("first")
	logger.Warn("dropped when the channel is full")

	msg := <-ch
	rec, ok := msg.(LogMsg)
	require.True(t, ok)
	assert.Equal(t, "first", rec.Message)
	assert.Len(t, h.Logs(), 2, "derived loggers share the record buffer")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	handler, closer, err := OpenFile(path, slog.LevelDebug)
	require.NoError(t, err)
	slog.New(handler).Debug("fresh")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "msg=fresh")

	_, closer, err = OpenFile("", slog.LevelInfo)
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}
