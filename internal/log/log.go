package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxRecords is how many records a TUIHandler keeps for the log view.
const MaxRecords = 50

// TUIHandler is a slog.Handler that keeps recent records and forwards them
// to a tea.Program.
type TUIHandler struct {
	slog.Handler
	state *handlerState
}

// handlerState is shared between a handler and the handlers derived from it
// by WithAttrs and WithGroup.
type handlerState struct {
	mu   sync.Mutex
	ch   chan<- tea.Msg
	logs []slog.Record
}

// NewTUIHandler creates a new TUIHandler wrapping handler.
func NewTUIHandler(handler slog.Handler, ch chan<- tea.Msg) *TUIHandler {
	return &TUIHandler{
		Handler: handler,
		state:   &handlerState{ch: ch},
	}
}

// Handle records r, notifies the TUI and passes r on to the wrapped handler.
func (h *TUIHandler) Handle(ctx context.Context, r slog.Record) error {
	s := h.state
	s.mu.Lock()
	s.logs = append(s.logs, r.Clone())
	if len(s.logs) > MaxRecords {
		s.logs = s.logs[len(s.logs)-MaxRecords:]
	}
	ch := s.ch
	s.mu.Unlock()

	if ch != nil {
		// Never block a backend call on a busy UI.
		select {
		case ch <- LogMsg(r):
		default:
		}
	}

	return h.Handler.Handle(ctx, r)
}

func (h *TUIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TUIHandler{Handler: h.Handler.WithAttrs(attrs), state: h.state}
}

func (h *TUIHandler) WithGroup(name string) slog.Handler {
	return &TUIHandler{Handler: h.Handler.WithGroup(name), state: h.state}
}

// Logs returns a copy of the stored records, oldest first.
func (h *TUIHandler) Logs() []slog.Record {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return slices.Clone(h.state.logs)
}

// LogMsg is a tea.Msg that represents a log message.
type LogMsg slog.Record

// SetOutput sets the output channel for the handler.
func (h *TUIHandler) SetOutput(ch chan<- tea.Msg) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.ch = ch
}

var defaultHandler = NewTUIHandler(slog.NewTextHandler(io.Discard, nil), nil)

// Init installs a TUIHandler wrapping handler as the default logger.
func Init(handler slog.Handler) *slog.Logger {
	defaultHandler = NewTUIHandler(handler, nil)
	logger := slog.New(defaultHandler)
	slog.SetDefault(logger)
	return logger
}

// SetOutput sets the output channel for the default logger.
func SetOutput(ch chan<- tea.Msg) {
	defaultHandler.SetOutput(ch)
}

// Logs returns the stored records of the default logger.
func Logs() []slog.Record {
	return defaultHandler.Logs()
}

// OpenFile truncates path and returns a text handler writing to it. An empty
// path discards output.
func OpenFile(path string, level slog.Level) (slog.Handler, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: level}
	if path == "" {
		return slog.NewTextHandler(io.Discard, opts), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.NewTextHandler(f, opts), f, nil
}
