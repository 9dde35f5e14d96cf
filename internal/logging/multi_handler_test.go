package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureHandler records what it is asked to handle, gated at a level.
type captureHandler struct {
	level   slog.Level
	records []slog.Record
}

func (h *captureHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *captureHandler) Handle(_ context.Context, record slog.Record) error {
	h.records = append(h.records, record)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerRespectsPerHandlerLevels(t *testing.T) {
	all := &captureHandler{level: slog.LevelInfo}
	errorsOnly := &captureHandler{level: slog.LevelError}
	logger := slog.New(NewMultiHandler(all, errorsOnly))

	logger.Info("menu saved")
	logger.Error("vote write failed")

	require.Len(t, all.records, 2)
	require.Len(t, errorsOnly.records, 1)
	assert.Equal(t, "vote write failed", errorsOnly.records[0].Message)
}

func TestMultiHandlerEnabled(t *testing.T) {
	m := NewMultiHandler(
		&captureHandler{level: slog.LevelWarn},
		&captureHandler{level: slog.LevelError},
	)
	ctx := context.Background()
	assert.False(t, m.Enabled(ctx, slog.LevelInfo))
	assert.True(t, m.Enabled(ctx, slog.LevelWarn))
}
