package textgrid

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanlewis/textgrid/internal/layout"
	"github.com/ryanlewis/textgrid/internal/segment"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	SetLogger(nil)
	require.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestSetLoggerReceivesRecords(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	c := NewLayoutCache(1)
	_, err := c.Build("HELLO", cacheGrid, cacheWrap, &layout.Options{Tokenizer: segment.Degraded})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "layout cache bypassed")
}
