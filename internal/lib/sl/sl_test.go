package sl_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.Panics(t, func() {
		_ = sl.Err(nil)
	})
}

func TestCritical_WritesCriticalLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{ReplaceAttr: sl.ReplaceLevel}))

	sl.Critical(log, "wrong secret key", slog.Int64("tool_id", 1))

	assert.Contains(t, buf.String(), "level=CRITICAL")
	assert.Contains(t, buf.String(), "tool_id=1")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, sl.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, sl.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, sl.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, sl.ParseLevel(""))
}
