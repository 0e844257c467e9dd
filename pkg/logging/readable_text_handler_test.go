package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewReadableTextHandler(buf, &ReadableTextHandlerOptions{Level: level, NoTimestamp: true}))
}

func TestHandlerWritesMessageAndAttributes(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)
	logger.Info("Found update", slog.String("extension", "tiles"), slog.Int("count", 2))

	assert.Equal("INFO |Found update|extension=tiles, count=2\n", buf.String())
}

func TestHandlerRespectsLevel(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	assert.Empty(buf.String())

	logger = newTestLogger(&buf, slog.LevelDebug)
	logger.Debug("shown")
	assert.Equal("DEBUG|shown\n", buf.String())
}

func TestHandlerGroupsAndWith(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo).With(slog.String("component", "resolver")).WithGroup("pkg")
	logger.Warn("Duplicate", slog.String("id", "a"), slog.Group("versions", slog.String("local", "1.0.0")))

	assert.Equal("WARN |Duplicate|component=resolver, pkg.id=a, pkg.versions.local=1.0.0\n", buf.String())
}

func TestHandlerWithDoesNotLeakIntoParent(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	parent := newTestLogger(&buf, slog.LevelInfo).With(slog.String("a", "1"))
	_ = parent.With(slog.String("b", "2"))
	parent.Info("msg")

	assert.Equal("INFO |msg|a=1\n", buf.String())
}

func TestHandlerWithInsideGroup(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo).WithGroup("fetch").With(slog.String("endpoint", "github:o/r"))
	logger.Info("Done", slog.Group("", slog.Int("status", 200)), slog.Attr{})

	assert.Equal("INFO |Done|fetch.endpoint=github:o/r, fetch.status=200\n", buf.String())
}
