package streamlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(LevelWarn, &buf)

	l.Debug("hidden %d", 1)
	l.Info("also hidden")
	l.Warn("shown %s", "warn")
	l.Error("shown %s", "error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warn")
	assert.Contains(t, out, "shown error")
}

func TestDefaultLogger_WithFieldsAppendsToOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(LevelInfo, &buf)
	l.WithField("group", 3).Info("processed")

	assert.True(t, strings.Contains(buf.String(), "group=3"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelInfo, ParseLogLevel("unrecognized"))
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	var n NullLogger
	n.Info("noop")
	assert.Same(t, &n, n.WithField("k", "v"))
}

func TestGlobalLogger_SetAndGet(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	var replacement NullLogger
	SetGlobalLogger(&replacement)
	assert.Same(t, &replacement, GetGlobalLogger())
}
