package logger

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	defer InitWithWriter("info", io.Discard)

	var buf bytes.Buffer
	InitWithWriter("warn", &buf)

	Debug.Printf("hidden debug")
	Info.Printf("hidden info")
	Warn.Printf("shown warn")
	Error.Printf("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warn")
	assert.Contains(t, out, "shown error")
	assert.Equal(t, "warn", Level())
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	defer InitWithWriter("info", io.Discard)

	var buf bytes.Buffer
	InitWithWriter("chatty", &buf)

	Info.Printf("info line")
	Debug.Printf("debug line")

	assert.Contains(t, buf.String(), "info line")
	assert.NotContains(t, buf.String(), "debug line")
}

func TestInitWithConfigCreatesFile(t *testing.T) {
	defer InitWithWriter("info", io.Discard)

	path := filepath.Join(t.TempDir(), "bsm.log")
	require.NoError(t, InitWithConfig("debug", path))
	assert.FileExists(t, path)

	assert.Error(t, InitWithConfig("debug", filepath.Join(t.TempDir(), "missing", "bsm.log")))
}
