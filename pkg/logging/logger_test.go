package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the package at a temp log dir and a buffer console,
// restoring global state afterwards.
func setupTestDir(t *testing.T) *bytes.Buffer {
	t.Helper()

	tempDir := t.TempDir()

	origLogDir := logDir
	origInitErr := initErr
	origRunID := runID
	origConsole := console
	origLevel := minLevel
	origFile, origLog := runFile, runLog

	logDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	runID = ""
	runIDOnce = sync.Once{}
	buf := &bytes.Buffer{}
	console = buf
	minLevel = LevelDebug
	runFile, runLog = nil, nil

	t.Cleanup(func() {
		_ = Close()
		runFile, runLog = origFile, origLog
		logDir = origLogDir
		initErr = origInitErr
		initOnce = sync.Once{}
		runID = origRunID
		runIDOnce = sync.Once{}
		console = origConsole
		minLevel = origLevel
	})
	return buf
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("watch")
	require.NoError(t, err)

	assert.Equal(t, "watch", logger.component)
	assert.NotEmpty(t, logger.RunID())
	require.NotEmpty(t, logger.LogPath())

	_, err = os.Stat(logger.LogPath())
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(filepath.Base(logger.LogPath()), "-prioritywatch.log"))
}

func TestLoggerFormatting(t *testing.T) {
	out := setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)

	logger.Debugf("Debug message")
	logger.Infof("Info message %d", 7)
	logger.Warnf("Warning message")
	logger.Errorf("Error message")

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	for _, pattern := range []string{
		"[test] [DEBUG] Debug message",
		"[test] [INFO] Info message 7",
		"[test] [WARN] Warning message",
		"[test] [ERROR] Error message",
	} {
		assert.Contains(t, string(content), pattern)
	}

	assert.Contains(t, out.String(), "[test] Info message 7")
	assert.Contains(t, out.String(), "[test] Error message")
}

func TestLevelFiltering(t *testing.T) {
	out := setupTestDir(t)
	SetLevel(LevelWarn)

	logger, err := NewLogger("filter")
	require.NoError(t, err)

	logger.Debugf("hidden debug")
	logger.Infof("hidden info")
	logger.Warnf("shown warning")

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), "shown warning")
	assert.NotContains(t, out.String(), "hidden")
}

func TestComponentsShareRunFile(t *testing.T) {
	setupTestDir(t)

	a, err := NewLogger("browser")
	require.NoError(t, err)
	b, err := NewLogger("notify")
	require.NoError(t, err)

	assert.Equal(t, a.RunID(), b.RunID())
	assert.Equal(t, a.LogPath(), b.LogPath())
	assert.Equal(t, getRunID(), a.RunID())

	a.Infof("from browser")
	b.Infof("from notify")

	content, err := os.ReadFile(a.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[browser] [INFO] from browser")
	assert.Contains(t, string(content), "[notify] [INFO] from notify")
}

func TestComponentsShareOneHandle(t *testing.T) {
	setupTestDir(t)

	_, err := NewLogger("main")
	require.NoError(t, err)
	first := runFile
	require.NotNil(t, first)

	for _, component := range []string{"browser", "watch", "notify"} {
		_, err := NewLogger(component)
		require.NoError(t, err)
		assert.Same(t, first, runFile, "%s reopened the run file", component)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClose(t *testing.T) {
	out := setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)
	logger.Infof("before close")

	assert.NoError(t, Close())
	assert.Nil(t, runFile)
	assert.NoError(t, Close())

	assert.NotPanics(t, func() { logger.Infof("after close") })
	assert.Contains(t, out.String(), "after close")

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "before close")
	assert.NotContains(t, string(content), "after close")
}

func TestLogDirectory(t *testing.T) {
	setupTestDir(t)

	dir, err := logDirectory()
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
