package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/procctl/internal/logger"
)

func TestGetLogPath_CustomDir(t *testing.T) {
	tmpDir := t.TempDir()

	path := logger.GetLogPath(logger.LoggerOptions{LogDir: tmpDir})
	assert.Equal(t, filepath.Join(tmpDir, "procctl.log"), path)
}

func TestGetLogPath_LocalAppData(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LOCALAPPDATA", tmpDir)

	path := logger.GetLogPath(logger.LoggerOptions{})
	assert.Equal(t, filepath.Join(tmpDir, "procctl", "procctl.log"), path)
}

func TestGetLogPath_FallbackToUserProfile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LOCALAPPDATA", "")
	t.Setenv("USERPROFILE", tmpDir)

	path := logger.GetLogPath(logger.LoggerOptions{})
	assert.Equal(t, filepath.Join(tmpDir, "AppData", "Local", "procctl", "procctl.log"), path)
}

func TestNewLogger_CreatesLogDirectory(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "nested", "logs")

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: logDir, Console: &bytes.Buffer{}})
	require.NoError(t, err)
	defer log.Close()

	assert.DirExists(t, logDir)
	assert.Equal(t, filepath.Join(logDir, "procctl.log"), log.GetLogPath())
}

func TestLogger_WritesToFile(t *testing.T) {
	logDir := t.TempDir()

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: logDir, Console: &bytes.Buffer{}})
	require.NoError(t, err)

	log.Debug("resolved chain", "address", "0x1000")
	log.Close()

	data, err := os.ReadFile(log.GetLogPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "resolved chain")
	assert.Contains(t, string(data), "address=0x1000")
}

func TestConsole_HidesDebugUnlessVerbose(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "quiet", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var console bytes.Buffer

			log, err := logger.NewLogger(logger.LoggerOptions{
				LogDir:  t.TempDir(),
				Console: &console,
				Verbose: tt.verbose,
				NoColor: true,
			})
			require.NoError(t, err)
			defer log.Close()

			log.Debug("debug line")
			log.Info("info line")

			assert.Contains(t, console.String(), "info line")
			if tt.wantDebug {
				assert.Contains(t, console.String(), "[DEBUG] debug line")
			} else {
				assert.NotContains(t, console.String(), "debug line")
			}
		})
	}
}

func TestConsole_Prefixes(t *testing.T) {
	var console bytes.Buffer

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: t.TempDir(), Console: &console, NoColor: true})
	require.NoError(t, err)
	defer log.Close()

	log.Warn("focus lost", "hwnd", 42)
	log.Error("read failed")

	assert.Contains(t, console.String(), "WARNING: focus lost hwnd=42\n")
	assert.Contains(t, console.String(), "ERROR: read failed\n")
}

func TestNoOpLogger(t *testing.T) {
	log := logger.NewNoOpLogger()

	assert.NotPanics(t, func() {
		log.Debug("x")
		log.Info("x")
		log.Warn("x")
		log.Error("x")
		log.Close()
	})
	assert.Empty(t, log.GetLogPath())
}

func TestConsole_QuotesValuesWithSpaces(t *testing.T) {
	var console bytes.Buffer

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: t.TempDir(), Console: &console, NoColor: true})
	require.NoError(t, err)
	defer log.Close()

	log.Info("Window focused", "title", "Game Window", "attempt", 1)

	assert.Equal(t, "Window focused title=\"Game Window\" attempt=1\n", console.String())
}

func TestConsole_ColorsPrefixes(t *testing.T) {
	var console bytes.Buffer

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: t.TempDir(), Console: &console})
	require.NoError(t, err)
	defer log.Close()

	log.Error("read failed")

	assert.Contains(t, console.String(), "\x1b[")
	assert.Contains(t, console.String(), "ERROR: ")
	assert.Contains(t, console.String(), "read failed\n")
}

func TestLogger_DebugReachesFileWhenQuiet(t *testing.T) {
	var console bytes.Buffer

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: t.TempDir(), Console: &console})
	require.NoError(t, err)

	log.Debug("hidden from console")
	log.Close()

	data, err := os.ReadFile(log.GetLogPath())
	require.NoError(t, err)

	assert.Contains(t, string(data), "hidden from console")
	assert.Empty(t, console.String())
}
