package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "helix", configBaseName)
	assert.Equal(t, "helix.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "parallel", runParallelFlagName)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, "vm.max_instructions", vmMaxInstructionsKey)
	assert.Equal(t, "trace.format", traceFormatKey)
	assert.Equal(t, ".helix-out", defaultOutputDir)
	assert.Equal(t, 1, defaultRunParallel)
	assert.Equal(t, 10000, defaultMaxInstructions)
	assert.Equal(t, "HELIX", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestConfigureLogger_VerboseMirrorsToStderr(t *testing.T) {
	originalDefault := slog.Default()
	originalStderr := logStderr

	t.Cleanup(func() {
		slog.SetDefault(originalDefault)
		logStderr = originalStderr
	})

	var stderr bytes.Buffer
	logStderr = &stderr
	logPath := filepath.Join(t.TempDir(), "helix.log")

	configureLogger(logPath, true)
	slog.Debug("vm run finished", "instructions", 4)

	assert.Contains(t, stderr.String(), "vm run finished")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "instructions=4")
}

func TestConfigureLogger_QuietKeepsStderrClean(t *testing.T) {
	originalDefault := slog.Default()
	originalStderr := logStderr

	t.Cleanup(func() {
		slog.SetDefault(originalDefault)
		logStderr = originalStderr
	})

	var stderr bytes.Buffer
	logStderr = &stderr

	configureLogger(filepath.Join(t.TempDir(), "helix.log"), false)
	slog.Info("genome executed")
	slog.Debug("hidden")

	assert.Empty(t, stderr.String())
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelDebug))
}
