package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "helix"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	verboseFlagName     = "verbose"
	runParallelFlagName = "parallel"
	widthFlagName       = "width"
	heightFlagName      = "height"

	runParallelConfigKey = "run.parallel"
	renderWidthKey       = "render.width"
	renderHeightKey      = "render.height"
	vmMaxInstructionsKey = "vm.max_instructions"
	vmSeedKey            = "vm.seed"
	mutateSeedKey        = "mutate.seed"
	traceFormatKey       = "trace.format"

	defaultOutputDir       = ".helix-out"
	defaultRunParallel     = 1
	defaultRenderWidth     = 400
	defaultRenderHeight    = 400
	defaultMaxInstructions = 10000
	defaultTraceFormat     = "json"
	defaultSeed            = 0

	envPrefix = "HELIX"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".helix.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// logStderr is where --verbose mirrors log records.
var logStderr io.Writer = os.Stderr

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultOutputDir)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(renderWidthKey, defaultRenderWidth)
	viper.SetDefault(renderHeightKey, defaultRenderHeight)
	viper.SetDefault(vmMaxInstructionsKey, defaultMaxInstructions)
	viper.SetDefault(vmSeedKey, defaultSeed)
	viper.SetDefault(mutateSeedKey, defaultSeed)
	viper.SetDefault(traceFormatKey, defaultTraceFormat)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return
		}

		slog.Warn("failed to read config", "file", configFileName, "error", err)
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info to the rotating log file; if verbose is true it
// logs at Debug and mirrors every record to stderr.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(logWriter, &slog.HandlerOptions{
			AddSource: true,
			Level:     logLevel,
		}),
	}

	if verbose {
		handlers = append(handlers, slog.NewTextHandler(logStderr, &slog.HandlerOptions{Level: logLevel}))
	}

	globalLogger = slog.New(slogmulti.Fanout(handlers...))
	slog.SetDefault(globalLogger)
}
