// Package logger holds the process-wide structured logger. Every call is a
// no-op until Init runs, so library packages and tests can log freely.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/meditracker/internal/constants"
)

const (
	logDirName    = "logs"
	maxLogSizeMB  = 5
	maxLogFiles   = 3
	maxLogAgeDays = 28
)

var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
}

// FilePath is the log file Init writes for configDir
func FilePath(configDir string) string {
	return filepath.Join(configDir, logDirName, constants.AppName+".log")
}

// Init points the logger at a rotated file under ConfigDir. Debug lowers the
// level and mirrors output to stderr; otherwise the terminal is left to the TUI.
func Init(cfg Config) error {
	path := FilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogFiles,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          constants.AppName,
		Level:           log.WarnLevel,
	}
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, out)
		opts.Level = log.DebugLevel
	}

	Logger = log.NewWithOptions(out, opts)
	return nil
}

func Debug(msg string, keyvals ...any) { emit(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...any)  { emit(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...any)  { emit(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...any) { emit(log.ErrorLevel, msg, keyvals) }

func emit(level log.Level, msg string, keyvals []any) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}
