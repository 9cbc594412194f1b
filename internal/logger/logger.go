package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func ParseLevel(level string) Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

type Options struct {
	Path       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger writes leveled lines to stdout and a size-rotated file.
type Logger struct {
	out   io.Writer
	debug *log.Logger
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	level Level
	mu    sync.RWMutex
}

var (
	std  = New(os.Stdout, INFO)
	once sync.Once
)

// Init replaces the package logger with one that also writes to opts.Path.
// Only the first call has an effect.
func Init(opts Options) error {
	var initErr error
	once.Do(func() {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}

		file := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		std = New(io.MultiWriter(os.Stdout, file), ParseLevel(opts.Level))
	})
	return initErr
}

func New(w io.Writer, level Level) *Logger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &Logger{
		out:   w,
		debug: log.New(w, "[DEBUG] ", flags),
		info:  log.New(w, "[INFO] ", flags),
		warn:  log.New(w, "[WARN] ", flags),
		err:   log.New(w, "[ERROR] ", flags),
		level: level,
	}
}

// Default returns the package logger.
func Default() *Logger { return std }

// Writer exposes the underlying sink, e.g. for HTTP access logs.
func (l *Logger) Writer() io.Writer { return l.out }

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) enabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	if l.enabled(DEBUG) {
		l.debug.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Infof(format string, v ...interface{}) {
	if l.enabled(INFO) {
		l.info.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	if l.enabled(WARN) {
		l.warn.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	if l.enabled(ERROR) {
		l.err.Output(2, fmt.Sprintf(format, v...))
	}
}

func Debugf(format string, v ...interface{}) { std.Debugf(format, v...) }
func Infof(format string, v ...interface{})  { std.Infof(format, v...) }
func Warnf(format string, v ...interface{})  { std.Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { std.Errorf(format, v...) }
