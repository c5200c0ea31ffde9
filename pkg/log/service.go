package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"catalogadmin/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerService interface {
	Debug(msg string, args ...any)

	Info(msg string, args ...any)

	Warn(msg string, args ...any)

	Error(msg string, args ...any)

	Fatal(msg string, args ...any)

	Named(name string) LoggerService

	Writer() io.Writer
}

type loggerService struct {
	cfg    config.LogConfig
	name   string
	level  LogLevel
	writer io.Writer
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

func NewLoggerService(name string, cfg config.LogConfig) LoggerService {
	impl := &loggerService{
		cfg:   cfg,
		name:  name,
		level: Parse(cfg.Level),
	}

	impl.setupWriter()
	return impl
}

// NewWithWriter builds a logger that writes to w only. Colors are disabled.
func NewWithWriter(name string, cfg config.LogConfig, w io.Writer) LoggerService {
	cfg.NoColor = true
	return &loggerService{
		cfg:    cfg,
		name:   name,
		level:  Parse(cfg.Level),
		writer: w,
	}
}

func (l *loggerService) setupWriter() {
	var writers []io.Writer

	if !l.cfg.NoTerminal {
		writers = append(writers, os.Stdout)
	}

	if l.cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   l.cfg.File,
			MaxSize:    l.cfg.Rotation.MaxSize,
			MaxBackups: l.cfg.Rotation.MaxBackups,
			MaxAge:     l.cfg.Rotation.MaxAge,
			Compress:   l.cfg.Rotation.Compress,
		})
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	l.writer = io.MultiWriter(writers...)
}

func (l *loggerService) log(level LogLevel, msg string, args ...any) {
	if level < l.level {
		return
	}

	timeFormat := l.cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	timestamp := time.Now().Format(timeFormat)
	formatted := fmt.Sprintf(msg, args...)

	if l.cfg.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   l.name,
			Message:   formatted,
		}
		line, _ := json.Marshal(entry)
		fmt.Fprintf(l.writer, "%s\n", line)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.name)
		}

		if !l.cfg.NoTerminal && !l.cfg.NoColor {
			fmt.Fprintf(l.writer, "%s%s %s\033[0m\n", Color(level), prefix, formatted)
		} else {
			fmt.Fprintf(l.writer, "%s %s\n", prefix, formatted)
		}
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *loggerService) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *loggerService) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *loggerService) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *loggerService) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *loggerService) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

func (l *loggerService) Named(name string) LoggerService {
	full := name
	if l.name != "" {
		full = fmt.Sprintf("%s/%s", l.name, name)
	}
	return &loggerService{
		cfg:    l.cfg,
		name:   full,
		level:  l.level,
		writer: l.writer,
	}
}

// Writer exposes the underlying sink so the HTTP access log shares it.
func (l *loggerService) Writer() io.Writer {
	return l.writer
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() LoggerService {
	return NewWithWriter("", config.LogConfig{Level: "FATAL"}, io.Discard)
}
