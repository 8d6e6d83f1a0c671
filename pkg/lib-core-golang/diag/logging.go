package diag

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// MsgData is a structured payload attached to a log message
type MsgData map[string]interface{}

// Logger is a leveled logger. Messages are printf style formatted
// if args are provided
type Logger interface {
	Error(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Debug(ctx context.Context, msg string, args ...interface{})

	WithError(err error) Logger
	WithData(data MsgData) Logger
}

type logrusLogger struct {
	entry *logrus.Entry
}

func newLogrusLogger(out io.Writer) *logrusLogger {
	target := &logrus.Logger{
		Out:       out,
		Formatter: new(logrus.JSONFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.DebugLevel,
	}
	return &logrusLogger{entry: logrus.NewEntry(target).WithField("v", 1)}
}

func (l *logrusLogger) child(entry *logrus.Entry) *logrusLogger {
	return &logrusLogger{entry: entry}
}

func (l *logrusLogger) log(ctx context.Context, level logrus.Level, msg string, args ...interface{}) {
	entry := l.entry
	if requestID := RequestIDValue(ctx); requestID != "" {
		entry = entry.WithField("context", map[string]string{"requestID": requestID})
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	entry.Log(level, msg)
}

func (l *logrusLogger) WithError(err error) Logger {
	return l.child(l.entry.WithError(err))
}

func (l *logrusLogger) WithData(data MsgData) Logger {
	return l.child(l.entry.WithField("msgData", data))
}

func (l *logrusLogger) withTime(t time.Time) *logrusLogger {
	return l.child(l.entry.WithTime(t))
}

func (l *logrusLogger) withField(key string, value interface{}) *logrusLogger {
	return l.child(l.entry.WithField(key, value))
}

func (l *logrusLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, logrus.ErrorLevel, msg, args...)
}

func (l *logrusLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, logrus.WarnLevel, msg, args...)
}

func (l *logrusLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, logrus.InfoLevel, msg, args...)
}

func (l *logrusLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, logrus.DebugLevel, msg, args...)
}

// LoggingSystemSetup is used to tune the root logger during bootstrap
type LoggingSystemSetup interface {
	SetLogMode(mode string)
	SetLogLevel(level string)
}

type loggingSystem struct {
	root        *logrusLogger
	projectRoot string
}

/*
SetLogMode switches output of the root logger. Possible values:
- json (default)
- text (human friendly, used by cli tools)
- test (json written to test.log in the project root)
*/
func (s *loggingSystem) SetLogMode(mode string) {
	target := s.root.entry.Logger
	switch mode {
	case "json":
		target.Formatter = new(logrus.JSONFormatter)
	case "text":
		target.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "test":
		path := filepath.Join(s.projectRoot, "test.log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
		if err != nil {
			panic(err)
		}
		target.Out = file
	default:
		panic(fmt.Sprintf("Unexpected log mode: %v", mode))
	}
}

/*
SetLogLevel sets min level to output. Possible values:
- error
- warn
- info
- debug
*/
func (s *loggingSystem) SetLogLevel(level string) {
	logrusLevel, err := logrus.ParseLevel(level)
	if err != nil {
		panic(err)
	}
	s.root.entry.Logger.SetLevel(logrusLevel)
}

var defaultLoggingSystem loggingSystem

func init() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("Can not get project root")
	}
	defaultLoggingSystem.projectRoot = filepath.Join(file, "..", "..", "..", "..")
	defaultLoggingSystem.root = newLogrusLogger(os.Stdout)

	if flag.Lookup("test.v") == nil && !strings.HasSuffix(os.Args[0], ".test") {
		defaultLoggingSystem.SetLogMode("json")
	} else {
		defaultLoggingSystem.SetLogMode("test")
	}
}

// SetupLoggingSystem tunes the root logger that is a base for all other loggers.
// Should be called once during app bootstrap
func SetupLoggingSystem(setup ...func(LoggingSystemSetup)) {
	for _, setupFn := range setup {
		setupFn(&defaultLoggingSystem)
	}
}

// CreateLogger returns a logger derived from the root logger
// and tagged with the caller package. Suitable for a package wide logger
func CreateLogger() Logger {
	loggerName := "unknown"
	if _, file, _, ok := runtime.Caller(1); ok {
		if rel, err := filepath.Rel(defaultLoggingSystem.projectRoot, filepath.Dir(file)); err == nil {
			loggerName = rel
		}
	}
	return defaultLoggingSystem.root.withField("package", loggerName)
}
