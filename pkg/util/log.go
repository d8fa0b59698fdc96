package util

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger. Builders log at debug with a device or
// component field; the CLI lowers the level with -v.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
		PadLevelText:    true,
	})
	return l
}

// SetLogLevel takes a logrus level name, or "quiet" for errors only.
func SetLogLevel(level string) error {
	if level == "quiet" {
		Logger.SetLevel(logrus.ErrorLevel)
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	Logger.SetLevel(lvl)
	return nil
}

func SetLogOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetJSONFormat switches to one JSON object per line, for log shippers.
func SetJSONFormat() {
	Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
}

func WithField(key string, value any) *logrus.Entry {
	return Logger.WithField(key, value)
}

// WithDevice scopes entries to one generated device.
func WithDevice(device string) *logrus.Entry {
	return Logger.WithField("device", device)
}

// WithComponent scopes entries to one stage (topology, tenant, store, ...).
func WithComponent(component string) *logrus.Entry {
	return Logger.WithField("component", component)
}

// Warnf is for problems the user should see without -v.
func Warnf(format string, args ...any) {
	Logger.Warnf(format, args...)
}
