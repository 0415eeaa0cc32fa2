// Package logger configures the process-wide logrus logger. The log
// level defaults to info and can be overridden by the LOG_LEVEL
// environment variable or a config file.
package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields type alias for logrus.Fields
type Fields = logrus.Fields

// Configure sets up the standard logger with the provided level and,
// optionally, a rotating log file. An empty file keeps stderr output.
func Configure(level, file string) error {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if level == "" {
		level = "info"
	}

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level '%s'", level)
	}
	logrus.SetLevel(lvl)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if file != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename: file,
			MaxSize:  100, // megabytes
			MaxAge:   30,  // days
			Compress: true,
		})
	}

	return nil
}

// WithComponent returns an entry tagged with the originating component.
func WithComponent(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
