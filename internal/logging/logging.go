// Package logging configures the application logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var appLogger = logrus.New()

func init() {
	appLogger.Out = os.Stderr
	appLogger.SetLevel(logrus.InfoLevel)
	appLogger.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
}

// AppLogger returns the shared application logger entry.
func AppLogger() *logrus.Entry {
	return logrus.NewEntry(appLogger)
}

// SetLevel sets the log level, falling back to info on an unknown value.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	appLogger.SetLevel(parsed)
}
