// Package logger configures structured logging and derives per-component
// log entries.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. The environment comes from config
// rather than the process environment; production gets JSON lines, everything
// else colored text.
func NewLogger(logLevel, environment string) *logrus.Logger {
	log := logrus.New()

	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return log
}

// WithComponent derives an entry tagged with the subsystem it logs for, so
// lines from the scheduler, health server, and pipelines can be filtered
// apart in aggregated output
func WithComponent(base *logrus.Logger, component string) *logrus.Entry {
	if base == nil {
		base = logrus.New()
	}
	return base.WithField("component", component)
}
