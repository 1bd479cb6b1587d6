// Package logging constructs the process-wide logger.
package logging

import (
	log "github.com/sirupsen/logrus"
)

// New builds a logger at the given level. Unknown level names fall back to
// info.
func New(level string) *log.Logger {
	logger := log.New()

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	return logger
}
