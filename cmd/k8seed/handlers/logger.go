// Package handlers implements the command execution logic behind the CLI.
//
// Handlers load configuration, construct the pipeline components, and run
// them. Component constructors are held in package-level variables so tests
// can substitute fakes.
package handlers

import (
	"os"

	isatty "github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// newLogger builds the CLI logger at the configured level. An unknown
// level falls back to info; config validation rejects it before this runs.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	return log
}

// isInteractiveTTY reports whether stdout is an interactive terminal.
func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
