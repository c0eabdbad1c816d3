// Package release drives the external declarative release manager
// (helmfile) and reports on the Helm releases it installed. The
// orchestrator never templates or diffs individual chart resources itself.
package release

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Helmfile invokes the helmfile binary against a declared release file.
type Helmfile struct {
	// Binary is the helmfile executable name or path.
	Binary string

	// File is the path to the helmfile declaring the bootstrap releases.
	File string

	// Environment selects a helmfile environment, empty for the default.
	Environment string

	log logrus.FieldLogger
	run func(cmd *exec.Cmd) error
}

// NewHelmfile creates a Helmfile runner for the given release file.
func NewHelmfile(file, environment string, log logrus.FieldLogger) *Helmfile {
	return &Helmfile{
		Binary:      "helmfile",
		File:        file,
		Environment: environment,
		log:         log,
		run:         func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// Apply applies all declared releases. Diff and secret values are
// suppressed in the output so decrypted material never reaches the logs.
// A non-zero exit fails the whole bootstrap run.
func (h *Helmfile) Apply(ctx context.Context) error {
	args := []string{"--file", h.File}
	if h.Environment != "" {
		args = append(args, "--environment", h.Environment)
	}
	args = append(args, "apply", "--suppress-diff", "--suppress-secrets")

	// #nosec G204 - binary and arguments come from operator-supplied configuration
	cmd := exec.CommandContext(ctx, h.Binary, args...)

	out := newLineWriter(h.log.WithField("tool", "helmfile"))
	defer out.Flush()
	cmd.Stdout = out
	cmd.Stderr = out

	h.log.WithFields(logrus.Fields{
		"file":        h.File,
		"environment": h.Environment,
	}).Info("applying declared releases")

	if err := h.run(cmd); err != nil {
		return fmt.Errorf("helmfile apply failed: %w", err)
	}
	return nil
}

// lineWriter forwards complete output lines to the logger so external tool
// output shows up as ordinary log entries.
type lineWriter struct {
	log logrus.FieldLogger
	buf bytes.Buffer
}

func newLineWriter(log logrus.FieldLogger) *lineWriter {
	return &lineWriter{log: log}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line: keep it buffered until more output arrives.
			w.buf.WriteString(line)
			break
		}
		if trimmed := line[:len(line)-1]; trimmed != "" {
			w.log.Info(trimmed)
		}
	}
	return len(p), nil
}

// Flush logs any trailing output that did not end in a newline.
func (w *lineWriter) Flush() {
	if rest := w.buf.String(); rest != "" {
		w.log.Info(rest)
		w.buf.Reset()
	}
}
