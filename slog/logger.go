package slog

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/fwojciec/docassist"
)

// NewLogger returns a logger writing human readable lines to w at the named
// level (debug, info, warn, error).
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, docassist.Errorf(docassist.EINVALID, "invalid log level %q", level)
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
	return slog.New(handler), nil
}
