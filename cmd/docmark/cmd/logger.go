package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// newLogger logs as text to stderr and, when logFile is set, as JSON to
// that file. The returned closer is nil when no file was opened.
func newLogger(stderr io.Writer, level slog.Level, logFile string) (*slog.Logger, io.Closer, error) {
	lv := new(slog.LevelVar)
	lv.Set(level)

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lv}),
	}

	var closer io.Closer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lv}))
		closer = f
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
