package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// slogLevels maps reporter log levels onto the level of the stderr handler.
// Phase tracing is logged at debug level and therefore only reaches the log
// file.
var slogLevels = map[int]slog.Level{
	LogLevelSilent:  slog.LevelError + 4,
	LogLevelError:   slog.LevelError,
	LogLevelWarn:    slog.LevelWarn,
	LogLevelVerbose: slog.LevelInfo,
}

// NewLogger creates the structured logger used to trace compilation.  Records
// fan out to stderr (filtered by the log level) and, if logFile is not empty,
// to a JSON log file which receives every record.  The returned function
// closes the log file.
func NewLogger(logLevel int, logFile string) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	level.Set(slogLevels[logLevel])

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}

	closer := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}

		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// NewWriterLogger creates a logger writing text records of every level to w.
func NewWriterLogger(w io.Writer) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slogmulti.Fanout())
}
