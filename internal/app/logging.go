package app

import (
	"log/slog"

	"github.com/treykane/logicalroot/internal/logging"
)

// appLog is the package-level structured logger for the app package.
//
// Output goes wherever the logging package sends it (a log file when one is
// configured) so it never interleaves with the Bubble Tea frame on stdout.
var appLog = logging.New("app")

// setStatusError updates the status bar with a user-facing error message and
// simultaneously logs a structured error entry with full context.
//
// The status parameter is displayed verbatim in the UI, while the err and any
// additional key-value attrs are included only in the log entry:
//
//	m.setStatusError("Export failed", err, "format", format)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
