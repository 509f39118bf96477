//go:build js && wasm

package dom

import (
	"log/slog"
	"strings"
	"syscall/js"

	"github.com/phanxgames/panzoom"
)

// consoleWriter sends each log line to the browser console, choosing the
// console method from the record's level.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	method := "log"
	switch {
	case strings.Contains(line, "level=ERROR"):
		method = "error"
	case strings.Contains(line, "level=WARN"):
		method = "warn"
	case strings.Contains(line, "level=INFO"):
		method = "info"
	case strings.Contains(line, "level=DEBUG"):
		method = "debug"
	}
	js.Global().Get("console").Call(method, line)
	return len(p), nil
}

// InstallConsoleLogger routes panzoom's logging to the browser console.
func InstallConsoleLogger(level slog.Level) {
	h := slog.NewTextHandler(consoleWriter{}, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	panzoom.SetLogger(slog.New(h))
}
