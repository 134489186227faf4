package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// New builds the application logger and installs it as the slog default.
// Non-local environments get JSON output for log shippers; local development
// gets colorized tint output.
func New(env, level string) *slog.Logger {
	var handler slog.Handler
	if strings.EqualFold(env, "local") {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      parseLevel(level),
			TimeFormat: time.DateTime,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == "error" && a.Value.Kind() == slog.KindAny {
					if err, ok := a.Value.Any().(error); ok {
						return tint.Err(err)
					}
				}
				return a
			},
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(level),
		})
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
