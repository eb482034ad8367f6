package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

// Init sets the default logger.
// Development: text on stdout at debug level.
// Production: JSON on stdout at info level.
// With a DSN, error records are also forwarded to Sentry. The returned func
// flushes buffered Sentry events and should run before exit.
func Init(isDev bool, sentryDSN string) func() {
	Log = slog.New(buildHandler(isDev, sentryDSN))
	slog.SetDefault(Log)

	return func() {
		if sentryDSN != "" {
			sentry.Flush(2 * time.Second)
		}
	}
}

func buildHandler(isDev bool, sentryDSN string) slog.Handler {
	var handlers []slog.Handler

	if isDev {
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDSN,
			TracesSampleRate: 0.2,
			Environment:      envName(isDev),
		})
		if err != nil {
			slog.Warn("sentry disabled", "error", err)
		} else {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	if len(handlers) == 1 {
		return handlers[0]
	}
	return slogmulti.Fanout(handlers...)
}

func envName(isDev bool) string {
	if isDev {
		return "development"
	}
	return "production"
}

// Component returns a logger tagged with the subsystem name, e.g. "jobs".
func Component(name string) *slog.Logger {
	base := Log
	if base == nil {
		base = slog.Default()
	}
	return base.With("component", name)
}
