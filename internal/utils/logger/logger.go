package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"
)

// Окружения приложения, общие для сервера и клиента.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Option func(*slog.HandlerOptions)

// WithLevel переопределяет уровень окружения. Пустая или неизвестная
// строка оставляет уровень по умолчанию.
func WithLevel(level string) Option {
	return func(o *slog.HandlerOptions) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err == nil {
			o.Level = l
		}
	}
}

// New создает логгер в зависимости от окружения
func New(env string, opts ...Option) *slog.Logger {
	ho := &slog.HandlerOptions{Level: slog.LevelDebug}
	if env == EnvProd {
		ho.Level = slog.LevelInfo
	}
	for _, opt := range opts {
		opt(ho)
	}

	switch env {
	case EnvDev, EnvProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, ho))
	default:
		return setupPrettySlog(ho)
	}
}

func setupPrettySlog(ho *slog.HandlerOptions) *slog.Logger {
	opts := PrettyHandlerOptions{SlogOpts: ho}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
