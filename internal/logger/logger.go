package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type contextKey string

const loggerKey contextKey = "logger"

// New cria o logger estruturado padrão, escrevendo em stderr para não
// misturar com as tabelas do console.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger().Level(zerolog.WarnLevel)
}

// NewWithWriter cria um logger JSON com writer customizado.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// WithContext guarda o logger no contexto.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext recupera o logger do contexto ou devolve o padrão.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New()
}

// WithRequest anexa o id da requisição e o tenant aos logs.
func WithRequest(ctx context.Context, requestID, tenantID string) context.Context {
	l := FromContext(ctx).With().
		Str("request_id", requestID).
		Str("tenant_id", tenantID).
		Logger()
	return WithContext(ctx, l)
}
