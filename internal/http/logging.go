package http

import (
	"context"
	"log/slog"

	"github.com/example/realestate-crm/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	return logging.Or(context.Background(), logger)
}

func handlerLogger(ctx context.Context, fallback *slog.Logger, handlerName, operation string, attrs ...any) *slog.Logger {
	return logging.Scoped(ctx, fallback, "handler", handlerName, operation, attrs...)
}
