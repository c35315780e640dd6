package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/a1zero/internal/config"
	"github.com/edgard/a1zero/internal/dispatch"
)

// Dispatcher is the part of dispatch.Dispatcher the handlers need.
type Dispatcher interface {
	Handle(ctx context.Context, in dispatch.Inbound)
}

// HandlerDeps provides dependencies for Telegram update handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Dispatcher Dispatcher
}
