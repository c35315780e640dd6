package handlers

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RegisteredHandler describes one handler with its match rule and middleware.
// When Match is set it takes precedence over HandlerType, Pattern and
// MatchType.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	MatchType   tgbot.MatchType
	Match       tgbot.MatchFunc
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
}

// RegisterAllHandlers returns every handler keyed by a descriptive name.
// Plain text messages are left to the default handler, see NewDefaultHandler.
func RegisterAllHandlers(deps HandlerDeps) map[string]RegisteredHandler {
	update := NewUpdateHandler(deps)
	mw := []tgbot.Middleware{Recover(deps)}

	handlers := make(map[string]RegisteredHandler)

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Handler:     update,
		Middleware:  mw,
	}
	// Empty prefix matches every button press.
	handlers["callback"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     "",
		MatchType:   tgbot.MatchTypePrefix,
		Handler:     update,
		Middleware:  mw,
	}
	handlers["membership"] = RegisteredHandler{
		Match:      IsMembershipUpdate,
		Handler:    update,
		Middleware: mw,
	}

	return handlers
}

// NewDefaultHandler handles every update no registered handler matched,
// which covers chat messages and owner commands.
func NewDefaultHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return Recover(deps)(NewUpdateHandler(deps))
}

// BotCommands is the command list published to Telegram at startup.
func BotCommands() []models.BotCommand {
	return []models.BotCommand{
		{Command: "start", Description: "Show the menu and model buttons"},
		{Command: "prompt", Description: "Prompt control (owner only)"},
		{Command: "stats", Description: "Usage per model (owner only)"},
	}
}
