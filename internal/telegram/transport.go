package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/a1zero/internal/dispatch"
	"github.com/edgard/a1zero/internal/text"
)

// API is the subset of *bot.Bot the transport calls.
type API interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// Transport delivers dispatcher replies as Telegram messages.
type Transport struct {
	api API
	log *slog.Logger
}

var _ dispatch.Transport = (*Transport)(nil)

// NewTransport creates a Transport on top of api, usually a *bot.Bot.
func NewTransport(api API, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{api: api, log: logger.With("component", "telegram_transport")}
}

// SendReply sends reply to chatID. Text longer than a Telegram message is
// truncated.
func (t *Transport) SendReply(ctx context.Context, chatID int64, reply dispatch.Reply) error {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text.Truncate(reply.Text, text.MaxMessageLength),
	}
	if reply.ReplyTo != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID:                reply.ReplyTo,
			AllowSendingWithoutReply: true,
		}
	}
	if reply.Markdown {
		params.ParseMode = models.ParseModeMarkdown
	}
	if len(reply.Buttons) > 0 {
		params.ReplyMarkup = keyboard(reply.Buttons)
	}

	msg, err := t.api.SendMessage(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	if msg != nil {
		t.log.DebugContext(ctx, "Sent message", "chat_id", chatID, "message_id", msg.ID, "reply_to", reply.ReplyTo)
	}
	return nil
}

// AnswerAction acknowledges a callback query. An empty text only stops the
// client's loading indicator.
func (t *Transport) AnswerAction(ctx context.Context, actionID, text string) error {
	if actionID == "" {
		return nil
	}
	ok, err := t.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: actionID,
		Text:            text,
	})
	if err != nil {
		return fmt.Errorf("failed to answer callback query %s: %w", actionID, err)
	}
	if !ok {
		return fmt.Errorf("callback query %s was not acknowledged", actionID)
	}
	return nil
}

func keyboard(rows [][]dispatch.Button) *models.InlineKeyboardMarkup {
	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: make([][]models.InlineKeyboardButton, 0, len(rows)),
	}
	for _, row := range rows {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.InlineKeyboardButton{Text: b.Text, CallbackData: b.Data})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	return markup
}
