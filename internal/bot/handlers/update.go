package handlers

import (
	"context"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/a1zero/internal/dispatch"
)

// NewUpdateHandler returns a handler that parses an update and passes it to
// the dispatcher. Updates the dispatcher has no use for are dropped here.
func NewUpdateHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return updateHandler{deps}.Handle
}

type updateHandler struct {
	deps HandlerDeps
}

func (h updateHandler) Handle(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	in, ok := ParseUpdate(update, h.deps.Config.Telegram.BotInfo.Username)
	if !ok {
		h.deps.Logger.DebugContext(ctx, "Ignoring unsupported update", "handler", "update", "update_id", update.ID)
		return
	}
	h.deps.Dispatcher.Handle(ctx, in)
}

// ParseUpdate converts a Telegram update into a dispatcher event. It reports
// false for updates that carry nothing the dispatcher handles.
func ParseUpdate(update *models.Update, botUsername string) (dispatch.Inbound, bool) {
	if update == nil {
		return dispatch.Inbound{}, false
	}

	if cq := update.CallbackQuery; cq != nil {
		in := dispatch.Inbound{
			Sender:   senderFrom(&cq.From),
			ActionID: cq.ID,
			Event:    dispatch.ParseAction(cq.Data),
			Received: time.Now(),
		}
		in.ChatID, in.MessageID = callbackOrigin(cq.Message)
		if in.ChatID == 0 {
			// A private chat has the same id as the user.
			in.ChatID = cq.From.ID
		}
		return in, true
	}

	msg := update.Message
	if msg == nil {
		return dispatch.Inbound{}, false
	}

	in := dispatch.Inbound{
		Sender:    senderFrom(msg.From),
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Received:  time.Unix(int64(msg.Date), 0),
	}

	switch {
	case len(msg.NewChatMembers) > 0:
		in.Event = dispatch.Membership{Kind: dispatch.MemberJoined}
	case msg.LeftChatMember != nil:
		in.Event = dispatch.Membership{Kind: dispatch.MemberLeft}
	case msg.Text != "":
		in.Event = dispatch.ParseText(msg.Text, botUsername)
	default:
		return dispatch.Inbound{}, false
	}
	return in, true
}

func senderFrom(u *models.User) dispatch.Sender {
	if u == nil {
		return dispatch.Sender{}
	}
	return dispatch.Sender{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

// callbackOrigin returns the chat and message a button was attached to.
// Messages older than 48h arrive as inaccessible but still name the chat.
func callbackOrigin(m models.MaybeInaccessibleMessage) (chatID int64, messageID int) {
	switch {
	case m.Message != nil:
		return m.Message.Chat.ID, m.Message.ID
	case m.InaccessibleMessage != nil:
		return m.InaccessibleMessage.Chat.ID, m.InaccessibleMessage.MessageID
	default:
		return 0, 0
	}
}

// IsMembershipUpdate matches service messages about members joining or
// leaving.
func IsMembershipUpdate(update *models.Update) bool {
	return update.Message != nil && (len(update.Message.NewChatMembers) > 0 || update.Message.LeftChatMember != nil)
}
