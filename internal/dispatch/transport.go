package dispatch

import (
	"context"
	"time"

	"github.com/edgard/a1zero/internal/database"
)

// Button is one inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Reply is an outbound chat message.
type Reply struct {
	Text string
	// ReplyTo is the message being answered; 0 sends a standalone message.
	ReplyTo  int
	Markdown bool
	Buttons  [][]Button
}

// Transport is the chat side the dispatcher talks to.
type Transport interface {
	SendReply(ctx context.Context, chatID int64, reply Reply) error
	// AnswerAction acknowledges a button press with a transient notice.
	AnswerAction(ctx context.Context, actionID, text string) error
}

// UsageStore records dispatch outcomes. It is optional.
type UsageStore interface {
	RecordDispatch(ctx context.Context, d *database.Dispatch) error
	UsageSummary(ctx context.Context, since time.Time) ([]database.ModelUsage, error)
}
