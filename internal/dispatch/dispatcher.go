package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/edgard/a1zero/internal/ai"
	"github.com/edgard/a1zero/internal/config"
	"github.com/edgard/a1zero/internal/session"
)

const (
	sendTimeout   = 10 * time.Second
	recordTimeout = 5 * time.Second
)

// Deps are the collaborators of a Dispatcher.
type Deps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Sessions  session.Store
	Registry  *ai.Registry
	AI        ai.Client
	Transport Transport
	// Usage may be nil when usage recording is disabled.
	Usage UsageStore
}

// Dispatcher handles every inbound event and produces its replies.
type Dispatcher struct {
	log       *slog.Logger
	cfg       *config.Config
	msgs      config.MessagesConfig
	sessions  session.Store
	registry  *ai.Registry
	ai        ai.Client
	transport Transport
	usage     UsageStore
	now       func() time.Time
}

// New creates a Dispatcher.
func New(deps Deps) *Dispatcher {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		log:       log.With("component", "dispatcher"),
		cfg:       deps.Config,
		msgs:      deps.Config.Messages,
		sessions:  deps.Sessions,
		registry:  deps.Registry,
		ai:        deps.AI,
		transport: deps.Transport,
		usage:     deps.Usage,
		now:       time.Now,
	}
}

// Handle processes one inbound event. It never returns an error: every
// failure is either turned into a reply or logged.
func (d *Dispatcher) Handle(ctx context.Context, in Inbound) {
	switch ev := in.Event.(type) {
	case OwnerCommand:
		d.handleOwnerCommand(ctx, in, ev)
	case ModelSwitch:
		d.handleModelSwitch(ctx, in, ev)
	case InfoAction:
		d.handleInfoAction(ctx, in, ev)
	case Membership:
		d.handleMembership(ctx, in, ev)
	case Start:
		d.handleStart(ctx, in)
	case Chat:
		d.handleChat(ctx, in, ev)
	case Unknown:
		d.log.DebugContext(ctx, "Ignoring event", "reason", ev.Reason, "user_id", in.Sender.ID, "chat_id", in.ChatID)
		if in.ActionID != "" {
			d.answer(ctx, in.ActionID, "")
		}
	default:
		d.log.WarnContext(ctx, "Unhandled event type", "type", fmt.Sprintf("%T", in.Event))
	}
}

// send delivers a reply; failures are logged and swallowed.
func (d *Dispatcher) send(ctx context.Context, chatID int64, reply Reply) bool {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.transport.SendReply(sendCtx, chatID, reply); err != nil {
		d.log.ErrorContext(ctx, "Failed to send reply", "chat_id", chatID, "reply_to", reply.ReplyTo, "error", err)
		return false
	}
	return true
}

// answer acknowledges a button press; failures are logged and swallowed.
func (d *Dispatcher) answer(ctx context.Context, actionID, text string) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.transport.AnswerAction(sendCtx, actionID, text); err != nil {
		d.log.ErrorContext(ctx, "Failed to answer action", "action_id", actionID, "error", err)
	}
}
