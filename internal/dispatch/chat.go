package dispatch

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/edgard/a1zero/internal/ai"
	"github.com/edgard/a1zero/internal/database"
	"github.com/edgard/a1zero/internal/text"
)

var errEmptyReply = errors.New("reply is empty after sanitization")

// handleChat relays a message to the sender's model. The model is resolved
// before the network call, so a switch made while the call is in flight
// applies only to later messages.
func (d *Dispatcher) handleChat(ctx context.Context, in Inbound, ev Chat) {
	requested := d.sessions.Get(in.Sender.ID)
	endpoint, fallback := d.registry.Resolve(requested)

	log := d.log.With(
		"request_id", uuid.NewString(),
		"user_id", in.Sender.ID,
		"chat_id", in.ChatID,
		"model", endpoint.Name,
	)
	if fallback {
		log.DebugContext(ctx, "Selected model is not registered, using default", "requested_model", requested)
	}

	d.send(ctx, in.ChatID, Reply{Text: d.msgs.Working})

	start := d.now()
	reply, err := d.complete(ctx, endpoint, ev.Text)
	duration := elapsedMillis(start, d.now())

	if err != nil {
		log.ErrorContext(ctx, "AI request failed", "error", err, "duration_ms", duration)
		d.send(ctx, in.ChatID, Reply{Text: d.msgs.AIFailure, ReplyTo: in.MessageID})
	} else {
		log.InfoContext(ctx, "AI request succeeded", "duration_ms", duration, "reply_length", len(reply))
		d.send(ctx, in.ChatID, Reply{Text: reply, ReplyTo: in.MessageID})
	}

	d.record(ctx, &database.Dispatch{
		CreatedAt:      start,
		UserID:         in.Sender.ID,
		ChatID:         in.ChatID,
		RequestedModel: requested,
		Model:          endpoint.Name,
		Fallback:       fallback,
		Success:        err == nil,
		DurationMS:     duration,
	})
}

// complete asks the endpoint and returns the sanitized reply.
func (d *Dispatcher) complete(ctx context.Context, endpoint ai.Endpoint, msg string) (string, error) {
	raw, err := d.ai.Complete(ctx, endpoint, msg)
	if err != nil {
		return "", err
	}
	reply := text.StripMarkup(raw)
	if strings.TrimSpace(reply) == "" {
		return "", errEmptyReply
	}
	return reply, nil
}

func (d *Dispatcher) record(ctx context.Context, dispatch *database.Dispatch) {
	if d.usage == nil {
		return
	}
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := d.usage.RecordDispatch(recCtx, dispatch); err != nil {
		d.log.WarnContext(ctx, "Failed to record dispatch", "error", err)
	}
}
