package dispatch

import (
	"context"
	"fmt"
	"time"
)

func (d *Dispatcher) handleModelSwitch(ctx context.Context, in Inbound, ev ModelSwitch) {
	d.sessions.Set(in.Sender.ID, ev.Model)
	d.log.InfoContext(ctx, "Model switched", "user_id", in.Sender.ID, "model", ev.Model)

	d.answer(ctx, in.ActionID, fmt.Sprintf(d.msgs.ModelSwitched, ev.Model))
}

func (d *Dispatcher) handleInfoAction(ctx context.Context, in Inbound, ev InfoAction) {
	if in.ActionID != "" {
		d.answer(ctx, in.ActionID, "")
	}

	switch ev.Kind {
	case InfoOwner:
		owner := d.cfg.Owner
		d.send(ctx, in.ChatID, Reply{Text: fmt.Sprintf(d.msgs.OwnerInfo, owner.Name, owner.Username, owner.ID)})
	case InfoPing:
		d.ping(ctx, in)
	case InfoProfile:
		s := in.Sender
		username := s.Username
		if username == "" {
			username = "-"
		}
		d.send(ctx, in.ChatID, Reply{Text: fmt.Sprintf(d.msgs.Profile, s.FirstName, s.LastName, username, s.ID)})
	default:
		d.log.WarnContext(ctx, "Unknown info action", "kind", ev.Kind)
	}
}

// ping sends an acknowledgement and then reports how long it took, in
// whole milliseconds.
func (d *Dispatcher) ping(ctx context.Context, in Inbound) {
	start := d.now()
	d.send(ctx, in.ChatID, Reply{Text: d.msgs.PingStart})
	d.send(ctx, in.ChatID, Reply{Text: fmt.Sprintf(d.msgs.Pong, elapsedMillis(start, d.now()))})
}

func elapsedMillis(start, end time.Time) int64 {
	ms := end.Sub(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
