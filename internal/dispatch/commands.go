package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
)

func (d *Dispatcher) handleOwnerCommand(ctx context.Context, in Inbound, cmd OwnerCommand) {
	log := d.log.With("command", cmd.Name, "user_id", in.Sender.ID, "chat_id", in.ChatID)

	if !d.cfg.IsOwner(in.Sender.ID) {
		log.WarnContext(ctx, "Unauthorized owner command attempt")
		d.send(ctx, in.ChatID, Reply{Text: d.msgs.NotAuthorized, ReplyTo: in.MessageID})
		return
	}

	log.InfoContext(ctx, "Handling owner command")
	switch cmd.Name {
	case "prompt":
		d.send(ctx, in.ChatID, Reply{Text: d.msgs.PromptControl, ReplyTo: in.MessageID})
	case "stats":
		d.send(ctx, in.ChatID, Reply{Text: d.usageReport(ctx), ReplyTo: in.MessageID})
	default:
		log.WarnContext(ctx, "Owner command has no handler")
	}
}

func (d *Dispatcher) usageReport(ctx context.Context) string {
	if d.usage == nil {
		return d.msgs.StatsDisabled
	}

	since := d.now().Add(-d.cfg.Usage.Retention)
	usage, err := d.usage.UsageSummary(ctx, since)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to build usage report", "error", err)
		return d.msgs.StatsDisabled
	}
	if len(usage) == 0 {
		return d.msgs.StatsEmpty
	}

	var b strings.Builder
	fmt.Fprintf(&b, d.msgs.StatsHeader, since.UTC().Format(time.DateOnly))
	for _, u := range usage {
		fmt.Fprintf(&b, "%s: %d requests, %d failed, %d fallback, avg %dms\n",
			u.Model, u.Requests, u.Failures, u.Fallbacks, u.AvgDurationMS)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Dispatcher) handleStart(ctx context.Context, in Inbound) {
	d.log.InfoContext(ctx, "Handling /start", "user_id", in.Sender.ID, "chat_id", in.ChatID)

	name := d.cfg.Telegram.BotInfo.FirstName
	if name == "" {
		name = d.cfg.Owner.Name
	}
	welcome := d.msgs.Welcome
	if strings.Contains(welcome, "%s") {
		welcome = fmt.Sprintf(welcome, tgbot.EscapeMarkdown(name))
	}

	d.send(ctx, in.ChatID, Reply{
		Text:     welcome,
		Markdown: true,
		Buttons:  d.keyboard(),
	})
}

// keyboard is the /start inline keyboard: info buttons, then one button per
// registered model.
func (d *Dispatcher) keyboard() [][]Button {
	rows := [][]Button{{
		{Text: "Owner", Data: string(InfoOwner)},
		{Text: "Ping", Data: string(InfoPing)},
		{Text: "My ID", Data: string(InfoProfile)},
	}}

	var row []Button
	for _, name := range d.registry.Names() {
		ep, _ := d.registry.Lookup(name)
		row = append(row, Button{Text: "Model: " + ep.Label, Data: ModelSwitchPayload(name)})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func (d *Dispatcher) handleMembership(ctx context.Context, in Inbound, ev Membership) {
	switch ev.Kind {
	case MemberJoined:
		d.send(ctx, in.ChatID, Reply{Text: d.msgs.MemberJoined})
	case MemberLeft:
		d.send(ctx, in.ChatID, Reply{Text: d.msgs.MemberLeft})
	default:
		d.log.WarnContext(ctx, "Unknown membership kind", "kind", ev.Kind)
	}
}
