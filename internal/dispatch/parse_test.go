package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Event
	}{
		{name: "plain chat", text: "hello", want: Chat{Text: "hello"}},
		{name: "chat trimmed", text: "  hello  ", want: Chat{Text: "hello"}},
		{name: "empty", text: "   ", want: Unknown{Reason: "empty text"}},
		{name: "prompt", text: "/prompt", want: OwnerCommand{Name: "prompt"}},
		{name: "prompt args", text: "/prompt be nice ", want: OwnerCommand{Name: "prompt", Args: "be nice"}},
		{name: "prompt prefix", text: "/promptly", want: OwnerCommand{Name: "prompt", Args: "ly"}},
		{name: "stats", text: "/stats", want: OwnerCommand{Name: "stats"}},
		{name: "start", text: "/start", want: Start{}},
		{name: "start with payload", text: "/start ref42", want: Start{}},
		{name: "start addressed", text: "/start@A1Zero_Bot", want: Start{}},
		{name: "start other bot", text: "/start@other_bot", want: Chat{Text: "/start@other_bot"}},
		{name: "other command is chat", text: "/help", want: Chat{Text: "/help"}},
		{name: "prompt mid text is chat", text: "what is /prompt", want: Chat{Text: "what is /prompt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseText(tt.text, "a1zero_bot"))
		})
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		payload string
		want    Event
	}{
		{payload: "OWNER", want: InfoAction{Kind: InfoOwner}},
		{payload: "PING", want: InfoAction{Kind: InfoPing}},
		{payload: "CEKID", want: InfoAction{Kind: InfoProfile}},
		{payload: "MODEL_deepseek", want: ModelSwitch{Model: "deepseek"}},
		{payload: "MODEL_sonar-reasoning-pro", want: ModelSwitch{Model: "sonar-reasoning-pro"}},
		{payload: "MODEL_", want: Unknown{Reason: "unrecognized action payload"}},
		{payload: "ping", want: Unknown{Reason: "unrecognized action payload"}},
		{payload: "", want: Unknown{Reason: "unrecognized action payload"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAction(tt.payload), "payload %q", tt.payload)
	}

	assert.Equal(t, ModelSwitch{Model: "hermes"}, ParseAction(ModelSwitchPayload("hermes")))
}
