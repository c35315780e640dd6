package dispatch

import (
	"strings"
)

const (
	modelSwitchPrefix = "MODEL_"
	startCommand      = "/start"
)

// OwnerCommandPrefixes are the reserved control prefixes. A message whose
// text begins with one of them is an owner command.
var OwnerCommandPrefixes = []string{"/prompt", "/stats"}

// ParseText classifies the text of a message. botUsername, when set, lets
// "/start@botname" be recognized.
func ParseText(text, botUsername string) Event {
	text = strings.TrimSpace(text)
	if text == "" {
		return Unknown{Reason: "empty text"}
	}

	for _, prefix := range OwnerCommandPrefixes {
		if strings.HasPrefix(text, prefix) {
			return OwnerCommand{
				Name: strings.TrimPrefix(prefix, "/"),
				Args: strings.TrimSpace(strings.TrimPrefix(text, prefix)),
			}
		}
	}

	if isCommand(text, startCommand, botUsername) {
		return Start{}
	}

	return Chat{Text: text}
}

// ParseAction classifies a callback payload.
func ParseAction(payload string) Event {
	switch kind := InfoKind(payload); kind {
	case InfoOwner, InfoPing, InfoProfile:
		return InfoAction{Kind: kind}
	}

	if model, ok := strings.CutPrefix(payload, modelSwitchPrefix); ok && model != "" {
		return ModelSwitch{Model: model}
	}

	return Unknown{Reason: "unrecognized action payload"}
}

// ModelSwitchPayload is the callback payload that selects model.
func ModelSwitchPayload(model string) string {
	return modelSwitchPrefix + model
}

// isCommand matches "/cmd", "/cmd args" and "/cmd@bot args".
func isCommand(text, command, botUsername string) bool {
	head, _, _ := strings.Cut(text, " ")
	if head == command {
		return true
	}
	if botUsername == "" {
		return false
	}
	return strings.EqualFold(head, command+"@"+botUsername)
}
