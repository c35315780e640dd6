// Package dispatch classifies inbound chat events and routes them: owner
// commands, model switches, informational actions, membership changes and
// plain chat messages relayed to the selected AI model.
package dispatch

import "time"

// Event is the closed set of things the dispatcher knows how to handle.
type Event interface {
	event()
}

// OwnerCommand is a text command restricted to the bot owner.
type OwnerCommand struct {
	Name string
	Args string
}

// ModelSwitch selects Model for the sender. The name is not validated here.
type ModelSwitch struct {
	Model string
}

// InfoKind identifies an informational button.
type InfoKind string

// Informational actions, named by their callback payloads.
const (
	InfoOwner   InfoKind = "OWNER"
	InfoPing    InfoKind = "PING"
	InfoProfile InfoKind = "CEKID"
)

// InfoAction answers from configuration or the sender's own profile.
type InfoAction struct {
	Kind InfoKind
}

// MembershipKind tells whether a participant joined or left.
type MembershipKind int

const (
	MemberJoined MembershipKind = iota + 1
	MemberLeft
)

// Membership is a participant joining or leaving a group.
type Membership struct {
	Kind MembershipKind
}

// Start is the /start command.
type Start struct{}

// Chat is a message relayed to the sender's selected model.
type Chat struct {
	Text string
}

// Unknown is anything the dispatcher ignores, e.g. an unrecognized button.
type Unknown struct {
	Reason string
}

func (OwnerCommand) event() {}
func (ModelSwitch) event()  {}
func (InfoAction) event()   {}
func (Membership) event()   {}
func (Start) event()        {}
func (Chat) event()         {}
func (Unknown) event()      {}

// Sender is the profile Telegram attaches to an update.
type Sender struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// Inbound is one parsed update.
type Inbound struct {
	Sender    Sender
	ChatID    int64
	MessageID int
	// ActionID is the callback query id for button presses, empty otherwise.
	ActionID string
	Event    Event
	Received time.Time
}
