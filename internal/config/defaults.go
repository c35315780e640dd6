package config

import "time"

// Default values for optional configuration.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultAITimeout      = 2 * time.Minute
	DefaultAIMaxBodyBytes = 1 << 20

	DefaultDBPath         = "storage.db"
	DefaultUsageRetention = 30 * 24 * time.Hour

	DefaultUsageRetentionSchedule = "0 0 3 * * *"  // daily at 03:00:00
	DefaultSQLMaintenanceSchedule = "0 30 3 * * 0" // sundays at 03:30:00
)

// DefaultMessages are the user-facing texts used when the file sets none.
var DefaultMessages = MessagesConfig{
	// %s: bot first name
	Welcome:       "👋 Welcome to *%s*\\!\nMulti-model AI chatbot\\.\n\nSend a message or use the buttons below\\.",
	NotAuthorized: "❌ Only the owner can control the prompt.",
	PromptControl: "Prompt control active.",
	Working:       "🤖 Typing...",
	AIFailure:     "❌ Failed to get a response from the AI.",
	// %s: model name
	ModelSwitched: "Model switched to: %s",
	// %s name, %s username, %s id
	OwnerInfo: "👑 Owner: %s\nUsername: %s\nID: %s",
	PingStart: "⏳ Ping...",
	// %d: milliseconds
	Pong: "🏓 Pong: %dms",
	// %s first name, %s last name, %s username, %d id
	Profile:       "🆔 Profile:\nName: %s %s\nUsername: @%s\nID: %d",
	MemberJoined:  "👋 Hello, welcome to the group! I'm an AI chatbot.",
	MemberLeft:    "👋 See you!",
	StatsHeader:   "📊 Usage since %s:\n",
	StatsEmpty:    "📊 No requests recorded yet.",
	StatsDisabled: "📊 Usage recording is disabled.",
}

// Task names known to the scheduler.
const (
	TaskUsageRetention = "usage_retention"
	TaskSQLMaintenance = "sql_maintenance"
)
