package text

// MarkupChars is the set of characters the Telegram rich-text renderer
// treats as markup. AI replies are stripped of all of them.
const MarkupChars = "*_[]()~`>#+=|{}!"

// MaxMessageLength is the longest text Telegram accepts in one message, in
// UTF-16 code units. Rune counting is used as a close approximation.
const MaxMessageLength = 4096

const ellipsis = "…"
