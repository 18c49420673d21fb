package domain

import "strings"

// markdownEscaper neutralizes the characters Discord renders as markdown or
// link syntax.
var markdownEscaper = strings.NewReplacer(
	"*", "\\*",
	"_", "\\_",
	"~", "\\~",
	"`", "\\`",
	"|", "\\|",
	"[", "\\[",
	"]", "\\]",
)

// EscapeMarkdown neutralizes Discord markdown in user- or platform-supplied
// text before it is embedded in a message.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
