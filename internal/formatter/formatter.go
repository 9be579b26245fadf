// Package formatter assembles the generation prompt from a staged diff.
package formatter

import "strings"

// PromptInstruction follows the diff in every prompt. It is never configurable.
const PromptInstruction = `
The text above is a diff from a git commit, but it needs a commit message.
Write an appropriate commit message for the piece of code given above.
Make it a one-liner and do not output anything beside the commit message.


`

// BuildPrompt returns the diff verbatim followed by PromptInstruction.
func BuildPrompt(diff string) string {
	var b strings.Builder
	b.Grow(len(diff) + len(PromptInstruction))
	b.WriteString(diff)
	b.WriteString(PromptInstruction)
	return b.String()
}
