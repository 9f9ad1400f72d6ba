package vocabulary

import (
	"fmt"
	"strings"
)

const (
	// EmptyResultMessage is the reply when extraction produced nothing.
	EmptyResultMessage = "Sorry, I couldn't extract vocabularies from the text."

	maxSentenceLength       = 100
	truncatedSentenceLength = 97
)

// FormatItems renders items as a plain-text chat message: a count header,
// then one block per item in input order separated by blank lines. Example
// sentences longer than 100 characters are cut to 97 plus an ellipsis.
func FormatItems(items []Item) string {
	if len(items) == 0 {
		return EmptyResultMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d German vocabularies:\n\n", len(items))

	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.German)
		b.WriteString(item.English + "\n")
		b.WriteString(item.Chinese + "\n")
		if item.Sentence != "" {
			b.WriteString(truncateSentence(item.Sentence) + "\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}

// truncateSentence shortens a sentence by visible characters, not bytes, so
// multi-byte text is never cut mid-rune.
func truncateSentence(sentence string) string {
	runes := []rune(sentence)
	if len(runes) <= maxSentenceLength {
		return sentence
	}
	return string(runes[:truncatedSentenceLength]) + "..."
}
