// Package vocabulary implements the vocabulary-extraction pipeline: prompting
// the language model, parsing its semi-structured response, persisting the
// extracted items, and rendering them for the chat channel.
package vocabulary

// Item is a single extracted vocabulary record. German keeps the original
// casing of the source word. Sentence is an example usage and may be empty.
type Item struct {
	German   string `json:"german" db:"german"`
	English  string `json:"english" db:"english"`
	Chinese  string `json:"chinese" db:"chinese"`
	Sentence string `json:"sentence" db:"sentence"`
}

// ExtractionRequest holds the parameters of a single extraction call.
type ExtractionRequest struct {
	Text  string
	Level string
	Count int
}

const (
	DefaultLevel = "B2-C1"
	DefaultCount = 10

	// MinWordCount is the minimum number of whitespace-delimited tokens an
	// article must have before extraction is attempted. Enforced at the
	// caller boundary, not inside the extractor.
	MinWordCount = 10
)
