package server

import (
	"strings"
)

// Intent classifies an inbound chat message.
type Intent int

const (
	// IntentAskQuestion forwards the message as a free-form question.
	IntentAskQuestion Intent = iota
	// IntentGenerateVocabulary runs the vocabulary extraction pipeline.
	IntentGenerateVocabulary
)

func (i Intent) String() string {
	switch i {
	case IntentGenerateVocabulary:
		return "generate_vocabulary"
	default:
		return "ask_question"
	}
}

// Router decides the intent of a chat message by looking for the configured
// trigger phrase anywhere in the text.
type Router struct {
	trigger string
}

func NewRouter(trigger string) *Router {
	return &Router{trigger: trigger}
}

// Route returns IntentGenerateVocabulary when the message contains the
// trigger phrase, IntentAskQuestion otherwise. An empty trigger never
// matches.
func (r *Router) Route(messageText string) Intent {
	if r.trigger != "" && strings.Contains(messageText, r.trigger) {
		return IntentGenerateVocabulary
	}
	return IntentAskQuestion
}
