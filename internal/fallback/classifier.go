package fallback

import (
	"encoding/json"
	"strings"

	"hotel-chat-backend/internal/env"
)

// DefaultSentence is the exact reply the automation workflow emits when it
// has no answer. Matching is deliberately exact (after trimming); the
// sentence is configurable so a reworded workflow does not require a deploy
// here.
const DefaultSentence = "I'm sorry, I don't have that information right now. Our team will follow up with you directly."

// Reply is the canonical form every accepted upstream shape normalizes to
// before classification.
type Reply struct {
	Text             string
	ExplicitFallback bool
}

type Classifier struct {
	sentence string
}

func NewClassifier(sentence string) *Classifier {
	if strings.TrimSpace(sentence) == "" {
		sentence = DefaultSentence
	}
	return &Classifier{sentence: strings.TrimSpace(sentence)}
}

func ClassifierFromEnv() *Classifier {
	return NewClassifier(env.GetOrDefault(env.FallbackSentence, DefaultSentence))
}

func (c *Classifier) Sentence() string {
	return c.sentence
}

// IsFallback reports whether a bot response signals "no answer available".
// It never fails: shapes it cannot interpret are simply not fallbacks.
func (c *Classifier) IsFallback(response any) bool {
	reply := Normalize(response)
	if reply.ExplicitFallback {
		return true
	}
	return strings.TrimSpace(reply.Text) == c.sentence
}

// IsFallbackRaw classifies an upstream JSON body without the caller having
// to decode it first.
func (c *Classifier) IsFallbackRaw(raw json.RawMessage) bool {
	return c.IsFallback(decodeRaw(raw))
}

// Normalize flattens the historically-evolving upstream response shapes into
// one Reply. Accepted shapes:
//
//	"text"
//	{"output": "text"}
//	{"message": "text"}
//	{"fallback": true, ...}
//	[{"output": {"output": "text"}}]
//
// Anything else normalizes to an empty, non-fallback Reply.
func Normalize(response any) Reply {
	switch v := response.(type) {
	case nil:
		return Reply{}
	case string:
		return Reply{Text: v}
	case json.RawMessage:
		return Normalize(decodeRaw(v))
	case map[string]any:
		if flag, ok := v["fallback"].(bool); ok && flag {
			return Reply{ExplicitFallback: true}
		}
		if text, ok := v["output"].(string); ok {
			return Reply{Text: text}
		}
		if text, ok := v["message"].(string); ok {
			return Reply{Text: text}
		}
		return Reply{}
	case []any:
		if len(v) == 0 {
			return Reply{}
		}
		first, ok := v[0].(map[string]any)
		if !ok {
			return Reply{}
		}
		if inner, ok := first["output"].(map[string]any); ok {
			if text, ok := inner["output"].(string); ok {
				return Reply{Text: text}
			}
			return Reply{}
		}
		return Normalize(first)
	default:
		return Reply{}
	}
}

// Text extracts the best-effort display text from an upstream JSON body,
// falling back to the raw JSON when no known field is present. Mirrors what
// the chat UI renders.
func Text(raw json.RawMessage) string {
	decoded := decodeRaw(raw)
	reply := Normalize(decoded)
	if reply.Text != "" {
		return reply.Text
	}
	if decoded == nil {
		return ""
	}
	if _, ok := decoded.(string); ok {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func decodeRaw(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	return decoded
}
