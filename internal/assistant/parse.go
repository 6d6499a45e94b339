package assistant

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

var ErrMalformedPayload = errors.New("malformed assistant payload")

// ParseSuggestions decodes a model reply into suggestions. The reply may be a
// bare JSON array or an object wrapping one, optionally inside a Markdown
// code fence.
func ParseSuggestions(reply string) ([]Suggestion, error) {
	var out []Suggestion
	if err := decodeList(reply, []string{"suggestions", "branches", "items"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseFeedback decodes a model reply into audit feedback.
func ParseFeedback(reply string) ([]Feedback, error) {
	var out []Feedback
	if err := decodeList(reply, []string{"feedback", "issues", "items"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeList(reply string, keys []string, dst any) error {
	body := []byte(stripFence(reply))
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if body[0] == '[' {
		if err := json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	for _, key := range keys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrMalformedPayload, key, err)
		}
		return nil
	}
	if len(wrapper) == 1 {
		for key, raw := range wrapper {
			if err := json.Unmarshal(raw, dst); err != nil {
				return fmt.Errorf("%w: field %q: %v", ErrMalformedPayload, key, err)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: no list field", ErrMalformedPayload)
}

func stripFence(reply string) string {
	s := strings.TrimSpace(reply)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
