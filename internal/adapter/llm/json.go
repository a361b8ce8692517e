package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON strips code fences and surrounding prose from a model reply.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "```"); start != -1 {
		body := s[start+3:]
		body = strings.TrimPrefix(body, "json")
		if end := strings.Index(body, "```"); end != -1 {
			return strings.TrimSpace(body[:end])
		}
	}

	open := strings.IndexAny(s, "{[")
	if open == -1 {
		return s
	}
	closing := byte('}')
	if s[open] == '[' {
		closing = ']'
	}
	if end := strings.LastIndexByte(s, closing); end > open {
		return s[open : end+1]
	}
	return s[open:]
}

func decodeReply(content string, result any) error {
	if err := json.Unmarshal([]byte(extractJSON(content)), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}
	return nil
}
