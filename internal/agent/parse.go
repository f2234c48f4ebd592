package agent

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// jsonObjectPattern matches the first {...} span in a response, across
// newlines. Greedy so nested objects stay intact.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Decode extracts a JSON object from raw agent text. Models often wrap
// their answer in a markdown code fence or surround it with prose, so
// the extraction is best-effort: strip any fence, try the whole text,
// then fall back to the first {...} span. The caller substitutes a
// default on error; Decode itself never panics.
func Decode(content string, v any) error {
	cleaned := stripFence(content)

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	if span := jsonObjectPattern.FindString(cleaned); span != "" {
		if err := json.Unmarshal([]byte(span), v); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no parseable JSON object in agent response (%d bytes)", len(content))
}

// stripFence removes a leading/trailing markdown code fence
func stripFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line, which may carry a language tag
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}

	return s
}
