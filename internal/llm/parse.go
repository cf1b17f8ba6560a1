package llm

import (
	"encoding/json"
	"regexp"

	"go.uber.org/zap"
)

// objectPattern matches the first brace-delimited, non-nested object in a
// response that wraps its JSON in prose.
var objectPattern = regexp.MustCompile(`\{[^{}]*\}`)

// ParseDecision turns a raw model reply into an Action. It is total: a direct
// unmarshal is tried first, then the first embedded {...} substring, and on
// both failing it falls back to a safe wait action, logging a truncated
// preview of the unparsable text.
func ParseDecision(raw string, logger *zap.Logger) Action {
	var action Action
	if err := json.Unmarshal([]byte(raw), &action); err == nil {
		return action
	}

	if match := objectPattern.FindString(raw); match != "" {
		var embedded Action
		if err := json.Unmarshal([]byte(match), &embedded); err == nil {
			return embedded
		}
	}

	preview := raw
	if len(preview) > 200 {
		preview = preview[:200]
	}
	logger.Warn("could not parse model response", zap.String("preview", preview))

	return Action{Action: ActionWait, Reason: "Failed to parse response, waiting"}
}
