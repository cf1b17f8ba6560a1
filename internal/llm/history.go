package llm

import (
	"fmt"
	"strings"
)

// FormatHistory renders prior executed actions for the decision prompt.
// Empty history produces an empty string (no header). Lines are 1-indexed in
// chronological order, oldest first.
func FormatHistory(history []Action) string {
	if len(history) == 0 {
		return ""
	}

	lines := make([]string, 0, len(history))
	for i, a := range history {
		kind := a.Action
		if kind == "" {
			kind = "unknown"
		}
		reason := a.Reason
		if reason == "" {
			reason = "N/A"
		}

		switch kind {
		case ActionTypeText:
			lines = append(lines, fmt.Sprintf("Step %d: typed %q - %s", i+1, a.Text, reason))
		case ActionTap:
			lines = append(lines, fmt.Sprintf("Step %d: tapped %v - %s", i+1, a.Coordinates, reason))
		default:
			lines = append(lines, fmt.Sprintf("Step %d: %s - %s", i+1, kind, reason))
		}
	}

	return "\n\nPREVIOUS_ACTIONS:\n" + strings.Join(lines, "\n")
}
