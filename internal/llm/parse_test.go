package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseDecisionDirectObject(t *testing.T) {
	action := ParseDecision(`{"action":"type","text":"White House","reason":"search"}`, zap.NewNop())

	assert.Equal(t, ActionTypeText, action.Action)
	assert.Equal(t, "White House", action.Text)
	assert.Equal(t, "search", action.Reason)
}

func TestParseDecisionEmbeddedObject(t *testing.T) {
	action := ParseDecision(`here you go {"action":"tap","coordinates":[1,2]}`, zap.NewNop())

	assert.Equal(t, ActionTap, action.Action)
	assert.Equal(t, []int{1, 2}, action.Coordinates)
}

func TestParseDecisionGarbageFallsBackToWait(t *testing.T) {
	action := ParseDecision("I am sorry, I cannot help with that.", zap.NewNop())

	assert.Equal(t, Action{Action: ActionWait, Reason: "Failed to parse response, waiting"}, action)
}

func TestParseDecisionLongGarbageStaysTotal(t *testing.T) {
	action := ParseDecision(strings.Repeat("x", 5000), zap.NewNop())
	assert.Equal(t, ActionWait, action.Action)
}

func TestParseDecisionUnknownKindPropagates(t *testing.T) {
	// Vocabulary validation is the dispatcher's job, not the parser's.
	action := ParseDecision(`{"action":"launch","reason":"open settings"}`, zap.NewNop())
	assert.Equal(t, "launch", action.Action)
	assert.Equal(t, "open settings", action.Reason)
}
