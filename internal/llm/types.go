package llm

import "context"

// The closed action vocabulary the decision step may request.
const (
	ActionTap      = "tap"
	ActionTypeText = "type"
	ActionEnter    = "enter"
	ActionSwipe    = "swipe"
	ActionHome     = "home"
	ActionBack     = "back"
	ActionWait     = "wait"
	ActionDone     = "done"
)

// Action is the wire format of one decision: a flat object with the action
// kind, kind-specific fields and an optional reason used only for logging and
// history context. An unknown or missing kind is passed through to the
// dispatcher, which treats it as a no-op warning.
type Action struct {
	Action      string `json:"action"`
	Coordinates []int  `json:"coordinates,omitempty"`
	Text        string `json:"text,omitempty"`
	Direction   string `json:"direction,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Client is the capability every decision backend must provide: produce one
// action given the goal, the serialized screen context and the prior actions.
// Implementations hold provider connection state but no domain state.
type Client interface {
	GetDecision(ctx context.Context, goal, screenContext string, history []Action) (Action, error)
	Model() string
}
