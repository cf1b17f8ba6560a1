package agent

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nbenliogludev/go-android-ai-agent/internal/llm"
)

const (
	keycodeEnter = "66"
	keycodeHome  = "KEYCODE_HOME"
	keycodeBack  = "KEYCODE_BACK"

	// adb "input text" has no escaping for literal spaces.
	spacePlaceholder = "%s"

	swipeDurationMS = "300"
	waitDelay       = 2 * time.Second
)

// Fixed swipe presets around the screen-center anchor, as
// (startX, startY, endX, endY). Tune for the target device resolution.
var swipeCoords = map[string][4]int{
	"up":    {540, 1500, 540, 500},
	"down":  {540, 500, 540, 1500},
	"left":  {800, 1200, 200, 1200},
	"right": {200, 1200, 800, 1200},
}

// Dispatcher maps one structured action to one device command. Dispatch is
// fire-and-forget: device-level failures are already absorbed by the bridge
// and never retried here.
type Dispatcher struct {
	device interface {
		Run(ctx context.Context, args ...string) string
	}
	logger *zap.Logger
	sleep  func(time.Duration)
}

func NewDispatcher(device Device, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		device: device,
		logger: logger.Named("dispatch"),
		sleep:  time.Sleep,
	}
}

// Execute performs the decided action. The returned flag is true only for the
// terminal "done" action; the loop, not the dispatcher, owns process
// lifetime. Unknown action kinds log a warning and perform nothing.
func (d *Dispatcher) Execute(ctx context.Context, action llm.Action) bool {
	switch action.Action {
	case llm.ActionTap:
		d.tap(ctx, action)
	case llm.ActionTypeText:
		d.typeText(ctx, action)
	case llm.ActionEnter:
		d.logger.Info("pressing enter")
		d.device.Run(ctx, "shell", "input", "keyevent", keycodeEnter)
	case llm.ActionSwipe:
		d.swipe(ctx, action)
	case llm.ActionHome:
		d.logger.Info("going home")
		d.device.Run(ctx, "shell", "input", "keyevent", keycodeHome)
	case llm.ActionBack:
		d.logger.Info("going back")
		d.device.Run(ctx, "shell", "input", "keyevent", keycodeBack)
	case llm.ActionWait:
		d.logger.Info("waiting for ui", zap.String("reason", action.Reason))
		d.sleep(waitDelay)
	case llm.ActionDone:
		d.logger.Info("goal achieved", zap.String("reason", action.Reason))
		return true
	default:
		d.logger.Warn("unknown action", zap.String("action", action.Action))
	}
	return false
}

func (d *Dispatcher) tap(ctx context.Context, action llm.Action) {
	x, y := 0, 0
	if len(action.Coordinates) >= 2 {
		x, y = action.Coordinates[0], action.Coordinates[1]
	}
	d.logger.Info("tapping", zap.Int("x", x), zap.Int("y", y))
	d.device.Run(ctx, "shell", "input", "tap", strconv.Itoa(x), strconv.Itoa(y))
}

func (d *Dispatcher) typeText(ctx context.Context, action llm.Action) {
	escaped := strings.ReplaceAll(action.Text, " ", spacePlaceholder)
	d.logger.Info("typing", zap.String("text", action.Text))
	d.device.Run(ctx, "shell", "input", "text", escaped)
}

func (d *Dispatcher) swipe(ctx context.Context, action llm.Action) {
	coords, ok := swipeCoords[action.Direction]
	if !ok {
		coords = swipeCoords["up"]
	}
	d.logger.Info("swiping", zap.String("direction", action.Direction))
	d.device.Run(ctx, "shell", "input", "swipe",
		strconv.Itoa(coords[0]), strconv.Itoa(coords[1]),
		strconv.Itoa(coords[2]), strconv.Itoa(coords[3]),
		swipeDurationMS)
}
