package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nbenliogludev/go-android-ai-agent/internal/config"
	"github.com/nbenliogludev/go-android-ai-agent/internal/llm"
	"github.com/nbenliogludev/go-android-ai-agent/internal/screen"
)

var (
	ErrInterrupted = errors.New("execution interrupted")
	ErrMaxSteps    = errors.New("max steps reached")
)

// Runner owns the single-threaded step loop and its only long-lived mutable
// state: the per-run action history and the step counter. The history starts
// empty, is appended to once per step and is never persisted.
type Runner struct {
	agent      *Agent
	goal       string
	maxSteps   int
	stepDelay  time.Duration
	history    []llm.Action
	reporter   *Reporter
	signalCtrl *SignalController
	sleep      func(time.Duration)
}

func NewRunner(a *Agent, goal string, cfg config.AgentConfig) *Runner {
	return &Runner{
		agent:      a,
		goal:       goal,
		maxSteps:   cfg.MaxSteps,
		stepDelay:  cfg.StepDelay,
		reporter:   NewReporter(a.logger, goal),
		signalCtrl: NewSignalController(),
		sleep:      time.Sleep,
	}
}

// Run drives perceive -> decide -> act until a done action, the step bound or
// an interrupt. Degraded steps (unreadable screen, unknown action, backend
// error) never abort the run.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()
	defer r.signalCtrl.Close()

	r.reporter.Started(r.agent.llm.Model())

	for step := 1; step <= r.maxSteps; step++ {
		if r.signalCtrl.Interrupted() {
			r.reporter.Interrupted(start, r.history)
			return ErrInterrupted
		}

		done, err := r.executeStep(ctx, step)
		if err != nil {
			r.reporter.StepError(step, err)
		}

		if done {
			r.reporter.Finished(start, r.history)
			return nil
		}

		r.sleep(r.stepDelay)
	}

	r.reporter.MaxStepsReached(start, r.history)
	return ErrMaxSteps
}

func (r *Runner) executeStep(ctx context.Context, step int) (bool, error) {
	r.reporter.Step(step, r.maxSteps)

	screenContext := r.captureContext(ctx)

	decision, err := r.agent.llm.GetDecision(ctx, r.goal, screenContext, r.history)
	if err != nil {
		return false, fmt.Errorf("llm decision: %w", err)
	}
	r.reporter.LogDecision(step, decision)

	done := r.agent.dispatcher.Execute(ctx, decision)
	r.history = append(r.history, decision)

	return done, nil
}

// captureContext dumps and extracts the current screen. Any failure renders a
// not-ready placeholder so the decision step can choose to wait.
func (r *Runner) captureContext(ctx context.Context) string {
	xmlContent, err := r.agent.device.CaptureScreen(ctx)
	if err != nil {
		r.reporter.ScreenUnavailable(err)
		return "Error: Could not capture screen."
	}

	elements, err := screen.Extract(xmlContent)
	if err != nil {
		// Screen not ready, not "no elements".
		r.reporter.ScreenNotReady(err)
	}
	return screen.ContextJSON(elements)
}
