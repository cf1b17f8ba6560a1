package agent

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nbenliogludev/go-android-ai-agent/internal/llm"
)

// Reporter narrates the run: per-step decisions while it progresses and a
// final execution report with the full action trace.
type Reporter struct {
	logger *zap.Logger
	goal   string
	runID  string
}

func NewReporter(logger *zap.Logger, goal string) *Reporter {
	return &Reporter{
		logger: logger.Named("report"),
		goal:   goal,
		runID:  uuid.NewString(),
	}
}

func (r *Reporter) Started(model string) {
	r.logger.Info("agent started",
		zap.String("run_id", r.runID),
		zap.String("goal", r.goal),
		zap.String("model", model))
}

func (r *Reporter) Step(step, maxSteps int) {
	r.logger.Info("scanning screen", zap.Int("step", step), zap.Int("max_steps", maxSteps))
}

func (r *Reporter) LogDecision(step int, action llm.Action) {
	r.logger.Info("decision",
		zap.Int("step", step),
		zap.String("action", action.Action),
		zap.String("reason", action.Reason))
}

func (r *Reporter) StepError(step int, err error) {
	r.logger.Warn("step failed", zap.Int("step", step), zap.Error(err))
}

func (r *Reporter) ScreenUnavailable(err error) {
	r.logger.Warn("could not capture screen", zap.Error(err))
}

func (r *Reporter) ScreenNotReady(err error) {
	r.logger.Warn("screen not ready", zap.Error(err))
}

func (r *Reporter) Finished(start time.Time, history []llm.Action) {
	r.report("goal achieved", start, history)
}

func (r *Reporter) Interrupted(start time.Time, history []llm.Action) {
	r.report("interrupted by user", start, history)
}

func (r *Reporter) MaxStepsReached(start time.Time, history []llm.Action) {
	r.logger.Warn("max steps reached, task may be incomplete")
	r.report("max steps reached", start, history)
}

func (r *Reporter) report(exitReason string, start time.Time, history []llm.Action) {
	r.logger.Info("execution report",
		zap.String("run_id", r.runID),
		zap.String("goal", r.goal),
		zap.String("exit_reason", exitReason),
		zap.Duration("duration", time.Since(start).Truncate(time.Millisecond)),
		zap.Int("steps_executed", len(history)),
		zap.String("trace", llm.FormatHistory(history)))
}
