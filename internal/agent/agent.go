// Package agent drives the perceive -> decide -> act loop against an Android
// device.
package agent

import (
	"context"

	"go.uber.org/zap"

	"github.com/nbenliogludev/go-android-ai-agent/internal/llm"
)

// Device is the effectful sink behind the agent: it runs shell-style command
// argument lists and captures the current UI hierarchy.
type Device interface {
	Run(ctx context.Context, args ...string) string
	CaptureScreen(ctx context.Context) (string, error)
}

// Agent bundles the device, the decision backend and the dispatcher.
type Agent struct {
	device     Device
	llm        llm.Client
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func New(device Device, client llm.Client, logger *zap.Logger) *Agent {
	return &Agent{
		device:     device,
		llm:        client,
		dispatcher: NewDispatcher(device, logger),
		logger:     logger.Named("agent"),
	}
}
