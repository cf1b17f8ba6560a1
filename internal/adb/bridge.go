package adb

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/nbenliogludev/go-android-ai-agent/internal/config"
)

// runFunc executes an external command and returns its captured output.
// It exists as a seam so tests can run against a fake adb binary.
type runFunc func(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

// Bridge drives an Android device through the adb binary. Every command is
// fire-and-forget toward the device: errors are logged as warnings and the
// captured stdout (possibly empty) is returned as-is.
type Bridge struct {
	path           string
	deviceDumpPath string
	localDumpPath  string
	run            runFunc
	logger         *zap.Logger
}

func NewBridge(cfg config.ADBConfig, logger *zap.Logger) *Bridge {
	return &Bridge{
		path:           cfg.Path,
		deviceDumpPath: cfg.DeviceDumpPath,
		localDumpPath:  cfg.LocalDumpPath,
		run:            execRun,
		logger:         logger.Named("adb"),
	}
}

func execRun(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Run executes an adb command and returns its trimmed stdout. Failures are
// best-effort: anything adb reports on stderr containing "error" is logged
// and the run continues with whatever output was captured.
func (b *Bridge) Run(ctx context.Context, args ...string) string {
	stdout, stderr, err := b.run(ctx, b.path, args...)
	if err != nil {
		b.logger.Warn("adb command failed",
			zap.Strings("args", args),
			zap.Error(err))
	}
	if stderr != "" && strings.Contains(strings.ToLower(stderr), "error") {
		b.logger.Warn("adb reported an error",
			zap.Strings("args", args),
			zap.String("stderr", strings.TrimSpace(stderr)))
	}
	return strings.TrimSpace(stdout)
}

// CaptureScreen dumps the current UI hierarchy on the device, pulls the file
// locally and returns its raw XML content.
func (b *Bridge) CaptureScreen(ctx context.Context) (string, error) {
	b.Run(ctx, "shell", "uiautomator", "dump", b.deviceDumpPath)
	b.Run(ctx, "pull", b.deviceDumpPath, b.localDumpPath)

	data, err := os.ReadFile(b.localDumpPath)
	if err != nil {
		return "", fmt.Errorf("read ui dump %s: %w", b.localDumpPath, err)
	}
	return string(data), nil
}
