package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nbenliogludev/go-android-ai-agent/internal/adb"
	"github.com/nbenliogludev/go-android-ai-agent/internal/agent"
	"github.com/nbenliogludev/go-android-ai-agent/internal/llm"
)

var (
	flagMaxSteps int
	flagProvider string
)

var runCmd = &cobra.Command{
	Use:   "run [goal...]",
	Short: "Run the agent toward a goal on the connected device",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		goal := strings.TrimSpace(strings.Join(args, " "))
		if goal == "" {
			fmt.Print("Enter your goal: ")
			reader := bufio.NewReader(os.Stdin)
			raw, _ := reader.ReadString('\n')
			goal = strings.TrimSpace(raw)
		}
		if goal == "" {
			return errors.New("no goal provided")
		}

		if cmd.Flags().Changed("max-steps") {
			cfg.Agent.MaxSteps = flagMaxSteps
		}
		if flagProvider != "" {
			cfg.LLM.Provider = flagProvider
			if err := cfg.LLM.Validate(); err != nil {
				return err
			}
		}

		ctx := cmd.Context()

		client, err := llm.NewClient(ctx, cfg.LLM, logger)
		if err != nil {
			return err
		}

		logger.Info("starting agent",
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", cfg.LLM.Model()))

		bridge := adb.NewBridge(cfg.ADB, logger)
		runner := agent.NewRunner(agent.New(bridge, client, logger), goal, cfg.Agent)

		return runner.Run(ctx)
	},
}

func init() {
	runCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 10, "maximum steps before stopping")
	runCmd.Flags().StringVar(&flagProvider, "provider", "", "override the configured llm provider (groq, openai, bedrock, gemini)")
	rootCmd.AddCommand(runCmd)
}
