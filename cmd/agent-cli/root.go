package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nbenliogludev/go-android-ai-agent/internal/config"
	"github.com/nbenliogludev/go-android-ai-agent/internal/observability"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "agent-cli",
	Short: "An LLM-driven agent that controls Android devices over adb",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env first, so credentials are visible to viper's env bindings.
		_ = godotenv.Load()

		v := viper.New()
		config.SetDefaults(v)

		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		} else {
			v.AddConfigPath(".")
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}

		v.SetEnvPrefix("AGENT")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}

		c, err := config.NewConfigFromViper(v)
		if err != nil {
			return err
		}

		cfg = c
		logger = observability.NewLogger(cfg.Logger)
		return nil
	},
}

// Execute runs the root command; configuration errors abort before any
// agent step executes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
}
