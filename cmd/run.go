// File: cmd/run.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/droidpilot/internal/adb"
	"github.com/xkilldash9x/droidpilot/internal/automator"
	"github.com/xkilldash9x/droidpilot/internal/llmclient"
	"github.com/xkilldash9x/droidpilot/internal/observability"
)

// errConditionFailed distinguishes a clean model-reported failure from
// infrastructure errors; both exit non-zero.
var errConditionFailed = errors.New("test condition reported failed by the model")

// newRunCmd creates and configures the `run` command.
func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <condition>",
		Short: "Runs the automation loop until the model ends the test",
		Long: `run captures the device UI state, asks the configured model for the next
interaction given the test condition, executes it, and repeats until the
model issues a terminal command.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their viper keys so CLI flags override the
			// config file and environment.
			if err := viper.BindPFlag("adb.serial", cmd.Flags().Lookup("device")); err != nil {
				return err
			}
			if err := viper.BindPFlag("agent.prompt_file", cmd.Flags().Lookup("prompt")); err != nil {
				return err
			}
			return viper.BindPFlag("agent.max_steps", cmd.Flags().Lookup("max-steps"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			condition := args[0]

			systemPrompt, err := os.ReadFile(cfg.Agent.PromptFile)
			if err != nil {
				return fmt.Errorf("failed to read prompt file %s: %w", cfg.Agent.PromptFile, err)
			}

			session, err := adb.NewSession(ctx, cfg.ADB, logger)
			if err != nil {
				return fmt.Errorf("failed to establish device session: %w", err)
			}

			client, err := llmclient.NewClient(ctx, cfg.LLM, logger)
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}

			loop := automator.New(session, client, string(systemPrompt), cfg.Agent, logger)
			result, err := loop.Run(ctx, condition)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Warn("Run aborted by operator signal")
					return fmt.Errorf("run aborted by operator signal: %w", err)
				}
				return err
			}

			logger.Info("Run finished",
				zap.String("run_id", result.RunID),
				zap.Int("steps", result.Steps),
				zap.String("outcome", string(result.Outcome)),
			)
			if result.Outcome == automator.OutcomeFailed {
				return errConditionFailed
			}
			return nil
		},
	}

	runCmd.Flags().StringP("device", "d", "", "serial of the target device (required with multiple devices)")
	runCmd.Flags().String("prompt", "", "path to the system prompt file")
	runCmd.Flags().Int("max-steps", 50, "maximum loop iterations before giving up (0 = unbounded)")
	return runCmd
}

func init() {
	rootCmd.AddCommand(newRunCmd())
}
