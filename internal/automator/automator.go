// File: internal/automator/automator.go

// Package automator is the control-flow backbone: it captures UI state, asks
// the decision-making model for the next command, validates and executes it,
// and repeats until a terminal command or an unrecoverable failure. The whole
// loop is strictly sequential; there is never more than one in-flight device
// operation or model query.
package automator

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/droidpilot/internal/config"
	"github.com/xkilldash9x/droidpilot/internal/llmclient"
	"github.com/xkilldash9x/droidpilot/internal/llmutil"
	"github.com/xkilldash9x/droidpilot/internal/protocol"
)

// State is the loop's lifecycle. TERMINATED is absorbing: once reached, no
// further model queries or device operations happen.
type State int

const (
	StateRunning State = iota
	StateTerminated
)

// Outcome classifies how a completed run ended. Infrastructure failures are
// reported through Run's error return instead.
type Outcome string

const (
	// OutcomePassed means the model issued `end`: the condition held.
	OutcomePassed Outcome = "passed"
	// OutcomeFailed means the model issued `error`: it could not make
	// progress or the condition did not hold.
	OutcomeFailed Outcome = "failed"
)

// Result summarizes a finished run.
type Result struct {
	RunID   string
	Steps   int
	Outcome Outcome
}

// Automator drives one automation run against one bound device.
type Automator struct {
	surface      DeviceSurface
	client       llmclient.Client
	systemPrompt string
	cfg          config.AgentConfig
	logger       *zap.Logger

	state State
	// history is the append-only conversation log. It is owned exclusively
	// by the loop and never exposed.
	history []llmclient.Message
}

// New builds an Automator. systemPrompt holds the fixed instructions sent to
// the model on every query.
func New(surface DeviceSurface, client llmclient.Client, systemPrompt string, cfg config.AgentConfig, logger *zap.Logger) *Automator {
	return &Automator{
		surface:      surface,
		client:       client,
		systemPrompt: systemPrompt,
		cfg:          cfg,
		logger:       logger.Named("automator"),
		state:        StateRunning,
	}
}

// Run executes the loop for the given operator test condition until the model
// terminates it or a failure unwinds it. Every protocol, response and channel
// failure is terminal for the run; nothing is retried or silently skipped,
// since skipping would mask a stuck model indefinitely.
func (a *Automator) Run(ctx context.Context, condition string) (*Result, error) {
	if a.state != StateRunning || len(a.history) > 0 {
		return nil, ErrAlreadyRun
	}
	if condition == "" {
		return nil, fmt.Errorf("test condition must not be empty")
	}

	runID := uuid.New().String()
	logger := a.logger.With(zap.String("run_id", runID))
	logger.Info("Starting automation run", zap.String("condition", condition))

	// The condition is folded into the session-level instructions once, at
	// run start; per-round messages never repeat it.
	system := a.systemPrompt + "\n" + condition + "\n###END TESTER PROMPT###"

	steps := 0
	for {
		if err := ctx.Err(); err != nil {
			a.terminate(logger, "operator interrupt", steps)
			return nil, err
		}
		if a.cfg.MaxSteps > 0 && steps >= a.cfg.MaxSteps {
			a.terminate(logger, "step budget exhausted", steps)
			return nil, fmt.Errorf("%w (max_steps=%d)", ErrStepBudget, a.cfg.MaxSteps)
		}

		command, raw, err := a.step(ctx, system, logger)
		if err != nil {
			a.terminate(logger, "failure", steps)
			return nil, err
		}
		steps++

		switch command.(type) {
		case protocol.End:
			a.terminate(logger, "model reported success", steps)
			return &Result{RunID: runID, Steps: steps, Outcome: OutcomePassed}, nil
		case protocol.Abort:
			a.terminate(logger, "model reported failure", steps)
			return &Result{RunID: runID, Steps: steps, Outcome: OutcomeFailed}, nil
		}

		if err := a.execute(ctx, command); err != nil {
			a.terminate(logger, "device operation failed", steps)
			return nil, err
		}

		// The raw response joins the history only after successful
		// execution, so the next round reflects what actually happened.
		a.history = append(a.history, llmclient.Message{Role: llmclient.RoleAssistant, Content: raw})
	}
}

// step performs one capture-query-validate round and returns the validated
// command plus the model's raw response text.
func (a *Automator) step(ctx context.Context, system string, logger *zap.Logger) (protocol.Command, string, error) {
	path, err := a.surface.CaptureUIState(ctx)
	if err != nil {
		return nil, "", err
	}
	hierarchy, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read UI state dump %s: %w", path, err)
	}

	a.history = append(a.history, llmclient.Message{Role: llmclient.RoleUser, Content: string(hierarchy)})

	raw, err := a.client.Decide(ctx, system, a.history)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("Model response received", zap.String("response", raw))

	decision, err := llmutil.ExtractDecision(raw)
	if err != nil {
		return nil, "", &ResponseError{Err: err}
	}

	command, err := protocol.ParseAndValidate(decision.Command)
	if err != nil {
		return nil, "", err
	}
	logger.Info("Command accepted", zap.String("command", decision.Command))
	return command, raw, nil
}

// execute dispatches a validated action command to the device surface. The
// match is exhaustive over the sealed variant; terminal commands never reach
// here.
func (a *Automator) execute(ctx context.Context, command protocol.Command) error {
	switch cmd := command.(type) {
	case protocol.Touch:
		return a.surface.Tap(ctx, cmd.At)
	case protocol.Swipe:
		return a.surface.Swipe(ctx, cmd.From, cmd.To, cmd.Duration)
	case protocol.Text:
		return a.surface.EnterText(ctx, cmd.Body)
	case protocol.Key:
		return a.surface.PressKey(ctx, cmd.Code)
	default:
		return fmt.Errorf("unexecutable command %T", command)
	}
}

func (a *Automator) terminate(logger *zap.Logger, reason string, steps int) {
	if a.state == StateTerminated {
		return
	}
	a.state = StateTerminated
	logger.Info("Run terminated", zap.String("reason", reason), zap.Int("steps", steps))
}

// State reports the loop's current lifecycle state.
func (a *Automator) State() State { return a.state }
