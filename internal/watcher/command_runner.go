package watcher

import (
	"errors"
	"os/exec"

	"github.com/rs/zerolog"
)

// CommandRunner executes the user-configured on-change command through the
// shell. Output is not captured and the command's exit status is ignored;
// only a failure to launch is reported.
type CommandRunner struct {
	logger zerolog.Logger
}

// NewCommandRunner creates a new CommandRunner.
func NewCommandRunner(logger zerolog.Logger) *CommandRunner {
	return &CommandRunner{
		logger: logger.With().Str("component", "CommandRunner").Logger(),
	}
}

// Run executes the command via `sh -c`. A non-zero exit status is not an
// error; the contract is one launch attempt per detected change.
func (cr *CommandRunner) Run(command string) error {
	cr.logger.Info().Str("command", command).Msg("Executing on-change command")

	cmd := exec.Command("sh", "-c", command)
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cr.logger.Debug().Int("exit_code", exitErr.ExitCode()).Msg("On-change command exited non-zero")
		return nil
	}
	return err
}
