package git

import (
	"context"
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// ExecRunner runs commands with os/exec in a fixed working directory.
type ExecRunner struct {
	Dir    string
	Logger *zap.Logger
}

// NewExecRunner returns a Runner rooted at dir. An empty dir means the
// process working directory.
func NewExecRunner(dir string, logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{Dir: dir, Logger: logger}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = r.Dir

	r.Logger.Debug("Running command",
		zap.String("command", command),
		zap.Strings("args", args))

	output, err := cmd.CombinedOutput()

	r.Logger.Debug("Command output",
		zap.Int("output_length", len(output)),
		zap.Error(err),
		zap.String("output", func() string {
			if len(output) > 0 && len(output) < 1000 {
				return string(output)
			}
			return fmt.Sprintf("<%d bytes>", len(output))
		}()))

	return string(output), err
}
