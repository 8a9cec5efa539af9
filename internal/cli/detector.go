package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	pderrors "github.com/penwyp/pushdeploy/internal/errors"
)

// Detector CLI工具检测器
type Detector struct {
	runner CommandRunner
}

// NewDetector 创建新的CLI检测器
func NewDetector(runner CommandRunner) *Detector {
	if runner == nil {
		runner = &DefaultCommandRunner{}
	}
	return &Detector{runner: runner}
}

// DefaultCommandRunner 默认命令执行器
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

var gitVersionPattern = regexp.MustCompile(`version\s+v?(\d+(?:\.\d+){0,2})`)

// Status 检测 CLI 是否安装并读取版本
func (d *Detector) Status(ctx context.Context, cliName string) (CLIStatus, error) {
	status := CLIStatus{Name: cliName}

	output, err := d.runner.Run(ctx, cliName, "--version")
	if err != nil {
		// 命令不存在
		if errors.Is(err, exec.ErrNotFound) || strings.Contains(err.Error(), "not found") {
			return status, nil
		}
		return status, fmt.Errorf("failed to run %s --version: %w", cliName, err)
	}
	status.Installed = true

	matches := gitVersionPattern.FindStringSubmatch(string(output))
	if len(matches) < 2 {
		return status, fmt.Errorf("version not found in output: %q", strings.TrimSpace(string(output)))
	}
	status.Version = matches[1]
	return status, nil
}

// RequireGit 确认 git 已安装；minVersion 非空时同时检查最低版本
func (d *Detector) RequireGit(ctx context.Context, minVersion string) error {
	status, err := d.Status(ctx, "git")
	if err != nil {
		return pderrors.Wrap(pderrors.ErrTypeEnvironment, pderrors.ErrGitUnavailable.Message, err)
	}
	if !status.Installed {
		return pderrors.Wrap(pderrors.ErrTypeEnvironment, pderrors.ErrGitUnavailable.Message, exec.ErrNotFound).
			WithSuggestion("Install git: https://git-scm.com/downloads")
	}
	if minVersion == "" {
		return nil
	}

	ok, err := CheckMinVersion(status.Version, minVersion)
	if err != nil {
		return pderrors.Wrap(pderrors.ErrTypeEnvironment, "cannot determine git version", err)
	}
	if !ok {
		return pderrors.Newf(pderrors.ErrTypeEnvironment,
			"git %s is too old, version %s or newer is required", status.Version, minVersion).
			WithSuggestion("Upgrade git, or push without --force-with-lease")
	}
	return nil
}
