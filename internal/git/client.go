package git

import (
	"context"
	"strings"

	pderrors "github.com/penwyp/pushdeploy/internal/errors"
	"go.uber.org/zap"
)

// client 通过 git 命令行与 go-git 实现 Client。
// Status 与 Push 走命令行（凭据、hooks 与用户配置保持一致），
// 远程分支列表直接读取仓库引用。
type client struct {
	runner  Runner
	dir     string
	logger  *zap.Logger
	handler *pderrors.ErrorHandler
}

// NewClient 创建新的 git 客户端
func NewClient(runner Runner, dir string, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &client{
		runner:  runner,
		dir:     dir,
		logger:  logger,
		handler: pderrors.NewErrorHandler(),
	}
}

// Status 请求一次 status 快照，失败即视为环境错误
func (c *client) Status(ctx context.Context) error {
	output, err := c.runner.Run(ctx, "git", "status", "--porcelain")
	if err != nil {
		c.logger.Debug("git status failed", zap.Error(err), zap.String("output", output))
		return pderrors.Wrap(pderrors.ErrTypeEnvironment, pderrors.ErrGitUnavailable.Message, err).
			WithDetails(output)
	}
	return nil
}

// Push 执行 git push [--force] [--force-with-lease] <remote> <refspec>
func (c *client) Push(ctx context.Context, remote, refspec string, opts PushOptions) error {
	args := pushArgs(remote, refspec, opts)

	output, err := c.runner.Run(ctx, "git", args...)
	if err != nil {
		c.logger.Debug("Git push failed",
			zap.Error(err),
			zap.String("refspec", refspec),
			zap.String("output", output))

		target := refspec
		if i := strings.LastIndex(refspec, ":"); i >= 0 {
			target = refspec[i+1:]
		}
		message, suggestion := c.handler.ClassifyPushOutput(target, output)
		return pderrors.Wrap(pderrors.ErrTypeOperation, message, err).
			WithDetails(output).
			WithSuggestion(suggestion)
	}

	c.logger.Debug("Git push succeeded",
		zap.String("refspec", refspec),
		zap.String("output", output))
	return nil
}

func pushArgs(remote, refspec string, opts PushOptions) []string {
	args := []string{"push"}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.ForceWithLease {
		args = append(args, "--force-with-lease")
	}
	return append(args, remote, refspec)
}
