package git

import "context"

// Runner git 命令执行器接口
type Runner interface {
	// Run executes the command and returns its combined output.
	Run(ctx context.Context, command string, args ...string) (string, error)
}

// PushOptions carries the force flags of a single push. Both may be set at the
// same time; they are passed through to git unchanged.
type PushOptions struct {
	Force          bool
	ForceWithLease bool
}

// Client is the narrow view of git needed to deploy a ref to remote branches.
type Client interface {
	// Status 检查当前目录是否为可用的 git 仓库
	Status(ctx context.Context) error

	// ListRemoteBranches 列出 remote 下的远程跟踪分支，形如 origin/deploy/prod
	ListRemoteBranches(ctx context.Context, remote string) ([]string, error)

	// Push 推送 refspec（source:target）到 remote
	Push(ctx context.Context, remote, refspec string, opts PushOptions) error
}
