package cli

import "context"

// CLIStatus CLI工具状态信息
type CLIStatus struct {
	Name      string // CLI名称 (git)
	Installed bool   // 是否已安装
	Version   string // 版本号，如 2.43.0
}

// CommandRunner 命令执行器接口
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
