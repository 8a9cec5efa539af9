package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/pushdeploy/cmd"
	pderrors "github.com/penwyp/pushdeploy/internal/errors"
)

// main 为 CLI 入口：只有这里决定退出码。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, pderrors.NewErrorHandler().Format(err))
	}
	os.Exit(pderrors.ExitCode(err))
}
