package errors

import (
	"errors"
	"strings"

	"github.com/fatih/color"
)

// ErrorHandler 错误处理器
type ErrorHandler struct {
	// NoColor disables ANSI colors, mainly for tests.
	NoColor bool
}

// NewErrorHandler 创建新的错误处理器
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// ClassifyPushOutput turns the combined output of a failed `git push` into a
// user-facing message and suggestion.
func (h *ErrorHandler) ClassifyPushOutput(target, output string) (message, suggestion string) {
	switch {
	case strings.Contains(output, "stale info"):
		return "force-with-lease push to " + target + " rejected: the remote branch changed since it was last fetched",
			"Run 'git fetch' and inspect the remote branch before retrying, or use --force to overwrite it"
	case strings.Contains(output, "non-fast-forward") || strings.Contains(output, "fetch first"):
		return "push to " + target + " rejected: the remote branch contains commits that are not in the source",
			"Use --force-with-lease (or --force) to overwrite the remote branch"
	case strings.Contains(output, "src refspec") && strings.Contains(output, "does not match any"):
		return "push to " + target + " failed: the source ref does not exist",
			"Check the --source value"
	case strings.Contains(output, "Permission denied") || strings.Contains(output, "403"):
		return "push to " + target + " failed: permission denied",
			"Check your credentials and repository permissions"
	case strings.Contains(output, "Could not resolve host") || strings.Contains(output, "Connection refused") ||
		strings.Contains(output, "timed out"):
		return "push to " + target + " failed: network error",
			"Check your network connection and try again"
	}
	return "push to " + target + " failed", ""
}

// Format 格式化错误信息为用户友好的输出
func (h *ErrorHandler) Format(err error) string {
	if err == nil {
		return ""
	}

	red := color.New(color.FgRed)
	grey := color.New(color.FgHiBlack)
	if h.NoColor {
		red.DisableColor()
		grey.DisableColor()
	}

	var sb strings.Builder

	var pdErr *PushdeployError
	if !errors.As(err, &pdErr) {
		sb.WriteString(red.Sprintf("Error: %s", err.Error()))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(red.Sprintf("%s", pdErr.Message))
	sb.WriteString("\n")

	// 原始错误（灰色）
	if pdErr.Cause != nil {
		sb.WriteString(grey.Sprintf("%s", pdErr.Cause.Error()))
		sb.WriteString("\n")
	}
	if pdErr.Details != "" {
		sb.WriteString(grey.Sprintf("%s", strings.TrimSpace(pdErr.Details)))
		sb.WriteString("\n")
	}

	if pdErr.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(pdErr.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WrapError 包装错误，添加上下文信息
func (h *ErrorHandler) WrapError(err error, errType ErrorType, context string) error {
	if err == nil {
		return nil
	}
	return Wrap(errType, context, err)
}
