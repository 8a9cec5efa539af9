package errors

import (
	"errors"
	"fmt"
)

// ErrorType 定义错误类型
type ErrorType int

const (
	// ErrTypeUnknown 未知错误
	ErrTypeUnknown ErrorType = iota
	// ErrTypeEnvironment git 不可用或当前目录不是仓库
	ErrTypeEnvironment
	// ErrTypeSelection 没有可推送的目标分支
	ErrTypeSelection
	// ErrTypeOperation push 执行失败
	ErrTypeOperation
	// ErrTypeConfig 配置相关错误
	ErrTypeConfig
)

// String returns a short label for the error type, used in debug logs.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeEnvironment:
		return "environment"
	case ErrTypeSelection:
		return "selection"
	case ErrTypeOperation:
		return "operation"
	case ErrTypeConfig:
		return "config"
	default:
		return "unknown"
	}
}

// PushdeployError 统一错误结构
type PushdeployError struct {
	Type       ErrorType
	Message    string
	Details    string
	Cause      error
	Suggestion string
}

// Error 实现 error 接口
func (e *PushdeployError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap 支持 errors.Is 和 errors.As
func (e *PushdeployError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a PushdeployError of the same type and message,
// so errors built with Wrap match the predefined sentinels below.
func (e *PushdeployError) Is(target error) bool {
	t, ok := target.(*PushdeployError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithSuggestion 添加解决建议
func (e *PushdeployError) WithSuggestion(suggestion string) *PushdeployError {
	e.Suggestion = suggestion
	return e
}

// WithDetails attaches raw command output or other diagnostics.
func (e *PushdeployError) WithDetails(details string) *PushdeployError {
	e.Details = details
	return e
}

// New 创建新的 PushdeployError
func New(errType ErrorType, message string) *PushdeployError {
	return &PushdeployError{
		Type:    errType,
		Message: message,
	}
}

// Newf is New with a format string.
func Newf(errType ErrorType, format string, args ...interface{}) *PushdeployError {
	return New(errType, fmt.Sprintf(format, args...))
}

// Wrap 包装已有错误
func Wrap(errType ErrorType, message string, cause error) *PushdeployError {
	return &PushdeployError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// 预定义的常见错误
var (
	ErrGitUnavailable = New(ErrTypeEnvironment,
		"Cannot communicate with git properly. Do you have git installed? Are you running this command in a git repository?")

	ErrNotATerminal = New(ErrTypeSelection, "interactive selection requires a terminal").WithSuggestion(
		"Use --all to push to every matching branch, or --target to narrow the selection")
)

// Is 检查是否为特定错误
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As 尝试转换为特定错误类型
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetType 获取错误类型
func GetType(err error) ErrorType {
	var pdErr *PushdeployError
	if errors.As(err, &pdErr) {
		return pdErr.Type
	}
	return ErrTypeUnknown
}

// GetSuggestion 获取错误建议
func GetSuggestion(err error) string {
	var pdErr *PushdeployError
	if errors.As(err, &pdErr) {
		return pdErr.Suggestion
	}
	return ""
}

// ExitCode maps an error returned from the command tree to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	switch GetType(err) {
	case ErrTypeEnvironment:
		return ExitCodeEnvironment
	case ErrTypeSelection:
		return ExitCodeSelection
	case ErrTypeOperation:
		return ExitCodeOperation
	default:
		return ExitCodeGenericError
	}
}
