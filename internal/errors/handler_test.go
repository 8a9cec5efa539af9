package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrorHandler_ClassifyPushOutput 测试 push 输出分类
func TestErrorHandler_ClassifyPushOutput(t *testing.T) {
	tests := []struct {
		name               string
		output             string
		expectedMessage    string
		expectedSuggestion string
	}{
		{
			name:               "stale info",
			output:             " ! [rejected]        HEAD -> deploy/prod (stale info)",
			expectedMessage:    "force-with-lease push to deploy/prod rejected",
			expectedSuggestion: "git fetch",
		},
		{
			name:               "non fast forward",
			output:             " ! [rejected]        HEAD -> deploy/prod (non-fast-forward)",
			expectedMessage:    "remote branch contains commits",
			expectedSuggestion: "--force-with-lease",
		},
		{
			name:               "fetch first",
			output:             " ! [rejected]        HEAD -> deploy/prod (fetch first)",
			expectedMessage:    "remote branch contains commits",
			expectedSuggestion: "--force-with-lease",
		},
		{
			name:               "missing source",
			output:             "error: src refspec v9 does not match any",
			expectedMessage:    "source ref does not exist",
			expectedSuggestion: "--source",
		},
		{
			name:               "permission denied",
			output:             "git@example.com: Permission denied (publickey).",
			expectedMessage:    "permission denied",
			expectedSuggestion: "credentials",
		},
		{
			name:               "network",
			output:             "ssh: Could not resolve host: example.com",
			expectedMessage:    "network error",
			expectedSuggestion: "network connection",
		},
		{
			name:               "unknown",
			output:             "something odd",
			expectedMessage:    "push to deploy/prod failed",
			expectedSuggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewErrorHandler()
			message, suggestion := handler.ClassifyPushOutput("deploy/prod", tt.output)

			assert.Contains(t, message, tt.expectedMessage)
			if tt.expectedSuggestion == "" {
				assert.Empty(t, suggestion)
			} else {
				assert.Contains(t, suggestion, tt.expectedSuggestion)
			}
		})
	}
}

// TestErrorHandler_Format 测试错误格式化
func TestErrorHandler_Format(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedOutput []string
	}{
		{
			name: "environment error with cause",
			err:  Wrap(ErrTypeEnvironment, ErrGitUnavailable.Message, errors.New("fatal: not a git repository")),
			expectedOutput: []string{
				"Cannot communicate with git properly.",
				"fatal: not a git repository",
			},
		},
		{
			name: "operation error with details and suggestion",
			err: New(ErrTypeOperation, "push to deploy/a failed").
				WithDetails("remote: denied\n").
				WithSuggestion("Check your credentials"),
			expectedOutput: []string{
				"push to deploy/a failed\n",
				"remote: denied\n",
				"\nCheck your credentials\n",
			},
		},
		{
			name:           "plain error",
			err:            errors.New("unknown flag: --nope"),
			expectedOutput: []string{"Error: unknown flag: --nope"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &ErrorHandler{NoColor: true}
			output := handler.Format(tt.err)

			for _, expected := range tt.expectedOutput {
				assert.Contains(t, output, expected)
			}
		})
	}
}

func TestErrorHandler_FormatNil(t *testing.T) {
	assert.Equal(t, "", NewErrorHandler().Format(nil))
}

// TestErrorHandler_WrapError 测试错误包装
func TestErrorHandler_WrapError(t *testing.T) {
	handler := NewErrorHandler()

	assert.Nil(t, handler.WrapError(nil, ErrTypeConfig, "reading config"))

	wrapped := handler.WrapError(errors.New("file not found"), ErrTypeConfig, "reading config")
	assert.Equal(t, "reading config: file not found", wrapped.Error())
	assert.Equal(t, ErrTypeConfig, GetType(wrapped))
}
