package git

import (
	"context"
	"errors"
	"testing"

	pderrors "github.com/penwyp/pushdeploy/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRunner 用于模拟git命令执行
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, command string, args ...string) (string, error) {
	arguments := m.Called(ctx, command, args)
	return arguments.String(0), arguments.Error(1)
}

func TestStatus(t *testing.T) {
	t.Run("clean repository", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, "git", []string{"status", "--porcelain"}).Return("", nil)

		err := NewClient(runner, "", nil).Status(context.Background())
		require.NoError(t, err)
		runner.AssertExpectations(t)
	})

	t.Run("not a repository", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, "git", []string{"status", "--porcelain"}).
			Return("fatal: not a git repository (or any of the parent directories): .git\n", errors.New("exit status 128"))

		err := NewClient(runner, "", nil).Status(context.Background())
		require.Error(t, err)
		assert.True(t, pderrors.Is(err, pderrors.ErrGitUnavailable))
		assert.Equal(t, pderrors.ErrTypeEnvironment, pderrors.GetType(err))

		var pdErr *pderrors.PushdeployError
		require.True(t, pderrors.As(err, &pdErr))
		assert.Contains(t, pdErr.Details, "not a git repository")
	})
}

func TestPush_Args(t *testing.T) {
	tests := []struct {
		name     string
		opts     PushOptions
		expected []string
	}{
		{
			name:     "plain push",
			opts:     PushOptions{},
			expected: []string{"push", "origin", "HEAD:deploy/a"},
		},
		{
			name:     "force",
			opts:     PushOptions{Force: true},
			expected: []string{"push", "--force", "origin", "HEAD:deploy/a"},
		},
		{
			name:     "force with lease",
			opts:     PushOptions{ForceWithLease: true},
			expected: []string{"push", "--force-with-lease", "origin", "HEAD:deploy/a"},
		},
		{
			name:     "both flags are passed through",
			opts:     PushOptions{Force: true, ForceWithLease: true},
			expected: []string{"push", "--force", "--force-with-lease", "origin", "HEAD:deploy/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(MockRunner)
			runner.On("Run", mock.Anything, "git", tt.expected).Return("", nil)

			err := NewClient(runner, "", nil).Push(context.Background(), "origin", "HEAD:deploy/a", tt.opts)
			require.NoError(t, err)
			runner.AssertExpectations(t)
		})
	}
}

func TestPush_Failure(t *testing.T) {
	runner := new(MockRunner)
	output := "To example.com:repo.git\n ! [rejected]        HEAD -> deploy/b (stale info)\n"
	runner.On("Run", mock.Anything, "git", []string{"push", "--force-with-lease", "origin", "HEAD:deploy/b"}).
		Return(output, errors.New("exit status 1"))

	err := NewClient(runner, "", nil).Push(context.Background(), "origin", "HEAD:deploy/b", PushOptions{ForceWithLease: true})
	require.Error(t, err)
	assert.Equal(t, pderrors.ErrTypeOperation, pderrors.GetType(err))
	assert.Contains(t, err.Error(), "deploy/b")
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Contains(t, pderrors.GetSuggestion(err), "git fetch")
}
