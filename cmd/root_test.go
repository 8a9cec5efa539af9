package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/pushdeploy/internal/deploy"
	pderrors "github.com/penwyp/pushdeploy/internal/errors"
	"github.com/penwyp/pushdeploy/internal/git"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---------------- Mock 实现 ----------------

type pushCall struct {
	remote  string
	refspec string
	opts    git.PushOptions
}

type fakeClient struct {
	statusErr error
	branches  []string
	pushErr   map[string]error
	listed    string
	pushes    []pushCall
}

func (f *fakeClient) Status(_ context.Context) error { return f.statusErr }

func (f *fakeClient) ListRemoteBranches(_ context.Context, remote string) ([]string, error) {
	f.listed = remote
	return f.branches, nil
}

func (f *fakeClient) Push(_ context.Context, remote, refspec string, opts git.PushOptions) error {
	f.pushes = append(f.pushes, pushCall{remote: remote, refspec: refspec, opts: opts})
	return f.pushErr[refspec]
}

type fakePrompter struct {
	answer []string
	called bool
}

func (f *fakePrompter) MultiChoice(_ context.Context, _ string, _ []string) ([]string, error) {
	f.called = true
	return f.answer, nil
}

type fakeDetector struct {
	minVersion string
	err        error
}

func (f *fakeDetector) RequireGit(_ context.Context, minVersion string) error {
	f.minVersion = minVersion
	return f.err
}

// ------------------------------------------------

type harness struct {
	client   *fakeClient
	prompter *fakePrompter
	detector *fakeDetector
	prompt   string
	out      bytes.Buffer
}

// setup 注入 mock 依赖并在测试结束后恢复
func setup(t *testing.T, client *fakeClient) *harness {
	t.Helper()

	origClient, origPrompter, origDetector, origInteractive := clientProvider, prompterProvider, detectorProvider, interactiveCheck
	t.Cleanup(func() {
		clientProvider, prompterProvider, detectorProvider, interactiveCheck = origClient, origPrompter, origDetector, origInteractive
		resetFlags()
		rootCmd.SetArgs(nil)
	})

	// 隔离用户配置目录
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	resetFlags()

	h := &harness{client: client, prompter: &fakePrompter{}, detector: &fakeDetector{}}
	clientProvider = func(string, *zap.Logger) git.Client { return h.client }
	prompterProvider = func(kind string) deploy.Prompter { h.prompt = kind; return h.prompter }
	detectorProvider = func() gitDetector { return h.detector }
	interactiveCheck = func() bool { return true }

	rootCmd.SetOut(&h.out)
	rootCmd.SetErr(&h.out)
	return h
}

func resetFlags() {
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return ExecuteContext(context.Background())
}

func TestRoot_AllPushesEveryCandidate(t *testing.T) {
	h := setup(t, &fakeClient{branches: []string{"origin/deploy/a", "origin/deploy/b", "origin/main"}})

	require.NoError(t, execute("--all"))

	assert.Equal(t, "origin", h.client.listed)
	require.Len(t, h.client.pushes, 2)
	assert.Equal(t, "HEAD:deploy/a", h.client.pushes[0].refspec)
	assert.Equal(t, "HEAD:deploy/b", h.client.pushes[1].refspec)
	assert.False(t, h.prompter.called)
	assert.Contains(t, h.out.String(), "[2/2]")
	assert.Contains(t, h.out.String(), "Done. 🎉")
}

func TestRoot_FlagsReachPush(t *testing.T) {
	h := setup(t, &fakeClient{branches: []string{"upstream/release/eu", "upstream/release/us/x"}})

	require.NoError(t, execute("-r", "upstream", "-t", "release/*", "-s", "v1.2.0", "-f", "--force-with-lease"))

	assert.Equal(t, "upstream", h.client.listed)
	require.Len(t, h.client.pushes, 1)
	assert.Equal(t, pushCall{
		remote:  "upstream",
		refspec: "v1.2.0:release/eu",
		opts:    git.PushOptions{Force: true, ForceWithLease: true},
	}, h.client.pushes[0])
	assert.Equal(t, "1.8.5", h.detector.minVersion)
}

func TestRoot_NoVersionGateWithoutLease(t *testing.T) {
	h := setup(t, &fakeClient{branches: []string{"origin/deploy"}})

	require.NoError(t, execute())
	assert.Empty(t, h.detector.minVersion)
	require.Len(t, h.client.pushes, 1)
	assert.Equal(t, "HEAD:deploy", h.client.pushes[0].refspec)
}

func TestRoot_PromptsWhenSeveralCandidates(t *testing.T) {
	h := setup(t, &fakeClient{branches: []string{"origin/deploy/a", "origin/deploy/b"}})
	h.prompter.answer = []string{"deploy/b"}

	require.NoError(t, execute())

	assert.True(t, h.prompter.called)
	assert.Equal(t, "tui", h.prompt)
	require.Len(t, h.client.pushes, 1)
	assert.Equal(t, "HEAD:deploy/b", h.client.pushes[0].refspec)
}

func TestRoot_EmptySelectionIsSuccess(t *testing.T) {
	h := setup(t, &fakeClient{branches: []string{"origin/deploy/a", "origin/deploy/b"}})

	require.NoError(t, execute())
	assert.Empty(t, h.client.pushes)
	assert.Contains(t, h.out.String(), "No branch selected.")
}

func TestRoot_NoCandidatesInPrefixMode(t *testing.T) {
	h := setup(t, &fakeClient{branches: []string{"origin/main"}})

	err := execute()
	require.Error(t, err)
	assert.Equal(t, pderrors.ErrTypeSelection, pderrors.GetType(err))
	assert.Equal(t, 1, pderrors.ExitCode(err))
	assert.False(t, h.prompter.called)
	assert.Empty(t, h.client.pushes)
}

func TestRoot_ProbeFailure(t *testing.T) {
	h := setup(t, &fakeClient{statusErr: pderrors.ErrGitUnavailable})

	err := execute("--all")
	require.ErrorIs(t, err, pderrors.ErrGitUnavailable)
	assert.Empty(t, h.client.pushes)
}

func TestRoot_DetectorFailure(t *testing.T) {
	h := setup(t, &fakeClient{branches: []string{"origin/deploy"}})
	h.detector.err = pderrors.New(pderrors.ErrTypeEnvironment, "git is too old")

	err := execute("--force-with-lease")
	require.Error(t, err)
	assert.Equal(t, pderrors.ErrTypeEnvironment, pderrors.GetType(err))
	assert.Empty(t, h.client.pushes)
}

func TestRoot_PushFailureStops(t *testing.T) {
	h := setup(t, &fakeClient{
		branches: []string{"origin/deploy/a", "origin/deploy/b", "origin/deploy/c"},
		pushErr:  map[string]error{"HEAD:deploy/b": pderrors.New(pderrors.ErrTypeOperation, "rejected")},
	})

	err := execute("-a")
	require.Error(t, err)
	assert.Equal(t, 1, pderrors.ExitCode(err))
	assert.Len(t, h.client.pushes, 2)
	assert.NotContains(t, h.out.String(), "Done.")
}

func TestRoot_Version(t *testing.T) {
	h := setup(t, &fakeClient{})

	require.NoError(t, execute("--version"))
	assert.Contains(t, h.out.String(), "pushdeploy version ")
	assert.Empty(t, h.client.pushes)
}

func TestRoot_RejectsArgs(t *testing.T) {
	setup(t, &fakeClient{})
	require.Error(t, execute("deploy/a"))
}

func TestRoot_ConfigFile(t *testing.T) {
	h := setup(t, &fakeClient{branches: []string{"upstream/release/a", "upstream/release/b"}})

	path := filepath.Join(t.TempDir(), "pushdeploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote: upstream\nprefix: release\nprompt: survey\nforce_with_lease: true\n"), 0o644))
	h.prompter.answer = []string{"release/a"}

	require.NoError(t, execute("--config", path))

	assert.Equal(t, "upstream", h.client.listed)
	assert.Equal(t, "survey", h.prompt)
	require.Len(t, h.client.pushes, 1)
	assert.True(t, h.client.pushes[0].opts.ForceWithLease)
}

func TestRoot_FlagsOverrideConfigFile(t *testing.T) {
	h := setup(t, &fakeClient{branches: []string{"origin/deploy"}})

	path := filepath.Join(t.TempDir(), "pushdeploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote: upstream\nsource: main\n"), 0o644))

	require.NoError(t, execute("--config", path, "-r", "origin"))

	assert.Equal(t, "origin", h.client.listed)
	require.Len(t, h.client.pushes, 1)
	assert.Equal(t, "main:deploy", h.client.pushes[0].refspec)
}

func TestRoot_MissingExplicitConfig(t *testing.T) {
	setup(t, &fakeClient{})

	err := execute("--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, pderrors.ErrTypeConfig, pderrors.GetType(err))
}

func TestRoot_InvalidPromptInConfig(t *testing.T) {
	setup(t, &fakeClient{})

	path := filepath.Join(t.TempDir(), "pushdeploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: fancy\n"), 0o644))

	err := execute("--config", path)
	require.Error(t, err)
	assert.Equal(t, pderrors.ErrTypeConfig, pderrors.GetType(err))
}

func TestDefaultProviders(t *testing.T) {
	t.Run("defaultClientProvider", func(t *testing.T) {
		require.NotNil(t, defaultClientProvider(t.TempDir(), zap.NewNop()))
	})

	t.Run("defaultPrompterProvider", func(t *testing.T) {
		require.NotNil(t, defaultPrompterProvider("tui"))
		require.NotNil(t, defaultPrompterProvider("survey"))
	})

	t.Run("defaultDetectorProvider", func(t *testing.T) {
		require.Implements(t, (*gitDetector)(nil), defaultDetectorProvider())
	})
}
