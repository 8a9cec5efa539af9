package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildBinary 构建 pushdeploy 可执行文件并返回路径。
func buildBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "pushdeploy-bin")
	if runtime.GOOS == "windows" {
		binPath += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", binPath, "github.com/penwyp/pushdeploy")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v, output: %s", err, string(out))
	}
	return binPath
}

// TestHelper provides utilities for E2E tests
type TestHelper struct {
	t       *testing.T
	binPath string
	home    string
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	return &TestHelper{
		t:       t,
		binPath: buildBinary(t),
		home:    t.TempDir(),
	}
}

// Workspace is a clone wired to a bare "origin" repository.
type Workspace struct {
	Remote string
	Clone  string
}

// CreateWorkspace creates a bare remote holding main plus the given branches
// (all pointing at the initial commit) and clones it.
func (h *TestHelper) CreateWorkspace(branches ...string) Workspace {
	remote := filepath.Join(h.t.TempDir(), "remote.git")
	h.runGit("", "init", "--bare", remote)

	seed := h.t.TempDir()
	h.runGit(seed, "init")
	h.configure(seed)
	require.NoError(h.t, os.WriteFile(filepath.Join(seed, "README.md"), []byte("# Test Repository\n"), 0644))
	h.runGit(seed, "add", "README.md")
	h.runGit(seed, "commit", "-m", "chore: initial commit")
	h.runGit(seed, "branch", "-M", "main")
	h.runGit(seed, "remote", "add", "origin", remote)
	h.runGit(seed, "push", "origin", "main")
	for _, b := range branches {
		h.runGit(seed, "push", "origin", "main:refs/heads/"+b)
	}
	// 裸仓库默认 HEAD 可能指向 master，显式指向 main
	h.runGit(remote, "symbolic-ref", "HEAD", "refs/heads/main")

	clone := filepath.Join(h.t.TempDir(), "clone")
	h.runGit("", "clone", "-b", "main", remote, clone)
	h.configure(clone)
	return Workspace{Remote: remote, Clone: clone}
}

// Commit adds a new commit on the current branch and returns its hash.
func (h *TestHelper) Commit(dir, filename, content string) string {
	require.NoError(h.t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644))
	h.runGit(dir, "add", filename)
	h.runGit(dir, "commit", "-m", "feat: "+filename)
	return h.RevParse(dir, "HEAD")
}

// RevParse resolves ref in dir.
func (h *TestHelper) RevParse(dir, ref string) string {
	return strings.TrimSpace(h.gitOutput(dir, "rev-parse", ref))
}

// Run executes pushdeploy in dir and returns combined output.
func (h *TestHelper) Run(dir string, args ...string) (string, error) {
	cmd := exec.Command(h.binPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"HOME="+h.home,
		"XDG_CONFIG_HOME="+filepath.Join(h.home, ".config"),
		"GIT_TERMINAL_PROMPT=0",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// AssertExitCode checks the exit code of an exec.ExitError
func (h *TestHelper) AssertExitCode(err error, expectedCode int) {
	exitErr, ok := err.(*exec.ExitError)
	require.True(h.t, ok, "expected exec.ExitError, got %T", err)
	require.Equal(h.t, expectedCode, exitErr.ExitCode())
}

func (h *TestHelper) configure(dir string) {
	h.runGit(dir, "config", "user.email", "test@example.com")
	h.runGit(dir, "config", "user.name", "Test User")
}

// runGit executes a git command in the specified directory
func (h *TestHelper) runGit(dir string, args ...string) {
	h.gitOutput(dir, args...)
}

func (h *TestHelper) gitOutput(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1", "HOME="+h.home)
	out, err := cmd.CombinedOutput()
	if err != nil {
		h.t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
	return string(out)
}
