package git

import (
	"context"
	"errors"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	pderrors "github.com/penwyp/pushdeploy/internal/errors"
	"go.uber.org/zap"
)

const remoteRefPrefix = "refs/remotes/"

// ListRemoteBranches 返回 remote 的全部远程跟踪分支（含 remote 前缀），
// 排序方式与 `git branch -r` 一致。符号引用（origin/HEAD）被跳过。
func (c *client) ListRemoteBranches(ctx context.Context, remote string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, err := gogit.PlainOpenWithOptions(c.dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, pderrors.Wrap(pderrors.ErrTypeEnvironment, pderrors.ErrGitUnavailable.Message, err)
	}

	if _, err := repo.Remote(remote); err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return nil, pderrors.Newf(pderrors.ErrTypeEnvironment, "Git remote '%s' not found", remote).
				WithSuggestion("Run: git remote add " + remote + " <url>")
		}
		return nil, pderrors.Wrap(pderrors.ErrTypeEnvironment, "failed to read remote configuration", err)
	}

	refs, err := repo.References()
	if err != nil {
		return nil, pderrors.Wrap(pderrors.ErrTypeEnvironment, "failed to read references", err)
	}
	defer refs.Close()

	prefix := remoteRefPrefix + remote + "/"
	var names []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if !name.IsRemote() || !strings.HasPrefix(name.String(), prefix) {
			return nil
		}
		if ref.Type() == plumbing.SymbolicReference {
			return nil
		}
		names = append(names, strings.TrimPrefix(name.String(), remoteRefPrefix))
		return nil
	})
	if err != nil {
		return nil, pderrors.Wrap(pderrors.ErrTypeEnvironment, "failed to iterate references", err)
	}

	sort.Strings(names)
	c.logger.Debug("Listed remote branches",
		zap.String("remote", remote),
		zap.Strings("branches", names))
	return names, nil
}
