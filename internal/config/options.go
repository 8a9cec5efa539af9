package config

import (
	"errors"
	"os"
	"path/filepath"

	pderrors "github.com/penwyp/pushdeploy/internal/errors"
)

// RepoConfigName is looked up in the repository working directory.
const RepoConfigName = ".pushdeploy.yaml"

// ValidatePrompt rejects unknown prompt backends.
func ValidatePrompt(prompt string) error {
	switch prompt {
	case PromptTUI, PromptSurvey:
		return nil
	}
	return pderrors.Newf(pderrors.ErrTypeConfig, "unknown prompt %q", prompt).
		WithSuggestion("Valid prompts: " + PromptTUI + ", " + PromptSurvey)
}

// Apply overlays the non-empty values of c onto o.
func (o Options) Apply(c *Config) Options {
	if c == nil {
		return o
	}
	if c.Remote != "" {
		o.Remote = c.Remote
	}
	if c.Prefix != "" {
		o.Prefix = c.Prefix
	}
	if c.Source != "" {
		o.Source = c.Source
	}
	if c.Prompt != "" {
		o.Prompt = c.Prompt
	}
	if c.ForceWithLease != nil {
		o.ForceWithLease = *c.ForceWithLease
	}
	return o
}

// UserConfigPath returns $XDG_CONFIG_HOME/pushdeploy/config.yaml
// (os.UserConfigDir semantics).
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pushdeploy", "config.yaml"), nil
}

// Locate 查找配置文件：显式路径 > 仓库目录下 .pushdeploy.yaml > 用户配置目录。
// 未找到时返回空字符串。
func Locate(explicit, repoDir string) string {
	if explicit != "" {
		return explicit
	}
	candidates := []string{filepath.Join(repoDir, RepoConfigName)}
	if p, err := UserConfigPath(); err == nil {
		candidates = append(candidates, p)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Resolve merges defaults with the config file at path (if any). A missing
// file is only an error when it was requested explicitly.
func Resolve(path string, explicit bool) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	manager, err := NewYAMLConfigManager(path)
	if err != nil {
		return opts, err
	}
	cfg, err := manager.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return opts, nil
		}
		return opts, pderrors.NewErrorHandler().WrapError(err, pderrors.ErrTypeConfig, "failed to load config "+path)
	}

	opts = opts.Apply(cfg)
	if err := ValidatePrompt(opts.Prompt); err != nil {
		return opts, err
	}
	return opts, nil
}
