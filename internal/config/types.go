package config

// Prompt backends for the interactive branch selection.
const (
	PromptTUI    = "tui"
	PromptSurvey = "survey"
)

// Default option values.
const (
	DefaultRemote = "origin"
	DefaultPrefix = "deploy"
	DefaultSource = "HEAD"
	DefaultPrompt = PromptTUI
)

// Options is the fully resolved set of inputs for one run.
// Force and ForceWithLease are independent and may both be set.
type Options struct {
	Remote         string
	Prefix         string
	Target         string // glob-like pattern; empty selects prefix mode
	Source         string
	All            bool
	Force          bool
	ForceWithLease bool

	Prompt string
	Debug  bool
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Remote: DefaultRemote,
		Prefix: DefaultPrefix,
		Source: DefaultSource,
		Prompt: DefaultPrompt,
	}
}

// Config 配置文件结构
type Config struct {
	Remote         string `json:"remote,omitempty" yaml:"remote,omitempty"`
	Prefix         string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Source         string `json:"source,omitempty" yaml:"source,omitempty"`
	Prompt         string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	ForceWithLease *bool  `json:"force_with_lease,omitempty" yaml:"force_with_lease,omitempty"`
}

// Manager 配置管理器接口
type Manager interface {
	// Load 加载配置文件；文件不存在时返回 os.ErrNotExist
	Load() (*Config, error)

	// Save 保存配置文件（原子操作）
	Save(config *Config) error

	// CreateDefaultConfig 创建默认配置
	CreateDefaultConfig() error

	// Path 返回配置文件路径
	Path() string
}
