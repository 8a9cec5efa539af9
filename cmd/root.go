package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/penwyp/pushdeploy/internal/cli"
	"github.com/penwyp/pushdeploy/internal/config"
	"github.com/penwyp/pushdeploy/internal/deploy"
	"github.com/penwyp/pushdeploy/internal/git"
	"github.com/penwyp/pushdeploy/internal/logger"
	"github.com/penwyp/pushdeploy/internal/version"
	"github.com/penwyp/pushdeploy/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// 将关键依赖抽象为接口以便测试时注入 Mock。
// 若在运行时未被替换，则使用默认实现。
var (
	clientProvider   func(dir string, log *zap.Logger) git.Client = defaultClientProvider
	prompterProvider func(kind string) deploy.Prompter            = defaultPrompterProvider
	detectorProvider func() gitDetector                           = defaultDetectorProvider
	interactiveCheck func() bool                                  = ui.IsTTY
	appLogger        *zap.Logger                                  = logger.NewNop()
)

type gitDetector interface {
	RequireGit(ctx context.Context, minVersion string) error
}

// ---------------- 默认实现 ------------------
func defaultClientProvider(dir string, log *zap.Logger) git.Client {
	return git.NewClient(git.NewExecRunner(dir, log), dir, log)
}

func defaultPrompterProvider(kind string) deploy.Prompter {
	if kind == config.PromptSurvey {
		return ui.NewSurveyPrompter()
	}
	return ui.NewCheckboxPrompter()
}

func defaultDetectorProvider() gitDetector {
	return cli.NewDetector(nil)
}

// -------------------------------------------------

var rootCmd = &cobra.Command{
	Use:   "pushdeploy",
	Short: "Push a local ref to one or more deploy branches on a remote",
	Long: `pushdeploy lists the remote branches that match a prefix (default "deploy")
or a target pattern such as "deploy/*", lets you pick the ones to update and
pushes a local ref (default HEAD) to each of them in turn.

Examples:
  pushdeploy                       # choose among origin/deploy and origin/deploy/*
  pushdeploy -a                    # push HEAD to all of them
  pushdeploy -t 'deploy/*/eu' -f   # force push to every deploy/<x>/eu branch
  pushdeploy -s v1.4.0 -r upstream # push the v1.4.0 tag to upstream`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var (
	flagAll            bool
	flagTarget         string
	flagPrefix         string
	flagRemote         string
	flagSource         string
	flagForce          bool
	flagForceWithLease bool
	flagConfig         string
	flagDebug          bool
	flagVersion        bool
)

func init() {
	rootCmd.Flags().BoolVarP(&flagAll, "all", "a", false, "push to every matching branch without asking")
	rootCmd.Flags().StringVarP(&flagTarget, "target", "t", "", "target pattern, '*' matches one path segment (e.g. deploy/*)")
	rootCmd.Flags().StringVarP(&flagPrefix, "prefix", "p", config.DefaultPrefix, "branch name prefix used when no --target is given")
	rootCmd.Flags().StringVarP(&flagRemote, "remote", "r", config.DefaultRemote, "remote to list branches from and push to")
	rootCmd.Flags().StringVarP(&flagSource, "source", "s", config.DefaultSource, "local ref to push")
	rootCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "pass --force to git push")
	rootCmd.Flags().BoolVar(&flagForceWithLease, "force-with-lease", false, "pass --force-with-lease to git push")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default: ./.pushdeploy.yaml, then the user config dir)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug output for troubleshooting")
	rootCmd.Flags().BoolVar(&flagVersion, "version", false, "show version information")

	rootCmd.AddCommand(NewConfigCommand())
}

func ExecuteContext(ctx context.Context) error { return rootCmd.ExecuteContext(ctx) }

func run(cmd *cobra.Command, args []string) error {
	if flagVersion {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var err error
	appLogger, err = logger.New(flagDebug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	opts, err := resolveOptions(cmd, dir)
	if err != nil {
		return err
	}

	// --force-with-lease 需要 git 1.8.5+
	minVersion := ""
	if opts.ForceWithLease {
		minVersion = cli.MinForceWithLeaseVersion
	}
	if err := detectorProvider().RequireGit(ctx, minVersion); err != nil {
		appLogger.Debug("Git detection failed", zap.Error(err))
		return err
	}

	deployer := deploy.New(
		clientProvider(dir, appLogger),
		prompterProvider(opts.Prompt),
		cmd.OutOrStdout(),
		deploy.WithLogger(appLogger),
		deploy.WithInteractiveCheck(interactiveCheck),
	)
	return deployer.Run(ctx, opts)
}

// resolveOptions 合并默认值、配置文件与显式传入的命令行参数
func resolveOptions(cmd *cobra.Command, dir string) (config.Options, error) {
	path := config.Locate(flagConfig, dir)
	opts, err := config.Resolve(path, flagConfig != "")
	if err != nil {
		return opts, err
	}
	if path != "" {
		appLogger.Debug("Loaded config", zap.String("path", path))
	}

	flags := cmd.Flags()
	if flags.Changed("remote") {
		opts.Remote = flagRemote
	}
	if flags.Changed("prefix") {
		opts.Prefix = flagPrefix
	}
	if flags.Changed("source") {
		opts.Source = flagSource
	}
	if flags.Changed("force-with-lease") {
		opts.ForceWithLease = flagForceWithLease
	}
	opts.Target = flagTarget
	opts.All = flagAll
	opts.Force = flagForce
	opts.Debug = flagDebug
	return opts, nil
}
