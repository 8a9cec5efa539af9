// Package deploy runs the pushdeploy pipeline: probe the repository, list the
// remote branches, filter them into candidates, select targets and push the
// source ref to each target in order.
//
// Nothing here exits the process. Every failure is returned as an error whose
// kind (internal/errors) decides the exit code in main.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/penwyp/pushdeploy/internal/branch"
	"github.com/penwyp/pushdeploy/internal/config"
	pderrors "github.com/penwyp/pushdeploy/internal/errors"
	"github.com/penwyp/pushdeploy/internal/git"
	"github.com/penwyp/pushdeploy/ui"
	"go.uber.org/zap"
)

// Prompter presents an ordered list of choices and returns the chosen subset.
// An empty result is a valid answer.
type Prompter interface {
	MultiChoice(ctx context.Context, message string, choices []string) ([]string, error)
}

// Deployer wires the git client and the prompt together.
type Deployer struct {
	client      git.Client
	prompter    Prompter
	out         io.Writer
	logger      *zap.Logger
	interactive func() bool
	styles      ui.UIStyles
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Deployer) { d.logger = logger }
}

// WithInteractiveCheck replaces the terminal detection used before prompting.
func WithInteractiveCheck(check func() bool) Option {
	return func(d *Deployer) { d.interactive = check }
}

// New returns a Deployer writing progress to out.
func New(client git.Client, prompter Prompter, out io.Writer, opts ...Option) *Deployer {
	d := &Deployer{
		client:      client,
		prompter:    prompter,
		out:         out,
		logger:      zap.NewNop(),
		interactive: ui.IsTTY,
		styles:      ui.DefaultStyles(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes the whole pipeline once.
func (d *Deployer) Run(ctx context.Context, opts config.Options) error {
	d.logger.Debug("Resolved options",
		zap.String("remote", opts.Remote),
		zap.String("prefix", opts.Prefix),
		zap.String("target", opts.Target),
		zap.String("source", opts.Source),
		zap.Bool("all", opts.All),
		zap.Bool("force", opts.Force),
		zap.Bool("force_with_lease", opts.ForceWithLease))

	if err := d.client.Status(ctx); err != nil {
		return err
	}

	candidates, err := d.Candidates(ctx, opts)
	if err != nil {
		return err
	}

	targets, err := d.Select(ctx, candidates, opts)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		_, _ = fmt.Fprintln(d.out, d.styles.Warning.Render("No branch selected."))
		return nil
	}

	return d.Dispatch(ctx, opts, targets)
}

// Candidates lists the remote branches of opts.Remote and filters them.
func (d *Deployer) Candidates(ctx context.Context, opts config.Options) ([]string, error) {
	remoteBranches, err := d.client.ListRemoteBranches(ctx, opts.Remote)
	if err != nil {
		return nil, err
	}
	names := branch.StripRemote(opts.Remote, remoteBranches)

	candidates, err := branch.Filter(names, opts.Remote, opts.Prefix, opts.Target)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("Filtered candidates",
		zap.Int("remote_branches", len(names)),
		zap.Strings("candidates", candidates))
	return candidates, nil
}

// Select decides which candidates to push to:
//
//	0 candidates        -> nothing
//	1 candidate         -> that one, no prompt
//	>1 with opts.All    -> all of them, no prompt
//	>1 otherwise        -> whatever the prompt returns
//
// A canceled prompt counts as an empty selection.
func (d *Deployer) Select(ctx context.Context, candidates []string, opts config.Options) ([]string, error) {
	switch {
	case len(candidates) == 0:
		return nil, nil
	case len(candidates) == 1, opts.All:
		return candidates, nil
	}

	if d.interactive != nil && !d.interactive() {
		return nil, pderrors.ErrNotATerminal
	}

	message := fmt.Sprintf("Which branch do you want %s to push to?", d.styles.Ref.Render(opts.Source))
	selected, err := d.prompter.MultiChoice(ctx, message, candidates)
	if err != nil {
		if errors.Is(err, ui.ErrCanceled) {
			d.logger.Debug("Prompt canceled")
			return nil, nil
		}
		return nil, err
	}
	return selected, nil
}
