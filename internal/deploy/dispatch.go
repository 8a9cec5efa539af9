package deploy

import (
	"context"
	"fmt"

	"github.com/penwyp/pushdeploy/internal/config"
	pderrors "github.com/penwyp/pushdeploy/internal/errors"
	"github.com/penwyp/pushdeploy/internal/git"
	"go.uber.org/zap"
)

// Dispatch pushes opts.Source to every target, one at a time and in order.
// The first failure stops the loop and is returned; later targets are not
// attempted.
func (d *Deployer) Dispatch(ctx context.Context, opts config.Options, targets []string) error {
	total := len(targets)
	source := d.styles.Ref.Render(opts.Source)
	pushOpts := git.PushOptions{
		Force:          opts.Force,
		ForceWithLease: opts.ForceWithLease,
	}

	if total > 1 {
		_, _ = fmt.Fprintf(d.out, "Pushing %s to %d branches.\n", source, total)
	}

	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		counter := ""
		if total > 1 {
			counter = fmt.Sprintf("[%d/%d] ", i+1, total)
		}
		_, _ = fmt.Fprintf(d.out, "%sPushing %s to %s…\n", counter, source, d.styles.Ref.Render(target))

		refspec := opts.Source + ":" + target
		d.logger.Debug("Pushing",
			zap.String("remote", opts.Remote),
			zap.String("refspec", refspec),
			zap.Int("index", i+1),
			zap.Int("total", total))

		if err := d.client.Push(ctx, opts.Remote, refspec, pushOpts); err != nil {
			if pderrors.GetType(err) == pderrors.ErrTypeUnknown {
				return pderrors.Wrap(pderrors.ErrTypeOperation, "push to "+target+" failed", err)
			}
			return err
		}
	}

	_, _ = fmt.Fprintln(d.out, d.styles.Success.Render("Done. 🎉"))
	return nil
}
