package bullets

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"resuscan/internal/types"
)

// Rewriter rephrases a single bullet for a target role.
type Rewriter interface {
	RewriteBullet(ctx context.Context, bullet, role string) (string, error)
}

// DefaultConcurrency bounds parallel rewrites when none is configured.
const DefaultConcurrency = 4

// Improver rewrites bullets concurrently and keeps their input order.
type Improver struct {
	rewriter    Rewriter
	concurrency int
}

func NewImprover(rewriter Rewriter, concurrency int) *Improver {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Improver{rewriter: rewriter, concurrency: concurrency}
}

// Improve rewrites every bullet. The first failure cancels the remaining
// rewrites and is returned. A rewrite that cleans down to nothing keeps the
// original bullet.
func (im *Improver) Improve(ctx context.Context, bullets []string, role string) ([]types.BulletImprovement, error) {
	out := make([]types.BulletImprovement, len(bullets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)

	for i, bullet := range bullets {
		g.Go(func() error {
			raw, err := im.rewriter.RewriteBullet(gctx, bullet, role)
			if err != nil {
				return fmt.Errorf("bullet %d: %w", i+1, err)
			}
			improved := Clean(raw)
			if improved == "" {
				improved = bullet
			}
			out[i] = types.BulletImprovement{Original: bullet, Improved: improved}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
