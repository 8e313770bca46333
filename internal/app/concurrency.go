package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// lookup is one store read run by fetchEach.
type lookup[T any] func(context.Context) (T, error)

// fetchAll runs three lookups of different types at once. The first error
// cancels the others and is returned unwrapped, so store errors keep their
// domain meaning.
func fetchAll[A, B, C any](
	ctx context.Context,
	a func(context.Context) (A, error),
	b func(context.Context) (B, error),
	c func(context.Context) (C, error),
) (A, B, C, error) {
	var (
		ra A
		rb B
		rc C
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { ra, err = a(ctx); return err })
	g.Go(func() (err error) { rb, err = b(ctx); return err })
	g.Go(func() (err error) { rc, err = c(ctx); return err })

	if err := g.Wait(); err != nil {
		var (
			za A
			zb B
			zc C
		)

		return za, zb, zc, err
	}

	return ra, rb, rc, nil
}

// fetchEach runs the lookups with at most limit in flight and returns their
// results in input order.
func fetchEach[T any](ctx context.Context, limit int, lookups []lookup[T]) ([]T, error) {
	out := make([]T, len(lookups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, fn := range lookups {
		g.Go(func() error {
			v, err := fn(ctx)
			if err != nil {
				return err
			}

			out[i] = v

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
