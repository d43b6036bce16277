package domain

import (
	"golang.org/x/sync/errgroup"

	"github.com/docrun-dev/docrun/internal/adapter"
	m "github.com/docrun-dev/docrun/internal/model"
)

// Discover resolves targets without executing anything, for listing and
// counting. Unlike a run, discovery may parse targets concurrently: each
// target gets its own loader so module registries never race, and results
// keep target order.
func Discover(targets []m.Target, newLoader func() adapter.SourceLoader) ([]m.ExampleGroup, error) {
	results := make([][]m.ExampleGroup, len(targets))

	var g errgroup.Group

	for i, t := range targets {
		g.Go(func() error {
			d := &Driver{loader: newLoader()}

			groups, err := d.gatherTarget(t)
			if err != nil {
				return err
			}

			results[i] = groups

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var groups []m.ExampleGroup
	for _, gs := range results {
		groups = append(groups, gs...)
	}

	return groups, nil
}
