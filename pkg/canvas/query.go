package canvas

import (
	"context"
	"time"

	"github.com/matzehuels/cardsheet/pkg/card"
	"github.com/matzehuels/cardsheet/pkg/cluster"
	"github.com/matzehuels/cardsheet/pkg/grid"
	"github.com/matzehuels/cardsheet/pkg/observability"
	"github.com/matzehuels/cardsheet/pkg/ray"
)

// AdjacentLine returns the contiguous run of cards through cd along dir's
// axis, ordered in dir. cd is included.
func (c *Canvas) AdjacentLine(cd *card.Card, dir grid.Point) ([]*card.Card, error) {
	p, l, err := c.position(cd)
	if err != nil {
		return nil, err
	}
	entries, err := ray.Line(c.sheets[cd.SheetID], ray.Ray{
		Start:        p,
		Direction:    dir,
		Layer:        l,
		SheetID:      cd.SheetID,
		Nulls:        ray.StopAtFirstNull,
		IncludeStart: true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*card.Card, len(entries))
	for i, e := range entries {
		out[i] = e.Item
	}
	return out, nil
}

// Cast walks a ray from the cell of cd and returns the cards met.
func (c *Canvas) Cast(cd *card.Card, dir grid.Point, maxDistance int, nulls ray.NullBehavior) ([]*card.Card, error) {
	p, l, err := c.position(cd)
	if err != nil {
		return nil, err
	}
	entries, err := ray.Cast(c.sheets[cd.SheetID], ray.Ray{
		Start:       p,
		Direction:   dir,
		Layer:       l,
		SheetID:     cd.SheetID,
		MaxDistance: maxDistance,
		Nulls:       nulls,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*card.Card, len(entries))
	for i, e := range entries {
		out[i] = e.Item
	}
	return out, nil
}

// Neighbors returns the occupied cells around cd, clockwise from north-west.
func (c *Canvas) Neighbors(cd *card.Card) ([]*card.Card, error) {
	p, l, err := c.position(cd)
	if err != nil {
		return nil, err
	}
	s := c.sheets[cd.SheetID]
	var out []*card.Card
	for _, d := range grid.Neighbors8 {
		q, ok := p.AddChecked(d)
		if !ok {
			continue
		}
		if n, ok := s.Get(q, l); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// Cluster returns the cards connected to cd, cd first.
func (c *Canvas) Cluster(cd *card.Card) ([]*card.Card, error) {
	p, l, err := c.position(cd)
	if err != nil {
		return nil, err
	}
	return cluster.Find(c.sheets[cd.SheetID], p, l).Items(), nil
}

// Clusters partitions the cards on a sheet layer into connected groups.
func (c *Canvas) Clusters(ctx context.Context, sheetID string, layer grid.Layer, includeSingles bool) ([]cluster.Cluster[*card.Card], error) {
	s, err := c.sheet(sheetID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := cluster.FindAll(s, layer, includeSingles)
	observability.Canvas().OnClusters(ctx, sheetID, len(out), time.Since(start))
	c.logger.Debug("clusters computed", "sheet", sheetID, "layer", layer.ID, "clusters", len(out))
	return out, nil
}

// ClusterBounds returns the bounding box of each cluster on a sheet layer,
// honoring the configured singleton policy.
func (c *Canvas) ClusterBounds(ctx context.Context, sheetID string, layer grid.Layer) ([]grid.Rect, error) {
	clusters, err := c.Clusters(ctx, sheetID, layer, c.cfg.Clusters.IncludeSingles)
	if err != nil {
		return nil, err
	}
	return cluster.BoundingBoxes(clusters), nil
}

// Bounds returns the rectangle covering the occupied cells of a sheet,
// optionally restricted to some layers.
func (c *Canvas) Bounds(sheetID string, layers ...grid.Layer) (grid.Rect, bool, error) {
	s, err := c.sheet(sheetID)
	if err != nil {
		return grid.Rect{}, false, err
	}
	r, ok := s.Bounds(layers...)
	return r, ok, nil
}

// Subtract returns the cards of a that are not in b.
func (c *Canvas) Subtract(a, b []*card.Card) []*card.Card { return card.Subtract(a, b) }

// Difference returns the cards in exactly one of a and b.
func (c *Canvas) Difference(a, b []*card.Card) []*card.Card { return card.Difference(a, b) }
