package card

import "slices"

// Group is a non-owning selection of cards. It holds references only; the
// cards stay on their sheets. OnEmpty fires once, the first time the group
// goes from non-empty to empty.
type Group struct {
	members []*Card
	index   map[string]int
	onEmpty func(*Group)
	fired   bool
}

// NewGroup creates a group with the given members. onEmpty may be nil.
func NewGroup(onEmpty func(*Group), cards ...*Card) *Group {
	g := &Group{index: make(map[string]int), onEmpty: onEmpty}
	g.Add(cards...)
	return g
}

// Len returns the number of members.
func (g *Group) Len() int { return len(g.members) }

// Has reports whether a card with c's ID is a member.
func (g *Group) Has(c *Card) bool {
	if c == nil {
		return false
	}
	_, ok := g.index[c.ID]
	return ok
}

// Cards returns the members in insertion order.
func (g *Group) Cards() []*Card { return slices.Clone(g.members) }

// Add inserts cards that are not already members and marks them grouped.
func (g *Group) Add(cards ...*Card) {
	for _, c := range cards {
		if c == nil || g.Has(c) {
			continue
		}
		g.index[c.ID] = len(g.members)
		g.members = append(g.members, c)
		c.Grouped = true
	}
}

// Remove drops cards from the group and clears their grouped flag.
func (g *Group) Remove(cards ...*Card) {
	if len(g.members) == 0 {
		return
	}
	for _, c := range cards {
		if !g.Has(c) {
			continue
		}
		g.members = slices.DeleteFunc(g.members, func(m *Card) bool { return m.ID == c.ID })
		c.Grouped = false
	}
	g.reindex()
	if len(g.members) == 0 && !g.fired {
		g.fired = true
		if g.onEmpty != nil {
			g.onEmpty(g)
		}
	}
}

// Union adds every member of o.
func (g *Group) Union(o *Group) {
	if o != nil {
		g.Add(o.members...)
	}
}

// Subtract removes every member of o.
func (g *Group) Subtract(o *Group) {
	if o != nil {
		g.Remove(o.Cards()...)
	}
}

func (g *Group) reindex() {
	clear(g.index)
	for i, c := range g.members {
		g.index[c.ID] = i
	}
}
