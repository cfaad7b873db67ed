package card

import "github.com/zyedidia/generic/mapset"

// Subtract returns the cards of a whose IDs do not appear in b, in a's order.
// Nil cards are skipped.
func Subtract(a, b []*Card) []*Card {
	drop := idSet(b)
	var out []*Card
	for _, c := range a {
		if c != nil && !drop.Has(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Difference returns the symmetric difference of a and b by ID: the cards
// only in a followed by the cards only in b.
func Difference(a, b []*Card) []*Card {
	return append(Subtract(a, b), Subtract(b, a)...)
}

// Unique drops nil cards and repeated IDs, keeping the first occurrence.
func Unique(cards []*Card) []*Card {
	seen := mapset.New[string]()
	var out []*Card
	for _, c := range cards {
		if c == nil || seen.Has(c.ID) {
			continue
		}
		seen.Put(c.ID)
		out = append(out, c)
	}
	return out
}

// IDs returns the ID of every non-nil card, in order.
func IDs(cards []*Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		if c != nil {
			out = append(out, c.ID)
		}
	}
	return out
}

func idSet(cards []*Card) mapset.Set[string] {
	s := mapset.New[string]()
	for _, c := range cards {
		if c != nil {
			s.Put(c.ID)
		}
	}
	return s
}
