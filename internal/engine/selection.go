package engine

import (
	"github.com/piwi3910/furnish/internal/catalog"
)

// SelectFurniture picks count ids from cat: essential pieces first in
// catalog order, then a random sample of the rest drawn from rnd.
// A non-positive count selects the whole catalog. A nil rnd fills the
// remaining slots in catalog order.
func SelectFurniture(cat *catalog.Catalog, count int, rnd RandomSource) []string {
	all := cat.ListAll()
	if count <= 0 || count >= len(all) {
		count = len(all)
	}

	essential := cat.Essential()
	if len(essential) >= count {
		return essential[:count]
	}

	picked := make(map[string]bool, len(essential))
	for _, id := range essential {
		picked[id] = true
	}
	rest := make([]string, 0, len(all)-len(essential))
	for _, id := range all {
		if !picked[id] {
			rest = append(rest, id)
		}
	}

	need := count - len(essential)
	if rnd != nil {
		// Partial Fisher-Yates: the first need slots become the sample.
		for i := 0; i < need; i++ {
			j := i + int(rnd.Float64()*float64(len(rest)-i))
			if j >= len(rest) {
				j = len(rest) - 1
			}
			rest[i], rest[j] = rest[j], rest[i]
		}
	}
	return append(essential, rest[:need]...)
}
