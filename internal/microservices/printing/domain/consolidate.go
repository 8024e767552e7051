package domain

import (
	"sort"
	"strconv"
	"strings"
)

// mergeKey is the structural identity under which two line items collapse
// into one ticket line. Fields are kept separate instead of concatenated into
// a delimited string, so a delimiter character inside a name can never make
// two distinct items collide.
type mergeKey struct {
	name    string
	cooking string
	note    string
	sides   string
}

// itemKey canonicalises the side set order-independently: the names are
// sorted and length-prefix encoded, which is injective regardless of what
// characters the names contain.
func itemKey(it LineItem) mergeKey {
	sides := make([]string, len(it.Sides))
	copy(sides, it.Sides)
	sort.Strings(sides)

	var b strings.Builder
	for _, s := range sides {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}

	return mergeKey{
		name:    it.Name,
		cooking: it.CookingPoint,
		note:    it.Note,
		sides:   b.String(),
	}
}

type stationKey struct {
	id   int
	code string
}

// Consolidate merges the submitted station groups into one group per distinct
// station and one line per merge identity. The same station may appear in
// several input groups (the caller submits one group per menu category); all
// its items end up in a single output group keyed by (id, code), keeping the
// first-seen station metadata. Within a group, items with equal merge keys
// are collapsed by summing quantities; every other field keeps the first-seen
// value, and first-appearance order is preserved for display determinism.
//
// Pure function: no I/O, and deterministic for a fixed input ordering.
func Consolidate(groups []StationGroup) []StationGroup {
	type bucket struct {
		station PrintStation
		items   []LineItem
		index   map[mergeKey]int
	}

	order := make([]stationKey, 0, len(groups))
	buckets := make(map[stationKey]*bucket, len(groups))

	for _, g := range groups {
		sk := stationKey{id: g.Station.ID, code: g.Station.Code}
		b, ok := buckets[sk]
		if !ok {
			b = &bucket{station: g.Station, index: make(map[mergeKey]int)}
			buckets[sk] = b
			order = append(order, sk)
		}
		for _, it := range g.Items {
			k := itemKey(it)
			if i, seen := b.index[k]; seen {
				b.items[i].Quantity += it.Quantity
				continue
			}
			b.index[k] = len(b.items)
			b.items = append(b.items, it)
		}
	}

	out := make([]StationGroup, 0, len(order))
	for _, sk := range order {
		b := buckets[sk]
		out = append(out, StationGroup{Station: b.station, Items: b.items})
	}
	return out
}
