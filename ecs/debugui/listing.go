package debugui

import (
	"cmp"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/plus3/sparsecs/ecs"
)

// tableSort is the sort state of an ImGui table: a column index and a
// direction.
type tableSort struct {
	column     int
	descending bool
}

// entityRow is one line of the entity browser.
type entityRow struct {
	id         ecs.EntityId
	components []string
}

// registryStamp changes whenever an entity or a component is added or
// removed, which is when a cached listing has to be rebuilt.
type registryStamp struct {
	entities int
	present  int
	types    int
}

func stampOf(r *ecs.Registry) registryStamp {
	infos := r.Components()
	stamp := registryStamp{entities: r.EntityCount(), types: len(infos)}
	for _, info := range infos {
		stamp.present += info.Count
	}
	return stamp
}

// entityListing caches the rows of the entity browser between passes.
type entityListing struct {
	rows  []entityRow
	stamp registryStamp
	valid bool
	order tableSort
}

// refresh rebuilds the rows when the registry has changed since the last
// call and reports whether it did.
func (l *entityListing) refresh(r *ecs.Registry) bool {
	stamp := stampOf(r)
	if l.valid && stamp == l.stamp {
		return false
	}

	l.rows = l.rows[:0]
	for e := range r.Entities() {
		types := r.EntityComponents(e)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		l.rows = append(l.rows, entityRow{id: e, components: names})
	}
	l.stamp, l.valid = stamp, true
	l.sortBy(l.order)
	return true
}

func (l *entityListing) sortBy(order tableSort) {
	l.order = order
	slices.SortStableFunc(l.rows, func(a, b entityRow) int {
		var c int
		switch order.column {
		case 1:
			c = slices.Compare(a.components, b.components)
		case 2:
			c = cmp.Compare(len(a.components), len(b.components))
		default:
			c = a.id.Compare(b.id)
		}
		if order.descending {
			return -c
		}
		return c
	})
}

// filter returns the rows holding component, when set, and whose id or
// component names contain text, ignoring case.
func (l *entityListing) filter(text, component string) []entityRow {
	if text == "" && component == "" {
		return l.rows
	}

	text = strings.ToLower(text)
	var out []entityRow
	for _, row := range l.rows {
		if component != "" && !slices.Contains(row.components, component) {
			continue
		}
		if text != "" && !row.matches(text) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (row entityRow) matches(lower string) bool {
	if strings.Contains(strconv.FormatUint(uint64(row.id), 10), lower) {
		return true
	}
	return slices.ContainsFunc(row.components, func(name string) bool {
		return strings.Contains(strings.ToLower(name), lower)
	})
}

// paginate returns the rows shown on page (zero based), the page clamped
// into range, and the number of pages.
func paginate[T any](rows []T, size, page int) ([]T, int, int) {
	if size <= 0 || len(rows) == 0 {
		return rows, 0, 1
	}
	pages := (len(rows) + size - 1) / size
	page = min(max(page, 0), pages-1)
	start := page * size
	return rows[start:min(start+size, len(rows))], page, pages
}

func sortSystems(systems []ecs.SystemStats, order tableSort) {
	slices.SortStableFunc(systems, func(a, b ecs.SystemStats) int {
		var c int
		switch order.column {
		case 0:
			c = strings.Compare(a.Name, b.Name)
		case 1:
			c = slices.Compare(a.Components, b.Components)
		case 2:
			c = compareBool(a.Enabled, b.Enabled)
		case 3:
			c = cmp.Compare(a.ExecutionCount, b.ExecutionCount)
		default:
			c = cmp.Compare(a.AvgDuration, b.AvgDuration)
		}
		if order.descending {
			return -c
		}
		return c
	})
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// componentCatalog maps registered component names to their types, names
// sorted.
type componentCatalog struct {
	names []string
	types map[string]reflect.Type
}

func catalogOf(r *ecs.Registry) componentCatalog {
	infos := r.Components()
	catalog := componentCatalog{
		names: make([]string, 0, len(infos)),
		types: make(map[string]reflect.Type, len(infos)),
	}
	for _, info := range infos {
		catalog.names = append(catalog.names, info.Name)
		catalog.types[info.Name] = info.Type
	}
	slices.Sort(catalog.names)
	return catalog
}

// resolve returns the types of the selected names that are still
// registered, in name order.
func (c componentCatalog) resolve(selected map[string]bool) []reflect.Type {
	var types []reflect.Type
	for _, name := range c.names {
		if selected[name] {
			types = append(types, c.types[name])
		}
	}
	return types
}

// MatchingEntities returns the live entities holding every type in
// required, in ascending order. An empty required matches every entity.
func MatchingEntities(r *ecs.Registry, required []reflect.Type) []ecs.EntityId {
	var matching []ecs.EntityId
	for e := range r.Entities() {
		held := true
		for _, t := range required {
			if r.ComponentValue(t, e) == nil {
				held = false
				break
			}
		}
		if held {
			matching = append(matching, e)
		}
	}
	return matching
}

// frameHistory is a fixed ring of pass durations in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(size int) frameHistory {
	return frameHistory{samples: make([]float32, max(size, 1))}
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average is the mean of the recorded samples, 0 before the first push.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ms := range h.samples[:h.filled] {
		total += ms
	}
	return total / float32(h.filled)
}

// ordered returns the samples oldest first.
func (h *frameHistory) ordered() []float32 {
	if h.filled < len(h.samples) {
		return h.samples[:h.filled]
	}
	return append(slices.Clone(h.samples[h.next:]), h.samples[:h.next]...)
}

func occupancy(info ecs.ComponentInfo) string {
	if info.Len == 0 {
		return "-"
	}
	return strconv.Itoa(100*info.Count/info.Len) + "%"
}
