// Package seen tracks which canonical URLs a client has already been
// served, per category, with bounded memory.
package seen

// Capacity is the maximum number of URLs remembered per category.
const Capacity = 100

// List is an insertion-ordered, deduplicating record of canonical URLs.
// When an insertion pushes the list past Capacity, the oldest entries are
// evicted first. The zero value is not usable; call NewList.
type List struct {
	order   []string
	present map[string]struct{}
}

// NewList returns an empty list.
func NewList() *List {
	return &List{present: map[string]struct{}{}}
}

// Has reports whether the canonical URL was already recorded.
func (l *List) Has(url string) bool {
	_, ok := l.present[url]
	return ok
}

// Add records a canonical URL. Adding an empty URL or one already present
// is a no-op. Evicts oldest-first down to Capacity.
func (l *List) Add(url string) {
	if url == "" {
		return
	}
	if _, ok := l.present[url]; ok {
		return
	}

	l.order = append(l.order, url)
	l.present[url] = struct{}{}

	for len(l.order) > Capacity {
		evicted := l.order[0]
		l.order = l.order[1:]
		delete(l.present, evicted)
	}
}

// Len returns the number of recorded URLs.
func (l *List) Len() int {
	return len(l.order)
}

// URLs returns the recorded URLs in insertion order, oldest first.
func (l *List) URLs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}
