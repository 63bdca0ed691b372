package series

// Item is one (filename, snapshot) pair inside a group
type Item struct {
	Name string
	Meta Snapshot
}

// Grouper classifies slices into coherent groups in a single forward pass.
// A group is created the first time a series key is seen and groups never
// merge; membership is append-only during construction and read-only after.
// A Grouper is not safe for concurrent use.
type Grouper struct {
	groups map[SeriesKey]*Stack
	order  []SeriesKey
}

// NewGrouper creates an empty Grouper
func NewGrouper() *Grouper {
	return &Grouper{groups: make(map[SeriesKey]*Stack)}
}

// AddItem appends the slice to the group whose series key matches its
// snapshot, creating a new group when none does
func (g *Grouper) AddItem(name string, meta Snapshot) {
	key := meta.Key()
	st, ok := g.groups[key]
	if !ok {
		st = &Stack{key: key}
		g.groups[key] = st
		g.order = append(g.order, key)
	}
	st.items = append(st.items, Item{Name: name, Meta: meta})
}

// NumberOfGroups returns how many distinct series keys have been seen
func (g *Grouper) NumberOfGroups() int {
	return len(g.groups)
}

// LargestStack returns the group with the most slices; a tie keeps the group
// created first. Other groups are untouched and stay inspectable via Groups.
// Returns nil when nothing was added.
func (g *Grouper) LargestStack() *Stack {
	var best *Stack
	for _, key := range g.order {
		st := g.groups[key]
		if best == nil || len(st.items) > len(best.items) {
			best = st
		}
	}
	return best
}

// Groups returns every group in creation order
func (g *Grouper) Groups() []*Stack {
	out := make([]*Stack, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.groups[key])
	}
	return out
}
