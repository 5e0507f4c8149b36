package models

// Subtree is an eagerly loaded, immutable snapshot of a location node and all
// of its descendants, addressed by node ID. Repositories resolve the whole
// subtree up front so capacity and lifecycle logic never trigger implicit
// per-node fetches while walking the hierarchy.
type Subtree struct {
	root     *Location
	nodes    map[int64]*Location
	children map[int64][]int64
}

// NewSubtree builds a Subtree from a root and the full list of its nodes
// (root included). Nodes whose parent is outside the snapshot are ignored,
// except the root itself.
func NewSubtree(rootID int64, nodes []*Location) *Subtree {
	t := &Subtree{
		nodes:    make(map[int64]*Location, len(nodes)),
		children: make(map[int64][]int64),
	}
	for _, n := range nodes {
		t.nodes[n.ID] = n
	}
	t.root = t.nodes[rootID]
	for _, n := range nodes {
		if n.ID == rootID || n.ParentID == nil {
			continue
		}
		if _, ok := t.nodes[*n.ParentID]; ok {
			t.children[*n.ParentID] = append(t.children[*n.ParentID], n.ID)
		}
	}
	return t
}

// Root returns the subtree's root node, or nil if the snapshot was built
// without one.
func (t *Subtree) Root() *Location {
	return t.root
}

// Node returns the node with the given ID, or nil when absent.
func (t *Subtree) Node(id int64) *Location {
	return t.nodes[id]
}

// Children returns the direct children of the given node in load order.
func (t *Subtree) Children(id int64) []*Location {
	ids := t.children[id]
	out := make([]*Location, 0, len(ids))
	for _, cid := range ids {
		out = append(out, t.nodes[cid])
	}
	return out
}

// Size returns the total number of nodes in the snapshot, root included.
func (t *Subtree) Size() int {
	return len(t.nodes)
}

// DescendantCounts returns the number of descendant nodes per level,
// excluding the root itself.
func (t *Subtree) DescendantCounts() map[Level]int {
	counts := make(map[Level]int)
	for id, n := range t.nodes {
		if t.root != nil && id == t.root.ID {
			continue
		}
		counts[n.Level]++
	}
	return counts
}

// AssignableIDs returns the IDs of every node in the snapshot that can hold
// a specimen assignment (everything except rooms), root included.
func (t *Subtree) AssignableIDs() []int64 {
	ids := make([]int64, 0, len(t.nodes))
	for id, n := range t.nodes {
		if n.Level != LevelRoom {
			ids = append(ids, id)
		}
	}
	return ids
}

// IDsBottomUp returns all node IDs ordered deepest level first
// (boxes, racks, shelves, devices, rooms). Deleting in this order never
// violates the parent foreign-key constraint.
func (t *Subtree) IDsBottomUp() []int64 {
	byLevel := make(map[Level][]int64)
	for id, n := range t.nodes {
		byLevel[n.Level] = append(byLevel[n.Level], id)
	}
	order := []Level{LevelBox, LevelRack, LevelShelf, LevelDevice, LevelRoom}
	out := make([]int64, 0, len(t.nodes))
	for _, lvl := range order {
		out = append(out, byLevel[lvl]...)
	}
	return out
}
