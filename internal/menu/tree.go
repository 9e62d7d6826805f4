package menu

// NodeID addresses a node inside a Tree.
type NodeID int

// NoNode marks the absence of a node (no parent, nothing focused).
const NoNode NodeID = -1

// Role is the ARIA role carried by a node.
type Role string

const (
	RoleMenubar  Role = "menubar"
	RoleMenu     Role = "menu"
	RoleMenuItem Role = "menuitem"
)

// MaxLevel is the deepest tier that receives submenu semantics.
const MaxLevel = 3

// Node is one menu item. Containers are not nodes; an item's Children are
// the items of the list nested directly under it.
type Node struct {
	ID         NodeID
	Role       Role
	TabIndex   int
	Open       bool
	HasSubmenu bool
	HasPopup   bool
	Level      int
	Hidden     bool
	Text       string
	Label      string
	Href       string
	HasLink    bool
	Classes    []string
	Parent     NodeID
	Children   []NodeID
	Path       []int
}

// Tree is the arena of nodes materialized once at initialization.
type Tree struct {
	nodes []Node
	top   []NodeID
}

func (t *Tree) add(n Node) NodeID {
	n.ID = NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return n.ID
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

func (t *Tree) at(id NodeID) *Node {
	return &t.nodes[id]
}

// Len returns the number of items in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.valid(id) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// TopLevelItems returns the menubar items in document order.
func (t *Tree) TopLevelItems() []NodeID {
	return append([]NodeID(nil), t.top...)
}

func (t *Tree) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].Parent
}

func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].Children
}

// Siblings returns the children of id's parent, including id itself.
func (t *Tree) Siblings(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	if p := t.nodes[id].Parent; p != NoNode {
		return t.nodes[p].Children
	}
	return t.top
}

func (t *Tree) siblingIndex(id NodeID) int {
	for i, s := range t.Siblings(id) {
		if s == id {
			return i
		}
	}
	return -1
}

// NextSibling returns the following sibling without wrapping.
func (t *Tree) NextSibling(id NodeID) NodeID {
	sibs := t.Siblings(id)
	if i := t.siblingIndex(id); i >= 0 && i+1 < len(sibs) {
		return sibs[i+1]
	}
	return NoNode
}

// PrevSibling returns the preceding sibling without wrapping.
func (t *Tree) PrevSibling(id NodeID) NodeID {
	sibs := t.Siblings(id)
	if i := t.siblingIndex(id); i > 0 {
		return sibs[i-1]
	}
	return NoNode
}

// Ancestors lists the ancestors of id, nearest first.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := t.Parent(id); p != NoNode; p = t.nodes[p].Parent {
		out = append(out, p)
	}
	return out
}

// TopLevel returns the menubar item that contains id (or id itself).
func (t *Tree) TopLevel(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	for t.nodes[id].Parent != NoNode {
		id = t.nodes[id].Parent
	}
	return id
}

func (t *Tree) isAncestorOrSelf(anc, id NodeID) bool {
	for cur := id; cur != NoNode; cur = t.nodes[cur].Parent {
		if cur == anc {
			return true
		}
	}
	return false
}

// Visible reports whether id would be rendered: it is not hidden and every
// ancestor item is open and not hidden.
func (t *Tree) Visible(id NodeID) bool {
	if !t.valid(id) || t.nodes[id].Hidden {
		return false
	}
	for p := t.nodes[id].Parent; p != NoNode; p = t.nodes[p].Parent {
		if !t.nodes[p].Open || t.nodes[p].Hidden {
			return false
		}
	}
	return true
}

// VisibleItems returns every visible item in document order.
func (t *Tree) VisibleItems() []NodeID {
	var out []NodeID
	t.Walk(func(n Node) {
		if t.Visible(n.ID) {
			out = append(out, n.ID)
		}
	})
	return out
}

// Walk visits every node in document order.
func (t *Tree) Walk(fn func(Node)) {
	var visit func(ids []NodeID)
	visit = func(ids []NodeID) {
		for _, id := range ids {
			fn(t.nodes[id])
			visit(t.nodes[id].Children)
		}
	}
	visit(t.top)
}

// Lookup resolves a child-index path (as recorded in Node.Path).
func (t *Tree) Lookup(path []int) NodeID {
	level := t.top
	id := NoNode
	for _, idx := range path {
		if idx < 0 || idx >= len(level) {
			return NoNode
		}
		id = level[idx]
		level = t.nodes[id].Children
	}
	return id
}

// SetHidden updates the layout visibility of the node at path. It reports
// whether the path resolved.
func (t *Tree) SetHidden(path []int, hidden bool) bool {
	id := t.Lookup(path)
	if id == NoNode {
		return false
	}
	t.nodes[id].Hidden = hidden
	return true
}

// OpenItems returns the ids of every open item in document order.
func (t *Tree) OpenItems() []NodeID {
	var out []NodeID
	t.Walk(func(n Node) {
		if n.Open {
			out = append(out, n.ID)
		}
	})
	return out
}

func (t *Tree) firstVisible(ids []NodeID) NodeID {
	for _, id := range ids {
		if t.Visible(id) {
			return id
		}
	}
	return NoNode
}

func (t *Tree) closeSubtree(id NodeID) {
	t.nodes[id].Open = false
	for _, c := range t.nodes[id].Children {
		t.closeSubtree(c)
	}
}
