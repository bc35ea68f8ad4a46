package dirtree

// Node is a single directory in the tree. The root is owned by the Tree
// itself; every other node is owned by its parent's children map, and
// the parent back-reference is a non-owning relation kept in lock-step
// with that map entry.
type Node struct {
	name     string // component name, for diagnostics only; "" for root
	parent   *Node
	children *nameMap

	lock     *rwLock
	activity *subtreeActivity
}

func newNode(name string, parent *Node) *Node {
	return &Node{
		name:     name,
		parent:   parent,
		children: newNameMap(),
		lock:     newRWLock(),
		activity: newSubtreeActivity(),
	}
}

// quiescent reports whether this node is in its between-operations
// state: no lock held or waited-on, no subtree activity outstanding.
func (n *Node) quiescent() bool {
	return n.lock.quiescent() && n.activity.refs() == 0
}
