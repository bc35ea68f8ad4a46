// subtreeActivity tracks how many in-flight operations currently hold a
// path passing through a node, distinct from that node's own rwLock
// state: an operation that has already locked-then-unlocked a node
// during hand-over-hand descent is still "active in its subtree" until
// it unwinds back up past that node.
package dirtree

import "sync"

type subtreeActivity struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

func newSubtreeActivity() *subtreeActivity {
	a := &subtreeActivity{}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// incRef registers one more operation as active in this node's subtree.
func (a *subtreeActivity) incRef() {
	a.mu.Lock()
	a.count++
	a.mu.Unlock()
}

// decRef retires one operation from this node's subtree, signalling any
// waiter if the count has dropped to zero.
func (a *subtreeActivity) decRef() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.count == 0 {
		fatal("subtreeActivity.decRef", "refcount already zero")
	}
	a.count--
	if a.count == 0 {
		a.cond.Signal()
	}
}

// waitQuiescent blocks until no operation is traversing or holding a
// lock anywhere within this node's subtree. Because the caller's own
// lock discipline ensures no new traversal can reach this node while it
// waits (the node's parent is write-locked), the count is monotone
// non-increasing and the wait is bounded.
func (a *subtreeActivity) waitQuiescent() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for a.count > 0 {
		a.cond.Wait()
	}
}

func (a *subtreeActivity) refs() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

// unwindPath decrements subtree_refs from `from` up to (but not
// including) `to`, walking parent pointers. to == nil means "all the
// way up to and including the root".
func unwindPath(from, to *Node) {
	n := from
	for n != to {
		parent := n.parent
		n.activity.decRef()
		trace("unwind: node %p refs now %d", n, n.activity.refs())
		n = parent
	}
}
