// Hand-over-hand traversal: getNode walks a path one component at a
// time, locking each child before releasing its parent's lock, so that
// the set of locks held by the calling goroutine is always a connected
// chain rooted at start (or, when startLocked, at an ancestor the
// caller already holds).
package dirtree

import "github.com/pkg/errors"

type lockMode int

const (
	readerMode lockMode = iota
	writerMode
)

// getNode descends subpath (a path relative to start, in the same
// slash-terminated form as an absolute path) starting from start, which
// is already locked iff startLocked. Each hop read-locks the next node
// unless it is both the final hop and mode is writerMode, in which case
// it is write-locked. Every node touched along the way (other than
// start when startLocked) has its subtree activity counter incremented
// and is left unlocked except the returned node.
//
// On failure, all locks and activity counters taken during this call
// are unwound before returning ErrNotFound. When startLocked, the
// unwind walks all the way to the actual tree root: the caller is
// responsible for having already counted on a matching unwind of its
// own ancestor chain happening exactly once, in one sweep, rather than
// unwinding it again itself.
func getNode(start *Node, subpath string, startLocked bool, mode lockMode) (*Node, error) {
	node := start
	var stopAt *Node

	if !startLocked {
		if subpath == rootPath && mode == writerMode {
			node.lock.Lock()
		} else {
			node.lock.RLock()
		}
		node.activity.incRef()
		trace("getNode: locked start %p refs=%d", node, node.activity.refs())
		stopAt = node.parent
	}

	remaining := subpath
	for {
		name, rest, ok := SplitFirstComponent(remaining)
		if !ok {
			break
		}

		child, found := node.children.get(name)
		if !found {
			unwindPath(node, stopAt)
			if !startLocked {
				node.lock.RUnlock()
			}
			return nil, errors.Wrapf(ErrNotFound, "component %q", name)
		}

		if rest == rootPath && mode == writerMode {
			child.lock.Lock()
		} else {
			child.lock.RLock()
		}
		child.activity.incRef()
		trace("getNode: locked %p (%q) refs=%d", child, name, child.activity.refs())

		if !startLocked {
			node.lock.RUnlock()
		} else {
			startLocked = false
		}
		node = child
		remaining = rest
	}
	return node, nil
}
