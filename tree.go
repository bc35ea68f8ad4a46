// Package dirtree implements a concurrent, in-memory hierarchical
// directory tree. Paths look like "/a/b/c/": absolute, slash-delimited,
// slash-terminated sequences of lowercase-letter components. Four
// operations are supported: List, Create, Remove and Move.
//
// ## Concurrency
//
// Every node carries its own readers/writer lock (see rwlock.go) and a
// subtree-activity counter (see quiesce.go). Operations descend the
// tree hand-over-hand (see traverse.go): a child's lock is taken before
// its parent's is released, so that the set of locks any one goroutine
// holds is always a connected chain rooted at the tree's root, or at an
// ancestor it has already locked. This lets operations on disjoint
// subtrees run fully in parallel, while two operations that touch the
// same node serialize at that node.
//
// List and Create/Remove need only this chain: List holds read locks
// down to its target, Create/Remove upgrade the final hop to a write
// lock on the parent.
//
// Move is the hard case, because it must hold write locks on two
// parents that may live in different branches of the tree. It computes
// the lowest common ancestor (LCA) of the source and target parent
// paths, write-locks the LCA, and only then descends from the LCA to
// each parent - both descents are protected by the LCA's write lock, so
// they can never deadlock against each other or against a third
// operation (which would have to contend for the same LCA first). Since
// an operation holding a lock somewhere below a node is not necessarily
// still traversing through it, Move additionally waits for the source
// directory's subtree-activity counter to reach zero before detaching
// it, so that the move cannot be observed as interleaved with an
// operation that is already partway through that subtree.
package dirtree

import "github.com/pkg/errors"

// Tree is a concurrent, in-memory directory tree. The zero value is not
// usable; construct one with New.
type Tree struct {
	root   *Node
	config Config
}

// New constructs an empty Tree, configured by the given options.
func New(opts ...Option) *Tree {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tree{
		root:   newNode("", nil),
		config: cfg,
	}
}

func (t *Tree) valid(path string) bool {
	return ValidatePath(path, t.config.MaxPathLength, t.config.MaxComponentLength)
}

// List returns the names of path's immediate children, in ascending
// lexicographic order and separated by ",", with no trailing separator.
// An empty directory yields the empty string.
func (t *Tree) List(path string) (string, error) {
	if !t.valid(path) {
		return "", ErrInvalidArgument
	}

	dir, err := getNode(t.root, path, false, readerMode)
	if err != nil {
		return "", err
	}

	result := joinNames(dir.children.sortedNames())

	unwindPath(dir, nil)
	dir.lock.RUnlock()
	return result, nil
}

// Create adds an empty directory at path. The parent of path must
// already exist and must not already contain an entry with path's final
// component name.
func (t *Tree) Create(path string) error {
	if !t.valid(path) {
		return ErrInvalidArgument
	}
	if path == rootPath {
		return errors.Wrap(ErrAlreadyExists, "the root always exists")
	}

	parentPath, name := SplitParent(path)
	parent, err := getNode(t.root, parentPath, false, writerMode)
	if err != nil {
		return errors.Wrapf(err, "parent of %q", path)
	}

	if _, exists := parent.children.get(name); exists {
		unwindPath(parent, nil)
		parent.lock.Unlock()
		return errors.Wrapf(ErrAlreadyExists, "path %q", path)
	}

	child := newNode(name, parent)
	parent.children.put(name, child)

	unwindPath(parent, nil)
	parent.lock.Unlock()
	return nil
}

// Remove deletes the empty directory at path.
func (t *Tree) Remove(path string) error {
	if !t.valid(path) {
		return ErrInvalidArgument
	}
	if path == rootPath {
		return errors.Wrap(ErrBusy, "cannot remove the root")
	}

	parentPath, name := SplitParent(path)
	parent, err := getNode(t.root, parentPath, false, writerMode)
	if err != nil {
		return errors.Wrapf(err, "parent of %q", path)
	}

	child, exists := parent.children.get(name)
	if !exists {
		unwindPath(parent, nil)
		parent.lock.Unlock()
		return errors.Wrapf(ErrNotFound, "path %q", path)
	}

	// child is locked directly from its parent rather than via getNode,
	// so its own subtree activity counter is untouched: it must become
	// unreachable, not merely visited. Because parent is write-locked,
	// no concurrent traversal can find child by name to increment that
	// counter in the meantime.
	child.lock.Lock()
	if child.children.len() > 0 {
		child.lock.Unlock()
		unwindPath(parent, nil)
		parent.lock.Unlock()
		return errors.Wrapf(ErrNotEmpty, "path %q", path)
	}

	parent.children.delete(name)
	child.lock.Unlock()

	unwindPath(parent, nil)
	parent.lock.Unlock()
	return nil
}

// Move relocates the directory at source to target, which must not yet
// exist (or must name the same directory as source, in which case Move
// is a no-op).
func (t *Tree) Move(source, target string) error {
	if !t.valid(source) || !t.valid(target) {
		return ErrInvalidArgument
	}
	if source == rootPath {
		return errors.Wrap(ErrBusy, "cannot move the root")
	}
	if target == rootPath {
		return errors.Wrap(ErrAlreadyExists, "cannot assign a new root")
	}
	if source != target && IsAncestor(source, target) {
		return errors.Wrapf(ErrInvalidArgument, "cannot move %q into descendant %q", source, target)
	}

	sParentPath, sName := SplitParent(source)
	tParentPath, tName := SplitParent(target)
	lcaPath := LCA(sParentPath, tParentPath)

	lca, err := getNode(t.root, lcaPath, false, writerMode)
	if err != nil {
		return errors.Wrapf(err, "lowest common ancestor %q", lcaPath)
	}
	trace("move: lca=%q for %q -> %q", lcaPath, source, target)

	subpathOffset := len(lcaPath) - 1
	samePar := sParentPath == tParentPath

	var sParent, tParent *Node

	sParent, err = getNode(lca, sParentPath[subpathOffset:], true, writerMode)
	if err != nil {
		lca.lock.Unlock()
		return errors.Wrapf(err, "parent of source %q", source)
	}

	if samePar {
		tParent = sParent
	} else {
		tParent, err = getNode(lca, tParentPath[subpathOffset:], true, writerMode)
		if err != nil {
			if sParent != lca {
				unwindPath(sParent, lca)
				sParent.lock.Unlock()
			}
			lca.lock.Unlock()
			return errors.Wrapf(err, "parent of target %q", target)
		}
	}

	cleanup := func() {
		if sParent != lca {
			unwindPath(sParent, lca)
			sParent.lock.Unlock()
		}
		if !samePar && tParent != lca {
			unwindPath(tParent, lca)
			tParent.lock.Unlock()
		}
		unwindPath(lca, nil)
		lca.lock.Unlock()
	}

	sDir, found := sParent.children.get(sName)
	if !found {
		cleanup()
		return errors.Wrapf(ErrNotFound, "source %q", source)
	}

	if _, occupied := tParent.children.get(tName); occupied {
		if source == target {
			cleanup()
			return nil // Source and target are the same - nothing to move.
		}
		if IsAncestor(source, target) {
			cleanup()
			return errors.Wrapf(ErrInvalidArgument, "cannot move %q into descendant %q", source, target)
		}
		cleanup()
		return errors.Wrapf(ErrAlreadyExists, "target %q", target)
	}

	// The move must appear to happen wholly before or wholly after any
	// operation already under way inside sDir's subtree; since sParent
	// is write-locked, no new traversal can reach sDir, so this wait is
	// bounded.
	sDir.activity.waitQuiescent()

	sParent.children.delete(sName)
	sDir.parent = tParent
	sDir.name = tName
	tParent.children.put(tName, sDir)

	cleanup()
	return nil
}

// Close reports ErrBusy if any operation is still in flight anywhere in
// the tree, and otherwise returns nil; it frees nothing itself. Unlike List/Create/Remove/Move,
// Close assumes no concurrent operation is being started in parallel
// with it; it is a best-effort quiescence scan, not itself part of the
// locking protocol.
func (t *Tree) Close() error {
	if !t.root.quiescentRecursive() {
		return errors.Wrap(ErrBusy, "operations still in flight")
	}
	return nil
}

func (n *Node) quiescentRecursive() bool {
	if !n.quiescent() {
		return false
	}
	for _, name := range n.children.sortedNames() {
		child, _ := n.children.get(name)
		if !child.quiescentRecursive() {
			return false
		}
	}
	return true
}
