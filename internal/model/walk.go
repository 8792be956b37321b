package model

import (
	"fmt"
	"log/slog"
)

// DefaultMaxDepth bounds full-screen walks.
const DefaultMaxDepth = 50

// WalkOptions controls a tree walk.
type WalkOptions struct {
	MaxDepth    int          // deepest depth visited, root is 0 (0 = unlimited)
	IncludeRoot bool         // visit the root itself
	Logger      *slog.Logger // receives skipped-node diagnostics (nil = slog.Default)
}

// Visitor is called once per node in pre-order. Returning false skips the
// node's subtree.
type Visitor func(n Node, depth int) bool

type walkItem struct {
	node  Node
	depth int
}

// Walk performs a bounded-depth, cycle-safe pre-order traversal. It uses an
// explicit stack and tracks visited handles, so a malformed tree that links
// a node under itself is visited once. A panic raised by the host while a
// node is inspected is logged and that node's subtree is skipped.
// It returns the number of nodes visited.
func Walk(root Node, opts WalkOptions, visit Visitor) int {
	if root == nil {
		return 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	visited := make(map[Handle]bool)
	var stack []walkItem
	if opts.IncludeRoot {
		stack = append(stack, walkItem{node: root, depth: 0})
	} else {
		visited[root.Handle()] = true
		stack = pushChildren(stack, root, 1, logger)
	}

	count := 0
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if opts.MaxDepth > 0 && item.depth > opts.MaxDepth {
			continue
		}
		h, ok := safeHandle(item.node, logger)
		if !ok || visited[h] {
			continue
		}
		visited[h] = true

		count++
		if !safeVisit(item.node, item.depth, visit, logger) {
			continue
		}
		stack = pushChildren(stack, item.node, item.depth+1, logger)
	}
	return count
}

// pushChildren pushes n's children in reverse so they pop in order.
func pushChildren(stack []walkItem, n Node, depth int, logger *slog.Logger) []walkItem {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("walk: reading children failed", "type", safeTypeName(n), "err", fmt.Sprint(r))
		}
	}()
	children := Children(n)
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, walkItem{node: children[i], depth: depth})
	}
	return stack
}

func safeVisit(n Node, depth int, visit Visitor, logger *slog.Logger) (descend bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("walk: node skipped", "type", safeTypeName(n), "depth", depth, "err", fmt.Sprint(r))
			descend = false
		}
	}()
	return visit(n, depth)
}

func safeHandle(n Node, logger *slog.Logger) (h Handle, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("walk: invalid node", "err", fmt.Sprint(r))
			ok = false
		}
	}()
	return n.Handle(), true
}

func safeTypeName(n Node) (name string) {
	defer func() {
		if recover() != nil {
			name = "?"
		}
	}()
	return n.TypeName()
}

// WalkAncestors calls fn for each ancestor of n, nearest first, up to
// maxDepth levels. A parent cycle ends the walk. It returns false if the
// walk stopped because the chain could not be read.
func WalkAncestors(n Node, maxDepth int, fn func(ancestor Node, level int) bool) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if n == nil {
		return true
	}
	visited := map[Handle]bool{n.Handle(): true}
	cur := n.Parent()
	for level := 1; cur != nil && level <= maxDepth; level++ {
		h := cur.Handle()
		if visited[h] {
			return true
		}
		visited[h] = true
		if !fn(cur, level) {
			return true
		}
		cur = cur.Parent()
	}
	return true
}

// FindAncestor returns the nearest ancestor (or n itself when includeSelf)
// whose family matches one of the given families, searching up to maxDepth
// levels.
func FindAncestor(n Node, maxDepth int, includeSelf bool, families ...Family) Node {
	if n == nil {
		return nil
	}
	match := func(x Node) bool {
		f := MapFamily(x.TypeName())
		for _, want := range families {
			if f == want {
				return true
			}
		}
		return false
	}
	if includeSelf && match(n) {
		return n
	}
	var found Node
	WalkAncestors(n, maxDepth, func(a Node, _ int) bool {
		if match(a) {
			found = a
			return false
		}
		return true
	})
	return found
}

// FindDescendant returns the first descendant in pre-order whose family is
// one of families, searching up to maxDepth levels below n.
func FindDescendant(n Node, maxDepth int, families ...Family) Node {
	var found Node
	Walk(n, WalkOptions{MaxDepth: maxDepth}, func(x Node, _ int) bool {
		if found != nil {
			return false
		}
		f := MapFamily(x.TypeName())
		for _, want := range families {
			if f == want {
				found = x
				return false
			}
		}
		return true
	})
	return found
}
