package domain

import (
	"slices"
	"sort"
	"strings"
)

// TaskNode is a task with its resolved children, forming a forest.
type TaskNode struct {
	Task     *Task
	Children []*TaskNode
}

// HasActive returns true if the node's task or any descendant is active.
func (n *TaskNode) HasActive() bool {
	if n.Task.IsActive() {
		return true
	}
	for _, c := range n.Children {
		if c.HasActive() {
			return true
		}
	}
	return false
}

// Walk visits the node and its descendants depth-first, children before parent.
func (n *TaskNode) Walk(fn func(*Task)) {
	for _, c := range n.Children {
		c.Walk(fn)
	}
	fn(n.Task)
}

// BuildForest reconstructs the task tree from a flat list. Tasks whose parent
// is missing are treated as roots. The store writes tree-shaped parent
// references by construction, but a corrupted cyclic chain is still broken
// deterministically by promoting the smallest-ID cycle member to a root.
func BuildForest(tasks []*Task) []*TaskNode {
	index := make(map[string]*TaskNode, len(tasks))
	for _, t := range tasks {
		index[t.ID] = &TaskNode{Task: t}
	}

	var roots []*TaskNode
	for _, t := range tasks {
		node := index[t.ID]
		if t.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := index[*t.ParentID]
		if !ok || parent == node {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	roots = promoteUnreachable(index, roots)

	for _, r := range roots {
		sortNode(r)
	}
	sortSiblings(roots)
	return roots
}

// promoteUnreachable breaks parent cycles by promoting cycle members to roots
// until every node is reachable.
func promoteUnreachable(index map[string]*TaskNode, roots []*TaskNode) []*TaskNode {
	for {
		reached := make(map[string]bool, len(index))
		var mark func(*TaskNode)
		mark = func(n *TaskNode) {
			if reached[n.Task.ID] {
				return
			}
			reached[n.Task.ID] = true
			for _, c := range n.Children {
				mark(c)
			}
		}
		for _, r := range roots {
			mark(r)
		}
		if len(reached) == len(index) {
			return roots
		}

		var orphans []string
		for id := range index {
			if !reached[id] {
				orphans = append(orphans, id)
			}
		}
		sort.Strings(orphans)

		promoted := index[orphans[0]]
		if pid := promoted.Task.ParentID; pid != nil {
			if parent, ok := index[*pid]; ok {
				parent.Children = slices.DeleteFunc(parent.Children, func(n *TaskNode) bool {
					return n == promoted
				})
			}
		}
		roots = append(roots, promoted)
	}
}

func sortNode(n *TaskNode) {
	for _, c := range n.Children {
		sortNode(c)
	}
	sortSiblings(n.Children)
}

// sortSiblings orders a sibling group: the active task (or a task with an
// active descendant) first, then Order ascending, ties by creation time.
func sortSiblings(nodes []*TaskNode) {
	slices.SortStableFunc(nodes, func(a, b *TaskNode) int {
		aActive, bActive := a.HasActive(), b.HasActive()
		if aActive != bActive {
			if aActive {
				return -1
			}
			return 1
		}
		if a.Task.Order != b.Task.Order {
			return a.Task.Order - b.Task.Order
		}
		if c := a.Task.Created.Compare(b.Task.Created); c != 0 {
			return c
		}
		return strings.Compare(a.Task.ID, b.Task.ID)
	})
}

// ActiveTask returns the single active task in the list, or nil.
func ActiveTask(tasks []*Task) *Task {
	for _, t := range tasks {
		if t.IsActive() {
			return t
		}
	}
	return nil
}

// Subtree returns the ids of a task and all its descendants, children first.
// The returned order is safe for cascading deletion.
func Subtree(tasks []*Task, rootID string) []string {
	children := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		if t.ParentID != nil {
			children[*t.ParentID] = append(children[*t.ParentID], t.ID)
		}
	}

	var ids []string
	seen := map[string]bool{}
	var visit func(id string)
	visit = func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		kids := children[id]
		sort.Strings(kids)
		for _, c := range kids {
			visit(c)
		}
		ids = append(ids, id)
	}
	visit(rootID)
	return ids
}
