package ui

import (
	"fmt"
)

// editOp is one step of an edit script turning a list of node ids into
// another. Remove indexes refer to the source list, insert indexes to the
// target list.
type editOp struct {
	remove bool
	id     string
	index  int
}

type point struct {
	x, y   int
	remove bool
}

// editScript computes a shortest edit script from a to b (Myers). The
// elements of a that are not removed form a longest common subsequence of
// both lists.
func editScript(a, b []string) []editOp {
	n, m := len(a), len(b)
	max := n + m
	if max == 0 {
		return nil
	}
	v := make([]int, 2*max+1)
	trace := make([][]point, max+1)

	for d := 0; d <= max; d++ {
		trace[d] = make([]point, 2*max+1)
		for k := -d; k <= d; k += 2 {
			var x int
			var remove bool
			if k == -d || (k != d && v[k-1+max] < v[k+1+max]) {
				x = v[k+1+max]
			} else {
				x = v[k-1+max] + 1
				remove = true
			}
			y := x - k
			trace[d][k+max] = point{x, y, remove}

			for x < n && y < m && a[x] == b[y] {
				x, y = x+1, y+1
			}
			v[k+max] = x
			if x >= n && y >= m {
				return backtrack(trace, d, k+max, a, b)
			}
		}
	}
	return nil
}

func backtrack(trace [][]point, d, k int, a, b []string) []editOp {
	ops := make([]editOp, 0, d)
	for ; d > 0; d-- {
		pt := trace[d][k]
		if pt.remove {
			ops = append(ops, editOp{remove: true, id: a[pt.x-1], index: pt.x - 1})
			k--
		} else {
			ops = append(ops, editOp{id: b[pt.y-1], index: pt.y - 1})
			k++
		}
	}
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}

// ReplaceItems makes items the exact content of a slot, in order. The
// longest run of current items that already appears in the right order stays
// attached; the other current items are detached, then the missing ones are
// attached at their position.
func (n *Node) ReplaceItems(items []Item, opts ...ItemOption) error {
	o := newItemOptions(opts)
	s, ok := n.slots[o.slot]
	if !ok {
		return itemsNotAllowed(n.name, o.slot)
	}

	byID := make(map[string]*Node, len(items)+len(s.items.List))
	target := make([]string, 0, len(items))
	for _, item := range items {
		c, err := n.ui.nodeOf(item)
		if err != nil {
			return err
		}
		if _, dup := byID[c.id]; dup {
			return fmt.Errorf("%w: %s is listed twice", ErrInvalidDescriptor, c)
		}
		byID[c.id] = c
		target = append(target, c.id)
	}
	current := make([]string, 0, len(s.items.List))
	for _, c := range s.items.List {
		current = append(current, c.id)
		byID[c.id] = c
	}

	for _, op := range editScript(current, target) {
		if op.remove {
			byID[op.id].Detach()
		}
	}
	for i, id := range target {
		if i < len(s.items.List) && s.items.List[i].id == id {
			continue
		}
		if err := byID[id].AttachTo(n, In(s.name), At(i)); err != nil {
			return err
		}
	}
	return nil
}
