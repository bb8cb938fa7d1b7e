// Package collab is the collaborator registry, a plain binary search tree keyed by name.
//
// The tree is never rebalanced, so inserting names in sorted order gives a linear chain.
package collab

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a collaborator isn't registered.
var ErrNotFound = errors.New("collaborator not found")

// DefaultRole is given to collaborators added without an explicit role.
const DefaultRole = "Contributor"

const nilNode = -1

type node struct {
	name  string
	role  string
	left  int
	right int
}

// Collaborator is a registry entry.
type Collaborator struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Index is an unbalanced BST stored as an arena of nodes.
type Index struct {
	nodes []node
	free  []int
	root  int
	size  int
}

// New returns an empty index.
func New() *Index {
	return &Index{root: nilNode}
}

func (x *Index) alloc(name, role string) int {
	n := node{name: name, role: role, left: nilNode, right: nilNode}
	if len(x.free) > 0 {
		i := x.free[len(x.free)-1]
		x.free = x.free[:len(x.free)-1]
		x.nodes[i] = n
		return i
	}
	x.nodes = append(x.nodes, n)
	return len(x.nodes) - 1
}

// Insert registers a collaborator, or updates the role of an existing one.  It returns true
// when a new entry was created.
func (x *Index) Insert(name, role string) bool {
	if x.root == nilNode {
		x.root = x.alloc(name, role)
		x.size++
		return true
	}
	i := x.root
	for {
		c := strings.Compare(name, x.nodes[i].name)
		if c == 0 {
			x.nodes[i].role = role
			return false
		}
		next := x.nodes[i].right
		if c < 0 {
			next = x.nodes[i].left
		}
		if next == nilNode {
			n := x.alloc(name, role)
			if c < 0 {
				x.nodes[i].left = n
			} else {
				x.nodes[i].right = n
			}
			x.size++
			return true
		}
		i = next
	}
}

func (x *Index) find(name string) int {
	i := x.root
	for i != nilNode {
		c := strings.Compare(name, x.nodes[i].name)
		switch {
		case c < 0:
			i = x.nodes[i].left
		case c > 0:
			i = x.nodes[i].right
		default:
			return i
		}
	}
	return nilNode
}

// Find looks up a collaborator by exact name.
func (x *Index) Find(name string) (Collaborator, error) {
	i := x.find(name)
	if i == nilNode {
		return Collaborator{}, errors.Wrapf(ErrNotFound, "'%s'", name)
	}
	return Collaborator{Name: x.nodes[i].name, Role: x.nodes[i].role}, nil
}

// Remove deletes a collaborator.  A node with two children takes over its in-order successor.
func (x *Index) Remove(name string) error {
	var removed bool
	x.root = x.remove(x.root, name, &removed)
	if !removed {
		return errors.Wrapf(ErrNotFound, "'%s'", name)
	}
	x.size--
	return nil
}

func (x *Index) remove(i int, name string, removed *bool) int {
	if i == nilNode {
		return nilNode
	}
	switch c := strings.Compare(name, x.nodes[i].name); {
	case c < 0:
		l := x.remove(x.nodes[i].left, name, removed)
		x.nodes[i].left = l
	case c > 0:
		r := x.remove(x.nodes[i].right, name, removed)
		x.nodes[i].right = r
	default:
		n := x.nodes[i]
		if n.left == nilNode || n.right == nilNode {
			*removed = true
			child := n.left
			if child == nilNode {
				child = n.right
			}
			x.nodes[i] = node{left: nilNode, right: nilNode}
			x.free = append(x.free, i)
			return child
		}
		succ := n.right
		for x.nodes[succ].left != nilNode {
			succ = x.nodes[succ].left
		}
		x.nodes[i].name = x.nodes[succ].name
		x.nodes[i].role = x.nodes[succ].role
		r := x.remove(n.right, x.nodes[i].name, removed)
		x.nodes[i].right = r
	}
	return i
}

// All returns every collaborator in alphabetical order.
func (x *Index) All() []Collaborator {
	list := make([]Collaborator, 0, x.size)
	var walk func(i int)
	walk = func(i int) {
		if i == nilNode {
			return
		}
		walk(x.nodes[i].left)
		list = append(list, Collaborator{Name: x.nodes[i].name, Role: x.nodes[i].role})
		walk(x.nodes[i].right)
	}
	walk(x.root)
	return list
}

func (x *Index) Len() int {
	return x.size
}

// Depth returns the number of nodes on the longest root to leaf path.
func (x *Index) Depth() int {
	var depth func(i int) int
	depth = func(i int) int {
		if i == nilNode {
			return 0
		}
		return 1 + max(depth(x.nodes[i].left), depth(x.nodes[i].right))
	}
	return depth(x.root)
}

// Record is the nested form used when saving the index.
type Record struct {
	Name  string  `json:"name"`
	Role  string  `json:"role"`
	Left  *Record `json:"left,omitempty"`
	Right *Record `json:"right,omitempty"`
}

// Records returns the index as a nested record tree with exactly its current shape.
func (x *Index) Records() *Record {
	var rec func(i int) *Record
	rec = func(i int) *Record {
		if i == nilNode {
			return nil
		}
		n := x.nodes[i]
		return &Record{Name: n.name, Role: n.role, Left: rec(n.left), Right: rec(n.right)}
	}
	return rec(x.root)
}

// FromRecords rebuilds an index with the same shape as the saved one.  Records that break
// the search tree ordering are rejected, and an empty index is returned with the error.
func FromRecords(root *Record) (*Index, error) {
	x := New()
	var build func(r *Record, lo, hi *string) (int, error)
	build = func(r *Record, lo, hi *string) (int, error) {
		if r == nil {
			return nilNode, nil
		}
		if (lo != nil && r.Name <= *lo) || (hi != nil && r.Name >= *hi) {
			return nilNode, errors.Errorf("collaborator '%s' is out of order", r.Name)
		}
		i := x.alloc(r.Name, r.Role)
		l, err := build(r.Left, lo, &r.Name)
		if err != nil {
			return nilNode, err
		}
		rt, err := build(r.Right, &r.Name, hi)
		if err != nil {
			return nilNode, err
		}
		x.nodes[i].left = l
		x.nodes[i].right = rt
		x.size++
		return i, nil
	}
	root2, err := build(root, nil, nil)
	if err != nil {
		return New(), err
	}
	x.root = root2
	return x, nil
}
