// Package branches holds the tree of named branch references.
//
// Each branch records the branch it was created from (its structural parent), which is
// unrelated to commit ancestry.  The tree always has a single root named "main".
package branches

import (
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/sqlitebrowser/scvs/ident"
)

// Root is the name of the branch every other branch descends from.
const Root = "main"

var (
	// ErrAlreadyExists is returned when adding a branch whose name is taken.
	ErrAlreadyExists = errors.New("branch already exists")

	// ErrNoSuchParent is returned when adding a branch under an unknown parent.
	ErrNoSuchParent = errors.New("parent branch doesn't exist")

	// ErrNoSuchBranch is returned when a named branch isn't in the tree.
	ErrNoSuchBranch = errors.New("branch doesn't exist")

	// ErrProtectedRoot is returned when removing the main branch.
	ErrProtectedRoot = errors.New("the main branch can't be removed")

	// ErrHasChildren is returned when removing a branch that other branches were created from.
	ErrHasChildren = errors.New("branch has child branches")

	// ErrMalformed is returned when saved branch records don't form a valid tree.
	ErrMalformed = errors.New("malformed branch records")

	// ErrInvalidName is returned when adding a branch with an empty or blank name.
	ErrInvalidName = errors.New("invalid branch name")
)

// handle addresses a node slot inside a Tree.
type handle int

const none handle = -1

type node struct {
	name     string
	head     string
	parent   handle
	children []handle
	used     bool
}

// Branch is a read only view of a branch node.
type Branch struct {
	Name     string
	Head     string // Empty when the branch has no commits yet
	Parent   string // Empty for the root
	Children []string
}

// Record is the flat form used when saving the tree.
type Record struct {
	Name   string `json:"name"`
	Head   string `json:"head,omitempty"`
	Parent string `json:"parent,omitempty"`
}

// Tree is an n-ary tree of branches, stored as an arena of node slots.
type Tree struct {
	nodes []node
	free  []handle
	index map[string]handle
	root  handle
}

// New returns a tree containing only the root branch, with no head commit.
func New() *Tree {
	t := &Tree{index: map[string]handle{}}
	t.root = t.alloc(node{name: Root, parent: none})
	return t
}

func (t *Tree) alloc(n node) handle {
	n.used = true
	var h handle
	if len(t.free) > 0 {
		h = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[h] = n
	} else {
		h = handle(len(t.nodes))
		t.nodes = append(t.nodes, n)
	}
	t.index[n.name] = h
	return h
}

func (t *Tree) release(h handle) {
	delete(t.index, t.nodes[h].name)
	t.nodes[h] = node{}
	t.free = append(t.free, h)
}

func (t *Tree) view(h handle) Branch {
	n := &t.nodes[h]
	b := Branch{Name: n.name, Head: n.head}
	if n.parent != none {
		b.Parent = t.nodes[n.parent].name
	}
	for _, c := range n.children {
		b.Children = append(b.Children, t.nodes[c].name)
	}
	slices.Sort(b.Children)
	return b
}

// AddBranch creates a branch under parent.  The new branch starts at the parent's head.
func (t *Tree) AddBranch(name, parent string) (Branch, error) {
	if strings.TrimSpace(name) == "" {
		return Branch{}, errors.Wrapf(ErrInvalidName, "'%s'", name)
	}
	if _, ok := t.index[name]; ok {
		return Branch{}, errors.Wrapf(ErrAlreadyExists, "'%s'", name)
	}
	p, ok := t.index[parent]
	if !ok {
		return Branch{}, errors.Wrapf(ErrNoSuchParent, "'%s'", parent)
	}
	h := t.alloc(node{name: name, head: t.nodes[p].head, parent: p})
	t.nodes[p].children = append(t.nodes[p].children, h)
	return t.view(h), nil
}

// DeleteBranch removes a leaf branch.  The root and branches with children can't be removed.
func (t *Tree) DeleteBranch(name string) error {
	if name == Root {
		return ErrProtectedRoot
	}
	h, ok := t.index[name]
	if !ok {
		return errors.Wrapf(ErrNoSuchBranch, "'%s'", name)
	}
	if len(t.nodes[h].children) > 0 {
		return errors.Wrapf(ErrHasChildren, "'%s'", name)
	}
	p := t.nodes[h].parent
	t.nodes[p].children = slices.DeleteFunc(t.nodes[p].children, func(c handle) bool { return c == h })
	t.release(h)
	return nil
}

// AdvanceHead points a branch at a commit.  No reachability checks are done here.
func (t *Tree) AdvanceHead(name, commitID string) error {
	h, ok := t.index[name]
	if !ok {
		return errors.Wrapf(ErrNoSuchBranch, "'%s'", name)
	}
	t.nodes[h].head = commitID
	return nil
}

// ResolveHead returns the head commit of a branch, or "" if it has none.
func (t *Tree) ResolveHead(name string) (string, error) {
	h, ok := t.index[name]
	if !ok {
		return "", errors.Wrapf(ErrNoSuchBranch, "'%s'", name)
	}
	return t.nodes[h].head, nil
}

// Has reports whether a branch exists.
func (t *Tree) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns a view of the named branch.
func (t *Tree) Get(name string) (Branch, error) {
	h, ok := t.index[name]
	if !ok {
		return Branch{}, errors.Wrapf(ErrNoSuchBranch, "'%s'", name)
	}
	return t.view(h), nil
}

// Names returns every branch name, sorted.
func (t *Tree) Names() []string {
	names := make([]string, 0, len(t.index))
	for n := range t.index {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of branches, including the root.
func (t *Tree) Len() int {
	return len(t.index)
}

// PreorderDump renders the tree one branch per line, children sorted by name.
func (t *Tree) PreorderDump() []string {
	var lines []string
	t.preorder(t.root, func(h handle, level int) {
		n := &t.nodes[h]
		info := "(empty)"
		if n.head != "" {
			info = "(" + ident.Short(n.head) + ")"
		}
		lines = append(lines, strings.Repeat("  ", level)+"└─ "+n.name+" "+info)
	})
	return lines
}

func (t *Tree) preorder(h handle, visit func(h handle, level int)) {
	var walk func(h handle, level int)
	walk = func(h handle, level int) {
		visit(h, level)
		kids := slices.Clone(t.nodes[h].children)
		slices.SortFunc(kids, func(a, b handle) int { return strings.Compare(t.nodes[a].name, t.nodes[b].name) })
		for _, c := range kids {
			walk(c, level+1)
		}
	}
	walk(h, 0)
}

// Records flattens the tree in preorder, so parents always come before their children.
func (t *Tree) Records() []Record {
	list := make([]Record, 0, len(t.index))
	t.preorder(t.root, func(h handle, _ int) {
		b := t.view(h)
		list = append(list, Record{Name: b.Name, Head: b.Head, Parent: b.Parent})
	})
	return list
}

// FromRecords rebuilds a tree from saved records, in any order.
//
// Malformed input returns an error together with a fresh tree holding only the root, so the
// caller always has a usable tree.
func FromRecords(records []Record) (*Tree, error) {
	t, err := fromRecords(records)
	if err != nil {
		return New(), err
	}
	return t, nil
}

func fromRecords(records []Record) (*Tree, error) {
	byName := map[string]Record{}
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			return nil, errors.Wrap(ErrMalformed, "branch with an empty name")
		}
		if _, ok := byName[r.Name]; ok {
			return nil, errors.Wrapf(ErrMalformed, "branch '%s' listed twice", r.Name)
		}
		byName[r.Name] = r
	}
	root, ok := byName[Root]
	if !ok {
		return nil, errors.Wrapf(ErrMalformed, "no '%s' branch", Root)
	}
	if root.Parent != "" {
		return nil, errors.Wrapf(ErrMalformed, "'%s' has a parent", Root)
	}

	kids := map[string][]string{}
	for _, r := range records {
		if r.Name == Root {
			continue
		}
		if _, ok := byName[r.Parent]; !ok {
			return nil, errors.Wrapf(ErrMalformed, "branch '%s' has unknown parent '%s'", r.Name, r.Parent)
		}
		kids[r.Parent] = append(kids[r.Parent], r.Name)
	}

	// Attach breadth first from the root.  Anything left over is part of a parent cycle.
	t := New()
	t.nodes[t.root].head = root.Head
	queue := []string{Root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, name := range kids[parent] {
			b, err := t.AddBranch(name, parent)
			if err != nil {
				return nil, err
			}
			t.nodes[t.index[b.Name]].head = byName[name].Head
			queue = append(queue, name)
		}
	}
	if t.Len() != len(byName) {
		return nil, errors.Wrap(ErrMalformed, "branches unreachable from the root")
	}
	return t, nil
}
