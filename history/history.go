// Package history holds the append-only commit graph.
package history

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sqlitebrowser/scvs/ident"
)

var (
	// ErrNotFound is returned when a commit ID isn't in the graph.
	ErrNotFound = errors.New("commit not found")

	// ErrDuplicateCommit is returned when a generated or restored commit ID is already present.
	ErrDuplicateCommit = errors.New("duplicate commit id")
)

// Commit is an immutable commit record.  The graph only ever hands out copies.
type Commit struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Parents   []string  `json:"parents,omitempty"`
	Files     []string  `json:"files"`
	Branch    string    `json:"branch"`
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// FirstParent returns the first parent ID, or "" for a root commit.
func (c Commit) FirstParent() string {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

func (c Commit) clone() Commit {
	c.Parents = slices.Clone(c.Parents)
	c.Files = slices.Clone(c.Files)
	return c
}

// Graph is an append-only store of commits, keyed by ID.
type Graph struct {
	gen     ident.Generator
	now     func() time.Time
	commits map[string]Commit
	order   []string
}

// New returns an empty graph.  A nil generator means ident.Default.
func New(gen ident.Generator) *Graph {
	if gen == nil {
		gen = ident.Default
	}
	return &Graph{
		gen:     gen,
		now:     time.Now,
		commits: map[string]Commit{},
	}
}

// SetClock overrides the clock used for commit timestamps.
func (g *Graph) SetClock(now func() time.Time) {
	g.now = now
}

// Create builds, stores and returns a new commit.  Every parent must already be in the graph.
func (g *Graph) Create(message, author string, parents []string, branch string, files []string) (Commit, error) {
	for _, p := range parents {
		if _, ok := g.commits[p]; !ok {
			return Commit{}, errors.Wrapf(ErrNotFound, "parent '%s'", p)
		}
	}

	id := g.gen.Generate(message + author + strings.Join(parents, ""))
	if _, ok := g.commits[id]; ok {
		return Commit{}, errors.Wrapf(ErrDuplicateCommit, "'%s'", id)
	}

	c := Commit{
		ID:        id,
		Message:   message,
		Author:    author,
		Timestamp: g.now().UTC(),
		Parents:   slices.Clone(parents),
		Files:     normaliseFiles(files),
		Branch:    branch,
	}
	g.commits[id] = c
	g.order = append(g.order, id)
	return c.clone(), nil
}

// Get returns the commit with the given ID.
func (g *Graph) Get(id string) (Commit, error) {
	c, ok := g.commits[id]
	if !ok {
		return Commit{}, errors.Wrapf(ErrNotFound, "'%s'", id)
	}
	return c.clone(), nil
}

// Has reports whether the commit is in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.commits[id]
	return ok
}

// Len returns the number of commits in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// All returns every commit, in the order they were added.
func (g *Graph) All() []Commit {
	list := make([]Commit, 0, len(g.order))
	for _, id := range g.order {
		list = append(list, g.commits[id].clone())
	}
	return list
}

// WalkAncestors follows the first parent of each commit, starting with startID itself.
//
// The walk ends at a root commit, an ID it has already visited, an ID that isn't in the
// graph, or after limit commits.  A limit of zero or less means no limit.
//
// Only first parents are followed, so the second parent of a merge commit is never visited.
func (g *Graph) WalkAncestors(startID string, limit int) iter.Seq[Commit] {
	return func(yield func(Commit) bool) {
		visited := map[string]struct{}{}
		id := startID
		for n := 0; id != "" && (limit <= 0 || n < limit); n++ {
			if _, seen := visited[id]; seen {
				return
			}
			c, ok := g.commits[id]
			if !ok {
				return
			}
			visited[id] = struct{}{}
			if !yield(c.clone()) {
				return
			}
			id = c.FirstParent()
		}
	}
}

// Restore loads previously saved commits into an empty graph.  Dangling parent IDs are tolerated.
func (g *Graph) Restore(commits []Commit) error {
	if len(g.order) != 0 {
		return errors.New("restore needs an empty commit graph")
	}
	loaded := map[string]Commit{}
	order := make([]string, 0, len(commits))
	for _, c := range commits {
		if c.ID == "" {
			return errors.New("commit with an empty id")
		}
		if _, ok := loaded[c.ID]; ok {
			return errors.Wrapf(ErrDuplicateCommit, "'%s'", c.ID)
		}
		c = c.clone()
		c.Files = normaliseFiles(c.Files)
		loaded[c.ID] = c
		order = append(order, c.ID)
	}
	g.commits = loaded
	g.order = order
	return nil
}

// Sorted, de-duplicated copy of a file name list.  Never nil, so it serialises as [].
func normaliseFiles(files []string) []string {
	out := make([]string, 0, len(files))
	out = append(out, files...)
	slices.Sort(out)
	return slices.Compact(out)
}
