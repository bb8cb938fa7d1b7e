// Package merge reconciles two branch heads, either by fast-forwarding the target or by
// recording a merge commit with both heads as parents.
package merge

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"

	"github.com/sqlitebrowser/scvs/branches"
	"github.com/sqlitebrowser/scvs/history"
)

// ErrInvalidBranches is returned when a branch is unknown or both names are the same.
var ErrInvalidBranches = errors.New("invalid branches for merge")

// Kind says how a merge was resolved.
type Kind int

const (
	NoOp Kind = iota
	FastForward
	Synthesized
)

func (k Kind) String() string {
	switch k {
	case FastForward:
		return "fast-forward"
	case Synthesized:
		return "merge commit"
	}
	return "no-op"
}

// EmptySource is the NoOp reason given when the source branch has no commits.
const EmptySource = "source branch has no commits"

// Outcome describes a completed merge.
type Outcome struct {
	Kind Kind

	// Head is the target's head after the merge.
	Head string

	// Commit is the new merge commit, only set for Synthesized.
	Commit history.Commit

	// Reason is only set for NoOp.
	Reason string
}

// Engine merges branches of one repository.
type Engine struct {
	Graph    *history.Graph
	Branches *branches.Tree
	Author   string
}

// Merge brings the history of source into target.
func (e *Engine) Merge(source, target string) (Outcome, error) {
	if source == target {
		return Outcome{}, errors.Wrapf(ErrInvalidBranches, "can't merge '%s' into itself", source)
	}
	for _, b := range []string{source, target} {
		if !e.Branches.Has(b) {
			return Outcome{}, errors.Wrapf(ErrInvalidBranches, "branch '%s' doesn't exist", b)
		}
	}

	srcHead, err := e.Branches.ResolveHead(source)
	if err != nil {
		return Outcome{}, err
	}
	if srcHead == "" {
		return Outcome{Kind: NoOp, Reason: EmptySource}, nil
	}
	tgtHead, err := e.Branches.ResolveHead(target)
	if err != nil {
		return Outcome{}, err
	}

	if e.fastForward(srcHead, tgtHead) {
		if err = e.Branches.AdvanceHead(target, srcHead); err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: FastForward, Head: srcHead}, nil
	}

	tgtCommit, err := e.Graph.Get(tgtHead)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, "head of '%s'", target)
	}
	srcCommit, err := e.Graph.Get(srcHead)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, "head of '%s'", source)
	}
	files := append(slices.Clone(tgtCommit.Files), srcCommit.Files...)
	msg := fmt.Sprintf("Merge branch '%s' into %s", source, target)
	c, err := e.Graph.Create(msg, e.Author, []string{tgtHead, srcHead}, target, files)
	if err != nil {
		return Outcome{}, err
	}
	if err = e.Branches.AdvanceHead(target, c.ID); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Synthesized, Head: c.ID, Commit: c}, nil
}

// fastForward reports whether target can move straight to source.  Only the first parent
// chain of source is searched, so a target reachable only through a second parent still
// gets a merge commit.
func (e *Engine) fastForward(srcHead, tgtHead string) bool {
	if tgtHead == "" {
		return true
	}
	for c := range e.Graph.WalkAncestors(srcHead, 0) {
		if c.ID == tgtHead {
			return true
		}
	}
	return false
}
