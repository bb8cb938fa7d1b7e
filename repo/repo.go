// Package repo ties the engine's components into a single repository, and handles saving and
// loading of repositories as JSON snapshots.
package repo

import (
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/sqlitebrowser/scvs/access"
	"github.com/sqlitebrowser/scvs/branches"
	"github.com/sqlitebrowser/scvs/collab"
	"github.com/sqlitebrowser/scvs/history"
	"github.com/sqlitebrowser/scvs/pullreq"
	"github.com/sqlitebrowser/scvs/staging"
)

// Repository is the complete state of one repository.
type Repository struct {
	Name          string
	CurrentBranch string
	Graph         *history.Graph
	Branches      *branches.Tree
	Collaborators *collab.Index
	Roles         *access.Directory
	PRs           *pullreq.Queue
	Staging       *staging.Area
}

// New returns an empty repository with only the main branch.
func New(name string) *Repository {
	return &Repository{
		Name:          name,
		CurrentBranch: branches.Root,
		Graph:         history.New(nil),
		Branches:      branches.New(),
		Collaborators: collab.New(),
		Roles:         access.NewDirectory(),
		PRs:           pullreq.New(),
		Staging:       staging.New(),
	}
}

// Snapshot is the on disk form of a repository.
type Snapshot struct {
	Name          string            `json:"name"`
	CurrentBranch string            `json:"current_branch"`
	Branches      []branches.Record `json:"branches"`
	Commits       []history.Commit  `json:"commits"`
	Collaborators *collab.Record    `json:"collaborators"`
	Roles         *access.Record    `json:"roles"`
	Staging       []staging.File    `json:"staging"`
	PullRequests  pullreq.State     `json:"pull_requests"`
}

// Snapshot captures the current state of the repository.
func (r *Repository) Snapshot() Snapshot {
	return Snapshot{
		Name:          r.Name,
		CurrentBranch: r.CurrentBranch,
		Branches:      r.Branches.Records(),
		Commits:       r.Graph.All(),
		Collaborators: r.Collaborators.Records(),
		Roles:         r.Roles.Records(),
		Staging:       r.Staging.Files(),
		PullRequests:  r.PRs.State(),
	}
}

// Encode returns the indented JSON snapshot of the repository.
func (r *Repository) Encode() ([]byte, error) {
	return json.MarshalIndent(r.Snapshot(), "", "  ")
}

// Decode rebuilds a repository from a JSON snapshot.
//
// Each section is decoded on its own.  A section that can't be decoded is replaced by its
// empty default, and the problems found are returned combined into one error alongside the
// usable repository.  Only a document that isn't a JSON object at all returns a nil repository.
func Decode(name string, data []byte) (*Repository, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, errors.Wrapf(err, "snapshot for '%s' isn't valid JSON", name)
	}
	r := New(name)
	var errs error
	section := func(key string, v interface{}) bool {
		raw, ok := sections[key]
		if !ok || string(raw) == "null" {
			return false
		}
		if err := json.Unmarshal(raw, v); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "section '%s'", key))
			return false
		}
		return true
	}

	var snapName string
	if section("name", &snapName) && snapName != name {
		errs = multierr.Append(errs, errors.Errorf("snapshot is named '%s', expected '%s'", snapName, name))
	}

	var commits []history.Commit
	if section("commits", &commits) {
		if err := r.Graph.Restore(commits); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, "section 'commits'"))
		}
	}

	var branchRecs []branches.Record
	if section("branches", &branchRecs) {
		t, err := branches.FromRecords(branchRecs)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, "section 'branches'"))
		}
		r.Branches = t
	}
	for _, b := range r.Branches.Names() {
		head, _ := r.Branches.ResolveHead(b)
		if head != "" && !r.Graph.Has(head) {
			_ = r.Branches.AdvanceHead(b, "")
			errs = multierr.Append(errs, errors.Errorf("branch '%s' head %s isn't in the commit history, reset", b, head))
		}
	}

	var current string
	if section("current_branch", &current) {
		if r.Branches.Has(current) {
			r.CurrentBranch = current
		} else {
			errs = multierr.Append(errs, errors.Errorf("current branch '%s' doesn't exist, using '%s'",
				current, branches.Root))
		}
	}

	var collabRec *collab.Record
	if section("collaborators", &collabRec) {
		x, err := collab.FromRecords(collabRec)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, "section 'collaborators'"))
		}
		r.Collaborators = x
	}

	var roleRec *access.Record
	if section("roles", &roleRec) {
		d, err := access.FromRecords(roleRec)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, "section 'roles'"))
		}
		r.Roles = d
	}

	var files []staging.File
	if section("staging", &files) {
		r.Staging = staging.Restore(files)
	}

	var prs pullreq.State
	if section("pull_requests", &prs) {
		q, err := pullreq.Restore(prs)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, "section 'pull_requests'"))
		}
		r.PRs = q
	}
	return r, errs
}
