package repo

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/sqlitebrowser/scvs/access"
	"github.com/sqlitebrowser/scvs/branches"
	"github.com/sqlitebrowser/scvs/history"
	"github.com/sqlitebrowser/scvs/merge"
	"github.com/sqlitebrowser/scvs/pullreq"
)

var (
	// ErrCheckedOut is returned when removing the branch the session is on.
	ErrCheckedOut = errors.New("branch is checked out")

	// ErrNothingStaged is returned when committing with an empty staging area.
	ErrNothingStaged = errors.New("nothing staged for commit")

	// ErrNotApproved is returned when merging a pull request that hasn't been approved.
	ErrNotApproved = errors.New("pull request isn't approved")

	// ErrAlreadyInitialised is returned when an initial commit is requested for a repository
	// that already has history.
	ErrAlreadyInitialised = errors.New("repository already has commits")
)

// InitialMessage is the message of the optional first commit of a new repository.
const InitialMessage = "Initial commit"

// Session is one user working on one repository, with an explicit checked out branch.
type Session struct {
	Repo   *Repository
	Branch string
	Author string
	Policy access.Policy
}

// NewSession starts a session on the repository's current branch.
func NewSession(r *Repository, author string, policy access.Policy) *Session {
	return &Session{Repo: r, Branch: r.CurrentBranch, Author: author, Policy: policy}
}

func (s *Session) engine() *merge.Engine {
	return &merge.Engine{Graph: s.Repo.Graph, Branches: s.Repo.Branches, Author: s.Author}
}

// InitialCommit records an empty root commit on main.
func (s *Session) InitialCommit() (history.Commit, error) {
	if s.Repo.Graph.Len() > 0 {
		return history.Commit{}, ErrAlreadyInitialised
	}
	c, err := s.Repo.Graph.Create(InitialMessage, s.Author, nil, branches.Root, nil)
	if err != nil {
		return history.Commit{}, err
	}
	return c, s.Repo.Branches.AdvanceHead(branches.Root, c.ID)
}

// Commit records the staged files on the checked out branch.  When some files are selected
// only those are committed, otherwise everything staged is.  Committed files leave the
// staging area.
func (s *Session) Commit(message string) (history.Commit, error) {
	files := s.Repo.Staging.CommitSet()
	if len(files) == 0 {
		return history.Commit{}, ErrNothingStaged
	}
	head, err := s.Repo.Branches.ResolveHead(s.Branch)
	if err != nil {
		return history.Commit{}, err
	}
	var parents []string
	if head != "" {
		parents = []string{head}
	}
	c, err := s.Repo.Graph.Create(message, s.Author, parents, s.Branch, files)
	if err != nil {
		return history.Commit{}, err
	}
	if err = s.Repo.Branches.AdvanceHead(s.Branch, c.ID); err != nil {
		return history.Commit{}, err
	}
	if len(s.Repo.Staging.Selected()) > 0 {
		s.Repo.Staging.ClearSelected()
	} else {
		s.Repo.Staging.Clear()
	}
	return c, nil
}

// Checkout switches the session to another branch.
func (s *Session) Checkout(name string) error {
	if !s.Repo.Branches.Has(name) {
		return errors.Wrapf(branches.ErrNoSuchBranch, "'%s'", name)
	}
	s.Branch = name
	s.Repo.CurrentBranch = name
	return nil
}

// CreateBranch creates a branch under from, or under the checked out branch when from is empty.
func (s *Session) CreateBranch(name, from string) (branches.Branch, error) {
	if from == "" {
		from = s.Branch
	}
	return s.Repo.Branches.AddBranch(name, from)
}

// DeleteBranch removes a branch other than the checked out one.
func (s *Session) DeleteBranch(name string) error {
	if name == s.Branch && name != branches.Root {
		return errors.Wrapf(ErrCheckedOut, "'%s'", name)
	}
	return s.Repo.Branches.DeleteBranch(name)
}

// Merge merges source into target.
func (s *Session) Merge(source, target string) (merge.Outcome, error) {
	return s.engine().Merge(source, target)
}

// Log returns up to limit commits of the checked out branch, newest first.  A limit of zero
// or less returns the whole first parent history.
func (s *Session) Log(limit int) ([]history.Commit, error) {
	head, err := s.Repo.Branches.ResolveHead(s.Branch)
	if err != nil {
		return nil, err
	}
	var list []history.Commit
	if head == "" {
		return list, nil
	}
	for c := range s.Repo.Graph.WalkAncestors(head, limit) {
		list = append(list, c)
	}
	return list, nil
}

// GrantRole gives an identity a role, after checking the permissions against the policy.
func (s *Session) GrantRole(id, role string, perms []string) error {
	role = strings.ToLower(role)
	if err := s.Policy.Validate(role, perms); err != nil {
		return err
	}
	return s.Repo.Roles.Grant(id, role, perms)
}

// UpdateRole changes the role of an existing identity and adds permissions to it.
func (s *Session) UpdateRole(id, role string, perms []string) error {
	role = strings.ToLower(role)
	if !s.Repo.Roles.Exists(id) {
		return errors.Wrapf(access.ErrNotFound, "'%s'", id)
	}
	if err := s.Policy.Validate(role, perms); err != nil {
		return err
	}
	return s.Repo.Roles.Update(id, role, perms)
}

// CreatePR opens a pull request from source into target, authored by the session user.
func (s *Session) CreatePR(source, target string) (*pullreq.PullRequest, error) {
	return s.Repo.PRs.Create(source, target, s.Author, s.Repo.Branches.Has)
}

// ReviewPR adds a review comment.  A pending pull request moves to in_review.
func (s *Session) ReviewPR(id int, text string) error {
	pr, err := s.Repo.PRs.Find(id)
	if err != nil {
		return err
	}
	if pr.Status.Closed() {
		return errors.Wrapf(pullreq.ErrClosed, "#%d is %s", id, pr.Status)
	}
	if err = s.Repo.PRs.Comment(id, s.Author, text); err != nil {
		return err
	}
	if pr.Status == pullreq.Pending {
		return s.Repo.PRs.UpdateStatus(id, pullreq.InReview)
	}
	return nil
}

// ApprovePR marks a pull request approved.
func (s *Session) ApprovePR(id int) error {
	return s.Repo.PRs.UpdateStatus(id, pullreq.Approved)
}

// RejectPR closes a pull request as rejected, recording the reason as a comment.
func (s *Session) RejectPR(id int, reason string) error {
	pr, err := s.Repo.PRs.Find(id)
	if err != nil {
		return err
	}
	if pr.Status.Closed() {
		return errors.Wrapf(pullreq.ErrClosed, "#%d is %s", id, pr.Status)
	}
	if reason == "" {
		reason = "no reason given"
	}
	if err = s.Repo.PRs.Comment(id, s.Author, "Rejected: "+reason); err != nil {
		return err
	}
	return s.Repo.PRs.UpdateStatus(id, pullreq.Rejected)
}

// MergePR merges an approved pull request.  It's marked merged when the merge moved the
// target, and left approved when there was nothing to merge.
func (s *Session) MergePR(id int) (merge.Outcome, error) {
	pr, err := s.Repo.PRs.Find(id)
	if err != nil {
		return merge.Outcome{}, err
	}
	if pr.Status != pullreq.Approved {
		return merge.Outcome{}, errors.Wrapf(ErrNotApproved, "#%d is %s", id, pr.Status)
	}
	out, err := s.Merge(pr.Source, pr.Target)
	if err != nil {
		return merge.Outcome{}, err
	}
	if out.Kind == merge.FastForward || out.Kind == merge.Synthesized {
		err = s.Repo.PRs.UpdateStatus(id, pullreq.Merged)
	}
	return out, err
}
