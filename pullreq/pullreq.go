// Package pullreq keeps the queue of pull requests between branches.
package pullreq

import (
	"fmt"
	"slices"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidBranches is returned for unknown or identical source and target branches.
	ErrInvalidBranches = errors.New("invalid branches for pull request")

	// ErrNotFound is returned when no pull request has the requested ID.
	ErrNotFound = errors.New("pull request not found")

	// ErrClosed is returned when changing the status of a merged or rejected pull request.
	ErrClosed = errors.New("pull request is closed")

	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid pull request status")
)

// Status is the review state of a pull request.
type Status string

const (
	Pending  Status = "pending"
	InReview Status = "in_review"
	Approved Status = "approved"
	Rejected Status = "rejected"
	Merged   Status = "merged"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case Pending, InReview, Approved, Rejected, Merged:
		return true
	}
	return false
}

// Closed reports whether s ends the life of a pull request.
func (s Status) Closed() bool {
	return s == Merged || s == Rejected
}

type Comment struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type PullRequest struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Source      string     `json:"source"`
	Target      string     `json:"target"`
	Author      string     `json:"author"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	Reviewers   []string   `json:"reviewers"`
	Tags        []string   `json:"tags"`
	Comments    []Comment  `json:"comments"`
}

// Queue holds the open pull requests in creation order, plus the closed ones.
type Queue struct {
	open   []*PullRequest
	closed []*PullRequest
	count  int
	now    func() time.Time
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{now: time.Now}
}

// SetClock overrides the clock used for creation, closing and comment times.
func (q *Queue) SetClock(now func() time.Time) {
	q.now = now
}

// Create opens a new pull request.  The exists callback reports whether a branch is known.
func (q *Queue) Create(source, target, author string, exists func(string) bool) (*PullRequest, error) {
	if source == target {
		return nil, errors.Wrapf(ErrInvalidBranches, "source and target are both '%s'", source)
	}
	for _, b := range []string{source, target} {
		if !exists(b) {
			return nil, errors.Wrapf(ErrInvalidBranches, "branch '%s' doesn't exist", b)
		}
	}
	q.count++
	pr := &PullRequest{
		ID:        q.count,
		Title:     fmt.Sprintf("PR #%d: Merge %s into %s", q.count, source, target),
		Status:    Pending,
		Source:    source,
		Target:    target,
		Author:    author,
		CreatedAt: q.now(),
		Reviewers: []string{},
		Tags:      []string{},
		Comments:  []Comment{},
	}
	q.open = append(q.open, pr)
	return pr, nil
}

// Find returns the pull request with the given ID, open or closed.
func (q *Queue) Find(id int) (*PullRequest, error) {
	for _, list := range [][]*PullRequest{q.open, q.closed} {
		for _, pr := range list {
			if pr.ID == id {
				return pr, nil
			}
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "#%d", id)
}

// UpdateStatus changes the status of an open pull request.  Merged and rejected pull requests
// move to the closed list and can't change again.
func (q *Queue) UpdateStatus(id int, status Status) error {
	if !status.Valid() {
		return errors.Wrapf(ErrInvalidStatus, "'%s'", status)
	}
	pr, err := q.Find(id)
	if err != nil {
		return err
	}
	if pr.Status.Closed() {
		return errors.Wrapf(ErrClosed, "#%d is %s", id, pr.Status)
	}
	pr.Status = status
	if status.Closed() {
		t := q.now()
		pr.ClosedAt = &t
		q.open = slices.DeleteFunc(q.open, func(p *PullRequest) bool { return p.ID == id })
		q.closed = append(q.closed, pr)
	}
	return nil
}

// Comment appends a comment to a pull request.
func (q *Queue) Comment(id int, author, text string) error {
	pr, err := q.Find(id)
	if err != nil {
		return err
	}
	pr.Comments = append(pr.Comments, Comment{Author: author, Text: text, Timestamp: q.now()})
	return nil
}

// AddReviewer adds a reviewer, returning false when they were already listed.
func (q *Queue) AddReviewer(id int, reviewer string) (bool, error) {
	pr, err := q.Find(id)
	if err != nil {
		return false, err
	}
	if slices.Contains(pr.Reviewers, reviewer) {
		return false, nil
	}
	pr.Reviewers = append(pr.Reviewers, reviewer)
	return true, nil
}

// AddTag adds a tag, returning false when it was already present.
func (q *Queue) AddTag(id int, tag string) (bool, error) {
	pr, err := q.Find(id)
	if err != nil {
		return false, err
	}
	if slices.Contains(pr.Tags, tag) {
		return false, nil
	}
	pr.Tags = append(pr.Tags, tag)
	return true, nil
}

// Open returns the open pull requests, oldest first.
func (q *Queue) Open() []*PullRequest {
	return slices.Clone(q.open)
}

// Closed returns the closed pull requests in the order they were closed.
func (q *Queue) Closed() []*PullRequest {
	return slices.Clone(q.closed)
}

// Dequeue removes and returns the oldest open pull request, or nil when there are none.
func (q *Queue) Dequeue() *PullRequest {
	if len(q.open) == 0 {
		return nil
	}
	pr := q.open[0]
	q.open = q.open[1:]
	return pr
}

// State is the saved form of a queue.
type State struct {
	Open   []*PullRequest `json:"open"`
	Closed []*PullRequest `json:"closed"`
	Count  int            `json:"count"`
}

// State returns the queue contents for saving.
func (q *Queue) State() State {
	return State{Open: q.Open(), Closed: q.Closed(), Count: q.count}
}

// Restore rebuilds a queue from a saved state.  The ID counter never goes below the highest
// ID seen, and pull requests are sorted into open or closed by their status.
func Restore(st State) (*Queue, error) {
	q := New()
	q.count = st.Count
	seen := map[int]bool{}
	for _, list := range [][]*PullRequest{st.Open, st.Closed} {
		for _, pr := range list {
			if pr == nil {
				continue
			}
			if seen[pr.ID] {
				return New(), errors.Errorf("duplicate pull request #%d", pr.ID)
			}
			if !pr.Status.Valid() {
				return New(), errors.Wrapf(ErrInvalidStatus, "#%d has '%s'", pr.ID, pr.Status)
			}
			seen[pr.ID] = true
			q.count = max(q.count, pr.ID)
			if pr.Status.Closed() {
				q.closed = append(q.closed, pr)
			} else {
				q.open = append(q.open, pr)
			}
		}
	}
	return q, nil
}
