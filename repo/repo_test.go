package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	chk "gopkg.in/check.v1"

	"github.com/sqlitebrowser/scvs/access"
	"github.com/sqlitebrowser/scvs/branches"
	"github.com/sqlitebrowser/scvs/merge"
	"github.com/sqlitebrowser/scvs/pullreq"
)

type RepoSuite struct {
	dir string
}

var _ = chk.Suite(&RepoSuite{})

func Test(t *testing.T) {
	chk.TestingT(t)
}

func (s *RepoSuite) SetUpSuite(c *chk.C) {
	s.dir = c.MkDir()
}

func newSession() *Session {
	return NewSession(New("demo"), "dev@example.org", access.DefaultPolicy())
}

func (s *RepoSuite) TestCommitUsesSelection(c *chk.C) {
	ss := newSession()
	_, err := ss.Commit("nothing")
	c.Check(errors.Is(err, ErrNothingStaged), chk.Equals, true)

	ss.Repo.Staging.Add("a.go")
	ss.Repo.Staging.Add("b.go")
	_, err = ss.Repo.Staging.Toggle("b.go")
	c.Assert(err, chk.IsNil)

	first, err := ss.Commit("only b")
	c.Assert(err, chk.IsNil)
	c.Check(first.Files, chk.DeepEquals, []string{"b.go"})
	c.Check(first.Parents, chk.HasLen, 0)
	c.Check(ss.Repo.Staging.Names(), chk.DeepEquals, []string{"a.go"})

	second, err := ss.Commit("the rest")
	c.Assert(err, chk.IsNil)
	c.Check(second.Parents, chk.DeepEquals, []string{first.ID})
	c.Check(ss.Repo.Staging.Len(), chk.Equals, 0)

	log, err := ss.Log(0)
	c.Assert(err, chk.IsNil)
	c.Assert(log, chk.HasLen, 2)
	c.Check(log[0].ID, chk.Equals, second.ID)
	log, _ = ss.Log(1)
	c.Check(log, chk.HasLen, 1)
}

func (s *RepoSuite) TestInitialCommit(c *chk.C) {
	ss := newSession()
	ic, err := ss.InitialCommit()
	c.Assert(err, chk.IsNil)
	c.Check(ic.Message, chk.Equals, InitialMessage)
	c.Check(ic.Files, chk.HasLen, 0)
	head, _ := ss.Repo.Branches.ResolveHead(branches.Root)
	c.Check(head, chk.Equals, ic.ID)

	_, err = ss.InitialCommit()
	c.Check(errors.Is(err, ErrAlreadyInitialised), chk.Equals, true)
}

func (s *RepoSuite) TestBranchesAndCheckout(c *chk.C) {
	ss := newSession()
	_, err := ss.InitialCommit()
	c.Assert(err, chk.IsNil)
	b, err := ss.CreateBranch("dev", "")
	c.Assert(err, chk.IsNil)
	c.Check(b.Parent, chk.Equals, branches.Root)

	c.Assert(ss.Checkout("dev"), chk.IsNil)
	c.Check(ss.Repo.CurrentBranch, chk.Equals, "dev")
	err = ss.Checkout("nope")
	c.Check(errors.Is(err, branches.ErrNoSuchBranch), chk.Equals, true)

	err = ss.DeleteBranch("dev")
	c.Check(errors.Is(err, ErrCheckedOut), chk.Equals, true)
	c.Check(ss.Repo.Branches.Has("dev"), chk.Equals, true)

	c.Assert(ss.Checkout(branches.Root), chk.IsNil)
	c.Assert(ss.DeleteBranch("dev"), chk.IsNil)
	c.Check(ss.Repo.Branches.Has("dev"), chk.Equals, false)
}

func (s *RepoSuite) TestRoles(c *chk.C) {
	ss := newSession()
	c.Assert(ss.GrantRole("Ana@Example.org", "Developer", []string{"push"}), chk.IsNil)
	c.Check(ss.Repo.Roles.HasPermission("ana@example.org", "push"), chk.Equals, true)

	err := ss.GrantRole("bo@example.org", "guest", []string{"push"})
	c.Check(errors.Is(err, access.ErrPermissionNotAllowed), chk.Equals, true)
	c.Check(ss.Repo.Roles.Exists("bo@example.org"), chk.Equals, false)

	err = ss.UpdateRole("bo@example.org", "admin", nil)
	c.Check(errors.Is(err, access.ErrNotFound), chk.Equals, true)

	// A failed validation leaves the entry untouched.
	err = ss.UpdateRole("ana@example.org", "developer", []string{"merge"})
	c.Check(errors.Is(err, access.ErrPermissionNotAllowed), chk.Equals, true)
	info, err := ss.Repo.Roles.Lookup("ana@example.org")
	c.Assert(err, chk.IsNil)
	c.Check(info.Permissions, chk.DeepEquals, []string{"push"})

	c.Assert(ss.UpdateRole("ana@example.org", "maintainer", []string{"merge"}), chk.IsNil)
	info, _ = ss.Repo.Roles.Lookup("ana@example.org")
	c.Check(info.Role, chk.Equals, "maintainer")
	c.Check(info.Permissions, chk.DeepEquals, []string{"merge", "push"})
}

func (s *RepoSuite) TestPullRequestFlow(c *chk.C) {
	ss := newSession()
	ss.Repo.Staging.Add("base.txt")
	_, err := ss.Commit("base")
	c.Assert(err, chk.IsNil)
	_, err = ss.CreateBranch("topic", "")
	c.Assert(err, chk.IsNil)
	c.Assert(ss.Checkout("topic"), chk.IsNil)
	ss.Repo.Staging.Add("topic.txt")
	topic, err := ss.Commit("topic work")
	c.Assert(err, chk.IsNil)

	pr, err := ss.CreatePR("topic", "main")
	c.Assert(err, chk.IsNil)
	_, err = ss.MergePR(pr.ID)
	c.Check(errors.Is(err, ErrNotApproved), chk.Equals, true)

	c.Assert(ss.ReviewPR(pr.ID, "looks fine"), chk.IsNil)
	c.Check(pr.Status, chk.Equals, pullreq.InReview)
	c.Assert(ss.ApprovePR(pr.ID), chk.IsNil)

	out, err := ss.MergePR(pr.ID)
	c.Assert(err, chk.IsNil)
	c.Check(out.Kind, chk.Equals, merge.FastForward)
	c.Check(pr.Status, chk.Equals, pullreq.Merged)
	head, _ := ss.Repo.Branches.ResolveHead("main")
	c.Check(head, chk.Equals, topic.ID)

	pr2, err := ss.CreatePR("main", "topic")
	c.Assert(err, chk.IsNil)
	c.Assert(ss.RejectPR(pr2.ID, ""), chk.IsNil)
	c.Check(pr2.Comments[0].Text, chk.Equals, "Rejected: no reason given")
	err = ss.ReviewPR(pr2.ID, "too late")
	c.Check(errors.Is(err, pullreq.ErrClosed), chk.Equals, true)
}

func (s *RepoSuite) TestSnapshotRoundTrip(c *chk.C) {
	ss := newSession()
	ss.Repo.Name = "roundtrip"
	ss.Repo.Staging.Add("a.txt")
	_, err := ss.Commit("first")
	c.Assert(err, chk.IsNil)
	_, err = ss.CreateBranch("feature", "")
	c.Assert(err, chk.IsNil)
	_, err = ss.CreateBranch("fix", "feature")
	c.Assert(err, chk.IsNil)
	c.Assert(ss.Checkout("feature"), chk.IsNil)
	ss.Repo.Staging.Add("b.txt")
	_, err = ss.Commit("second")
	c.Assert(err, chk.IsNil)
	ss.Repo.Staging.Add("pending.txt")
	ss.Repo.Collaborators.Insert("mara", "Maintainer")
	ss.Repo.Collaborators.Insert("alex", "Contributor")
	for _, id := range []string{"e@x.org", "a@x.org", "c@x.org", "b@x.org", "d@x.org"} {
		c.Assert(ss.GrantRole(id, "developer", []string{"push"}), chk.IsNil)
	}
	_, err = ss.CreatePR("feature", "main")
	c.Assert(err, chk.IsNil)

	st := Store{Dir: filepath.Join(s.dir, "roundtrip")}
	c.Assert(st.Save(ss.Repo), chk.IsNil)
	c.Check(st.Exists("roundtrip"), chk.Equals, true)

	loaded, err := st.Load("roundtrip")
	c.Assert(err, chk.IsNil)
	c.Check(loaded.CurrentBranch, chk.Equals, "feature")

	opts := []cmp.Option{cmpopts.EquateEmpty(), cmpopts.IgnoreFields(Snapshot{}, "Roles")}
	if diff := cmp.Diff(ss.Repo.Snapshot(), loaded.Snapshot(), opts...); diff != "" {
		c.Fatalf("snapshot changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ss.Repo.Roles.List(), loaded.Roles.List()); diff != "" {
		c.Fatalf("roles changed (-want +got):\n%s", diff)
	}
	c.Check(loaded.Roles.Balanced(), chk.Equals, true)
}

func (s *RepoSuite) TestDecodeFallsBackPerSection(c *chk.C) {
	doc := `{
  "name": "broken",
  "current_branch": "gone",
  "branches": [{"name": "orphan", "parent": "nowhere"}],
  "commits": "not a list",
  "collaborators": {"name": "m", "role": "x", "left": {"name": "z", "role": "y"}},
  "staging": [{"filename": "kept.txt", "status": "A", "checksum": "0123456789", "selected": true}]
}`
	r, err := Decode("broken", []byte(doc))
	c.Assert(r, chk.NotNil)
	c.Check(err, chk.NotNil)
	c.Check(len(multierr.Errors(err)), chk.Equals, 4)

	c.Check(r.Branches.Names(), chk.DeepEquals, []string{branches.Root})
	c.Check(r.CurrentBranch, chk.Equals, branches.Root)
	c.Check(r.Graph.Len(), chk.Equals, 0)
	c.Check(r.Collaborators.Len(), chk.Equals, 0)
	c.Check(r.Staging.Selected(), chk.DeepEquals, []string{"kept.txt"})

	_, err = Decode("x", []byte("[1, 2]"))
	c.Check(err, chk.NotNil)
}

func (s *RepoSuite) TestDecodeResetsDanglingHeads(c *chk.C) {
	doc := `{
  "name": "dup",
  "current_branch": "feature",
  "branches": [{"name": "main", "head": "c1"}, {"name": "feature", "head": "c1", "parent": "main"}],
  "commits": [
    {"id": "c1", "message": "one", "author": "a@x", "files": ["f"], "branch": "main"},
    {"id": "c1", "message": "again", "author": "a@x", "files": ["g"], "branch": "main"}
  ]
}`
	r, err := Decode("dup", []byte(doc))
	c.Assert(r, chk.NotNil)
	// The duplicate commit plus one reset per branch
	c.Check(len(multierr.Errors(err)), chk.Equals, 3)
	c.Check(r.Graph.Len(), chk.Equals, 0)
	c.Check(r.Branches.Names(), chk.DeepEquals, []string{"feature", branches.Root})
	for _, b := range r.Branches.Names() {
		head, _ := r.Branches.ResolveHead(b)
		c.Check(head, chk.Equals, "")
	}

	// Committing on the recovered repository starts a fresh history
	ss := NewSession(r, "a@x", access.DefaultPolicy())
	c.Check(ss.Branch, chk.Equals, "feature")
	ss.Repo.Staging.Add("f")
	cm, err := ss.Commit("fresh")
	c.Assert(err, chk.IsNil)
	c.Check(cm.Parents, chk.HasLen, 0)
	log, err := ss.Log(0)
	c.Assert(err, chk.IsNil)
	c.Check(log, chk.HasLen, 1)
}

func (s *RepoSuite) TestBlankNamesNeverReachSnapshot(c *chk.C) {
	ss := newSession()
	_, err := ss.CreateBranch("", "")
	c.Check(errors.Is(err, branches.ErrInvalidName), chk.Equals, true)
	_, err = ss.CreateBranch("  ", branches.Root)
	c.Check(errors.Is(err, branches.ErrInvalidName), chk.Equals, true)
	err = ss.GrantRole("  ", "admin", []string{"push"})
	c.Check(errors.Is(err, access.ErrInvalidIdentity), chk.Equals, true)

	_, err = ss.CreateBranch("feature", branches.Root)
	c.Assert(err, chk.IsNil)
	c.Assert(ss.GrantRole("alice@x", "admin", []string{"push"}), chk.IsNil)

	data, err := ss.Repo.Encode()
	c.Assert(err, chk.IsNil)
	r, err := Decode("demo", data)
	c.Assert(err, chk.IsNil)
	c.Check(r.Branches.Has("feature"), chk.Equals, true)
	c.Check(r.Roles.Exists("alice@x"), chk.Equals, true)
}

func (s *RepoSuite) TestStoreDefault(c *chk.C) {
	st := Store{Dir: filepath.Join(s.dir, "defaults")}
	name, err := st.Default()
	c.Assert(err, chk.IsNil)
	c.Check(name, chk.Equals, "")

	c.Assert(st.SetDefault("proj"), chk.IsNil)
	name, err = st.Default()
	c.Assert(err, chk.IsNil)
	c.Check(name, chk.Equals, "proj")

	c.Check(st.SetDefault("../escape"), chk.NotNil)
	_, err = st.Load("missing")
	c.Check(errors.Is(err, ErrNoRepository), chk.Equals, true)
	c.Check(st.Exists("missing"), chk.Equals, false)

	c.Assert(os.WriteFile(filepath.Join(st.Dir, "junk.json"), []byte("not json"), 0644), chk.IsNil)
	r, err := st.Load("junk")
	c.Check(r, chk.IsNil)
	c.Check(err, chk.NotNil)
}
