package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	chk "gopkg.in/check.v1"

	"github.com/sqlitebrowser/scvs/branches"
	"github.com/sqlitebrowser/scvs/pullreq"
	"github.com/sqlitebrowser/scvs/repo"
)

type ScvsSuite struct {
	buf     bytes.Buffer
	config  string
	dir     string
	oldOut  io.Writer
	storage string
}

const (
	CONFIG = `[general]
storage = "%s"
loglimit = 10
policy = "%s"

[user]
name = "Some One"
email = "someone@example.org"
`
	POLICY = `admin: [pull, push, merge]
maintainer: [push, merge]
developer: [push]
guest: [pull]
owner: [pull, push, merge, admin]
`
)

var (
	_        = chk.Suite(&ScvsSuite{})
	showFlag = flag.Bool("show", false, "Don't redirect test command output to /dev/null")
)

func Test(t *testing.T) {
	chk.TestingT(t)
}

func (s *ScvsSuite) SetUpSuite(c *chk.C) {
	// Create the config and role policy files in a temp directory
	s.dir = c.MkDir()
	s.storage = filepath.Join(s.dir, "store")
	policy := filepath.Join(s.dir, "policy.yaml")
	err := os.WriteFile(policy, []byte(POLICY), 0644)
	if err != nil {
		log.Fatalln(err.Error())
	}
	s.config = filepath.Join(s.dir, "config.toml")
	err = os.WriteFile(s.config, []byte(fmt.Sprintf(CONFIG, s.storage, policy)), 0644)
	if err != nil {
		log.Fatalln(err.Error())
	}
	cfgFile = s.config
	initConfig()

	// If not told otherwise, redirect command output to /dev/null
	if !*showFlag {
		fOut, err = os.OpenFile(os.DevNull, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalln(err)
		}
	}
	color.NoColor = true
}

func (s *ScvsSuite) SetUpTest(c *chk.C) {
	// Redirect display output to a temp buffer
	s.oldOut = fOut
	fOut = &s.buf
}

func (s *ScvsSuite) TearDownTest(c *chk.C) {
	// Restore the display output redirection
	fOut = s.oldOut

	// Clear the buffered contents
	s.buf.Reset()
}

// Loads the demo repository straight from the store
func (s *ScvsSuite) load(c *chk.C) *repo.Repository {
	r, err := repo.Store{Dir: s.storage}.Load("demo")
	c.Assert(err, chk.IsNil)
	return r
}

func (s *ScvsSuite) contains(c *chk.C, want ...string) {
	out := s.buf.String()
	for _, w := range want {
		c.Check(strings.Contains(out, w), chk.Equals, true, chk.Commentf("missing %q in:\n%s", w, out))
	}
}

// Test the "scvs init" command
func (s *ScvsSuite) Test0010_Init(c *chk.C) {
	initCmdInitial = true
	err := initRepo([]string{"demo"})
	c.Assert(err, chk.IsNil)
	s.contains(c, "Initial commit ", "Repository 'demo' initialised")

	r := s.load(c)
	c.Check(r.Graph.Len(), chk.Equals, 1)
	c.Check(r.CurrentBranch, chk.Equals, branches.Root)
	head, err := r.Branches.ResolveHead(branches.Root)
	c.Assert(err, chk.IsNil)
	c.Check(head, chk.Not(chk.Equals), "")

	// A second repository with the same name is refused
	c.Check(initRepo([]string{"demo"}), chk.NotNil)
	c.Check(initRepo(nil), chk.NotNil)
	initCmdInitial = false
}

// Test the "scvs select" command
func (s *ScvsSuite) Test0020_Select(c *chk.C) {
	err := selectDefault(nil)
	c.Assert(err, chk.IsNil)
	s.contains(c, "Default repository: 'demo'")

	c.Check(selectDefault([]string{"nope"}), chk.NotNil)
	c.Assert(selectDefault([]string{"demo"}), chk.IsNil)
}

// Test the "scvs add" and "scvs commit" commands
func (s *ScvsSuite) Test0030_AddCommit(c *chk.C) {
	err := addFiles([]string{"a.txt", "b.txt"})
	c.Assert(err, chk.IsNil)
	s.contains(c, "Staged 'a.txt'", "Staged 'b.txt'")

	err = commit([]string{"first", "files"})
	c.Assert(err, chk.IsNil)
	s.contains(c, "on 'main' (2 files): a.txt, b.txt")

	r := s.load(c)
	c.Check(r.Graph.Len(), chk.Equals, 2)
	c.Check(r.Staging.Len(), chk.Equals, 0)
	head, _ := r.Branches.ResolveHead(branches.Root)
	cm, err := r.Graph.Get(head)
	c.Assert(err, chk.IsNil)
	c.Check(cm.Message, chk.Equals, "first files")
	c.Check(cm.Author, chk.Equals, "Some One <someone@example.org>")
	c.Check(cm.Parents, chk.HasLen, 1)

	err = commit([]string{"empty"})
	c.Check(errors.Is(err, repo.ErrNothingStaged), chk.Equals, true)
	c.Check(commit(nil), chk.NotNil)
}

// Test the "scvs stage" commands
func (s *ScvsSuite) Test0040_Stage(c *chk.C) {
	c.Assert(addFiles([]string{"c.txt", "d.txt"}), chk.IsNil)
	c.Assert(stageToggle([]string{"d.txt"}), chk.IsNil)
	c.Check(stageToggle([]string{"zzz.txt"}), chk.NotNil)

	s.buf.Reset()
	c.Assert(stageList(), chk.IsNil)
	s.contains(c, "[ ] c.txt", "[X] d.txt", "2 files staged, 1 selected")

	c.Assert(stageClear(true), chk.IsNil)
	c.Check(s.load(c).Staging.Names(), chk.DeepEquals, []string{"c.txt"})
	c.Assert(stageClear(false), chk.IsNil)
	c.Check(s.load(c).Staging.Len(), chk.Equals, 0)
}

// Test the "scvs branch" and "scvs checkout" commands
func (s *ScvsSuite) Test0050_Branches(c *chk.C) {
	branchCreateFrom = ""
	c.Assert(branchCreate([]string{"feature"}), chk.IsNil)
	s.contains(c, "Branch 'feature' created from 'main'")
	c.Check(branchCreate([]string{"feature"}), chk.NotNil)

	c.Assert(checkout([]string{"feature"}), chk.IsNil)
	c.Check(checkout([]string{"ghost"}), chk.NotNil)
	c.Assert(addFiles([]string{"f.txt"}), chk.IsNil)
	c.Assert(commit([]string{"feature", "work"}), chk.IsNil)

	branchCreateFrom = "feature"
	c.Assert(branchCreate([]string{"spike"}), chk.IsNil)
	branchCreateFrom = ""

	s.buf.Reset()
	branchListTree = true
	c.Assert(branchList(), chk.IsNil)
	branchListTree = false
	s.contains(c, "└─ main (", "\n  └─ feature (", "\n    └─ spike (", "Checked out branch: feature")

	s.buf.Reset()
	c.Assert(branchList(), chk.IsNil)
	s.contains(c, "  * feature - Commit: ", "    main - Commit: ")

	// The checked out branch, and branches with children, can't be removed
	err := branchRemove([]string{"feature"})
	c.Check(errors.Is(err, repo.ErrCheckedOut), chk.Equals, true)
	c.Assert(checkout([]string{"main"}), chk.IsNil)
	err = branchRemove([]string{"feature"})
	c.Check(errors.Is(err, branches.ErrHasChildren), chk.Equals, true)
	err = branchRemove([]string{"main"})
	c.Check(errors.Is(err, branches.ErrProtectedRoot), chk.Equals, true)
	c.Assert(branchRemove([]string{"spike"}), chk.IsNil)
	c.Check(s.load(c).Branches.Names(), chk.DeepEquals, []string{"feature", "main"})
}

// Test the "scvs merge" command
func (s *ScvsSuite) Test0060_Merge(c *chk.C) {
	r := s.load(c)
	featureHead, _ := r.Branches.ResolveHead("feature")
	size := r.Graph.Len()

	err := mergeBranches([]string{"feature", "main"})
	c.Assert(err, chk.IsNil)
	s.contains(c, "Fast-forward: 'main' is now at ")

	r = s.load(c)
	head, _ := r.Branches.ResolveHead("main")
	c.Check(head, chk.Equals, featureHead)
	c.Check(r.Graph.Len(), chk.Equals, size)

	c.Check(mergeBranches([]string{"main", "main"}), chk.NotNil)
	c.Check(mergeBranches([]string{"main"}), chk.NotNil)
}

// Test the "scvs pr" commands
func (s *ScvsSuite) Test0070_PullRequests(c *chk.C) {
	// Diverge the two branches
	c.Assert(branchCreate([]string{"topic"}), chk.IsNil)
	c.Assert(checkout([]string{"topic"}), chk.IsNil)
	c.Assert(addFiles([]string{"t.txt"}), chk.IsNil)
	c.Assert(commit([]string{"topic", "work"}), chk.IsNil)
	c.Assert(checkout([]string{"main"}), chk.IsNil)
	c.Assert(addFiles([]string{"m.txt"}), chk.IsNil)
	c.Assert(commit([]string{"main", "work"}), chk.IsNil)

	s.buf.Reset()
	prCreateDesc = "Topic work for review"
	c.Assert(prCreate([]string{"topic", "main"}), chk.IsNil)
	prCreateDesc = ""
	s.contains(c, "Created PR #1: Merge topic into main")
	c.Check(prCreate([]string{"topic", "topic"}), chk.NotNil)

	err := prMerge([]string{"1"})
	c.Check(errors.Is(err, repo.ErrNotApproved), chk.Equals, true)

	c.Assert(prReview([]string{"1", "looks", "good"}), chk.IsNil)
	c.Assert(prTag([]string{"#1", "release"}), chk.IsNil)
	c.Assert(prApprove([]string{"1"}), chk.IsNil)
	c.Check(prApprove([]string{"1"}), chk.NotNil)

	s.buf.Reset()
	c.Assert(prMerge([]string{"1"}), chk.IsNil)
	s.contains(c, "Merge commit ", "Pull request #1 merged")

	r := s.load(c)
	pr, err := r.PRs.Find(1)
	c.Assert(err, chk.IsNil)
	c.Check(pr.Status, chk.Equals, pullreq.Merged)
	c.Check(pr.Reviewers, chk.DeepEquals, []string{"Some One <someone@example.org>"})
	c.Check(pr.Tags, chk.DeepEquals, []string{"release"})
	c.Check(pr.Description, chk.Equals, "Topic work for review")
	head, _ := r.Branches.ResolveHead("main")
	mc, err := r.Graph.Get(head)
	c.Assert(err, chk.IsNil)
	c.Check(mc.Message, chk.Equals, "Merge branch 'topic' into main")
	c.Check(mc.Files, chk.DeepEquals, []string{"m.txt", "t.txt"})

	s.buf.Reset()
	c.Assert(prStatus([]string{"1"}), chk.IsNil)
	s.contains(c, "PR #1: Merge topic into main", "Status: merged", "Tags: release", "Comments (1):")

	// Closed pull requests stay closed
	c.Check(prReject([]string{"1"}), chk.NotNil)
	c.Assert(prCreate([]string{"main", "topic"}), chk.IsNil)
	c.Assert(prReject([]string{"2", "not", "needed"}), chk.IsNil)

	s.buf.Reset()
	c.Assert(prList(), chk.IsNil)
	s.contains(c, "Open pull requests:", "(none)", "#1", "#2", "rejected")
	c.Check(prStatus([]string{"abc"}), chk.NotNil)
}

// Test the "scvs role" commands
func (s *ScvsSuite) Test0080_Roles(c *chk.C) {
	c.Assert(roleAdd([]string{"Ana@Example.org", "developer", "push"}, false), chk.IsNil)
	s.contains(c, "'ana@example.org' is now developer, with permissions: push")

	err := roleAdd([]string{"bo@example.org", "guest", "push"}, false)
	c.Check(err, chk.NotNil)
	err = roleAdd([]string{"bo@example.org", "overlord"}, false)
	c.Check(err, chk.NotNil)

	// "owner" only exists in the policy file from the config
	c.Assert(roleAdd([]string{"cy@example.org", "owner", "admin,merge"}, false), chk.IsNil)
	c.Check(roleAdd([]string{"nobody@example.org", "admin"}, true), chk.NotNil)
	c.Assert(roleAdd([]string{"ana@example.org", "maintainer", "merge"}, true), chk.IsNil)

	s.buf.Reset()
	c.Assert(roleCheck([]string{"ana@example.org", "merge"}), chk.IsNil)
	c.Assert(roleCheck([]string{"ana@example.org", "admin"}), chk.IsNil)
	c.Assert(roleCheck([]string{"dan@example.org", "pull"}), chk.IsNil)
	s.contains(c, "Yes, 'ana@example.org'", "No, 'ana@example.org'", "'dan@example.org' has no role")

	s.buf.Reset()
	c.Assert(roleList(), chk.IsNil)
	out := s.buf.String()
	c.Check(strings.Index(out, "ana@example.org") < strings.Index(out, "cy@example.org"), chk.Equals, true)
	s.contains(c, "maintainer", "merge, push")

	s.buf.Reset()
	c.Assert(roleShow([]string{"cy@example.org"}), chk.IsNil)
	s.contains(c, "Role: owner", "Permissions: admin, merge")

	c.Assert(roleRemove([]string{"cy@example.org"}), chk.IsNil)
	c.Check(roleShow([]string{"cy@example.org"}), chk.NotNil)
	c.Check(s.load(c).Roles.Len(), chk.Equals, 1)
}

// Test the "scvs contributor" commands
func (s *ScvsSuite) Test0090_Contributors(c *chk.C) {
	c.Assert(contributorAdd([]string{"mara", "Maintainer"}), chk.IsNil)
	c.Assert(contributorAdd([]string{"alex"}), chk.IsNil)
	c.Assert(contributorAdd([]string{"zoe", "Release", "Manager"}), chk.IsNil)

	s.buf.Reset()
	c.Assert(contributorList(), chk.IsNil)
	out := s.buf.String()
	c.Check(strings.Index(out, "alex (Contributor)") < strings.Index(out, "mara (Maintainer)"), chk.Equals, true)
	s.contains(c, "zoe (Release Manager)", "3 collaborators")

	s.buf.Reset()
	c.Assert(contributorFind([]string{"mara"}), chk.IsNil)
	s.contains(c, "mara: Maintainer")

	c.Assert(contributorRemove([]string{"mara"}), chk.IsNil)
	c.Check(contributorFind([]string{"mara"}), chk.NotNil)
	c.Check(contributorRemove([]string{"mara"}), chk.NotNil)
	c.Check(s.load(c).Collaborators.Len(), chk.Equals, 2)
}

// Test the "scvs log" and "scvs status" commands
func (s *ScvsSuite) Test0100_LogStatus(c *chk.C) {
	logCmdLimit = 2
	c.Assert(showLog(), chk.IsNil)
	logCmdLimit = 0
	out := s.buf.String()
	c.Check(strings.Count(out, "  commit "), chk.Equals, 2)
	s.contains(c, "History of branch 'main':", "Merge: ", "Author: Some One <someone@example.org>",
		"Merge branch 'topic' into main")

	s.buf.Reset()
	c.Assert(showLog(), chk.IsNil)
	c.Check(strings.Count(s.buf.String(), "  commit "), chk.Equals, 5)

	c.Assert(addFiles([]string{"s.txt"}), chk.IsNil)
	s.buf.Reset()
	c.Assert(status(), chk.IsNil)
	s.contains(c, "Repository 'demo', on branch main", "Last commit: ", "[ ] s.txt", "0 files selected")
}

// Test the "scvs version" and hidden "scvs debug" commands
func (s *ScvsSuite) Test0110_VersionDebug(c *chk.C) {
	c.Assert(versionCmd.RunE(versionCmd, nil), chk.IsNil)
	s.contains(c, "scvs version "+SCVS_VERSION)

	s.buf.Reset()
	c.Assert(debugDump(), chk.IsNil)
	s.contains(c, "Name: (string) (len=4) \"demo\"", "CurrentBranch:")
}

// Damaged snapshot sections are replaced with empty ones, and reported as warnings
func (s *ScvsSuite) Test0120_DamagedSnapshot(c *chk.C) {
	doc := `{"name": "broken", "current_branch": "main", "branches": "oops", "commits": []}`
	err := os.WriteFile(filepath.Join(s.storage, "broken.json"), []byte(doc), 0644)
	c.Assert(err, chk.IsNil)

	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(os.Stderr)

	repoName = "broken"
	defer func() { repoName = "" }()
	c.Assert(status(), chk.IsNil)
	s.contains(c, "Repository 'broken', on branch main", "No commits yet")
	c.Check(strings.Contains(logBuf.String(), "Warning: section 'branches'"), chk.Equals, true)
}
