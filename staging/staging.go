// Package staging tracks the files queued for the next commit.
package staging

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrNotStaged is returned when an operation names a file that isn't in the staging area.
var ErrNotStaged = errors.New("file not staged")

// StatusAdded is the only status the staging area records.
const StatusAdded = "A"

// File is one staged entry.
type File struct {
	Name     string    `json:"filename"`
	Status   string    `json:"status"`
	Checksum string    `json:"checksum"`
	Staged   time.Time `json:"timestamp"`
	Selected bool      `json:"selected"`
}

// Area is an ordered list of staged files.
type Area struct {
	files []File
	now   func() time.Time
}

// New returns an empty staging area.
func New() *Area {
	return &Area{now: time.Now}
}

// Restore returns a staging area holding the given files, in order.  Later duplicates of a
// name are dropped.
func Restore(files []File) *Area {
	a := New()
	seen := map[string]bool{}
	for _, f := range files {
		if f.Name == "" || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		a.files = append(a.files, f)
	}
	return a
}

// SetClock overrides the clock used for checksums and timestamps.
func (a *Area) SetClock(now func() time.Time) {
	a.now = now
}

func checksum(name string, t time.Time) string {
	s := sha1.Sum([]byte(fmt.Sprintf("%s-%d", name, t.UnixNano())))
	return hex.EncodeToString(s[:])[:10]
}

// Add stages a file.  Staging a file again refreshes its checksum and keeps its selection.
// It returns true when the file wasn't staged before.
func (a *Area) Add(name string) bool {
	t := a.now()
	f := File{Name: name, Status: StatusAdded, Checksum: checksum(name, t), Staged: t}
	for i := range a.files {
		if a.files[i].Name != name {
			continue
		}
		if a.files[i].Checksum != f.Checksum {
			f.Selected = a.files[i].Selected
			a.files[i] = f
		}
		return false
	}
	a.files = append(a.files, f)
	return true
}

// Toggle flips the selection flag of a staged file and returns the new value.
func (a *Area) Toggle(name string) (bool, error) {
	for i := range a.files {
		if a.files[i].Name == name {
			a.files[i].Selected = !a.files[i].Selected
			return a.files[i].Selected, nil
		}
	}
	return false, errors.Wrapf(ErrNotStaged, "'%s'", name)
}

// Selected returns the names of the selected files, in staging order.
func (a *Area) Selected() []string {
	var names []string
	for _, f := range a.files {
		if f.Selected {
			names = append(names, f.Name)
		}
	}
	return names
}

// Names returns every staged file name, in staging order.
func (a *Area) Names() []string {
	names := make([]string, 0, len(a.files))
	for _, f := range a.files {
		names = append(names, f.Name)
	}
	return names
}

// Files returns a copy of every staged entry.
func (a *Area) Files() []File {
	return a.Pending(false)
}

// Pending returns a copy of the staged entries, optionally only the selected ones.
func (a *Area) Pending(selectedOnly bool) []File {
	list := make([]File, 0, len(a.files))
	for _, f := range a.files {
		if !selectedOnly || f.Selected {
			list = append(list, f)
		}
	}
	return list
}

// CommitSet returns the files the next commit records: the selected ones, or all of them
// when nothing is selected.
func (a *Area) CommitSet() []string {
	if sel := a.Selected(); len(sel) > 0 {
		return sel
	}
	return a.Names()
}

// ClearSelected unstages the selected files and returns how many were removed.
func (a *Area) ClearSelected() int {
	kept := a.files[:0]
	for _, f := range a.files {
		if !f.Selected {
			kept = append(kept, f)
		}
	}
	removed := len(a.files) - len(kept)
	a.files = kept
	return removed
}

// Clear unstages everything and returns how many files were removed.
func (a *Area) Clear() int {
	n := len(a.files)
	a.files = nil
	return n
}

func (a *Area) Len() int {
	return len(a.files)
}
