package access

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/sqlitebrowser/scvs/directory"
)

var (
	// ErrNotFound is returned when an identity has no entry in the directory.
	ErrNotFound = errors.New("no role entry for identity")

	// ErrInvalidIdentity is returned when granting a role to an empty or blank identity.
	ErrInvalidIdentity = errors.New("invalid identity")
)

// RoleEntry is the payload stored for each identity.
type RoleEntry struct {
	Role        string
	Permissions *directory.Set[string]
}

// RoleInfo is a detached copy of a directory entry.
type RoleInfo struct {
	Identity    string
	Role        string
	Permissions []string
}

// Directory maps lower cased identities to their role and permission set.
//
// It doesn't know what the roles mean.  Callers check grants against a Policy first.
type Directory struct {
	t *directory.Tree[string, *RoleEntry]
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{t: directory.New[string, *RoleEntry]()}
}

func normalise(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Grant creates or updates an identity's entry.  The role is replaced, and the permissions
// are added to whatever the identity already holds.
func (d *Directory) Grant(id, role string, perms []string) error {
	key := normalise(id)
	if key == "" {
		return errors.Wrapf(ErrInvalidIdentity, "'%s'", id)
	}
	if e, ok := d.t.Get(key); ok {
		e.Role = role
		for _, p := range perms {
			e.Permissions.Insert(p)
		}
		return nil
	}
	d.t.Insert(key, &RoleEntry{Role: role, Permissions: directory.NewSet(perms...)})
	return nil
}

// Update is Grant for an identity that must already exist.
func (d *Directory) Update(id, role string, perms []string) error {
	if !d.t.Contains(normalise(id)) {
		return errors.Wrapf(ErrNotFound, "'%s'", id)
	}
	return d.Grant(id, role, perms)
}

// Revoke removes an identity along with all of its permissions.
func (d *Directory) Revoke(id string) error {
	if !d.t.Remove(normalise(id)) {
		return errors.Wrapf(ErrNotFound, "'%s'", id)
	}
	return nil
}

// Lookup returns a copy of an identity's entry.
func (d *Directory) Lookup(id string) (RoleInfo, error) {
	key := normalise(id)
	e, ok := d.t.Get(key)
	if !ok {
		return RoleInfo{}, errors.Wrapf(ErrNotFound, "'%s'", id)
	}
	return RoleInfo{Identity: key, Role: e.Role, Permissions: e.Permissions.Keys()}, nil
}

// Exists reports whether the identity has an entry.
func (d *Directory) Exists(id string) bool {
	return d.t.Contains(normalise(id))
}

// HasPermission reports whether the identity exists and holds perm.
func (d *Directory) HasPermission(id, perm string) bool {
	e, ok := d.t.Get(normalise(id))
	return ok && e.Permissions.Contains(perm)
}

// List returns every entry, ordered by identity.
func (d *Directory) List() []RoleInfo {
	list := make([]RoleInfo, 0, d.t.Len())
	for k, e := range d.t.All() {
		list = append(list, RoleInfo{Identity: k, Role: e.Role, Permissions: e.Permissions.Keys()})
	}
	return list
}

func (d *Directory) Len() int {
	return d.t.Len()
}

// Balanced reports whether the outer tree and every permission set satisfy the AVL invariant.
func (d *Directory) Balanced() bool {
	if !d.t.Balanced() {
		return false
	}
	for _, e := range d.t.All() {
		if !e.Permissions.Balanced() {
			return false
		}
	}
	return true
}

// Record is the nested form used when saving a directory.
type Record struct {
	Identity    string   `json:"key"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Left        *Record  `json:"left,omitempty"`
	Right       *Record  `json:"right,omitempty"`
}

// Records returns the directory as a nested record tree mirroring its current shape.
func (d *Directory) Records() *Record {
	return directory.Nest(d.t, func(k string, e *RoleEntry, left, right *Record) *Record {
		return &Record{Identity: k, Role: e.Role, Permissions: e.Permissions.Keys(), Left: left, Right: right}
	})
}

// FromRecords rebuilds a directory from a nested record tree.  The result is rebuilt balanced
// from the sorted identities, so its shape may differ from the saved one.
func FromRecords(root *Record) (*Directory, error) {
	var entries []directory.Entry[string, *RoleEntry]
	var collect func(r *Record, depth int) error
	collect = func(r *Record, depth int) error {
		if r == nil {
			return nil
		}
		if depth > 64 {
			return errors.New("role records nested too deeply")
		}
		key := normalise(r.Identity)
		if key == "" {
			return errors.New("role record with an empty key")
		}
		if err := collect(r.Left, depth+1); err != nil {
			return err
		}
		entries = append(entries, directory.Entry[string, *RoleEntry]{
			Key:   key,
			Value: &RoleEntry{Role: r.Role, Permissions: directory.NewSet(r.Permissions...)},
		})
		return collect(r.Right, depth+1)
	}
	if err := collect(root, 0); err != nil {
		return NewDirectory(), err
	}
	return &Directory{t: directory.Build(entries)}, nil
}
