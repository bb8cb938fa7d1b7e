// Package access keeps the per-user role and permission directory, and the fixed policy
// describing which permissions each role may be granted.
package access

import (
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

var (
	ErrInvalidRole          = errors.New("invalid role")
	ErrPermissionNotAllowed = errors.New("permission not allowed for role")
)

// Policy maps each role to the permissions it may hold.  It is immutable once built.
type Policy struct {
	allowed map[string][]string
}

// DefaultPolicy returns the built-in role table.
func DefaultPolicy() Policy {
	p, _ := NewPolicy(map[string][]string{
		"admin":      {"pull", "push", "merge"},
		"maintainer": {"push", "merge"},
		"developer":  {"push"},
		"guest":      {"pull"},
	})
	return p
}

// NewPolicy copies the given table into a Policy.  Role names are case insensitive.
func NewPolicy(table map[string][]string) (Policy, error) {
	if len(table) == 0 {
		return Policy{}, errors.New("policy defines no roles")
	}
	p := Policy{allowed: make(map[string][]string, len(table))}
	for role, perms := range table {
		r := strings.ToLower(strings.TrimSpace(role))
		if r == "" {
			return Policy{}, errors.New("policy has a role with an empty name")
		}
		list := slices.Clone(perms)
		slices.Sort(list)
		p.allowed[r] = slices.Compact(list)
	}
	return p, nil
}

// LoadPolicy reads a YAML mapping of role names to permission lists.
func LoadPolicy(path string) (Policy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, err
	}
	var table map[string][]string
	if err = yaml.Unmarshal(b, &table); err != nil {
		return Policy{}, errors.Wrapf(err, "parsing policy file '%s'", path)
	}
	return NewPolicy(table)
}

// Roles returns the role names, sorted.
func (p Policy) Roles() []string {
	roles := make([]string, 0, len(p.allowed))
	for r := range p.allowed {
		roles = append(roles, r)
	}
	slices.Sort(roles)
	return roles
}

// Allowed returns the permissions a role may hold.
func (p Policy) Allowed(role string) ([]string, bool) {
	perms, ok := p.allowed[strings.ToLower(role)]
	return slices.Clone(perms), ok
}

// Validate checks that role exists and every permission is in its allow-list.
func (p Policy) Validate(role string, perms []string) error {
	allowed, ok := p.allowed[strings.ToLower(role)]
	if !ok {
		return errors.Wrapf(ErrInvalidRole, "'%s' (valid roles: %s)", role, strings.Join(p.Roles(), ", "))
	}
	var bad []string
	for _, perm := range perms {
		if _, found := slices.BinarySearch(allowed, perm); !found {
			bad = append(bad, perm)
		}
	}
	if len(bad) > 0 {
		return errors.Wrapf(ErrPermissionNotAllowed, "'%s' can't hold %s (allowed: %s)", role,
			strings.Join(bad, ", "), strings.Join(allowed, ", "))
	}
	return nil
}
