package repo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoRepository is returned when loading a repository that was never saved.
var ErrNoRepository = errors.New("repository doesn't exist")

// Store keeps repository snapshots as <name>.json files in a single directory.
type Store struct {
	Dir string
}

const defaultFile = "default"

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Errorf("invalid repository name '%s'", name)
	}
	return nil
}

func (s Store) path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

// Exists reports whether a snapshot for the repository is present.
func (s Store) Exists(name string) bool {
	if validName(name) != nil {
		return false
	}
	_, err := os.Stat(s.path(name))
	return err == nil
}

// Load reads a repository snapshot.  When some sections of the snapshot were unusable, the
// repository is still returned along with the combined decode errors.
func (s Store) Load(name string) (*Repository, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNoRepository, "'%s'", name)
	}
	if err != nil {
		return nil, err
	}
	return Decode(name, data)
}

// Save writes the repository snapshot, replacing any earlier one.
func (s Store) Save(r *Repository) error {
	if err := validName(r.Name); err != nil {
		return err
	}
	data, err := r.Encode()
	if err != nil {
		return err
	}
	return s.write(s.path(r.Name), data)
}

func (s Store) write(path string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0750); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// SetDefault records the repository used when none is given explicitly.
func (s Store) SetDefault(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	return s.write(filepath.Join(s.Dir, defaultFile), []byte(name+"\n"))
}

// Default returns the selected repository name, or "" if none has been selected.
func (s Store) Default() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, defaultFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(data)), nil
}
