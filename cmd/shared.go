package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/sqlitebrowser/scvs/access"
	"github.com/sqlitebrowser/scvs/repo"
)

// Returns the snapshot store set in the config
func getStore() repo.Store {
	return repo.Store{Dir: viper.GetString("general.storage")}
}

// Returns the repository named with --repo, or the selected default
func getRepoName() (string, error) {
	if repoName != "" {
		return repoName, nil
	}
	name, err := getStore().Default()
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", errors.New("No repository specified, and no default repository selected")
	}
	return name, nil
}

// Returns the author string for new commits, from the user details in the config
func getAuthor() string {
	name := viper.GetString("user.name")
	email := viper.GetString("user.email")
	switch {
	case name != "" && email != "":
		return fmt.Sprintf("%s <%s>", name, email)
	case email != "":
		return email
	case name != "":
		return name
	}
	return "unknown"
}

// Returns the role policy file from the config, or the built in policy when none is set
func getPolicy() (access.Policy, error) {
	path := viper.GetString("general.policy")
	if path == "" {
		return access.DefaultPolicy(), nil
	}
	return access.LoadPolicy(path)
}

// Loads the selected repository and starts a session on it.  Snapshot sections that couldn't
// be loaded are reported as warnings, and replaced with empty ones.
func openSession() (*repo.Session, error) {
	name, err := getRepoName()
	if err != nil {
		return nil, err
	}
	r, err := getStore().Load(name)
	if r == nil {
		return nil, err
	}
	for _, e := range multierr.Errors(err) {
		log.Printf("Warning: %s", e)
	}
	pol, err := getPolicy()
	if err != nil {
		return nil, err
	}
	return repo.NewSession(r, getAuthor(), pol), nil
}

// Saves the session's repository back to disk
func saveSession(s *repo.Session) error {
	return getStore().Save(s.Repo)
}

// Loads the repository, applies a change to it and saves the result
func updateSession(f func(s *repo.Session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err = f(s); err != nil {
		return err
	}
	return saveSession(s)
}

// Parses a pull request ID given on the command line
func parsePRID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || id < 1 {
		return 0, errors.Errorf("Invalid pull request ID '%s'", arg)
	}
	return id, nil
}

// Splits permission arguments, which can be separated by spaces or commas
func splitPerms(args []string) []string {
	var perms []string
	for _, a := range args {
		for _, p := range strings.Split(a, ",") {
			if p = strings.TrimSpace(p); p != "" {
				perms = append(perms, p)
			}
		}
	}
	return perms
}
