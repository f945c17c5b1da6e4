package gitrepo

import (
	"os"
	"time"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Identity environment variables, honoured the same way git honours them
const (
	EnvAuthorName  = "GIT_AUTHOR_NAME"
	EnvAuthorEmail = "GIT_AUTHOR_EMAIL"
)

// resolveIdentity picks the commit identity: the GIT_AUTHOR_* environment
// first, then the repository's own config, then the user's global config.
// A source is only used when it provides both a name and an email.
func resolveIdentity(repo *git.Repository) (*object.Signature, error) {
	name, email := os.Getenv(EnvAuthorName), os.Getenv(EnvAuthorEmail)

	if name == "" || email == "" {
		if cfg, err := repo.Config(); err == nil {
			name, email = fill(name, email, cfg.User.Name, cfg.User.Email)
		}
	}
	if name == "" || email == "" {
		if cfg, err := gitconfig.LoadConfig(gitconfig.GlobalScope); err == nil {
			name, email = fill(name, email, cfg.User.Name, cfg.User.Email)
		}
	}

	if name == "" || email == "" {
		return nil, errors.New(errors.ErrGitNoIdentity,
			"no git identity configured; set user.name and user.email with 'git config --global'")
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}, nil
}

func fill(name, email, cfgName, cfgEmail string) (string, string) {
	if name == "" {
		name = cfgName
	}
	if email == "" {
		email = cfgEmail
	}
	return name, email
}
