package config

import (
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ReservedUserNames collide with the other entries of a thoughts/ directory
var ReservedUserNames = []string{"global", "shared", "searchable"}

var sanitizedName = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

// Validate checks the fields every command relies on
func (c *GlobalConfig) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ThoughtsRepo, validation.Required),
		validation.Field(&c.ReposDir, validation.Required),
		validation.Field(&c.GlobalDir, validation.Required),
		validation.Field(&c.User, validation.Required, validation.By(validUserName)),
		validation.Field(&c.RepoMappings),
		validation.Field(&c.Profiles),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigInvalid, "invalid thoughts configuration")
	}
	return nil
}

// Validate implements validation.Validatable
func (p ProfileStorage) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ThoughtsRepo, validation.Required),
		validation.Field(&p.ReposDir, validation.Required),
		validation.Field(&p.GlobalDir, validation.Required),
	)
}

// Validate implements validation.Validatable
func (m RepoMapping) Validate() error {
	return validation.Validate(m.repo,
		validation.Required,
		validation.Match(sanitizedName).Error("must contain only letters, digits, '_' and '-'"),
	)
}

// ValidateUserName reports whether name can be used as the user entry of a
// thoughts/ directory.
func ValidateUserName(name string) error {
	return validation.Validate(name, validation.Required, validation.By(validUserName))
}

func validUserName(value interface{}) error {
	name, _ := value.(string)
	for _, reserved := range ReservedUserNames {
		if strings.EqualFold(name, reserved) {
			return stderrors.New("cannot be \"" + reserved + "\" (reserved)")
		}
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return stderrors.New("must be a single path element")
	}
	return nil
}
