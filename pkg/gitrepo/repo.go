package gitrepo

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/dustin/go-humanize"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"
)

// NoChangesMessage is what Status reports for a clean working tree
const NoChangesMessage = "No changes to commit"

// Structured is the in-process half of a repository handle
type Structured interface {
	// AddAll stages every new, modified and deleted file
	AddAll() error
	// HasChanges reports whether the working tree or index differs from
	// HEAD, untracked files included
	HasChanges() (bool, error)
	// Commit records the index with the resolved identity
	Commit(message string) (string, error)
	// Status lists changed paths, or NoChangesMessage
	Status() (string, error)
	// RemoteURL returns the origin URL, empty when there is no origin
	RemoteURL() (string, error)
	// LastCommit returns nil for a repository without commits
	LastCommit() (*CommitSummary, error)
}

// Transport is the remote-facing half of a repository handle
type Transport interface {
	PullRebase(ctx context.Context) error
	Push(ctx context.Context) error
}

// Repository is a handle on one physical thoughts repository
type Repository interface {
	Structured
	Transport
	Path() string
}

// Opener opens the repository at a path
type Opener func(path string) (Repository, error)

// CommitSummary describes a single commit
type CommitSummary struct {
	Hash    string
	Summary string
	When    time.Time
}

// ShortHash is the abbreviated commit id
func (c CommitSummary) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Age renders When relative to now, e.g. "3 hours ago"
func (c CommitSummary) Age() string {
	return humanize.Time(c.When)
}

func (c CommitSummary) String() string {
	return fmt.Sprintf("%s %s (%s)", c.ShortHash(), c.Summary, c.Age())
}

// Repo implements Repository with go-git for structured operations and an
// embedded Transport for remote operations.
type Repo struct {
	Transport

	path   string
	repo   *git.Repository
	logger zerolog.Logger
}

var _ Repository = (*Repo)(nil)

// IsRepo reports whether path is the top of a git working tree
func IsRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// Open opens the repository whose working tree is rooted at path. The git
// binary is used for transport.
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.Newf(errors.ErrGitNotRepository, "%s is not a git repository", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrGitOperation, "failed to open git repository at %s", path).
			WithDetail("path", path)
	}
	return newRepo(path, repo), nil
}

// OpenRepository is an Opener backed by Open
func OpenRepository(path string) (Repository, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Init creates a repository with a working tree at path
func Init(path string) (*Repo, error) {
	repo, err := git.PlainInit(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGitOperation, "failed to initialize git repository at %s", path).
			WithDetail("path", path)
	}
	r := newRepo(path, repo)
	r.logger.Info().Msg("Initialized git repository")
	return r, nil
}

func newRepo(path string, repo *git.Repository) *Repo {
	return &Repo{
		Transport: NewCLITransport(path, NewExecRunner()),
		path:      path,
		repo:      repo,
		logger:    logging.GetLogger("gitrepo").With().Str("repo", path).Logger(),
	}
}

// WithTransport returns a copy of r using t for remote operations
func (r *Repo) WithTransport(t Transport) *Repo {
	clone := *r
	clone.Transport = t
	return &clone
}

// Path is the working tree root
func (r *Repo) Path() string { return r.path }

func (r *Repo) worktree() (*git.Worktree, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrGitOperation, "failed to open worktree").
			WithDetail("path", r.path)
	}
	return wt, nil
}

// AddAll implements Structured
func (r *Repo) AddAll() error {
	wt, err := r.worktree()
	if err != nil {
		return err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return errors.Wrap(err, errors.ErrGitOperation, "failed to stage changes").
			WithDetail("path", r.path)
	}
	r.logger.Debug().Msg("Staged all changes")
	return nil
}

// HasChanges implements Structured
func (r *Repo) HasChanges() (bool, error) {
	status, err := r.status()
	if err != nil {
		return false, err
	}
	return !status.IsClean(), nil
}

func (r *Repo) status() (git.Status, error) {
	wt, err := r.worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrGitOperation, "failed to read repository status").
			WithDetail("path", r.path)
	}
	return status, nil
}

// Commit implements Structured. The parent is HEAD when it exists; the
// first commit of a repository is a root commit.
func (r *Repo) Commit(message string) (string, error) {
	sig, err := resolveIdentity(r.repo)
	if err != nil {
		return "", err
	}

	wt, err := r.worktree()
	if err != nil {
		return "", err
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrGitOperation, "failed to commit").
			WithDetail("path", r.path)
	}

	r.logger.Info().Str("hash", hash.String()).Str("message", firstLine(message)).Msg("Committed")
	return hash.String(), nil
}

// Status implements Structured
func (r *Repo) Status() (string, error) {
	status, err := r.status()
	if err != nil {
		return "", err
	}
	if status.IsClean() {
		return NoChangesMessage, nil
	}

	files := make([]string, 0, len(status))
	for path, fs := range status {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)

	var b strings.Builder
	for _, path := range files {
		fmt.Fprintf(&b, "  %-10s %s\n", describe(status[path]), path)
	}
	return b.String(), nil
}

func describe(fs *git.FileStatus) string {
	switch {
	case fs.Worktree == git.Untracked:
		return "untracked"
	case fs.Worktree == git.Modified:
		return "modified"
	case fs.Staging == git.Added:
		return "added"
	case fs.Staging == git.Deleted, fs.Worktree == git.Deleted:
		return "deleted"
	case fs.Staging == git.Renamed:
		return "renamed"
	case fs.Staging == git.Modified:
		return "modified"
	case fs.Staging == git.UpdatedButUnmerged, fs.Worktree == git.UpdatedButUnmerged:
		return "unmerged"
	default:
		return strings.TrimSpace(string(fs.Staging) + string(fs.Worktree))
	}
}

// RemoteURL implements Structured
func (r *Repo) RemoteURL() (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		if stderrors.Is(err, git.ErrRemoteNotFound) {
			return "", nil
		}
		return "", errors.Wrap(err, errors.ErrGitOperation, "failed to read remote").
			WithDetail("path", r.path)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// LastCommit implements Structured
func (r *Repo) LastCommit() (*CommitSummary, error) {
	head, err := r.repo.Head()
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrGitOperation, "failed to read HEAD").
			WithDetail("path", r.path)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGitOperation, "failed to read commit %s", head.Hash()).
			WithDetail("path", r.path)
	}

	summary := firstLine(commit.Message)
	if summary == "" {
		summary = "(no message)"
	}
	return &CommitSummary{
		Hash:    commit.Hash.String(),
		Summary: summary,
		When:    commit.Author.When,
	}, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
