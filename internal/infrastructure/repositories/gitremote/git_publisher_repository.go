package gitremote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

const (
	providerName    = "git"
	namePlaceholder = "{name}"
	commitMessage   = "Update project files"
	authorName      = "repopublish"
	authorEmail     = "repopublish@users.noreply.github.com"
	tokenUsername   = "x-access-token"
)

// GitPublisherRepository pushes a file set to any git remote over HTTP(S) or
// SSH. The remote is cloned into memory, the snapshot is committed on top of
// the target branch and the branch is pushed back.
type GitPublisherRepository struct {
	urlTemplate string
	token       string
	clock       entities.Clock
}

// NewGitPublisherRepository creates a git publisher from settings.
func NewGitPublisherRepository(settings *entities.Settings) repositories.PublisherRepository {
	return &GitPublisherRepository{
		urlTemplate: settings.Provider.RemoteURLTemplate,
		token:       settings.Provider.Token,
		clock:       entities.SystemClock,
	}
}

func (p *GitPublisherRepository) Name() string { return providerName }

func (p *GitPublisherRepository) Publish(
	ctx context.Context,
	request entities.PublishRequest,
) (*entities.PublishResult, error) {
	remoteURL := RenderRemoteURL(p.urlTemplate, request.RepoName)
	branchRef := plumbing.NewBranchReferenceName(request.Branch)

	repo, worktreeFS, err := p.checkout(ctx, remoteURL, branchRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrPublishTransport, err)
	}

	changed, err := CommitSnapshot(repo, worktreeFS, request.Files, p.clock())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrPublishTransport, err)
	}

	result := &entities.PublishResult{
		Success:  true,
		RepoURL:  WebURL(remoteURL),
		RepoName: request.RepoName,
	}
	if !changed {
		logger.Infof("Nothing changed on %s@%s, skipping push", WebURL(remoteURL), request.Branch)
		return result, nil
	}

	refSpec := config.RefSpec(branchRef.String() + ":" + branchRef.String())
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       p.auth(),
	})
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
		return result, nil
	case errors.Is(err, git.ErrNonFastForwardUpdate):
		return &entities.PublishResult{
			Success: false,
			Error:   "remote branch " + request.Branch + " has diverged",
		}, nil
	default:
		return nil, fmt.Errorf("%w: push: %w", entities.ErrPublishTransport, err)
	}
}

// checkout clones the target branch. An empty remote, or one without the
// branch yet, starts from a fresh repository whose HEAD points at the branch.
func (p *GitPublisherRepository) checkout(
	ctx context.Context,
	remoteURL string,
	branchRef plumbing.ReferenceName,
) (*git.Repository, billy.Filesystem, error) {
	worktreeFS := memfs.New()
	repo, err := git.CloneContext(ctx, memory.NewStorage(), worktreeFS, &git.CloneOptions{
		URL:           remoteURL,
		Auth:          p.auth(),
		ReferenceName: branchRef,
		SingleBranch:  true,
	})
	if err == nil {
		return repo, worktreeFS, nil
	}
	if !errors.Is(err, transport.ErrEmptyRemoteRepository) &&
		!errors.Is(err, plumbing.ErrReferenceNotFound) &&
		!isMissingRef(err) {
		return nil, nil, fmt.Errorf("clone %s: %w", WebURL(remoteURL), err)
	}

	logger.Debugf("Starting %s from scratch on %s: %v", WebURL(remoteURL), branchRef.Short(), err)
	return InitRepository(remoteURL, branchRef)
}

func (p *GitPublisherRepository) auth() transport.AuthMethod {
	if p.token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: tokenUsername, Password: p.token}
}

// InitRepository creates an in-memory repository with an origin remote and
// HEAD on branchRef.
func InitRepository(
	remoteURL string,
	branchRef plumbing.ReferenceName,
) (*git.Repository, billy.Filesystem, error) {
	worktreeFS := memfs.New()
	repo, err := git.Init(memory.NewStorage(), worktreeFS)
	if err != nil {
		return nil, nil, fmt.Errorf("init: %w", err)
	}

	head := plumbing.NewSymbolicReference(plumbing.HEAD, branchRef)
	if err = repo.Storer.SetReference(head); err != nil {
		return nil, nil, fmt.Errorf("set HEAD: %w", err)
	}

	if _, err = repo.CreateRemote(&config.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{remoteURL},
	}); err != nil {
		return nil, nil, fmt.Errorf("create remote: %w", err)
	}

	return repo, worktreeFS, nil
}

// CommitSnapshot makes the worktree match files exactly and commits the
// result. It reports false when the snapshot equals the current tree.
func CommitSnapshot(
	repo *git.Repository,
	worktreeFS billy.Filesystem,
	files entities.ProjectFileSet,
	when time.Time,
) (bool, error) {
	if err := removeStale(worktreeFS, files); err != nil {
		return false, err
	}

	for _, filePath := range files.Paths() {
		name := strings.TrimPrefix(filePath, "/")
		if dir := path.Dir(name); dir != "." {
			if err := worktreeFS.MkdirAll(dir, 0o755); err != nil {
				return false, fmt.Errorf("mkdir for %q: %w", name, err)
			}
		}
		if err := util.WriteFile(worktreeFS, name, []byte(files[filePath]), 0o644); err != nil {
			return false, fmt.Errorf("write %q: %w", name, err)
		}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("worktree: %w", err)
	}
	if err = worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, fmt.Errorf("stage files: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("status: %w", err)
	}
	if status.IsClean() {
		return false, nil
	}

	hash, err := worktree.Commit(commitMessage, &git.CommitOptions{
		Author: &object.Signature{Name: authorName, Email: authorEmail, When: when},
	})
	if err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}

	logger.Debugf("Created commit %s", hash)
	return true, nil
}

// removeStale deletes worktree files that are not part of the snapshot.
func removeStale(worktreeFS billy.Filesystem, files entities.ProjectFileSet) error {
	wanted := make(map[string]bool, len(files))
	for filePath := range files {
		wanted[strings.TrimPrefix(filePath, "/")] = true
	}

	var stale []string
	err := util.Walk(worktreeFS, "/", func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := strings.TrimPrefix(walkPath, "/")
		if !wanted[name] {
			stale = append(stale, name)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk worktree: %w", err)
	}

	for _, name := range stale {
		if removeErr := worktreeFS.Remove(name); removeErr != nil {
			return fmt.Errorf("remove %q: %w", name, removeErr)
		}
	}
	return nil
}

// RenderRemoteURL fills the repository name into a remote URL template.
func RenderRemoteURL(template, repoName string) string {
	return strings.ReplaceAll(template, namePlaceholder, repoName)
}

// WebURL turns a clone URL into the repository's browsable URL: credentials
// and the ".git" suffix are dropped and scp-like SSH remotes become https.
func WebURL(remoteURL string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(remoteURL, "/"), ".git")

	if !strings.Contains(trimmed, "://") {
		if at := strings.Index(trimmed, "@"); at >= 0 {
			if hostPath := trimmed[at+1:]; strings.Contains(hostPath, ":") {
				return "https://" + strings.Replace(hostPath, ":", "/", 1)
			}
		}
		return trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	parsed.User = nil
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		parsed.Scheme = "https"
		parsed.Host = parsed.Hostname()
	}
	return parsed.String()
}

// isMissingRef matches the "couldn't find remote ref" error some servers
// produce when the requested branch does not exist yet.
func isMissingRef(err error) bool {
	return strings.Contains(err.Error(), "couldn't find remote ref")
}
