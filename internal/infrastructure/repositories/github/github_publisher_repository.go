package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	gh "github.com/google/go-github/v68/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

const (
	providerName  = "github"
	blobMode      = "100644"
	blobType      = "blob"
	commitMessage = "Update project files"
)

// GitHubPublisherRepository publishes a file set straight to GitHub with the
// Git Data API: the repository is created when missing, then all files land
// in a single commit on the target branch.
type GitHubPublisherRepository struct {
	client  *gh.Client
	owner   string
	private bool

	loginMu sync.Mutex
	login   string
}

// NewGitHubPublisherRepository creates a GitHub publisher from settings.
func NewGitHubPublisherRepository(settings *entities.Settings) repositories.PublisherRepository {
	client := gh.NewClient(nil).WithAuthToken(settings.Provider.Token)
	if baseURL := settings.Provider.BaseURL; baseURL != "" {
		enterprise, err := client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			logger.Warnf("Ignoring invalid GitHub base url %q: %v", baseURL, err)
		} else {
			client = enterprise
		}
	}
	return newPublisher(client, settings.Provider.Owner, settings.Provider.Private)
}

func newPublisher(client *gh.Client, owner string, private bool) *GitHubPublisherRepository {
	return &GitHubPublisherRepository{
		client:  client,
		owner:   owner,
		private: private,
	}
}

func (p *GitHubPublisherRepository) Name() string { return providerName }

// Publish pushes request.Files to request.RepoName on request.Branch.
// Errors answered by the GitHub API become unsuccessful results; anything
// else is a transport failure.
func (p *GitHubPublisherRepository) Publish(
	ctx context.Context,
	request entities.PublishRequest,
) (*entities.PublishResult, error) {
	repo, err := p.ensureRepository(ctx, request.RepoName)
	if err != nil {
		return p.failure(err)
	}

	target := entities.Repository{
		ID:            strconv.FormatInt(repo.GetID(), 10),
		Name:          repo.GetName(),
		Organization:  repo.GetOwner().GetLogin(),
		DefaultBranch: "refs/heads/" + repo.GetDefaultBranch(),
		RemoteURL:     repo.GetCloneURL(),
		ProviderName:  providerName,
	}
	if err = p.commitFiles(ctx, target, request); err != nil {
		return p.failure(err)
	}

	return &entities.PublishResult{
		Success:  true,
		RepoURL:  repo.GetHTMLURL(),
		RepoName: repo.GetName(),
	}, nil
}

// ensureRepository returns the target repository, creating it (with an
// initial commit) when it does not exist.
func (p *GitHubPublisherRepository) ensureRepository(
	ctx context.Context,
	name string,
) (*gh.Repository, error) {
	owner := p.owner
	if owner == "" {
		login, err := p.authenticatedLogin(ctx)
		if err != nil {
			return nil, err
		}
		owner = login
	}

	repo, _, err := p.client.Repositories.Get(ctx, owner, name)
	if err == nil {
		return repo, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, name, err)
	}

	// Repositories.Create takes an empty org for the authenticated user.
	org := p.owner
	if org != "" {
		login, loginErr := p.authenticatedLogin(ctx)
		if loginErr != nil {
			return nil, loginErr
		}
		if strings.EqualFold(org, login) {
			org = ""
		}
	}

	logger.Infof("Creating GitHub repository %s/%s", owner, name)
	created, _, err := p.client.Repositories.Create(ctx, org, &gh.Repository{
		Name:     gh.Ptr(name),
		Private:  gh.Ptr(p.private),
		AutoInit: gh.Ptr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s/%s: %w", owner, name, err)
	}
	return created, nil
}

// commitFiles writes the request's file set as the whole tree of one commit on
// the target branch, so files missing from the set are removed. A missing
// branch is created from the default branch.
func (p *GitHubPublisherRepository) commitFiles(
	ctx context.Context,
	repo entities.Repository,
	request entities.PublishRequest,
) error {
	owner := repo.Organization
	repoName := repo.Name
	branchRef := "refs/heads/" + request.Branch

	branchExists := true
	baseRef, _, err := p.client.Git.GetRef(ctx, owner, repoName, branchRef)
	if err != nil {
		if !isNotFound(err) {
			return fmt.Errorf("failed to get branch ref: %w", err)
		}
		branchExists = false
		baseRef, _, err = p.client.Git.GetRef(ctx, owner, repoName, repo.DefaultBranch)
		if err != nil {
			return fmt.Errorf("failed to get default branch ref: %w", err)
		}
	}
	baseSHA := baseRef.GetObject().GetSHA()

	entries := make([]*gh.TreeEntry, 0, len(request.Files))
	for _, path := range request.Files.Paths() {
		entries = append(entries, &gh.TreeEntry{
			Path:    gh.Ptr(strings.TrimPrefix(path, "/")),
			Mode:    gh.Ptr(blobMode),
			Type:    gh.Ptr(blobType),
			Content: gh.Ptr(request.Files[path]),
		})
	}

	// no base tree: the new tree holds exactly the published files
	newTree, _, err := p.client.Git.CreateTree(ctx, owner, repoName, "", entries)
	if err != nil {
		return fmt.Errorf("failed to create tree: %w", err)
	}

	newCommit, _, err := p.client.Git.CreateCommit(
		ctx, owner, repoName,
		&gh.Commit{
			Message: gh.Ptr(commitMessage),
			Tree:    newTree,
			Parents: []*gh.Commit{{SHA: gh.Ptr(baseSHA)}},
		},
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to create commit: %w", err)
	}

	reference := &gh.Reference{
		Ref:    gh.Ptr(branchRef),
		Object: &gh.GitObject{SHA: newCommit.SHA},
	}
	if branchExists {
		_, _, err = p.client.Git.UpdateRef(ctx, owner, repoName, reference, false)
	} else {
		_, _, err = p.client.Git.CreateRef(ctx, owner, repoName, reference)
	}
	if err != nil {
		return fmt.Errorf("failed to move branch %q: %w", request.Branch, err)
	}

	logger.Debugf("Committed %s to %s/%s@%s", newCommit.GetSHA(), owner, repoName, request.Branch)
	return nil
}

// authenticatedLogin resolves the token owner. Only a successful lookup is
// cached; a failure is retried on the next publish.
func (p *GitHubPublisherRepository) authenticatedLogin(ctx context.Context) (string, error) {
	p.loginMu.Lock()
	defer p.loginMu.Unlock()

	if p.login != "" {
		return p.login, nil
	}
	user, _, err := p.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	p.login = user.GetLogin()
	return p.login, nil
}

func (p *GitHubPublisherRepository) failure(err error) (*entities.PublishResult, error) {
	var apiErr *gh.ErrorResponse
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = err.Error()
		}
		return &entities.PublishResult{Success: false, Error: message}, nil
	}
	return nil, fmt.Errorf("%w: %w", entities.ErrPublishTransport, err)
}

func isNotFound(err error) bool {
	var apiErr *gh.ErrorResponse
	return errors.As(err, &apiErr) &&
		apiErr.Response != nil &&
		apiErr.Response.StatusCode == http.StatusNotFound
}
