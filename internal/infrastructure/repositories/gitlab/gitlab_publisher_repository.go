package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
	"github.com/rios0rios0/repopublish/internal/domain/repositories"
)

const (
	providerName  = "gitlab"
	perPage       = 100
	commitMessage = "Update project files"
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabPublisherRepository publishes a file set straight to GitLab: the
// project is created when missing, then the files land in one commit.
type GitLabPublisherRepository struct {
	client  *gl.Client
	owner   string
	private bool
}

// NewGitLabPublisherRepository creates a GitLab publisher from settings.
func NewGitLabPublisherRepository(settings *entities.Settings) repositories.PublisherRepository {
	var opts []gl.ClientOptionFunc
	if settings.Provider.BaseURL != "" {
		opts = append(opts, gl.WithBaseURL(settings.Provider.BaseURL))
	}

	client, err := gl.NewClient(settings.Provider.Token, opts...)
	if err != nil {
		// Return a publisher that will fail on use rather than failing at construction
		logger.Warnf("Failed to initialize GitLab client: %v", err)
		return &GitLabPublisherRepository{client: nil}
	}
	return &GitLabPublisherRepository{
		client:  client,
		owner:   settings.Provider.Owner,
		private: settings.Provider.Private,
	}
}

func (p *GitLabPublisherRepository) Name() string { return providerName }

// Publish pushes request.Files to request.RepoName on request.Branch.
func (p *GitLabPublisherRepository) Publish(
	ctx context.Context,
	request entities.PublishRequest,
) (*entities.PublishResult, error) {
	if p.client == nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrPublishTransport, errClientNotInitialized)
	}

	project, err := p.ensureProject(ctx, request.RepoName)
	if err != nil {
		return p.failure(err)
	}

	target := entities.Repository{
		ID:            strconv.FormatInt(project.ID, 10),
		Name:          project.Path,
		Organization:  strings.TrimSuffix(project.PathWithNamespace, "/"+project.Path),
		DefaultBranch: "refs/heads/" + project.DefaultBranch,
		RemoteURL:     project.HTTPURLToRepo,
		ProviderName:  providerName,
	}
	if err = p.commitFiles(ctx, target, request); err != nil {
		return p.failure(err)
	}

	return &entities.PublishResult{
		Success:  true,
		RepoURL:  project.WebURL,
		RepoName: project.Path,
	}, nil
}

func (p *GitLabPublisherRepository) ensureProject(
	ctx context.Context,
	name string,
) (*gl.Project, error) {
	owner := p.owner
	if owner == "" {
		user, _, err := p.client.Users.CurrentUser(gl.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to get current user: %w", err)
		}
		owner = user.Username
	}

	pid := owner + "/" + name
	project, _, err := p.client.Projects.GetProject(pid, nil, gl.WithContext(ctx))
	if err == nil {
		return project, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("failed to get project %q: %w", pid, err)
	}

	visibility := gl.PublicVisibility
	if p.private {
		visibility = gl.PrivateVisibility
	}
	opts := &gl.CreateProjectOptions{
		Name:                 gl.Ptr(name),
		Path:                 gl.Ptr(name),
		Visibility:           gl.Ptr(visibility),
		InitializeWithReadme: gl.Ptr(true),
	}

	if p.owner != "" {
		group, _, groupErr := p.client.Groups.GetGroup(p.owner, nil, gl.WithContext(ctx))
		switch {
		case groupErr == nil:
			opts.NamespaceID = gl.Ptr(group.ID)
		case !isNotFound(groupErr):
			return nil, fmt.Errorf("failed to get group %q: %w", p.owner, groupErr)
		}
	}

	logger.Infof("Creating GitLab project %q", pid)
	created, _, err := p.client.Projects.CreateProject(opts, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create project %q: %w", pid, err)
	}
	return created, nil
}

// commitFiles sends one commit with a create or update action per file and a
// delete action for every file the set no longer holds. A missing branch is
// started from the default branch.
func (p *GitLabPublisherRepository) commitFiles(
	ctx context.Context,
	repo entities.Repository,
	request entities.PublishRequest,
) error {
	pid := repo.Organization + "/" + repo.Name
	defaultBranch := strings.TrimPrefix(repo.DefaultBranch, "refs/heads/")

	ref := request.Branch
	opts := &gl.CreateCommitOptions{
		Branch:        gl.Ptr(request.Branch),
		CommitMessage: gl.Ptr(commitMessage),
	}

	_, _, err := p.client.Branches.GetBranch(pid, request.Branch, gl.WithContext(ctx))
	if err != nil {
		if !isNotFound(err) {
			return fmt.Errorf("failed to get branch %q: %w", request.Branch, err)
		}
		ref = defaultBranch
		opts.StartBranch = gl.Ptr(defaultBranch)
	}

	existing, err := p.listPaths(ctx, pid, ref)
	if err != nil {
		return err
	}

	published := make(map[string]bool, len(request.Files))
	for _, path := range request.Files.Paths() {
		filePath := strings.TrimPrefix(path, "/")
		published[filePath] = true

		action := gl.FileCreate
		if existing[filePath] {
			action = gl.FileUpdate
		}
		opts.Actions = append(opts.Actions, &gl.CommitActionOptions{
			Action:   gl.Ptr(action),
			FilePath: gl.Ptr(filePath),
			Content:  gl.Ptr(request.Files[path]),
		})
	}

	stale := make([]string, 0, len(existing))
	for filePath := range existing {
		if !published[filePath] {
			stale = append(stale, filePath)
		}
	}
	sort.Strings(stale)
	for _, filePath := range stale {
		opts.Actions = append(opts.Actions, &gl.CommitActionOptions{
			Action:   gl.Ptr(gl.FileDelete),
			FilePath: gl.Ptr(filePath),
		})
	}

	commit, _, err := p.client.Commits.CreateCommit(pid, opts, gl.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to create commit: %w", err)
	}

	logger.Debugf("Committed %s to %s@%s", commit.ID, pid, request.Branch)
	return nil
}

func (p *GitLabPublisherRepository) listPaths(
	ctx context.Context,
	pid, ref string,
) (map[string]bool, error) {
	paths := make(map[string]bool)
	opts := &gl.ListTreeOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Ref:         gl.Ptr(ref),
		Recursive:   gl.Ptr(true),
	}

	for {
		nodes, resp, err := p.client.Repositories.ListTree(pid, opts, gl.WithContext(ctx))
		if err != nil {
			if isNotFound(err) {
				return paths, nil // empty repository
			}
			return nil, fmt.Errorf("failed to list tree: %w", err)
		}

		for _, node := range nodes {
			if node.Type == "blob" {
				paths[node.Path] = true
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return paths, nil
}

func (p *GitLabPublisherRepository) failure(err error) (*entities.PublishResult, error) {
	var apiErr *gl.ErrorResponse
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
	var apiErr *gl.ErrorResponse
	return errors.As(err, &apiErr) &&
		apiErr.Response != nil &&
		apiErr.Response.StatusCode == http.StatusNotFound
}
