package entities

import (
	"net/url"
	"strings"
	"sync"
)

// DefaultBranch is the branch used until one is loaded or chosen explicitly.
const DefaultBranch = "main"

// RepoMetadata identifies where a project is published.
type RepoMetadata struct {
	Name   string
	URL    string
	Branch string
}

// LoadedMetadata is the backend record as returned by the metadata endpoint.
// Empty fields are treated as absent.
type LoadedMetadata struct {
	RepoURL  string `json:"githubRepoUrl,omitempty"`
	RepoName string `json:"githubRepoName,omitempty"`
	Branch   string `json:"githubBranch,omitempty"`
}

// MetadataPatch is the partial record sent to the backend on every mutation.
type MetadataPatch struct {
	RepoName string `json:"githubRepoName,omitempty"`
	RepoURL  string `json:"githubRepoUrl,omitempty"`
	Branch   string `json:"githubBranch,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p MetadataPatch) IsEmpty() bool {
	return p.RepoName == "" && p.RepoURL == "" && p.Branch == ""
}

// DeriveRepoName returns the last non-empty path segment of a repository URL.
// The boolean is false when the URL is not well formed (no scheme, no host or
// no path segment), in which case callers keep their current name.
func DeriveRepoName(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	segments := strings.Split(parsed.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		segment := segments[i]
		if segment == "" {
			continue
		}
		if unescaped, unescapeErr := url.PathUnescape(segment); unescapeErr == nil {
			segment = unescaped
		}
		segment = strings.TrimSuffix(segment, ".git")
		if segment == "" {
			return "", false
		}
		return segment, true
	}
	return "", false
}

// RepoMetadataStore holds the session's view of the repository metadata and
// applies the update precedence rules.
type RepoMetadataStore struct {
	mu       sync.RWMutex
	metadata RepoMetadata
}

// NewRepoMetadataStore creates a store with no name, no URL and the default branch.
func NewRepoMetadataStore() *RepoMetadataStore {
	return &RepoMetadataStore{metadata: RepoMetadata{Branch: DefaultBranch}}
}

// Snapshot returns a copy of the current metadata.
func (s *RepoMetadataStore) Snapshot() RepoMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata
}

// ApplyLoaded merges a backend record. Missing fields are left untouched; a
// well-formed URL overrides the name with the one derived from it.
func (s *RepoMetadataStore) ApplyLoaded(data LoadedMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data.RepoName != "" {
		s.metadata.Name = data.RepoName
	}
	if data.RepoURL != "" {
		s.setURL(data.RepoURL)
	}
	if strings.TrimSpace(data.Branch) != "" {
		s.metadata.Branch = strings.TrimSpace(data.Branch)
	}
}

// ApplyPublishResult reconciles the store after a successful publish.
// Precedence: the returned URL, then the returned name, then the name that
// was sent in the request. Exactly one of them is applied.
func (s *RepoMetadataStore) ApplyPublishResult(result PublishResult, attemptedName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case result.RepoURL != "":
		s.metadata.Name = attemptedName
		s.setURL(result.RepoURL)
	case result.RepoName != "":
		s.metadata.Name = result.RepoName
	default:
		s.metadata.Name = attemptedName
	}
}

// SetBranch changes the target branch. Blank names are rejected.
func (s *RepoMetadataStore) SetBranch(branch string) error {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return ErrEmptyBranch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata.Branch = branch
	return nil
}

// Reset drops everything back to the defaults.
func (s *RepoMetadataStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata = RepoMetadata{Branch: DefaultBranch}
}

// setURL stores the URL and, when it is well formed, the name derived from it.
// Callers hold the lock.
func (s *RepoMetadataStore) setURL(rawURL string) {
	s.metadata.URL = rawURL
	if name, ok := DeriveRepoName(rawURL); ok {
		s.metadata.Name = name
	}
}
