package entities

import (
	"encoding/json"
	"fmt"
)

// PublishState is a step of the publish state machine.
type PublishState int32

const (
	PublishIdle PublishState = iota
	PublishPublishing
	PublishSucceeded
	PublishFailed
)

func (s PublishState) String() string {
	switch s {
	case PublishIdle:
		return "idle"
	case PublishPublishing:
		return "publishing"
	case PublishSucceeded:
		return "succeeded"
	case PublishFailed:
		return "failed"
	default:
		return fmt.Sprintf("PublishState(%d)", int32(s))
	}
}

// PublishRequest is built fresh for every publish attempt and never persisted.
type PublishRequest struct {
	RepoName string         `json:"repoName"`
	Files    ProjectFileSet `json:"files"`
	Branch   string         `json:"branch"`
}

// PublishResult is the normalized provider answer.
type PublishResult struct {
	Success  bool   `json:"success"`
	RepoURL  string `json:"repoUrl,omitempty"`
	RepoName string `json:"repoName,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ParsePublishResult interprets a raw provider body. Anything that is not a
// single JSON object carrying a boolean "success" field is malformed.
func ParsePublishResult(body []byte) (*PublishResult, error) {
	var raw struct {
		Success  *bool  `json:"success"`
		RepoURL  string `json:"repoUrl"`
		RepoName string `json:"repoName"`
		Error    string `json:"error"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if raw.Success == nil {
		return nil, fmt.Errorf("%w: missing success field", ErrMalformedResponse)
	}

	return &PublishResult{
		Success:  *raw.Success,
		RepoURL:  raw.RepoURL,
		RepoName: raw.RepoName,
		Error:    raw.Error,
	}, nil
}
