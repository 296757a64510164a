package entities

import "errors"

var (
	// ErrNothingToPublish is returned when a publish is triggered with an empty file set.
	ErrNothingToPublish = errors.New("nothing to publish")

	// ErrPublishTransport wraps failures of the call to the remote provider itself.
	ErrPublishTransport = errors.New("publish transport failure")

	// ErrMalformedResponse is returned when a provider body cannot be read as a PublishResult.
	ErrMalformedResponse = errors.New("malformed publish response")

	// ErrPublishRejected is returned when the provider answers with success=false.
	ErrPublishRejected = errors.New("publish rejected by provider")

	// ErrPublishInProgress is returned when a publish is triggered while another one is running.
	ErrPublishInProgress = errors.New("publish already in progress")

	// ErrEmptyBranch is returned by SetBranch for blank branch names.
	ErrEmptyBranch = errors.New("branch name must not be empty")

	// ErrNoRepositoryURL is returned by repository actions before anything was published.
	ErrNoRepositoryURL = errors.New("no repository url stored")
)
