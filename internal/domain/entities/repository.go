package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// Repository is re-exported from gitforge. Direct-to-host publishers use it
// to describe the repository a file set is pushed to.
type Repository = gitforgeEntities.Repository
