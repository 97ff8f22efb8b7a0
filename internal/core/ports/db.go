package ports

import "github.com/tdex-network/tdex-pool/internal/core/domain"

// RepoManager interface defines the repositories of the domain entities.
type RepoManager interface {
	PoolRepository() domain.PoolRepository

	Close()
}
