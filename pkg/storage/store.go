package storage

import (
	"errors"
	"time"

	"github.com/cuemby/stitch/pkg/types"
)

var (
	// ErrNotFound is returned when a revision id does not exist
	ErrNotFound = errors.New("revision not found")

	// ErrNoArtifact is returned when saving a revision without an artifact
	ErrNoArtifact = errors.New("revision has no artifact")
)

// Revision is a compiled artifact recorded under a namespace
type Revision struct {
	ID        string            `json:"id"`
	Namespace string            `json:"namespace"`
	Source    string            `json:"source"`
	Digest    string            `json:"digest"`
	CreatedAt time.Time         `json:"createdAt"`
	Artifact  *types.Deployment `json:"artifact"`
}

// Store defines the interface for revision storage
type Store interface {
	// SaveRevision stores rev and returns the stored revision. When the
	// artifact is unchanged from the namespace's latest revision, the
	// latest revision is returned and nothing is written.
	SaveRevision(rev *Revision) (*Revision, error)
	GetRevision(id string) (*Revision, error)
	ListRevisions(namespace string) ([]*Revision, error)
	LatestRevision(namespace string) (*Revision, error)
	DeleteRevision(id string) error

	Close() error
}
