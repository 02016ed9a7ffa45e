package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/cuemby/stitch/pkg/log"
	"github.com/cuemby/stitch/pkg/metrics"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketRevisions = []byte("revisions")

// DBFile is the database file name inside the data directory
const DBFile = "stitch.db"

// BoltStore implements Store using BoltDB
type BoltStore struct {
	db  *bolt.DB
	now func() time.Time
}

// NewBoltStore opens (or creates) the revision database in dataDir
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, DBFile)

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRevisions); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketRevisions, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) SaveRevision(rev *Revision) (*Revision, error) {
	if rev == nil || rev.Artifact == nil {
		return nil, ErrNoArtifact
	}

	digest, err := rev.Artifact.Digest()
	if err != nil {
		return nil, err
	}

	stored := *rev
	stored.Digest = digest
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now().UTC()
	}

	var result *Revision
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRevisions)

		revs, err := decodeRevisions(b, stored.Namespace)
		if err != nil {
			return err
		}
		if n := len(revs); n > 0 && revs[n-1].Digest == digest {
			result = revs[n-1]
			return nil
		}

		data, err := json.Marshal(&stored)
		if err != nil {
			return err
		}
		result = &stored
		return b.Put([]byte(stored.ID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save revision: %w", err)
	}

	logger := log.WithRevision(result.ID)
	if result.ID != stored.ID {
		metrics.RevisionsSaved.WithLabelValues("unchanged").Inc()
		logger.Debug().Str("namespace", result.Namespace).Msg("artifact unchanged, reusing revision")
	} else {
		metrics.RevisionsSaved.WithLabelValues("created").Inc()
		logger.Info().
			Str("namespace", result.Namespace).
			Str("digest", result.Digest).
			Msg("revision saved")
	}

	return result, nil
}

func (s *BoltStore) GetRevision(id string) (*Revision, error) {
	var rev Revision
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRevisions)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return json.Unmarshal(data, &rev)
	})
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// ListRevisions returns the namespace's revisions, oldest first
func (s *BoltStore) ListRevisions(namespace string) ([]*Revision, error) {
	var revs []*Revision
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		revs, err = decodeRevisions(tx.Bucket(bucketRevisions), namespace)
		return err
	})
	return revs, err
}

// LatestRevision returns the newest revision in namespace
func (s *BoltStore) LatestRevision(namespace string) (*Revision, error) {
	revs, err := s.ListRevisions(namespace)
	if err != nil {
		return nil, err
	}
	if len(revs) == 0 {
		return nil, fmt.Errorf("%w: namespace %q has no revisions", ErrNotFound, namespace)
	}
	return revs[len(revs)-1], nil
}

func (s *BoltStore) DeleteRevision(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRevisions)
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return b.Delete([]byte(id))
	})
}

func decodeRevisions(b *bolt.Bucket, namespace string) ([]*Revision, error) {
	revs := []*Revision{}
	err := b.ForEach(func(k, v []byte) error {
		var rev Revision
		if err := json.Unmarshal(v, &rev); err != nil {
			return err
		}
		if rev.Namespace == namespace {
			revs = append(revs, &rev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(revs, func(i, j int) bool {
		if revs[i].CreatedAt.Equal(revs[j].CreatedAt) {
			return revs[i].ID < revs[j].ID
		}
		return revs[i].CreatedAt.Before(revs[j].CreatedAt)
	})
	return revs, nil
}
