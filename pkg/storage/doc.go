/*
Package storage provides BoltDB-backed persistence for compiled deployment
artifacts.

Each successful compile can be recorded as a Revision: the canonical
artifact, the namespace it was compiled for, the template or compose file it
came from, and a sha256 digest of its JSON form. Revisions let an operator
see what was produced over time and fetch an earlier artifact byte for byte.

# Architecture

	┌──────────────────── BOLTDB STORAGE ─────────────────────┐
	│                                                          │
	│  ┌──────────────────────────────────────────┐           │
	│  │            BoltStore                      │           │
	│  │  - File: <dataDir>/stitch.db              │           │
	│  │  - Bucket: revisions (key: revision ID)   │           │
	│  │  - Values: JSON encoded Revision          │           │
	│  └──────────────────┬───────────────────────┘           │
	│                     │                                    │
	│  ┌──────────────────▼───────────────────────┐           │
	│  │            SaveRevision                   │           │
	│  │  1. Digest artifact (sha256 of JSON)      │           │
	│  │  2. Assign UUID + timestamp if unset      │           │
	│  │  3. Compare with namespace's latest       │           │
	│  │  4. Equal digest → return latest          │           │
	│  │     Otherwise    → put new revision       │           │
	│  └──────────────────────────────────────────┘           │
	└──────────────────────────────────────────────────────────┘

The comparison and the write run in one bolt Update transaction, so two
processes saving the same artifact at once still produce a single revision.

# Usage

	store, err := storage.NewBoltStore(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	rev, err := store.SaveRevision(&storage.Revision{
		Namespace: "prod",
		Source:    "spark",
		Artifact:  artifact,
	})

	latest, err := store.LatestRevision("prod")

Missing revisions are reported with ErrNotFound, which callers match with
errors.Is.

# Ordering

ListRevisions returns revisions oldest first, ordered by CreatedAt and then
by ID. Namespaces are matched exactly; the empty namespace is a namespace of
its own.
*/
package storage
