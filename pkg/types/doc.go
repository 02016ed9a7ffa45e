/*
Package types defines the canonical deployment artifact produced by the stitch
builder and consumed by the deployment engine.

The builder (package stitch) works with a graph of mutable labels and
containers. Canonicalization flattens that graph into the values defined here:
plain structs with no references back into builder state, so an artifact can be
encoded, stored and shipped on its own.

# Artifact Layout

	┌──────────────────────── Deployment ────────────────────────┐
	│  namespace, adminACL, maxPrice                              │
	│                                                             │
	│  machines     []Machine     provider/role/region/size/...   │
	│  containers   map[id]Container                              │
	│  labels       []Label       name + ordered container ids    │
	│  connections  []Connection  from/to + port range            │
	│  placements   []Placement   targetLabel + rule fields       │
	│  invariants   []Assertion   form + nodes + target           │
	└─────────────────────────────────────────────────────────────┘

Labels reference containers by ID. Connections, placements and assertions
reference labels by name, with PublicInternetLabel ("public") standing in for
the public internet.

# Wire Contract

JSON and YAML field names (machines, invariants, containers, labels,
connections, placements, namespace, adminACL, maxPrice and the nested names)
are part of the compatibility surface with the engine and must not change.
Lists produced by canonicalization are never nil, so empty lists encode as []
rather than null.

# Encoding

	data, err := artifact.Encode(types.FormatYAML)
	digest, err := artifact.Digest() // "sha256:..."

Both encoders sort map keys, so encoding is deterministic: the same artifact
always produces the same bytes and the same digest. The storage package uses
the digest to skip saving unchanged revisions.
*/
package types
