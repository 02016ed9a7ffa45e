/*
Package stitch is the builder API for describing a cloud deployment: machines
to provision, containers grouped into labels, network policy between labels,
placement constraints and invariant assertions. The builder accumulates a
graph and canonicalizes it into a types.Deployment artifact that a deployment
engine consumes. Nothing here provisions, schedules or evaluates anything.

# Architecture

	┌─────────────────────────── Deployment ───────────────────────────┐
	│  namespace / adminACL / maxPrice                                  │
	│                                                                   │
	│  machines ── Machine (value)                                      │
	│                                                                   │
	│  labels ──── Label (identity) ─┬─ containers  *Container (id)     │
	│                                ├─ connections  ──► Label           │
	│                                ├─ outgoing/incoming public ports   │
	│                                ├─ placements   LabelRule |         │
	│                                │               MachineRule         │
	│                                └─ annotations                      │
	│                                                                   │
	│  invariants ── Assertion{Invariant, Desired}                      │
	└───────────────────────────────┬───────────────────────────────────┘
	                                │ Vet + Canonicalize
	                                ▼
	                        types.Deployment (artifact)

# Values and Identities

Machines are values. Clone, WithRole, AsMaster, AsWorker and Replicate return
copies that own their SSH key lists; the receiver is never modified.

Containers and labels are identities. A container's ID is assigned when it is
created and clones always get a new one, so Replicate produces distinct
workloads rather than aliases. Labels are mutated in place: connections,
placements, annotations and public rules are appended over the label's
lifetime while its container list stays as it was created.

# Naming

Container IDs and label names come from a naming.Registry. A Builder wraps one
registry; the package-level NewContainer and NewLabel use naming.Default.
Label names are unique per registry: the second label called "db" is named
"db2". Hostnames follow from the name:

	l.Hostname()  // "db.q"
	l.Children()  // ["1.db.q", "2.db.q"]

# Building a Deployment

	b := stitch.NewBuilder(nil)

	web := b.NewLabel("web", b.NewContainer("nginx").Replicate(2))
	db := b.NewLabel("db", []*stitch.Container{b.NewContainer("mysql")})

	web.Connect(stitch.Port(3306), db)
	if err := web.ConnectFromPublic(stitch.Port(80)); err != nil {
		return err
	}
	db.Place(stitch.NewLabelRule(true, web))

	d, err := stitch.New(stitch.Config{Namespace: "prod"})
	if err != nil {
		return err
	}
	base := stitch.NewMachine(stitch.MachineConfig{Provider: "Amazon"})
	if err := d.Deploy(base.AsMaster(), base.AsWorker().Replicate(2), web, db); err != nil {
		return err
	}
	_ = d.Assert(web.CanReach(db), true)

	artifact, err := d.Canonicalize()

Public internet rules only accept single ports; ConnectFromPublic with a port
range fails with ErrPublicPortRange.

# Vet and Canonicalize

Vet checks that every connection target and every LabelRule names a deployed
label and returns a *DanglingReferenceError (matching ErrDanglingReference)
for the first one that does not. Canonicalize runs Vet and then walks the
labels in registration order, producing:

  - containers keyed by ID
  - labels with their ordered container IDs and annotations
  - connections: outgoing connections, then outgoing public rules
    (to "public"), then incoming public rules (from "public"), per label
  - placements tagged with their owning label, machine and label rules
    sharing one shape with empty strings for unused fields
  - machines, invariants, namespace, adminACL and maxPrice as registered

The artifact is a deep copy, so later builder mutations do not leak into it.

# Current Deployment

CreateDeployment also makes the new deployment current, so the package-level
Deploy, Assert and GetDeployment helpers can target it without passing it
around. This is a convenience binding only; a deployment created with New is
just as complete.

# Extension

Anything implementing Deployable can be passed to Deploy. Templates in
package specs implement it by deploying their own labels.
*/
package stitch
