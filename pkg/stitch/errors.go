package stitch

import (
	"errors"
	"fmt"
)

var (
	// ErrDanglingReference is returned by Vet when a connection or placement
	// names a label that was never deployed
	ErrDanglingReference = errors.New("reference to undeployed label")

	// ErrPublicPortRange is returned when a public internet rule spans more
	// than one port
	ErrPublicPortRange = errors.New("public internet cannot connect on port ranges")

	// ErrNotDeployable is returned when Deploy is handed something that
	// cannot register itself with a deployment
	ErrNotDeployable = errors.New("can't deploy!")

	// ErrInvalidMachine is returned when a machine fails validation on deploy
	ErrInvalidMachine = errors.New("invalid machine")

	// ErrInvalidConfig is returned when deployment options fail validation
	ErrInvalidConfig = errors.New("invalid deployment config")

	// ErrNilInvariant is returned when Assert is called without an invariant
	ErrNilInvariant = errors.New("invariant is nil")

	// ErrNilContainer is returned by Vet when a deployed label holds a nil
	// container
	ErrNilContainer = errors.New("label holds a nil container")

	// ErrInvalidPlacement is returned by Vet when a label carries a placement
	// that is neither a LabelRule nor a MachineRule
	ErrInvalidPlacement = errors.New("unsupported placement rule")

	// ErrIdentityCollision is returned by Vet when two distinct labels share a
	// name or two distinct containers share an ID
	ErrIdentityCollision = errors.New("identity collision")
)

// ReferenceKind says which part of a label held a dangling reference
type ReferenceKind string

const (
	ReferenceConnection ReferenceKind = "connection"
	ReferencePlacement  ReferenceKind = "placement"
)

// DanglingReferenceError identifies the label holding a reference to an
// undeployed label and the missing target
type DanglingReferenceError struct {
	Label  string
	Target string
	Kind   ReferenceKind
}

func (e *DanglingReferenceError) Error() string {
	if e.Kind == ReferencePlacement {
		return fmt.Sprintf("%s has a placement in terms of an undeployed label: %s", e.Label, e.Target)
	}
	return fmt.Sprintf("%s has a connection to undeployed label: %s", e.Label, e.Target)
}

func (e *DanglingReferenceError) Unwrap() error {
	return ErrDanglingReference
}

// CollisionKind says which identity two builder objects share
type CollisionKind string

const (
	CollisionLabel     CollisionKind = "label"
	CollisionContainer CollisionKind = "container"
)

// CollisionError reports a label name or container ID claimed by two
// different objects, as happens when labels from separate builders are
// deployed together
type CollisionError struct {
	Kind        CollisionKind
	Label       string
	ContainerID int
}

func (e *CollisionError) Error() string {
	if e.Kind == CollisionContainer {
		return fmt.Sprintf("%s holds container %d, but another container already has that id", e.Label, e.ContainerID)
	}
	return fmt.Sprintf("label name %s is used by two different labels", e.Label)
}

func (e *CollisionError) Unwrap() error {
	return ErrIdentityCollision
}
