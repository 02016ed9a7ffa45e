package stitch

import (
	"github.com/cuemby/stitch/pkg/naming"
)

// Builder creates containers and labels against one naming registry.
// Everything built from the same Builder shares container IDs and the label
// namespace.
type Builder struct {
	names *naming.Registry
}

// NewBuilder returns a builder over names. A nil registry gets a fresh one.
func NewBuilder(names *naming.Registry) *Builder {
	if names == nil {
		names = naming.NewRegistry()
	}
	return &Builder{names: names}
}

var defaultBuilder = &Builder{names: naming.Default}

// DefaultBuilder returns the builder backed by naming.Default
func DefaultBuilder() *Builder {
	return defaultBuilder
}

// Registry returns the builder's naming registry
func (b *Builder) Registry() *naming.Registry {
	return b.names
}

// NewContainer creates a container running image with an optional command
func (b *Builder) NewContainer(image string, command ...string) *Container {
	return newContainer(b.names, image, copyStrings(command))
}

// NewLabel creates a label over containers. The name is made unique within
// the builder's registry.
func (b *Builder) NewLabel(name string, containers []*Container) *Label {
	return newLabel(b.names.UniqueLabelName(name), containers)
}

// NewContainer creates a container using the default builder
func NewContainer(image string, command ...string) *Container {
	return defaultBuilder.NewContainer(image, command...)
}

// NewLabel creates a label using the default builder
func NewLabel(name string, containers []*Container) *Label {
	return defaultBuilder.NewLabel(name, containers)
}
