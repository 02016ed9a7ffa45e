package stitch

import (
	"github.com/cuemby/stitch/pkg/metrics"
	"github.com/cuemby/stitch/pkg/naming"
	"github.com/cuemby/stitch/pkg/types"
)

// Container is a single workload instance. Its ID is assigned at creation
// and is what labels and the engine key on, so containers are handled by
// pointer: two *Container values are the same workload only if they are the
// same pointer.
type Container struct {
	id      int
	Image   string
	Command []string
	Env     map[string]string

	names *naming.Registry
}

func newContainer(names *naming.Registry, image string, command []string) *Container {
	if names == nil {
		names = naming.Default
	}
	if command == nil {
		command = []string{}
	}
	metrics.ContainersCreated.Inc()
	return &Container{
		id:      names.NextContainerID(),
		Image:   image,
		Command: command,
		Env:     map[string]string{},
		names:   names,
	}
}

// ID returns the container's unique ID
func (c *Container) ID() int {
	return c.id
}

// Clone returns a new container with the same image, command and
// environment and a fresh ID
func (c *Container) Clone() *Container {
	cloned := newContainer(c.names, c.Image, copyStrings(c.Command))
	cloned.Env = copyEnv(c.Env)
	return cloned
}

// Replicate returns n independent clones, each with its own ID
func (c *Container) Replicate(n int) []*Container {
	res := []*Container{}
	for i := 0; i < n; i++ {
		res = append(res, c.Clone())
	}
	return res
}

// WithEnv replaces the whole environment and returns the container
func (c *Container) WithEnv(env map[string]string) *Container {
	c.Env = copyEnv(env)
	return c
}

// SetEnv sets a single environment variable and returns the container
func (c *Container) SetEnv(key, value string) *Container {
	if c.Env == nil {
		c.Env = map[string]string{}
	}
	c.Env[key] = value
	return c
}

func (c *Container) snapshot() types.Container {
	command := copyStrings(c.Command)
	if command == nil {
		command = []string{}
	}
	return types.Container{
		ID:      c.id,
		Image:   c.Image,
		Command: command,
		Env:     copyEnv(c.Env),
	}
}

func copyEnv(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
