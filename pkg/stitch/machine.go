package stitch

import (
	"fmt"

	"github.com/cuemby/stitch/pkg/types"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Role is the part a machine plays in the cluster
type Role string

const (
	RoleNone   Role = ""
	RoleMaster Role = "Master"
	RoleWorker Role = "Worker"
)

// MachineConfig holds the recognized machine options. Zero values mean
// "unset".
type MachineConfig struct {
	Provider string
	Role     Role
	Region   string
	Size     string
	DiskSize int
	SSHKeys  []string
	CPU      Range
	RAM      Range
}

// Machine describes a host to provision. Machines are values: every
// transform returns a copy and never touches the receiver.
type Machine struct {
	Provider string
	Role     Role `validate:"omitempty,oneof=Master Worker"`
	Region   string
	Size     string
	DiskSize int      `validate:"gte=0"`
	SSHKeys  []string `validate:"dive,required"`
	CPU      Range
	RAM      Range
}

// NewMachine builds a machine from cfg
func NewMachine(cfg MachineConfig) Machine {
	return Machine{
		Provider: cfg.Provider,
		Role:     cfg.Role,
		Region:   cfg.Region,
		Size:     cfg.Size,
		DiskSize: cfg.DiskSize,
		SSHKeys:  copyStrings(cfg.SSHKeys),
		CPU:      cfg.CPU,
		RAM:      cfg.RAM,
	}
}

// Clone returns a copy that owns its own SSH key list
func (m Machine) Clone() Machine {
	cloned := m
	cloned.SSHKeys = copyStrings(m.SSHKeys)
	return cloned
}

// WithRole returns a clone with the role replaced
func (m Machine) WithRole(role Role) Machine {
	cloned := m.Clone()
	cloned.Role = role
	return cloned
}

// AsWorker returns a clone with the Worker role
func (m Machine) AsWorker() Machine {
	return m.WithRole(RoleWorker)
}

// AsMaster returns a clone with the Master role
func (m Machine) AsMaster() Machine {
	return m.WithRole(RoleMaster)
}

// Replicate returns n independent clones. n <= 0 yields an empty list.
func (m Machine) Replicate(n int) Machines {
	res := Machines{}
	for i := 0; i < n; i++ {
		res = append(res, m.Clone())
	}
	return res
}

// Validate checks the role and disk size
func (m Machine) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMachine, err)
	}
	return nil
}

// Deploy registers the machine with d
func (m Machine) Deploy(d *Deployment) error {
	if err := m.Validate(); err != nil {
		return err
	}
	d.addMachine(m.Clone())
	return nil
}

func (m Machine) snapshot() types.Machine {
	keys := copyStrings(m.SSHKeys)
	if keys == nil {
		keys = []string{}
	}
	return types.Machine{
		Provider: m.Provider,
		Role:     string(m.Role),
		Region:   m.Region,
		Size:     m.Size,
		DiskSize: m.DiskSize,
		SSHKeys:  keys,
		CPU:      m.CPU,
		RAM:      m.RAM,
	}
}

// Machines is a deployable list of machines
type Machines []Machine

// Deploy registers every machine with d, stopping at the first invalid one
func (ms Machines) Deploy(d *Deployment) error {
	for _, m := range ms {
		if err := m.Deploy(d); err != nil {
			return err
		}
	}
	return nil
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
