package types

// PublicInternetLabel is the endpoint name standing in for the public
// internet in connections and invariants.
const PublicInternetLabel = "public"

// Deployment is the canonical artifact handed to the deployment engine.
// Field names are part of the wire contract.
type Deployment struct {
	Machines    []Machine         `json:"machines" yaml:"machines"`
	Invariants  []Assertion       `json:"invariants" yaml:"invariants"`
	Containers  map[int]Container `json:"containers" yaml:"containers"`
	Labels      []Label           `json:"labels" yaml:"labels"`
	Connections []Connection      `json:"connections" yaml:"connections"`
	Placements  []Placement       `json:"placements" yaml:"placements"`

	Namespace string   `json:"namespace" yaml:"namespace"`
	AdminACL  []string `json:"adminACL" yaml:"adminACL"`
	MaxPrice  float64  `json:"maxPrice" yaml:"maxPrice"`
}

// Range is a closed integer interval, used for ports and machine attributes
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Accepts reports whether x lies within the range. A zero Max means the
// range has no upper bound.
func (r Range) Accepts(x int) bool {
	return r.Min <= x && (r.Max == 0 || x <= r.Max)
}

// IsSinglePort reports whether the range covers exactly one value
func (r Range) IsSinglePort() bool {
	return r.Min == r.Max
}

// Machine specifies the type of VM that should be booted
type Machine struct {
	Provider string   `json:"provider" yaml:"provider"`
	Role     string   `json:"role" yaml:"role"`
	Region   string   `json:"region" yaml:"region"`
	Size     string   `json:"size" yaml:"size"`
	DiskSize int      `json:"diskSize" yaml:"diskSize"`
	SSHKeys  []string `json:"sshKeys" yaml:"sshKeys"`
	CPU      Range    `json:"cpu" yaml:"cpu"`
	RAM      Range    `json:"ram" yaml:"ram"`
}

// Container is a single workload instance
type Container struct {
	ID      int               `json:"id" yaml:"id"`
	Image   string            `json:"image" yaml:"image"`
	Command []string          `json:"command" yaml:"command"`
	Env     map[string]string `json:"env" yaml:"env"`
}

// Label is a named group of containers, identified by container ID
type Label struct {
	Name        string   `json:"name" yaml:"name"`
	IDs         []int    `json:"ids" yaml:"ids"`
	Annotations []string `json:"annotations" yaml:"annotations"`
}

// Connection allows containers in From to reach containers in To on ports
// in [MinPort, MaxPort]
type Connection struct {
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	MinPort int    `json:"minPort" yaml:"minPort"`
	MaxPort int    `json:"maxPort" yaml:"maxPort"`
}

// Placement constrains where TargetLabel's containers may be scheduled,
// either relative to OtherLabel or to machines matching Provider, Size and
// Region. Unused fields are empty strings.
type Placement struct {
	TargetLabel string `json:"targetLabel" yaml:"targetLabel"`
	Exclusive   bool   `json:"exclusive" yaml:"exclusive"`

	OtherLabel string `json:"otherLabel" yaml:"otherLabel"`

	Provider string `json:"provider" yaml:"provider"`
	Size     string `json:"size" yaml:"size"`
	Region   string `json:"region" yaml:"region"`
}

// Assertion is an unevaluated invariant over named endpoints together with
// the expected outcome
type Assertion struct {
	Form   string   `json:"form" yaml:"form"`
	Nodes  []string `json:"nodes" yaml:"nodes"`
	Target bool     `json:"target" yaml:"target"`
}

// Invariant forms
const (
	FormEnough      = "enough"
	FormBetween     = "between"
	FormReachDirect = "reachDirect"
	FormReachACL    = "reachACL"
	FormReach       = "reach"
)
