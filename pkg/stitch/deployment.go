package stitch

import (
	"fmt"

	"github.com/cuemby/stitch/pkg/log"
	"github.com/cuemby/stitch/pkg/metrics"
)

// Config holds the recognized deployment options
type Config struct {
	Namespace string   `mapstructure:"namespace"`
	AdminACL  []string `mapstructure:"admin_acl" validate:"dive,required"`
	MaxPrice  float64  `mapstructure:"max_price" validate:"gte=0"`
}

// Deployable is anything that can register itself with a deployment.
// Machines and labels implement it; composite templates implement it by
// deploying their own labels.
type Deployable interface {
	Deploy(d *Deployment) error
}

// Deployment is the root of the builder graph. It owns every registered
// machine and label, and through the labels every container, connection
// and placement.
type Deployment struct {
	namespace string
	adminACL  []string
	maxPrice  float64

	machines   []Machine
	labels     []*Label
	invariants []Assertion
}

// New creates an empty deployment
func New(cfg Config) (*Deployment, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	acl := copyStrings(cfg.AdminACL)
	if acl == nil {
		acl = []string{}
	}

	return &Deployment{
		namespace: cfg.Namespace,
		adminACL:  acl,
		maxPrice:  cfg.MaxPrice,
	}, nil
}

// Namespace returns the deployment namespace
func (d *Deployment) Namespace() string {
	return d.namespace
}

// AdminACL returns the addresses allowed to administer the deployment
func (d *Deployment) AdminACL() []string {
	return copyStrings(d.adminACL)
}

// MaxPrice returns the maximum machine price, 0 meaning unset
func (d *Deployment) MaxPrice() float64 {
	return d.maxPrice
}

// Machines returns the registered machines
func (d *Deployment) Machines() []Machine {
	res := make([]Machine, 0, len(d.machines))
	for _, m := range d.machines {
		res = append(res, m.Clone())
	}
	return res
}

// Labels returns the registered labels in registration order
func (d *Deployment) Labels() []*Label {
	return append([]*Label{}, d.labels...)
}

// Invariants returns the registered assertions
func (d *Deployment) Invariants() []Assertion {
	return append([]Assertion{}, d.invariants...)
}

// Deploy registers each item, stopping at the first failure. Items deployed
// before the failure stay registered.
func (d *Deployment) Deploy(items ...Deployable) error {
	for _, item := range items {
		if item == nil {
			return ErrNotDeployable
		}
		if err := item.Deploy(d); err != nil {
			return err
		}
	}
	return nil
}

// DeployValue registers an untyped value, as handed over by a host that
// evaluates specifications dynamically. It accepts a Deployable or a slice
// of Deployables, machines, labels or nested values; anything else fails
// with ErrNotDeployable.
func (d *Deployment) DeployValue(v any) error {
	switch x := v.(type) {
	case nil:
		return ErrNotDeployable
	case Deployable:
		return d.Deploy(x)
	case []Deployable:
		return d.Deploy(x...)
	case []Machine:
		return Machines(x).Deploy(d)
	case []*Label:
		for _, l := range x {
			if l == nil {
				return ErrNotDeployable
			}
			if err := l.Deploy(d); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, item := range x {
			if err := d.DeployValue(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrNotDeployable, v)
	}
}

// Assert records that inv is expected to evaluate to desired
func (d *Deployment) Assert(inv Invariant, desired bool) error {
	if inv == nil {
		return ErrNilInvariant
	}
	d.invariants = append(d.invariants, Assertion{Invariant: inv, Desired: desired})
	metrics.AssertionsTotal.WithLabelValues(inv.Form()).Inc()
	return nil
}

// Vet checks that the deployment can be flattened: every label name and
// container ID belongs to exactly one object, no label holds a nil container,
// every placement is a LabelRule or MachineRule, and every connection target
// and label-relative placement names a registered label. It reports the first
// violation.
func (d *Deployment) Vet() error {
	if err := d.vetIdentities(); err != nil {
		return err
	}

	registered := make(map[string]bool, len(d.labels))
	for _, l := range d.labels {
		registered[l.name] = true
	}

	for _, l := range d.labels {
		for _, conn := range l.connections {
			target := ""
			if conn.To != nil {
				target = conn.To.name
			}
			if conn.To == nil || !registered[target] {
				return d.vetFailure(string(ReferenceConnection), l.name, &DanglingReferenceError{
					Label:  l.name,
					Target: target,
					Kind:   ReferenceConnection,
				})
			}
		}

		for _, p := range l.placements {
			rule, ok := placementRule(p)
			if !ok {
				return d.vetFailure("invalid_placement", l.name,
					fmt.Errorf("label %s: %w: %T", l.name, ErrInvalidPlacement, p))
			}
			labelRule, ok := rule.(LabelRule)
			if !ok {
				continue
			}
			if !registered[labelRule.OtherLabel] {
				return d.vetFailure(string(ReferencePlacement), l.name, &DanglingReferenceError{
					Label:  l.name,
					Target: labelRule.OtherLabel,
					Kind:   ReferencePlacement,
				})
			}
		}
	}

	return nil
}

// vetIdentities rejects nil containers and names or IDs claimed by more than
// one object. The same label or container registered twice is allowed.
func (d *Deployment) vetIdentities() error {
	labels := make(map[string]*Label, len(d.labels))
	containers := make(map[int]*Container)

	for _, l := range d.labels {
		if other, ok := labels[l.name]; ok && other != l {
			return d.vetFailure("duplicate_label", l.name, &CollisionError{
				Kind:  CollisionLabel,
				Label: l.name,
			})
		}
		labels[l.name] = l

		for i, c := range l.containers {
			if c == nil {
				return d.vetFailure("nil_container", l.name,
					fmt.Errorf("label %s: container %d: %w", l.name, i, ErrNilContainer))
			}
			if other, ok := containers[c.id]; ok && other != c {
				return d.vetFailure("duplicate_container", l.name, &CollisionError{
					Kind:        CollisionContainer,
					Label:       l.name,
					ContainerID: c.id,
				})
			}
			containers[c.id] = c
		}
	}

	return nil
}

func (d *Deployment) vetFailure(reason, label string, err error) error {
	metrics.VetFailures.WithLabelValues(reason).Inc()
	logger := log.WithLabel(label)
	logger.Warn().
		Str("namespace", d.namespace).
		Str("reason", reason).
		Err(err).
		Msg("vet failed")
	return err
}

func (d *Deployment) addMachine(m Machine) {
	d.machines = append(d.machines, m)
	metrics.EntitiesDeployed.WithLabelValues("machine").Inc()
}

func (d *Deployment) addLabel(l *Label) {
	d.labels = append(d.labels, l)
	metrics.EntitiesDeployed.WithLabelValues("label").Inc()

	logger := log.WithLabel(l.name)
	logger.Debug().Str("namespace", d.namespace).Msg("label deployed")
}
