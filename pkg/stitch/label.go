package stitch

import (
	"fmt"

	"github.com/cuemby/stitch/pkg/log"
	"github.com/cuemby/stitch/pkg/metrics"
	"github.com/cuemby/stitch/pkg/types"
)

// Connection is an outgoing policy edge from the owning label to To over
// the ports [MinPort, MaxPort]
type Connection struct {
	MinPort int
	MaxPort int
	To      *Label
}

// Label is a named group of containers and the unit network and placement
// policy attaches to. Its container list is fixed at creation; rules are
// appended over its lifetime.
type Label struct {
	name           string
	containers     []*Container
	annotations    []string
	placements     []Placement
	connections    []Connection
	outgoingPublic []Range
	incomingPublic []Range
}

func newLabel(name string, containers []*Container) *Label {
	l := &Label{
		name:       name,
		containers: append([]*Container{}, containers...),
	}

	metrics.LabelsCreated.Inc()
	logger := log.WithLabel(name)
	logger.Debug().
		Int("containers", len(containers)).
		Msg("label created")

	return l
}

// Name returns the label's unique name
func (l *Label) Name() string {
	return l.name
}

// Containers returns the label's containers in creation order
func (l *Label) Containers() []*Container {
	return append([]*Container{}, l.containers...)
}

// Annotations returns the label's annotations
func (l *Label) Annotations() []string {
	return append([]string{}, l.annotations...)
}

// Placements returns the label's placement rules
func (l *Label) Placements() []Placement {
	return append([]Placement{}, l.placements...)
}

// Connections returns the label's outgoing connections
func (l *Label) Connections() []Connection {
	return append([]Connection{}, l.connections...)
}

// OutgoingPublic returns the ports the label may reach on the public internet
func (l *Label) OutgoingPublic() []Range {
	return append([]Range{}, l.outgoingPublic...)
}

// IncomingPublic returns the ports the public internet may reach the label on
func (l *Label) IncomingPublic() []Range {
	return append([]Range{}, l.incomingPublic...)
}

// Hostname returns the DNS name resolving to the whole label
func (l *Label) Hostname() string {
	return l.name + ".q"
}

// Children returns the hostname of each container, "1.<name>.q" through
// "k.<name>.q", in creation order
func (l *Label) Children() []string {
	res := make([]string, 0, len(l.containers))
	for i := range l.containers {
		res = append(res, fmt.Sprintf("%d.%s.q", i+1, l.name))
	}
	return res
}

// Annotate attaches an annotation and returns the label
func (l *Label) Annotate(annotation string) *Label {
	l.annotations = append(l.annotations, annotation)
	return l
}

// Connect allows this label to reach to on ports and returns the label.
// Connecting a label to itself is allowed.
func (l *Label) Connect(ports Range, to *Label) *Label {
	l.connections = append(l.connections, Connection{
		MinPort: ports.Min,
		MaxPort: ports.Max,
		To:      to,
	})
	return l
}

// ConnectToPublic allows this label to reach the public internet on a
// single port
func (l *Label) ConnectToPublic(port Range) error {
	if !port.IsSinglePort() {
		return fmt.Errorf("label %s: %w", l.name, ErrPublicPortRange)
	}
	l.outgoingPublic = append(l.outgoingPublic, port)
	return nil
}

// ConnectFromPublic allows the public internet to reach this label on a
// single port
func (l *Label) ConnectFromPublic(port Range) error {
	if !port.IsSinglePort() {
		return fmt.Errorf("label %s: %w", l.name, ErrPublicPortRange)
	}
	l.incomingPublic = append(l.incomingPublic, port)
	return nil
}

// Place attaches a placement rule and returns the label. Pointer rules are
// stored by value; a rule that is neither a LabelRule nor a MachineRule is
// kept as given and rejected by Vet.
func (l *Label) Place(rule Placement) *Label {
	if normalized, ok := placementRule(rule); ok {
		rule = normalized
	}
	l.placements = append(l.placements, rule)
	return l
}

// CanReach builds a reachability invariant from this label to target
func (l *Label) CanReach(target *Label) Invariant {
	return Reach{From: l.name, To: target.name}
}

// CanReachPublic builds a reachability invariant from this label to the
// public internet
func (l *Label) CanReachPublic() Invariant {
	return Reach{From: l.name, To: types.PublicInternetLabel}
}

// CanReachFromPublic builds a reachability invariant from the public
// internet to this label
func (l *Label) CanReachFromPublic() Invariant {
	return Reach{From: types.PublicInternetLabel, To: l.name}
}

// CanReachACL builds an ACL-aware reachability invariant to target
func (l *Label) CanReachACL(target *Label) Invariant {
	return ReachACL{From: l.name, To: target.name}
}

// Between builds an invariant that this label sits on every path from src
// to dst
func (l *Label) Between(src, dst *Label) Invariant {
	return Between{Src: src.name, Via: l.name, Dst: dst.name}
}

// NeighborOf builds an invariant that this label connects directly to target
func (l *Label) NeighborOf(target *Label) Invariant {
	return Neighbor{A: l.name, B: target.name}
}

// Deploy registers the label with d
func (l *Label) Deploy(d *Deployment) error {
	if l == nil {
		return ErrNotDeployable
	}
	d.addLabel(l)
	return nil
}
