package stitch

import (
	"fmt"

	"github.com/cuemby/stitch/pkg/log"
	"github.com/cuemby/stitch/pkg/metrics"
	"github.com/cuemby/stitch/pkg/types"
)

// Canonicalize vets the deployment and flattens it into the artifact
// consumed by the deployment engine. The artifact shares no memory with the
// builder, and canonicalizing an unchanged deployment twice yields equal
// artifacts.
func (d *Deployment) Canonicalize() (*types.Deployment, error) {
	if err := d.Vet(); err != nil {
		return nil, err
	}

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.CanonicalizeDuration)

	out := &types.Deployment{
		Machines:    make([]types.Machine, 0, len(d.machines)),
		Invariants:  make([]types.Assertion, 0, len(d.invariants)),
		Containers:  make(map[int]types.Container),
		Labels:      make([]types.Label, 0, len(d.labels)),
		Connections: []types.Connection{},
		Placements:  []types.Placement{},
		Namespace:   d.namespace,
		AdminACL:    append([]string{}, d.adminACL...),
		MaxPrice:    d.maxPrice,
	}

	for _, l := range d.labels {
		for _, p := range l.placements {
			placement, err := flattenPlacement(l.name, p)
			if err != nil {
				return nil, err
			}
			out.Placements = append(out.Placements, placement)
		}

		for _, conn := range l.connections {
			out.Connections = append(out.Connections, types.Connection{
				From:    l.name,
				To:      conn.To.name,
				MinPort: conn.MinPort,
				MaxPort: conn.MaxPort,
			})
		}

		for _, r := range l.outgoingPublic {
			out.Connections = append(out.Connections, types.Connection{
				From:    l.name,
				To:      types.PublicInternetLabel,
				MinPort: r.Min,
				MaxPort: r.Max,
			})
		}

		for _, r := range l.incomingPublic {
			out.Connections = append(out.Connections, types.Connection{
				From:    types.PublicInternetLabel,
				To:      l.name,
				MinPort: r.Min,
				MaxPort: r.Max,
			})
		}

		ids := make([]int, 0, len(l.containers))
		for _, c := range l.containers {
			ids = append(ids, c.id)
			out.Containers[c.id] = c.snapshot()
		}

		out.Labels = append(out.Labels, types.Label{
			Name:        l.name,
			IDs:         ids,
			Annotations: append([]string{}, l.annotations...),
		})
	}

	for _, m := range d.machines {
		out.Machines = append(out.Machines, m.snapshot())
	}

	for _, a := range d.invariants {
		out.Invariants = append(out.Invariants, a.snapshot())
	}

	logger := log.WithNamespace(d.namespace)
	logger.Info().
		Int("machines", len(out.Machines)).
		Int("labels", len(out.Labels)).
		Int("containers", len(out.Containers)).
		Int("connections", len(out.Connections)).
		Int("placements", len(out.Placements)).
		Int("invariants", len(out.Invariants)).
		Msg("deployment canonicalized")

	return out, nil
}

func flattenPlacement(target string, p Placement) (types.Placement, error) {
	rule, _ := placementRule(p)
	switch rule := rule.(type) {
	case LabelRule:
		return types.Placement{
			TargetLabel: target,
			Exclusive:   rule.Exclusive,
			OtherLabel:  rule.OtherLabel,
		}, nil
	case MachineRule:
		return types.Placement{
			TargetLabel: target,
			Exclusive:   rule.Exclusive,
			Provider:    rule.Provider,
			Size:        rule.Size,
			Region:      rule.Region,
		}, nil
	default:
		return types.Placement{}, fmt.Errorf("label %s: %w: %T", target, ErrInvalidPlacement, p)
	}
}
