package stitch

import "github.com/cuemby/stitch/pkg/types"

// Range is a closed integer interval. A Range with Max 0 used as a machine
// attribute means "at least Min".
type Range = types.Range

// Port returns the single-port range [p, p]
func Port(p int) Range {
	return Range{Min: p, Max: p}
}

// PortRange returns the range [min, max]
func PortRange(min, max int) Range {
	return Range{Min: min, Max: max}
}

// AtLeast returns a machine attribute range with no upper bound
func AtLeast(min int) Range {
	return Range{Min: min}
}
