package stitch

import "github.com/cuemby/stitch/pkg/types"

// Invariant is an unevaluated predicate over named endpoints. Evaluation is
// left to the deployment engine.
type Invariant interface {
	Form() string
	Nodes() []string
}

// Reach asserts that From can reach To through any path of connections
type Reach struct {
	From string
	To   string
}

func (Reach) Form() string {
	return types.FormReach
}

func (r Reach) Nodes() []string {
	return []string{r.From, r.To}
}

// ReachACL asserts reachability that respects ACL annotations
type ReachACL struct {
	From string
	To   string
}

func (ReachACL) Form() string {
	return types.FormReachACL
}

func (r ReachACL) Nodes() []string {
	return []string{r.From, r.To}
}

// Between asserts that every path from Src to Dst passes through Via
type Between struct {
	Src string
	Via string
	Dst string
}

func (Between) Form() string {
	return types.FormBetween
}

func (b Between) Nodes() []string {
	return []string{b.Src, b.Via, b.Dst}
}

// Neighbor asserts that A connects directly to B
type Neighbor struct {
	A string
	B string
}

func (Neighbor) Form() string {
	return types.FormReachDirect
}

func (n Neighbor) Nodes() []string {
	return []string{n.A, n.B}
}

// Enough asserts that the deployment has enough resources for its containers
type Enough struct{}

func (Enough) Form() string {
	return types.FormEnough
}

func (Enough) Nodes() []string {
	return []string{}
}

// Assertion pairs an invariant with the outcome it is expected to have
type Assertion struct {
	Invariant Invariant
	Desired   bool
}

func (a Assertion) snapshot() types.Assertion {
	return types.Assertion{
		Form:   a.Invariant.Form(),
		Nodes:  append([]string{}, a.Invariant.Nodes()...),
		Target: a.Desired,
	}
}
