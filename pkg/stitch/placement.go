package stitch

// Placement is an affinity or anti-affinity rule attached to a label. It is
// either a LabelRule or a MachineRule.
type Placement interface {
	IsExclusive() bool
	isPlacement()
}

// LabelRule places a label relative to another label. Exclusive means the
// two labels must not share a machine; otherwise they must.
type LabelRule struct {
	Exclusive  bool
	OtherLabel string
}

// NewLabelRule builds a rule relative to other
func NewLabelRule(exclusive bool, other *Label) LabelRule {
	return LabelRule{Exclusive: exclusive, OtherLabel: other.Name()}
}

func (r LabelRule) IsExclusive() bool {
	return r.Exclusive
}

func (LabelRule) isPlacement() {}

// MachineRule places a label relative to machines matching the non-empty
// attributes. Exclusive means the label must avoid such machines.
type MachineRule struct {
	Exclusive bool
	Provider  string
	Size      string
	Region    string
}

func (r MachineRule) IsExclusive() bool {
	return r.Exclusive
}

func (MachineRule) isPlacement() {}

// placementRule returns p as a LabelRule or MachineRule value. Pointer rules
// are dereferenced; anything else reports false.
func placementRule(p Placement) (Placement, bool) {
	switch rule := p.(type) {
	case LabelRule, MachineRule:
		return rule, true
	case *LabelRule:
		if rule == nil {
			return nil, false
		}
		return *rule, true
	case *MachineRule:
		if rule == nil {
			return nil, false
		}
		return *rule, true
	default:
		return nil, false
	}
}
