package stitch

import (
	"testing"

	"github.com/cuemby/stitch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelUniqueNames(t *testing.T) {
	b := NewBuilder(nil)

	first := b.NewLabel("db", nil)
	second := b.NewLabel("db", nil)
	third := b.NewLabel("db", nil)

	assert.Equal(t, "db", first.Name())
	assert.Equal(t, "db2", second.Name())
	assert.Equal(t, "db3", third.Name())
}

func TestLabelHostnames(t *testing.T) {
	b := NewBuilder(nil)
	l := b.NewLabel("etcd", b.NewContainer("quilt/etcd").Replicate(3))

	assert.Equal(t, "etcd.q", l.Hostname())
	assert.Equal(t, []string{"1.etcd.q", "2.etcd.q", "3.etcd.q"}, l.Children())

	empty := b.NewLabel("empty", nil)
	assert.Empty(t, empty.Children())
}

func TestLabelContainersFixed(t *testing.T) {
	b := NewBuilder(nil)
	containers := b.NewContainer("nginx").Replicate(2)
	l := b.NewLabel("web", containers)

	containers[0] = b.NewContainer("other")
	got := l.Containers()
	require.Len(t, got, 2)
	assert.Equal(t, "nginx", got[0].Image)

	got[1] = nil
	assert.NotNil(t, l.Containers()[1])
}

func TestLabelConnect(t *testing.T) {
	b := NewBuilder(nil)
	web := b.NewLabel("web", nil)
	db := b.NewLabel("db", nil)

	same := web.Connect(Port(3306), db).Connect(PortRange(1000, 2000), web)

	assert.Same(t, web, same)
	conns := web.Connections()
	require.Len(t, conns, 2)
	assert.Equal(t, Connection{MinPort: 3306, MaxPort: 3306, To: db}, conns[0])
	assert.Equal(t, Connection{MinPort: 1000, MaxPort: 2000, To: web}, conns[1])
	assert.Empty(t, db.Connections())
}

func TestLabelPublicRules(t *testing.T) {
	b := NewBuilder(nil)
	l := b.NewLabel("web", nil)

	err := l.ConnectFromPublic(PortRange(1024, 2048))
	assert.ErrorIs(t, err, ErrPublicPortRange)
	assert.Contains(t, err.Error(), "public internet cannot connect on port ranges")
	assert.Empty(t, l.IncomingPublic())

	err = l.ConnectToPublic(PortRange(1, 2))
	assert.ErrorIs(t, err, ErrPublicPortRange)
	assert.Empty(t, l.OutgoingPublic())

	require.NoError(t, l.ConnectFromPublic(Port(80)))
	require.NoError(t, l.ConnectToPublic(Port(443)))
	assert.Equal(t, []Range{{Min: 80, Max: 80}}, l.IncomingPublic())
	assert.Equal(t, []Range{{Min: 443, Max: 443}}, l.OutgoingPublic())
}

func TestLabelPlaceAndAnnotate(t *testing.T) {
	b := NewBuilder(nil)
	masters := b.NewLabel("spark-ms", nil)
	workers := b.NewLabel("spark-wk", nil)

	masters.
		Place(NewLabelRule(true, workers)).
		Place(MachineRule{Provider: "Amazon", Size: "m4.large"}).
		Annotate("ACL")

	placements := masters.Placements()
	require.Len(t, placements, 2)
	assert.Equal(t, LabelRule{Exclusive: true, OtherLabel: "spark-wk"}, placements[0])
	assert.True(t, placements[0].IsExclusive())
	assert.False(t, placements[1].IsExclusive())
	assert.Equal(t, []string{"ACL"}, masters.Annotations())
}

func TestLabelInvariants(t *testing.T) {
	b := NewBuilder(nil)
	a := b.NewLabel("a", nil)
	m := b.NewLabel("m", nil)
	c := b.NewLabel("c", nil)

	tests := []struct {
		name  string
		inv   Invariant
		form  string
		nodes []string
	}{
		{"can reach", a.CanReach(c), types.FormReach, []string{"a", "c"}},
		{"can reach public", a.CanReachPublic(), types.FormReach, []string{"a", "public"}},
		{"can reach from public", a.CanReachFromPublic(), types.FormReach, []string{"public", "a"}},
		{"can reach acl", a.CanReachACL(c), types.FormReachACL, []string{"a", "c"}},
		{"between", m.Between(a, c), types.FormBetween, []string{"a", "m", "c"}},
		{"neighbor", a.NeighborOf(c), types.FormReachDirect, []string{"a", "c"}},
		{"enough", Enough{}, types.FormEnough, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.form, tt.inv.Form())
			assert.Equal(t, tt.nodes, tt.inv.Nodes())
		})
	}
}

func TestLabelPlacePointerRules(t *testing.T) {
	b := NewBuilder(nil)
	web := b.NewLabel("web", nil)

	web.Place(&LabelRule{Exclusive: true, OtherLabel: "db"})
	web.Place(&MachineRule{Provider: "Amazon", Region: "us-west-1"})

	assert.Equal(t, []Placement{
		LabelRule{Exclusive: true, OtherLabel: "db"},
		MachineRule{Provider: "Amazon", Region: "us-west-1"},
	}, web.Placements())
}
