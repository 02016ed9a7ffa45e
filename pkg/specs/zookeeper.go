package specs

import (
	"strings"

	"github.com/cuemby/stitch/pkg/stitch"
)

// ZookeeperImage is the image run by every ensemble member
const ZookeeperImage = "quilt/zookeeper"

// ZookeeperClientPort is the port clients connect on
const ZookeeperClientPort = 2181

// Zookeeper is an n-member ensemble. Members find each other through the
// ZOO environment variable.
type Zookeeper struct {
	Label *stitch.Label
}

// NewZookeeper builds an ensemble of n members
func NewZookeeper(b *stitch.Builder, n int) *Zookeeper {
	containers := b.NewContainer(ZookeeperImage).Replicate(n)
	label := b.NewLabel("zoo", containers)

	peers := strings.Join(label.Children(), ",")
	for _, c := range containers {
		c.SetEnv("ZOO", peers)
	}

	// Quorum and leader election, then client traffic
	label.Connect(stitch.PortRange(2888, 3888), label)
	label.Connect(stitch.Port(ZookeeperClientPort), label)
	return &Zookeeper{Label: label}
}

// Deploy registers the ensemble with d
func (z *Zookeeper) Deploy(d *stitch.Deployment) error {
	return z.Label.Deploy(d)
}
