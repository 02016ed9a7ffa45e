package specs

import (
	"strings"

	"github.com/cuemby/stitch/pkg/stitch"
)

// EtcdImage is the image run by every etcd member
const EtcdImage = "quilt/etcd"

// Etcd is an n-member etcd cluster. Each member learns the full peer list
// through PEERS and its own hostname through HOST.
type Etcd struct {
	Label *stitch.Label
}

// NewEtcd builds an etcd cluster of n members
func NewEtcd(b *stitch.Builder, n int) *Etcd {
	containers := b.NewContainer(EtcdImage).Replicate(n)
	label := b.NewLabel("etcd", containers)

	children := label.Children()
	peers := strings.Join(children, ",")
	for i, c := range containers {
		c.SetEnv("PEERS", peers)
		c.SetEnv("HOST", children[i])
	}

	label.Connect(stitch.PortRange(1000, 65535), label)
	return &Etcd{Label: label}
}

// Deploy registers the cluster with d
func (e *Etcd) Deploy(d *stitch.Deployment) error {
	return e.Label.Deploy(d)
}
