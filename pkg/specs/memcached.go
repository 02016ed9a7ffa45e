package specs

import "github.com/cuemby/stitch/pkg/stitch"

// MemcachedImage is the image run by every memcached instance
const MemcachedImage = "quilt/memcached"

// Memcached is a pool of independent memcached instances
type Memcached struct {
	Label *stitch.Label
}

// NewMemcached builds a pool of n instances
func NewMemcached(b *stitch.Builder, n int) *Memcached {
	containers := b.NewContainer(MemcachedImage).Replicate(n)
	return &Memcached{Label: b.NewLabel("memcd", containers)}
}

// Deploy registers the pool with d
func (m *Memcached) Deploy(d *stitch.Deployment) error {
	return m.Label.Deploy(d)
}
