package specs

import (
	"strings"

	"github.com/cuemby/stitch/pkg/stitch"
)

// WordpressImage is the image run by every Wordpress frontend
const WordpressImage = "quilt/wordpress"

// Wordpress is a pool of Wordpress frontends backed by MySQL and memcached
type Wordpress struct {
	Label *stitch.Label
}

// NewWordpress builds n frontends wired to db and memcd
func NewWordpress(b *stitch.Builder, n int, db *MySQL, memcd *Memcached) *Wordpress {
	containers := b.NewContainer(WordpressImage).
		WithEnv(map[string]string{
			"MEMCACHED":  strings.Join(memcd.Label.Children(), ","),
			"DB_MASTER":  strings.Join(db.Master.Children(), ","),
			"DB_REPLICA": strings.Join(db.Replicas.Children(), ","),
		}).
		Replicate(n)

	wp := b.NewLabel("wp", containers)
	wp.Connect(stitch.Port(MySQLPort), db.Replicas)
	wp.Connect(stitch.Port(MySQLPort), db.Master)
	wp.Connect(stitch.Port(11211), memcd.Label)
	return &Wordpress{Label: wp}
}

// Deploy registers the frontends with d
func (w *Wordpress) Deploy(d *stitch.Deployment) error {
	return w.Label.Deploy(d)
}
