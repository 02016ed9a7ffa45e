package specs

import (
	"strconv"
	"strings"

	"github.com/cuemby/stitch/pkg/stitch"
)

// MySQLImage is the image run by the master and its replicas
const MySQLImage = "quilt/mysql"

// MySQLPort is the port the master accepts queries and replication on
const MySQLPort = 3306

// MySQL is a single master with n read replicas
type MySQL struct {
	Master   *stitch.Label
	Replicas *stitch.Label
}

// NewMySQL builds a master and n replicas. Server ids start at 1 for the
// master and count up from 2 for replicas.
func NewMySQL(b *stitch.Builder, n int) *MySQL {
	master := b.NewLabel("mysql-dbm", []*stitch.Container{
		b.NewContainer(MySQLImage, "--master", "1", "mysqld"),
	})

	masterHost := strings.Join(master.Children(), ",")
	replicas := make([]*stitch.Container, 0, n)
	for i := 2; i < n+2; i++ {
		replicas = append(replicas, b.NewContainer(MySQLImage, "--replica", masterHost, strconv.Itoa(i), "mysqld"))
	}
	db := &MySQL{
		Master:   master,
		Replicas: b.NewLabel("mysql-dbr", replicas),
	}

	db.Replicas.Connect(stitch.Port(MySQLPort), db.Master)
	db.Replicas.Connect(stitch.Port(22), db.Master)
	return db
}

// Deploy registers the master and replicas with d
func (m *MySQL) Deploy(d *stitch.Deployment) error {
	return d.Deploy(m.Master, m.Replicas)
}
