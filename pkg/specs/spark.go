package specs

import (
	"strings"

	"github.com/cuemby/stitch/pkg/stitch"
)

// SparkImage is the default image for masters and workers
const SparkImage = "quilt/spark"

const (
	sparkMasterPort   = 7077
	sparkMasterUIPort = 8080
	sparkWorkerUIPort = 8081
)

// Spark is a standalone Spark cluster of masters and workers, optionally
// coordinated through a Zookeeper ensemble
type Spark struct {
	Masters *stitch.Label
	Workers *stitch.Label
}

// NewSpark builds a cluster with nMaster masters and nWorker workers.
// zookeeper may be nil.
func NewSpark(b *stitch.Builder, nMaster, nWorker int, zookeeper *stitch.Label) *Spark {
	masters := b.NewContainer(SparkImage, "master").Replicate(nMaster)
	if zookeeper != nil {
		zooHosts := strings.Join(zookeeper.Children(), ",")
		for _, c := range masters {
			c.SetEnv("ZOO", zooHosts)
		}
	}
	s := &Spark{Masters: b.NewLabel("spark-ms", masters)}

	workers := b.NewContainer(SparkImage, "worker").
		SetEnv("MASTERS", strings.Join(s.Masters.Children(), ",")).
		Replicate(nWorker)
	s.Workers = b.NewLabel("spark-wk", workers)

	s.Workers.Connect(stitch.Port(sparkMasterPort), s.Workers)
	s.Workers.Connect(stitch.Port(sparkMasterPort), s.Masters)
	if zookeeper != nil {
		s.Masters.Connect(stitch.Port(ZookeeperClientPort), zookeeper)
	}
	return s
}

// SetImage switches every master and worker to image
func (s *Spark) SetImage(image string) *Spark {
	for _, c := range s.Masters.Containers() {
		c.Image = image
	}
	for _, c := range s.Workers.Containers() {
		c.Image = image
	}
	return s
}

// Job makes the masters run command once they boot
func (s *Spark) Job(command string) *Spark {
	for _, c := range s.Masters.Containers() {
		c.SetEnv("JOB", command)
	}
	return s
}

// Public opens the master and worker web UIs to the public internet
func (s *Spark) Public() error {
	if err := s.Masters.ConnectFromPublic(stitch.Port(sparkMasterUIPort)); err != nil {
		return err
	}
	return s.Workers.ConnectFromPublic(stitch.Port(sparkWorkerUIPort))
}

// Exclusive keeps masters off the machines running workers
func (s *Spark) Exclusive() *Spark {
	s.Masters.Place(stitch.NewLabelRule(true, s.Workers))
	return s
}

// Deploy registers masters and workers with d
func (s *Spark) Deploy(d *stitch.Deployment) error {
	return d.Deploy(s.Masters, s.Workers)
}
