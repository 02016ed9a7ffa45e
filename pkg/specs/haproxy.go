package specs

import (
	"strings"

	"github.com/cuemby/stitch/pkg/stitch"
)

// HAProxyImage is the image run by every load balancer
const HAProxyImage = "quilt/haproxy"

const haproxyConfig = "/usr/local/etc/haproxy/haproxy.cfg"

// HAProxy load balances public HTTP traffic across a label
type HAProxy struct {
	Label *stitch.Label
}

// NewHAProxy builds n load balancers in front of hosts, reachable from the
// public internet on port 80
func NewHAProxy(b *stitch.Builder, n int, hosts *stitch.Label) (*HAProxy, error) {
	hostnames := strings.Join(hosts.Children(), ",")
	containers := b.NewContainer(HAProxyImage, hostnames, "haproxy", "-f", haproxyConfig).Replicate(n)

	label := b.NewLabel("hap", containers)
	label.Connect(stitch.Port(80), hosts)
	if err := label.ConnectFromPublic(stitch.Port(80)); err != nil {
		return nil, err
	}
	return &HAProxy{Label: label}, nil
}

// Deploy registers the load balancers with d
func (h *HAProxy) Deploy(d *stitch.Deployment) error {
	return h.Label.Deploy(d)
}
