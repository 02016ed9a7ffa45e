package specs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cuemby/stitch/pkg/stitch"
	"github.com/go-playground/validator/v10"
)

// ErrUnknownTemplate is returned by Lookup for unregistered names
var ErrUnknownTemplate = errors.New("unknown template")

// Options sizes a template
type Options struct {
	Replicas int `validate:"gte=1"`
	Workers  int `validate:"gte=0"`
}

// Stack deploys several deployables as one
type Stack []stitch.Deployable

// Deploy registers every member with d in order
func (s Stack) Deploy(d *stitch.Deployment) error {
	return d.Deploy(s...)
}

// Template is a named, sized recipe for a deployable
type Template struct {
	Name        string
	Description string

	build func(b *stitch.Builder, opts Options) (stitch.Deployable, error)
}

var validate = validator.New()

// Build validates opts and constructs the template with b
func (t Template) Build(b *stitch.Builder, opts Options) (stitch.Deployable, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid options for template %s: %w", t.Name, err)
	}
	return t.build(b, opts)
}

var templates = map[string]Template{
	"etcd": {
		Name:        "etcd",
		Description: "etcd cluster, one member per replica",
		build: func(b *stitch.Builder, opts Options) (stitch.Deployable, error) {
			return NewEtcd(b, opts.Replicas), nil
		},
	},
	"memcached": {
		Name:        "memcached",
		Description: "memcached pool",
		build: func(b *stitch.Builder, opts Options) (stitch.Deployable, error) {
			return NewMemcached(b, opts.Replicas), nil
		},
	},
	"zookeeper": {
		Name:        "zookeeper",
		Description: "Zookeeper ensemble",
		build: func(b *stitch.Builder, opts Options) (stitch.Deployable, error) {
			return NewZookeeper(b, opts.Replicas), nil
		},
	},
	"mysql": {
		Name:        "mysql",
		Description: "MySQL master with read replicas",
		build: func(b *stitch.Builder, opts Options) (stitch.Deployable, error) {
			return NewMySQL(b, opts.Replicas), nil
		},
	},
	"spark": {
		Name:        "spark",
		Description: "Spark masters and workers coordinated by Zookeeper, web UIs public",
		build: func(b *stitch.Builder, opts Options) (stitch.Deployable, error) {
			zoo := NewZookeeper(b, opts.Replicas)
			spark := NewSpark(b, opts.Replicas, opts.Workers, zoo.Label)
			if err := spark.Public(); err != nil {
				return nil, err
			}
			return Stack{zoo, spark.Exclusive()}, nil
		},
	},
	"wordpress": {
		Name:        "wordpress",
		Description: "Wordpress behind HAProxy with MySQL and memcached",
		build: func(b *stitch.Builder, opts Options) (stitch.Deployable, error) {
			memcd := NewMemcached(b, opts.Replicas)
			db := NewMySQL(b, opts.Replicas)
			wp := NewWordpress(b, opts.Replicas, db, memcd)
			hap, err := NewHAProxy(b, opts.Replicas, wp.Label)
			if err != nil {
				return nil, err
			}
			return Stack{memcd, db, wp, hap}, nil
		},
	},
}

// Registry returns every registered template keyed by name
func Registry() map[string]Template {
	res := make(map[string]Template, len(templates))
	for name, t := range templates {
		res[name] = t
	}
	return res
}

// Names returns the registered template names in sorted order
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the template registered under name
func Lookup(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	return t, nil
}
