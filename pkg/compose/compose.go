package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"github.com/cuemby/stitch/pkg/log"
	"github.com/cuemby/stitch/pkg/stitch"
	"gopkg.in/yaml.v3"
)

// DefaultProjectName is used when no usable project name is given
const DefaultProjectName = "stitch"

// Project is a compose file translated into labels. It deploys every label
// it holds.
type Project struct {
	Name string

	labels   []*stitch.Label
	services map[string]*stitch.Label
}

// Labels returns the project's labels ordered by service name
func (p *Project) Labels() []*stitch.Label {
	return append([]*stitch.Label{}, p.labels...)
}

// Label returns the label created for service, or nil
func (p *Project) Label(service string) *stitch.Label {
	return p.services[service]
}

// Deploy registers every label with d
func (p *Project) Deploy(d *stitch.Deployment) error {
	for _, l := range p.labels {
		if err := l.Deploy(d); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads a compose file and loads it, naming the project after the
// file's directory
func LoadFile(ctx context.Context, b *stitch.Builder, path string) (*Project, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Load(ctx, b, filepath.Base(filepath.Dir(abs)), content)
}

// Load parses a compose file and builds one label per service.
//
// Each service label holds deploy.replicas (default 1) containers running
// the service image, command and environment. A depends_on edge becomes a
// connection from the service to its dependency on every port the
// dependency declares in ports or expose. Ports declared under ports are
// also opened to the public internet.
func Load(ctx context.Context, b *stitch.Builder, name string, content []byte) (*Project, error) {
	if strings.TrimSpace(string(content)) == "" {
		return nil, ErrEmptyInput
	}
	if b == nil {
		b = stitch.DefaultBuilder()
	}

	project, err := loadProject(ctx, name, content)
	if err != nil {
		return nil, err
	}
	if len(project.Services) == 0 {
		return nil, ErrNoServices
	}

	names := make([]string, 0, len(project.Services))
	for svcName := range project.Services {
		names = append(names, svcName)
	}
	sort.Strings(names)

	out := &Project{
		Name:     project.Name,
		labels:   make([]*stitch.Label, 0, len(names)),
		services: make(map[string]*stitch.Label, len(names)),
	}

	ports := make(map[string][]stitch.Range, len(names))
	for _, svcName := range names {
		svc := project.Services[svcName]

		label, err := buildLabel(b, svcName, svc)
		if err != nil {
			return nil, err
		}

		declared, err := servicePorts(svcName, svc)
		if err != nil {
			return nil, err
		}
		ports[svcName] = declared

		for _, p := range publishedPorts(svc) {
			if err := label.ConnectFromPublic(stitch.Port(p)); err != nil {
				return nil, err
			}
		}

		out.labels = append(out.labels, label)
		out.services[svcName] = label
	}

	for _, svcName := range names {
		svc := project.Services[svcName]

		deps := make([]string, 0, len(svc.DependsOn))
		for dep := range svc.DependsOn {
			deps = append(deps, dep)
		}
		sort.Strings(deps)

		for _, dep := range deps {
			target, ok := out.services[dep]
			if !ok {
				return nil, newParseError("services."+svcName+".depends_on",
					fmt.Sprintf("unknown service %q", dep), ErrInvalidYAML)
			}
			for _, r := range ports[dep] {
				out.services[svcName].Connect(r, target)
			}
		}
	}

	logger := log.WithComponent("compose")
	logger.Debug().
		Str("project", out.Name).
		Int("services", len(out.labels)).
		Msg("compose project loaded")

	return out, nil
}

func loadProject(ctx context.Context, name string, content []byte) (*types.Project, error) {
	var dict map[string]interface{}
	if err := yaml.Unmarshal(content, &dict); err != nil || dict == nil {
		return nil, newParseError("", "invalid YAML syntax", ErrInvalidYAML)
	}

	projectName := loader.NormalizeProjectName(name)
	if projectName == "" {
		projectName = DefaultProjectName
	}

	project, err := loader.LoadWithContext(ctx, types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: content,
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName(projectName, true)
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return nil, newParseError("", err.Error(), ErrInvalidYAML)
	}

	return project, nil
}

func buildLabel(b *stitch.Builder, name string, svc types.ServiceConfig) (*stitch.Label, error) {
	if svc.Image == "" {
		return nil, newParseError("services."+name, "service must have an image", ErrServiceNoImage)
	}

	env := make(map[string]string, len(svc.Environment))
	for k, v := range svc.Environment {
		if v != nil {
			env[k] = *v
		}
	}

	replicas := 1
	if svc.Deploy != nil && svc.Deploy.Replicas != nil {
		replicas = *svc.Deploy.Replicas
	} else if svc.Scale != nil {
		replicas = *svc.Scale
	}

	containers := make([]*stitch.Container, 0, replicas)
	for i := 0; i < replicas; i++ {
		containers = append(containers, b.NewContainer(svc.Image, svc.Command...).WithEnv(env))
	}

	return b.NewLabel(name, containers), nil
}

// servicePorts returns the container ports a service listens on, from both
// ports and expose, sorted and without duplicates
func servicePorts(name string, svc types.ServiceConfig) ([]stitch.Range, error) {
	seen := make(map[stitch.Range]bool)
	var res []stitch.Range

	add := func(r stitch.Range) {
		if !seen[r] {
			seen[r] = true
			res = append(res, r)
		}
	}

	for _, p := range svc.Ports {
		add(stitch.Port(int(p.Target)))
	}

	for i, e := range svc.Expose {
		r, err := parseExpose(e)
		if err != nil {
			return nil, newParseError(fmt.Sprintf("services.%s.expose[%d]", name, i), err.Error(), ErrInvalidPort)
		}
		add(r)
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].Min == res[j].Min {
			return res[i].Max < res[j].Max
		}
		return res[i].Min < res[j].Min
	})
	return res, nil
}

// publishedPorts returns the target ports of published port mappings
func publishedPorts(svc types.ServiceConfig) []int {
	seen := make(map[int]bool)
	var res []int
	for _, p := range svc.Ports {
		if p.Published == "" || seen[int(p.Target)] {
			continue
		}
		seen[int(p.Target)] = true
		res = append(res, int(p.Target))
	}
	sort.Ints(res)
	return res
}

// parseExpose accepts "3000", "3000/tcp" and "3000-3005"
func parseExpose(s string) (stitch.Range, error) {
	s, _, _ = strings.Cut(s, "/")

	lo, hi, isRange := strings.Cut(s, "-")
	first, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return stitch.Range{}, fmt.Errorf("invalid expose entry %q", s)
	}
	if !isRange {
		return stitch.Port(first), nil
	}

	last, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || last < first {
		return stitch.Range{}, fmt.Errorf("invalid expose range %q", s)
	}
	return stitch.PortRange(first, last), nil
}
