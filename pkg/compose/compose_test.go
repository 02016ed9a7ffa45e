package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cuemby/stitch/pkg/stitch"
	"github.com/cuemby/stitch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webStack = `
services:
  web:
    image: nginx
    ports:
      - "8080:80"
    depends_on:
      - api
  api:
    image: example/api
    command: ["serve", "--port", "3000"]
    expose:
      - "3000"
    environment:
      DB_HOST: db
    depends_on:
      - db
    deploy:
      replicas: 2
  db:
    image: mysql
    expose:
      - "3306"
      - "33060"
`

func loadTest(t *testing.T, content string) (*Project, *stitch.Builder) {
	t.Helper()
	b := stitch.NewBuilder(nil)
	p, err := Load(context.Background(), b, "test", []byte(content))
	require.NoError(t, err)
	return p, b
}

func TestLoadLabelsSorted(t *testing.T) {
	p, _ := loadTest(t, webStack)

	labels := p.Labels()
	require.Len(t, labels, 3)
	assert.Equal(t, "api", labels[0].Name())
	assert.Equal(t, "db", labels[1].Name())
	assert.Equal(t, "web", labels[2].Name())
	assert.Equal(t, "test", p.Name)
}

func TestLoadContainers(t *testing.T) {
	p, _ := loadTest(t, webStack)

	api := p.Label("api")
	require.NotNil(t, api)
	containers := api.Containers()
	require.Len(t, containers, 2)
	assert.NotEqual(t, containers[0].ID(), containers[1].ID())
	for _, c := range containers {
		assert.Equal(t, "example/api", c.Image)
		assert.Equal(t, []string{"serve", "--port", "3000"}, c.Command)
		assert.Equal(t, map[string]string{"DB_HOST": "db"}, c.Env)
	}

	// Each replica owns its environment
	containers[0].SetEnv("DB_HOST", "other")
	assert.Equal(t, "db", containers[1].Env["DB_HOST"])

	web := p.Label("web")
	require.Len(t, web.Containers(), 1)
	assert.Equal(t, []string{}, web.Containers()[0].Command)

	assert.Nil(t, p.Label("missing"))
}

func TestLoadConnections(t *testing.T) {
	p, _ := loadTest(t, webStack)

	d, err := stitch.New(stitch.Config{})
	require.NoError(t, err)
	require.NoError(t, d.Deploy(p))

	out, err := d.Canonicalize()
	require.NoError(t, err)

	assert.Equal(t, []types.Connection{
		{From: "api", To: "db", MinPort: 3306, MaxPort: 3306},
		{From: "api", To: "db", MinPort: 33060, MaxPort: 33060},
		{From: "web", To: "api", MinPort: 3000, MaxPort: 3000},
		{From: "public", To: "web", MinPort: 80, MaxPort: 80},
	}, out.Connections)
}

func TestLoadDependencyWithoutPorts(t *testing.T) {
	p, _ := loadTest(t, `
services:
  worker:
    image: example/worker
    depends_on: [queue]
  queue:
    image: example/queue
`)

	assert.Empty(t, p.Label("worker").Connections())
}

func TestLoadExposeRange(t *testing.T) {
	p, _ := loadTest(t, `
services:
  client:
    image: busybox
    depends_on: [peers]
  peers:
    image: example/peers
    expose:
      - "7000-7010/tcp"
`)

	conns := p.Label("client").Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, 7000, conns[0].MinPort)
	assert.Equal(t, 7010, conns[0].MaxPort)
	assert.Same(t, p.Label("peers"), conns[0].To)
}

func TestLoadZeroReplicas(t *testing.T) {
	p, _ := loadTest(t, `
services:
  idle:
    image: busybox
    deploy:
      replicas: 0
`)

	assert.Empty(t, p.Label("idle").Containers())
}

func TestLoadUniqueNamesPerBuilder(t *testing.T) {
	b := stitch.NewBuilder(nil)
	b.NewLabel("db", nil)

	p, err := Load(context.Background(), b, "test", []byte(webStack))
	require.NoError(t, err)

	assert.Equal(t, "db2", p.Label("db").Name())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty", "   \n", ErrEmptyInput},
		{"not a mapping", "- just\n- a list\n", ErrInvalidYAML},
		{"build only", "services:\n  app:\n    build: ./app\n", ErrServiceNoImage},
		{"bad expose", "services:\n  app:\n    image: busybox\n    expose: [\"abc\"]\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), stitch.NewBuilder(nil), "test", []byte(tt.content))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Shop")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "compose.yaml")
	require.NoError(t, os.WriteFile(path, []byte(webStack), 0600))

	p, err := LoadFile(context.Background(), stitch.NewBuilder(nil), path)
	require.NoError(t, err)
	assert.Equal(t, "myshop", p.Name)
	assert.Len(t, p.Labels(), 3)

	_, err = LoadFile(context.Background(), stitch.NewBuilder(nil), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseExpose(t *testing.T) {
	tests := []struct {
		in      string
		want    stitch.Range
		wantErr bool
	}{
		{"80", stitch.Port(80), false},
		{"53/udp", stitch.Port(53), false},
		{"1000-2000", stitch.PortRange(1000, 2000), false},
		{"2000-1000", stitch.Range{}, true},
		{"http", stitch.Range{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseExpose(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
