package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cuemby/stitch/pkg/specs"
	"github.com/cuemby/stitch/pkg/storage"
	"github.com/cuemby/stitch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	cfgFile string
	dataDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		cfgFile: filepath.Join(dir, "stitch.yaml"),
		dataDir: filepath.Join(dir, "data"),
	}
	content := "namespace: test\nadmin_acl: [local]\ndata_dir: " + env.dataDir + "\nmachine:\n  provider: Amazon\n  size: m4.large\n"
	require.NoError(t, os.WriteFile(env.cfgFile, []byte(content), 0600))
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.cfgFile, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestTemplatesCommand(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "templates")
	require.NoError(t, err)
	for _, name := range specs.Names() {
		assert.Contains(t, out, name)
	}
}

func TestCompileCommand(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "compile", "etcd", "--replicas", "2", "--machines", "1")
	require.NoError(t, err)

	artifact, err := types.Decode(types.FormatJSON, []byte(out))
	require.NoError(t, err)

	assert.Equal(t, "test", artifact.Namespace)
	assert.Equal(t, []string{"local"}, artifact.AdminACL)
	require.Len(t, artifact.Machines, 2)
	assert.Equal(t, "Master", artifact.Machines[0].Role)
	assert.Equal(t, "Worker", artifact.Machines[1].Role)
	assert.Equal(t, "m4.large", artifact.Machines[1].Size)
	require.Len(t, artifact.Labels, 1)
	assert.Equal(t, "etcd", artifact.Labels[0].Name)
	assert.Len(t, artifact.Containers, 2)
}

func TestCompileFlagOverrides(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "compile", "memcached", "--namespace", "prod", "--max-price", "0.25", "--output", "yaml")
	require.NoError(t, err)

	artifact, err := types.Decode(types.FormatYAML, []byte(out))
	require.NoError(t, err)
	assert.Equal(t, "prod", artifact.Namespace)
	assert.Equal(t, 0.25, artifact.MaxPrice)
}

func TestCompileErrors(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "compile", "cassandra")
	assert.ErrorIs(t, err, specs.ErrUnknownTemplate)

	_, _, err = env.run(t, "compile", "etcd", "--output", "toml")
	assert.Error(t, err)

	_, _, err = env.run(t, "compile", "etcd", "--replicas", "0")
	assert.Error(t, err)

	_, _, err = env.run(t, "compile")
	assert.Error(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	env := newTestEnv(t)
	env.cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, _, err := env.run(t, "templates")
	assert.Error(t, err)
}

func TestMetricsFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "stitch.prom")

	_, _, err := env.run(t, "compile", "etcd", "--metrics-file", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "stitch_labels_created_total")
	assert.Contains(t, string(content), "stitch_canonicalize_duration_seconds")
}

func TestComposeCommand(t *testing.T) {
	env := newTestEnv(t)

	file := filepath.Join(t.TempDir(), "compose.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
services:
  web:
    image: nginx
    ports: ["8080:80"]
    depends_on: [db]
  db:
    image: postgres
    expose: ["5432"]
`), 0600))

	out, _, err := env.run(t, "compose", "-f", file)
	require.NoError(t, err)

	artifact, err := types.Decode(types.FormatJSON, []byte(out))
	require.NoError(t, err)
	assert.Contains(t, artifact.Connections, types.Connection{From: "web", To: "db", MinPort: 5432, MaxPort: 5432})
	assert.Contains(t, artifact.Connections, types.Connection{From: "public", To: "web", MinPort: 80, MaxPort: 80})

	_, _, err = env.run(t, "compose")
	assert.Error(t, err)
}

func TestRevisionsLifecycle(t *testing.T) {
	env := newTestEnv(t)

	first, stderr, err := env.run(t, "compile", "zookeeper", "--save")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Revision")

	// Unchanged artifacts reuse the latest revision
	_, _, err = env.run(t, "compile", "zookeeper", "--save")
	require.NoError(t, err)

	store, err := storage.NewBoltStore(env.dataDir)
	require.NoError(t, err)
	revs, err := store.ListRevisions("test")
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, revs, 1)
	id := revs[0].ID
	assert.Equal(t, "zookeeper", revs[0].Source)

	list, _, err := env.run(t, "revisions", "list")
	require.NoError(t, err)
	assert.Contains(t, list, id)

	got, _, err := env.run(t, "revisions", "get", id)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, _, err = env.run(t, "revisions", "delete", id)
	require.NoError(t, err)

	_, _, err = env.run(t, "revisions", "get", id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
