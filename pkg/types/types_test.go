package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDeployment() *Deployment {
	return &Deployment{
		Machines: []Machine{
			{Provider: "Amazon", Role: "Master", SSHKeys: []string{}, CPU: Range{Min: 2}},
		},
		Invariants: []Assertion{
			{Form: FormReach, Nodes: []string{"web", "db"}, Target: true},
		},
		Containers: map[int]Container{
			2: {ID: 2, Image: "nginx", Command: []string{}, Env: map[string]string{}},
			10: {ID: 10, Image: "mysql", Command: []string{"mysqld"}, Env: map[string]string{"A": "b"}},
		},
		Labels: []Label{
			{Name: "web", IDs: []int{2}, Annotations: []string{}},
			{Name: "db", IDs: []int{10}, Annotations: []string{}},
		},
		Connections: []Connection{
			{From: "web", To: "db", MinPort: 3306, MaxPort: 3306},
			{From: PublicInternetLabel, To: "web", MinPort: 80, MaxPort: 80},
		},
		Placements: []Placement{
			{TargetLabel: "web", Exclusive: true, OtherLabel: "db"},
		},
		Namespace: "prod",
		AdminACL:  []string{"local"},
		MaxPrice:  1.5,
	}
}

func TestRangeAccepts(t *testing.T) {
	tests := []struct {
		name     string
		r        Range
		x        int
		expected bool
	}{
		{"inside", Range{Min: 1, Max: 4}, 2, true},
		{"at min", Range{Min: 1, Max: 4}, 1, true},
		{"at max", Range{Min: 1, Max: 4}, 4, true},
		{"below", Range{Min: 2, Max: 4}, 1, false},
		{"above", Range{Min: 2, Max: 4}, 5, false},
		{"unbounded max", Range{Min: 2}, 64, true},
		{"unbounded below min", Range{Min: 2}, 1, false},
		{"zero range accepts anything non-negative", Range{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.Accepts(tt.x))
		})
	}
}

func TestRangeIsSinglePort(t *testing.T) {
	assert.True(t, Range{Min: 80, Max: 80}.IsSinglePort())
	assert.False(t, Range{Min: 1024, Max: 2048}.IsSinglePort())
}

func TestEncodeJSONFieldNames(t *testing.T) {
	data, err := sampleDeployment().Encode(FormatJSON)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{
		"machines", "invariants", "containers", "labels", "connections",
		"placements", "namespace", "adminACL", "maxPrice",
	} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 9)

	var containers map[string]Container
	require.NoError(t, json.Unmarshal(raw["containers"], &containers))
	assert.Equal(t, "mysql", containers["10"].Image)

	assert.Contains(t, string(raw["connections"]), `"minPort": 3306`)
	assert.Contains(t, string(raw["placements"]), `"targetLabel": "web"`)
}

func TestEncodeYAML(t *testing.T) {
	data, err := sampleDeployment().Encode(FormatYAML)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "machines:"))
	assert.Contains(t, out, "adminACL:")
	assert.Contains(t, out, "maxPrice: 1.5")

	decoded, err := Decode(FormatYAML, data)
	require.NoError(t, err)
	assert.Equal(t, sampleDeployment(), decoded)
}

func TestEncodeDeterministic(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		first, err := sampleDeployment().Encode(format)
		require.NoError(t, err)
		second, err := sampleDeployment().Encode(format)
		require.NoError(t, err)
		assert.Equal(t, first, second, "format %s", format)
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	_, err := sampleDeployment().Encode("toml")
	assert.Error(t, err)

	_, err = Decode("toml", nil)
	assert.Error(t, err)
}

func TestDigest(t *testing.T) {
	a, err := sampleDeployment().Digest()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a, "sha256:"))

	b, err := sampleDeployment().Digest()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	changed := sampleDeployment()
	changed.Namespace = "staging"
	c, err := changed.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
