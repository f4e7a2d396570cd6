package compose

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "", expected: FormatYAML},
		{input: "yaml", expected: FormatYAML},
		{input: "YML", expected: FormatYAML},
		{input: " json ", expected: FormatJSON},
		{input: "toml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRender_YAML_KeyOrder(t *testing.T) {
	data, err := Render(lodestoneDocument(), RenderOptions{Format: FormatYAML})
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "version: \"3\"\n"), "got:\n%s", out)

	keys := []string{"version:", "services:", "lodestone:", "image:", "container_name:", "restart:", "ports:", "volumes:"}
	last := -1
	for _, key := range keys {
		idx := strings.Index(out, key)
		require.NotEqual(t, -1, idx, "missing %s", key)
		assert.Greater(t, idx, last, "%s out of order", key)
		last = idx
	}
	assert.Contains(t, out, "external: false")
}

func TestRender_YAML_RoundTrip(t *testing.T) {
	data, err := Render(lodestoneDocument(), RenderOptions{})
	require.NoError(t, err)

	var decoded struct {
		Version  string                   `yaml:"version"`
		Services map[string]ServiceConfig `yaml:"services"`
		Volumes  map[string]VolumeConfig  `yaml:"volumes"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	assert.Equal(t, "3", decoded.Version)
	svc := decoded.Services["lodestone"]
	assert.Equal(t, "ghcr.io/lodestone-team/lodestone_core", svc.Image)
	assert.Equal(t, []string{"16662:16662"}, svc.Ports)
	assert.Equal(t, []string{"lodestone:/home/user/.lodestone"}, svc.Volumes)
	assert.Contains(t, decoded.Volumes, "lodestone")
}

func TestRender_YAML_Indent(t *testing.T) {
	doc := NewDocument("web", &ServiceConfig{Image: "nginx"})

	data, err := Render(doc, RenderOptions{Indent: 4})
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    web:\n        image: nginx\n")
}

func TestRender_YAML_SortKeys(t *testing.T) {
	data, err := Render(lodestoneDocument(), RenderOptions{SortKeys: true})
	require.NoError(t, err)

	out := string(data)
	assert.Less(t, strings.Index(out, "services:"), strings.Index(out, "version:"))
	assert.Less(t, strings.Index(out, "container_name:"), strings.Index(out, "image:"))
}

func TestRender_YAML_NoVolumesKey(t *testing.T) {
	data, err := Render(NewDocument("alpine", &ServiceConfig{Image: "alpine"}), RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, "version: \"3\"\nservices:\n  alpine:\n    image: alpine\n", string(data))
}

func TestRender_JSON(t *testing.T) {
	data, err := Render(lodestoneDocument(), RenderOptions{Format: FormatJSON})
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Less(t, strings.Index(out, `"version"`), strings.Index(out, `"services"`))
	assert.Less(t, strings.Index(out, `"image"`), strings.Index(out, `"container_name"`))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "3", decoded["version"])
	assert.Equal(t, map[string]interface{}{"lodestone": map[string]interface{}{"external": false}}, decoded["volumes"])
}

func TestRender_JSON_NoVolumesKey(t *testing.T) {
	data, err := Render(NewDocument("alpine", &ServiceConfig{Image: "alpine"}), RenderOptions{Format: FormatJSON})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"volumes"`)
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(nil, RenderOptions{})
	assert.Error(t, err)

	_, err = Render(NewDocument("web", nil), RenderOptions{Format: "toml"})
	assert.Error(t, err)
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"lodestone", "lodestone"},
		{"MyApp", "myapp"},
		{"lodestone_core", "lodestone_core"},
		{"my.app", "my_app"},
		{"-web", "web"},
		{"", "app"},
		{"!!!", "app"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProjectName(tt.input))
		})
	}
}

func TestCheck(t *testing.T) {
	project, err := Check(context.Background(), lodestoneDocument())
	require.NoError(t, err)

	assert.Equal(t, "lodestone", project.Name)
	svc, err := project.GetService("lodestone")
	require.NoError(t, err)
	assert.Equal(t, "ghcr.io/lodestone-team/lodestone_core", svc.Image)
	assert.Equal(t, "lodestone", svc.ContainerName)
	assert.Contains(t, project.Volumes, "lodestone")
}

func TestCheck_MissingImage(t *testing.T) {
	_, err := Check(context.Background(), NewDocument("app", &ServiceConfig{Ports: []string{"80:80"}}))
	assert.Error(t, err)
}

func TestCheck_UndeclaredNetwork(t *testing.T) {
	doc := NewDocument("web", &ServiceConfig{Image: "nginx", Networks: []string{"backend"}})

	_, err := Check(context.Background(), doc)
	assert.Error(t, err)
}

func TestCheck_Nil(t *testing.T) {
	_, err := Check(context.Background(), nil)
	assert.Error(t, err)
}
