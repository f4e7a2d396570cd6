// Package compose models the compose document produced from a docker run
// command and renders it as YAML or JSON.
package compose

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// FileVersion is the compose file format version written into every document.
const FileVersion = "3"

// DefaultServiceName is used when neither --name nor an image is available.
const DefaultServiceName = "app"

// Document is the top-level compose file structure.
// Keys render in declaration order: version, services, volumes.
type Document struct {
	Version  string                    `yaml:"version" json:"version"`
	Services map[string]*ServiceConfig `yaml:"services" json:"services"`
	Volumes  NamedVolumes              `yaml:"volumes,omitempty" json:"volumes,omitempty"`
}

// ServiceConfig represents a service in the compose document.
// Empty fields are omitted so the rendered key set is exactly the set of
// fields that received a value.
type ServiceConfig struct {
	Image         string   `yaml:"image,omitempty" json:"image,omitempty"`
	ContainerName string   `yaml:"container_name,omitempty" json:"container_name,omitempty"`
	Restart       string   `yaml:"restart,omitempty" json:"restart,omitempty"`
	Ports         []string `yaml:"ports,omitempty" json:"ports,omitempty"`
	Volumes       []string `yaml:"volumes,omitempty" json:"volumes,omitempty"`
	Environment   []string `yaml:"environment,omitempty" json:"environment,omitempty"`
	Networks      []string `yaml:"networks,omitempty" json:"networks,omitempty"`
}

// VolumeConfig is the descriptor of a top-level named volume.
type VolumeConfig struct {
	External bool `yaml:"external" json:"external"`
}

// NamedVolume is a top-level volume declaration.
type NamedVolume struct {
	Name   string
	Config VolumeConfig
}

// NamedVolumes is an insertion-ordered set of named volumes.
type NamedVolumes []NamedVolume

// NewDocument creates a document holding a single service.
func NewDocument(name string, svc *ServiceConfig) *Document {
	if name == "" {
		name = DefaultServiceName
	}
	if svc == nil {
		svc = &ServiceConfig{}
	}
	return &Document{
		Version:  FileVersion,
		Services: map[string]*ServiceConfig{name: svc},
	}
}

// ServiceName returns the key of the document's service.
func (d *Document) ServiceName() string {
	for name := range d.Services {
		return name
	}
	return ""
}

// Service returns the document's service configuration.
func (d *Document) Service() *ServiceConfig {
	return d.Services[d.ServiceName()]
}

// AddVolume registers a named volume. Registering a name twice keeps its
// original position.
func (d *Document) AddVolume(name string) {
	if d.Volumes.Has(name) {
		return
	}
	d.Volumes = append(d.Volumes, NamedVolume{Name: name, Config: VolumeConfig{External: false}})
}

// Has reports whether a volume with the given name is declared.
func (v NamedVolumes) Has(name string) bool {
	for _, vol := range v {
		if vol.Name == name {
			return true
		}
	}
	return false
}

// Names returns the volume names in declaration order.
func (v NamedVolumes) Names() []string {
	names := make([]string, 0, len(v))
	for _, vol := range v {
		names = append(names, vol.Name)
	}
	return names
}

// MarshalYAML renders the volumes as a mapping in declaration order.
func (v NamedVolumes) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, vol := range v {
		var value yaml.Node
		if err := value.Encode(vol.Config); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: vol.Name},
			&value,
		)
	}
	return node, nil
}

// MarshalJSON renders the volumes as an object in declaration order.
func (v NamedVolumes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, vol := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(vol.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(vol.Config)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Map returns the document as nested generic maps, the form used when
// keys are rendered sorted.
func (d *Document) Map() map[string]interface{} {
	services := make(map[string]interface{}, len(d.Services))
	for name, svc := range d.Services {
		services[name] = svc.Map()
	}

	m := map[string]interface{}{
		"version":  d.Version,
		"services": services,
	}
	if len(d.Volumes) > 0 {
		volumes := make(map[string]interface{}, len(d.Volumes))
		for _, vol := range d.Volumes {
			volumes[vol.Name] = map[string]interface{}{"external": vol.Config.External}
		}
		m["volumes"] = volumes
	}
	return m
}

// Map returns the non-empty fields of the service keyed by compose name.
func (s *ServiceConfig) Map() map[string]interface{} {
	m := make(map[string]interface{})
	if s == nil {
		return m
	}
	setString := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}
	setList := func(key string, values []string) {
		if len(values) > 0 {
			m[key] = values
		}
	}

	setString("image", s.Image)
	setString("container_name", s.ContainerName)
	setString("restart", s.Restart)
	setList("ports", s.Ports)
	setList("volumes", s.Volumes)
	setList("environment", s.Environment)
	setList("networks", s.Networks)
	return m
}
