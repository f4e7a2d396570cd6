// Package parse turns docker run command text into a compose document.
package parse

import (
	"strings"

	"github.com/docker/docker/api/types/mount"
)

// Mount represents a parsed -v/--volume specification.
type Mount struct {
	Source   string
	Target   string
	Mode     string
	Type     mount.Type // bind or volume
	ReadOnly bool
}

// ParseVolume parses a docker short-form volume spec: "source:target[:mode]".
// A spec without a colon is an anonymous volume with only a target.
//
// The source is a named volume when it is neither an absolute path (leading
// "/") nor a relative path (contains "/" or "."). Everything else is a bind
// mount.
func ParseVolume(spec string) *Mount {
	if spec == "" {
		return nil
	}

	parts := strings.SplitN(spec, ":", 3)
	if len(parts) == 1 {
		return &Mount{Target: parts[0], Type: mount.TypeVolume}
	}

	m := &Mount{
		Source: parts[0],
		Target: parts[1],
		Type:   mount.TypeBind,
	}

	if len(parts) == 3 {
		m.Mode = parts[2]
		for _, opt := range strings.Split(parts[2], ",") {
			if opt == "ro" || opt == "readonly" {
				m.ReadOnly = true
			}
		}
	}

	if isVolumeName(m.Source) {
		m.Type = mount.TypeVolume
	}

	return m
}

// isVolumeName reports whether a volume source names a managed volume
// rather than a host path.
func isVolumeName(source string) bool {
	if source == "" || strings.HasPrefix(source, "/") {
		return false
	}
	return !strings.ContainsAny(source, "/.")
}

// NamedVolume returns the volume name if the mount must be declared at the
// top level of the compose document.
func (m *Mount) NamedVolume() (string, bool) {
	if m == nil || m.Type != mount.TypeVolume || m.Source == "" {
		return "", false
	}
	return m.Source, true
}

// IsBind reports whether the mount is a bind mount of a host path.
func (m *Mount) IsBind() bool {
	return m != nil && m.Type == mount.TypeBind
}

// String returns the mount in docker short format.
func (m *Mount) String() string {
	if m == nil {
		return ""
	}
	if m.Source == "" {
		return m.Target
	}

	result := m.Source + ":" + m.Target
	if m.Mode != "" {
		result += ":" + m.Mode
	}
	return result
}
