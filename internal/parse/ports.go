package parse

import (
	"github.com/docker/go-connections/nat"
)

// PortBinding represents one decoded host-to-container port mapping.
type PortBinding struct {
	HostIP        string // Optional host IP (e.g., "127.0.0.1")
	HostPort      string // Host port number, empty when docker picks one
	ContainerPort string // Container port number
	Protocol      string // Protocol: "tcp", "udp" or "sctp"
}

// ParsePortBinding decodes a -p/--publish value for display.
// Supported formats:
//   - "8080" - Container port only, published on a random host port
//   - "8080:80" - hostPort:containerPort
//   - "127.0.0.1:8080:80" - hostIP:hostPort:containerPort
//   - "8080-8081:80-81/udp" - ranges expand to one binding per port
//
// The raw value is what goes into the compose document; decoding never
// rejects a conversion.
func ParsePortBinding(spec string) ([]PortBinding, error) {
	mappings, err := nat.ParsePortSpec(spec)
	if err != nil {
		return nil, err
	}

	result := make([]PortBinding, 0, len(mappings))
	for _, pm := range mappings {
		result = append(result, PortBinding{
			HostIP:        pm.Binding.HostIP,
			HostPort:      pm.Binding.HostPort,
			ContainerPort: pm.Port.Port(),
			Protocol:      pm.Port.Proto(),
		})
	}
	return result, nil
}

// String returns the port binding in a standard format for display.
func (p PortBinding) String() string {
	host := p.HostPort
	if host == "" {
		host = "*"
	}
	if p.HostIP != "" {
		host = p.HostIP + ":" + host
	}
	return host + " -> " + p.ContainerPort + "/" + p.Protocol
}
