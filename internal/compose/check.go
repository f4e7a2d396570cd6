package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// checkFilename is the virtual file name reported by compose-go in errors.
const checkFilename = "docker-compose.yml"

// Check loads the document through compose-go to confirm compose accepts it.
// The returned project can be inspected by callers that want normalized values.
func Check(ctx context.Context, doc *Document) (*types.Project, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	raw := doc.Map()
	// The version attribute is obsolete for compose-go and only produces a warning.
	delete(raw, "version")

	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	details := types.ConfigDetails{
		WorkingDir: ".",
		ConfigFiles: []types.ConfigFile{
			{Filename: checkFilename, Content: data},
		},
		Environment: types.Mapping{},
	}

	project, err := loader.LoadWithContext(ctx, details, func(o *loader.Options) {
		o.SetProjectName(ProjectName(doc.ServiceName()), true)
		o.SkipResolveEnvironment = true
		o.ResolvePaths = false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load compose project: %w", err)
	}
	return project, nil
}

// ProjectName turns a service name into a valid compose project name.
// Compose requires lowercase alphanumerics, hyphens and underscores,
// starting with a letter or digit.
func ProjectName(name string) string {
	name = strings.ToLower(name)

	var result strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result.WriteRune(r)
		} else if r == ' ' || r == '.' {
			result.WriteRune('_')
		}
	}

	sanitized := strings.TrimLeft(result.String(), "-_")
	if sanitized == "" {
		return DefaultServiceName
	}
	return sanitized
}
