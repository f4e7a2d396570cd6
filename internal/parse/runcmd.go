package parse

import (
	"strings"

	"github.com/griffithind/runcompose/internal/compose"
)

// Rule names reported in Step.Rule.
const (
	RuleImage       = "image"
	RuleName        = "name"
	RuleRestart     = "restart"
	RulePublish     = "publish"
	RuleVolume      = "volume"
	RuleEnv         = "env"
	RuleNetwork     = "network"
	RuleDetach      = "detach"
	RuleUnsupported = "unsupported"
)

// RunCommand holds the values collected from a docker run token sequence.
type RunCommand struct {
	Image         string
	ContainerName string
	Restart       string
	Ports         []string
	Volumes       []string
	Environment   []string
	Networks      []string

	// NamedVolumes lists volume names that must be declared at the top
	// level, in first-seen order.
	NamedVolumes []string

	// ServiceName is resolved from --name, then the image, then "app".
	ServiceName string

	// Steps records how every token was interpreted.
	Steps []Step

	// Dangling lists value flags that appeared with no following token.
	Dangling []string
}

// Step describes the interpretation of one token (or flag-value pair).
type Step struct {
	Index int
	Token string
	Value string
	Rule  string
}

// Ignored returns the tokens that matched no rule.
func (rc *RunCommand) Ignored() []string {
	var ignored []string
	for _, s := range rc.Steps {
		if s.Rule == RuleUnsupported {
			ignored = append(ignored, s.Token)
		}
	}
	return ignored
}

// rule is one entry of the ordered flag table.
type rule struct {
	name       string
	match      func(token string, last bool) bool
	needsValue bool
	apply      func(rc *RunCommand, token, value string)
}

func flag(names ...string) func(string, bool) bool {
	return func(token string, _ bool) bool {
		for _, n := range names {
			if token == n {
				return true
			}
		}
		return false
	}
}

// rules is checked in order at each position; the first match wins.
// The image rule fires by position only: the last token, when it is not a flag.
var rules = []rule{
	{
		name: RuleImage,
		match: func(token string, last bool) bool {
			return last && !strings.HasPrefix(token, "-")
		},
		apply: func(rc *RunCommand, token, _ string) {
			rc.Image = token
			if rc.ServiceName == "" {
				rc.ServiceName = ImageBaseName(token)
			}
		},
	},
	{
		name:       RuleName,
		match:      flag("--name"),
		needsValue: true,
		apply: func(rc *RunCommand, _, value string) {
			rc.ServiceName = value
			rc.ContainerName = value
		},
	},
	{
		name:       RuleRestart,
		match:      flag("--restart"),
		needsValue: true,
		apply: func(rc *RunCommand, _, value string) {
			rc.Restart = value
		},
	},
	{
		name:       RulePublish,
		match:      flag("-p", "--publish"),
		needsValue: true,
		apply: func(rc *RunCommand, _, value string) {
			rc.Ports = append(rc.Ports, value)
		},
	},
	{
		name:       RuleVolume,
		match:      flag("-v", "--volume"),
		needsValue: true,
		apply: func(rc *RunCommand, _, value string) {
			rc.Volumes = append(rc.Volumes, value)
			if name, ok := ParseVolume(value).NamedVolume(); ok {
				rc.addNamedVolume(name)
			}
		},
	},
	{
		name:       RuleEnv,
		match:      flag("-e", "--env"),
		needsValue: true,
		apply: func(rc *RunCommand, _, value string) {
			rc.Environment = append(rc.Environment, value)
		},
	},
	{
		name:       RuleNetwork,
		match:      flag("--network"),
		needsValue: true,
		apply: func(rc *RunCommand, _, value string) {
			rc.Networks = append(rc.Networks, value)
		},
	},
	{
		name:  RuleDetach,
		match: flag("-d", "--detach"),
		apply: func(*RunCommand, string, string) {},
	},
}

// ParseRunCommand walks docker run tokens left to right and collects the
// supported flags. A leading "docker run" pair is dropped. Unknown tokens
// and value flags without a following token are skipped; ParseRunCommand
// never fails.
func ParseRunCommand(tokens []string) *RunCommand {
	if len(tokens) >= 2 && tokens[0] == "docker" && tokens[1] == "run" {
		tokens = tokens[2:]
	}

	rc := &RunCommand{}

	for i := 0; i < len(tokens); {
		token := tokens[i]
		last := i == len(tokens)-1
		step := Step{Index: i, Token: token, Rule: RuleUnsupported}
		advance := 1

		for _, r := range rules {
			if !r.match(token, last) {
				continue
			}
			if r.needsValue && i+1 >= len(tokens) {
				rc.Dangling = append(rc.Dangling, token)
				continue
			}

			var value string
			if r.needsValue {
				value = tokens[i+1]
				advance = 2
			}
			r.apply(rc, token, value)
			step.Rule = r.name
			step.Value = value
			break
		}

		rc.Steps = append(rc.Steps, step)
		i += advance
	}

	if rc.ServiceName == "" && rc.Image != "" {
		rc.ServiceName = ImageBaseName(rc.Image)
	}
	if rc.ServiceName == "" {
		rc.ServiceName = compose.DefaultServiceName
	}

	return rc
}

func (rc *RunCommand) addNamedVolume(name string) {
	for _, existing := range rc.NamedVolumes {
		if existing == name {
			return
		}
	}
	rc.NamedVolumes = append(rc.NamedVolumes, name)
}

// Document builds the compose document for the command. Fields that
// received no value are left empty and therefore omitted when rendered.
func (rc *RunCommand) Document() *compose.Document {
	doc := compose.NewDocument(rc.ServiceName, &compose.ServiceConfig{
		Image:         rc.Image,
		ContainerName: rc.ContainerName,
		Restart:       rc.Restart,
		Ports:         rc.Ports,
		Volumes:       rc.Volumes,
		Environment:   rc.Environment,
		Networks:      rc.Networks,
	})
	for _, name := range rc.NamedVolumes {
		doc.AddVolume(name)
	}
	return doc
}

// Interpret converts docker run tokens into a compose document.
func Interpret(tokens []string) *compose.Document {
	return ParseRunCommand(tokens).Document()
}

// ImageBaseName derives a service name from an image reference: the last
// path segment with any ":tag" removed.
// "ghcr.io/lodestone-team/lodestone_core:latest" -> "lodestone_core".
func ImageBaseName(image string) string {
	if i := strings.LastIndex(image, "/"); i >= 0 {
		image = image[i+1:]
	}
	if i := strings.Index(image, ":"); i >= 0 {
		image = image[:i]
	}
	return image
}
