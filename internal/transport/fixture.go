package transport

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rig-tools/cli/internal/session"
)

// Fixture is a Dialer backed by a YAML description of per-host object
// models. It exists so the framework, its tests, and demos can run
// whole sessions without a live management endpoint: hosts marked
// unreachable fail to dial, instance mutations stay in memory for the
// life of the process.
type Fixture struct {
	hosts map[string]*fixtureHost
}

type fixtureHost struct {
	unreachable bool
	classes     map[string][]session.Instance
}

// fixtureDoc is the on-disk shape. Class instances decode through
// yaml.Node so property order in the file is the order commands see.
type fixtureDoc struct {
	Hosts map[string]struct {
		Unreachable bool                 `yaml:"unreachable"`
		Classes     map[string]yaml.Node `yaml:"classes"`
	} `yaml:"hosts"`
}

// LoadFixture reads a fixture file from disk.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture builds a Fixture from YAML bytes.
func ParseFixture(data []byte) (*Fixture, error) {
	var doc fixtureDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	fixture := &Fixture{hosts: make(map[string]*fixtureHost)}

	for hostname, host := range doc.Hosts {
		parsed := &fixtureHost{
			unreachable: host.Unreachable,
			classes:     make(map[string][]session.Instance),
		}

		for class, node := range host.Classes {
			instances, err := parseInstances(class, node)
			if err != nil {
				return nil, fmt.Errorf("fixture host %q class %q: %w", hostname, class, err)
			}
			parsed.classes[class] = instances
		}

		fixture.hosts[hostname] = parsed
	}

	return fixture, nil
}

// parseInstances decodes a YAML sequence of mappings into ordered
// instances. Mapping node content alternates key and value nodes, so
// walking it pairwise preserves the author's property order.
func parseInstances(class string, node yaml.Node) ([]session.Instance, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence of instances")
	}

	var instances []session.Instance

	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("expected a mapping per instance")
		}

		var props []session.Prop
		for i := 0; i+1 < len(item.Content); i += 2 {
			keyNode := item.Content[i]
			valueNode := item.Content[i+1]

			var value any
			if err := valueNode.Decode(&value); err != nil {
				return nil, fmt.Errorf("property %q: %w", keyNode.Value, err)
			}
			props = append(props, session.Prop{Name: keyNode.Value, Value: value})
		}

		instances = append(instances, session.NewInstance(class, props...))
	}

	return instances, nil
}

// Hostnames returns every host in the fixture, sorted, reachable or not.
func (f *Fixture) Hostnames() []string {
	names := make([]string, 0, len(f.hosts))
	for name := range f.hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dial implements Dialer. Each successful dial gets its own mutable
// copy of the host's instance set.
func (f *Fixture) Dial(hostname string) (session.Connection, error) {
	host, ok := f.hosts[hostname]
	if !ok {
		return nil, fmt.Errorf("host %q not present in fixture", hostname)
	}
	if host.unreachable {
		return nil, fmt.Errorf("host %q is unreachable", hostname)
	}

	classes := make(map[string][]session.Instance, len(host.classes))
	for class, instances := range host.classes {
		classes[class] = append([]session.Instance(nil), instances...)
	}

	return &fixtureConn{hostname: hostname, classes: classes}, nil
}

type fixtureConn struct {
	hostname string
	classes  map[string][]session.Instance
}

func (c *fixtureConn) Hostname() string {
	return c.hostname
}

func (c *fixtureConn) Query() session.Query {
	return c
}

// Instances implements session.Query.
func (c *fixtureConn) Instances(class string) ([]session.Instance, error) {
	return append([]session.Instance(nil), c.classes[class]...), nil
}

// Invoke implements session.Query. The fixture understands two generic
// management methods: CreateInstance (params: "instance") and
// DeleteInstance (params: "property", "value"). Both return 0 on
// success, matching the management-method convention commands check.
func (c *fixtureConn) Invoke(class, method string, params map[string]any) (any, error) {
	switch method {
	case "CreateInstance":
		instance, ok := params["instance"].(session.Instance)
		if !ok {
			return nil, fmt.Errorf("CreateInstance requires an instance parameter")
		}
		c.classes[class] = append(c.classes[class], instance)
		return 0, nil

	case "DeleteInstance":
		property, _ := params["property"].(string)
		value := params["value"]

		instances := c.classes[class]
		for i, instance := range instances {
			got, ok := instance.Get(property)
			if ok && got == value {
				c.classes[class] = append(instances[:i:i], instances[i+1:]...)
				return 0, nil
			}
		}
		return nil, fmt.Errorf("no %s instance with %s=%v", class, property, value)

	default:
		return nil, fmt.Errorf("unsupported method %s.%s", class, method)
	}
}

var _ Dialer = (*Fixture)(nil)
var _ session.Connection = (*fixtureConn)(nil)
var _ session.Query = (*fixtureConn)(nil)
