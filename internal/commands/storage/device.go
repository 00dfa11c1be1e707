package storage

import (
	"fmt"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/executor"
	"github.com/rig-tools/cli/internal/session"
)

func deviceListAction() *dispatchers.Action {
	return dispatchers.NewAction("storage.device.list",
		func(conn session.Connection, _ []any, _ map[string]any) (any, error) {
			instances, err := conn.Query().Instances(classStorageExtent)
			if err != nil {
				return nil, err
			}

			rows := make([]executor.Row, 0, len(instances))
			for _, instance := range instances {
				rows = append(rows, Row(instance, "DeviceID", "Name", "ElementName", "Size", "Format"))
			}
			return rows, nil
		})
}

func deviceShowAction() *dispatchers.Action {
	return dispatchers.NewAction("storage.device.show",
		func(conn session.Connection, args []any, _ map[string]any) (any, error) {
			return findOne(conn.Query(), classStorageExtent, stringsOf(args[0]))
		}, "devices")
}

func deviceProvidesAction() *dispatchers.Action {
	return dispatchers.NewAction("storage.device.provides",
		func(conn session.Connection, args []any, _ map[string]any) (any, error) {
			return relatedRows(conn.Query(), stringsOf(args[0]), truthy(args[1]), forward)
		}, "devices", "__deep")
}

func deviceDependsAction() *dispatchers.Action {
	return dispatchers.NewAction("storage.device.depends",
		func(conn session.Connection, args []any, _ map[string]any) (any, error) {
			return relatedRows(conn.Query(), stringsOf(args[0]), truthy(args[1]), backward)
		}, "devices", "__deep")
}

func deviceTreeAction() *dispatchers.Action {
	return dispatchers.NewAction("storage.device.tree",
		func(conn session.Connection, args []any, _ map[string]any) (any, error) {
			return treeRows(conn.Query(), stringsOf(args[0]))
		}, "device")
}

type direction int

const (
	// forward follows BasedOn edges from a device to the devices built
	// on top of it.
	forward direction = iota
	// backward follows them to the devices it is built on.
	backward
)

// relatedRows walks the BasedOn relation from the given seed devices,
// one step by default or transitively with deep, and resolves each
// found device to a (DeviceID, Name) row in discovery order.
func relatedRows(query session.Query, seeds []string, deep bool, dir direction) ([]executor.Row, error) {
	edges, err := query.Instances(classBasedOn)
	if err != nil {
		return nil, err
	}

	next := func(device string) []string {
		var out []string
		for _, edge := range edges {
			from, to := propString(edge, "Antecedent"), propString(edge, "Dependent")
			if dir == backward {
				from, to = to, from
			}
			if from == device {
				out = append(out, to)
			}
		}
		return out
	}

	seen := make(map[string]bool, len(seeds))
	for _, seed := range seeds {
		seen[seed] = true
	}

	var found []string
	frontier := seeds
	for len(frontier) > 0 {
		var discovered []string
		for _, device := range frontier {
			for _, hit := range next(device) {
				if seen[hit] {
					continue
				}
				seen[hit] = true
				found = append(found, hit)
				discovered = append(discovered, hit)
			}
		}
		if !deep {
			break
		}
		frontier = discovered
	}

	rows := make([]executor.Row, 0, len(found))
	for _, deviceID := range found {
		rows = append(rows, executor.Row{deviceID, deviceName(query, deviceID)})
	}
	return rows, nil
}

// treeRows renders the device hierarchy depth first, one row per
// device with its nesting level in the first column. Without a start
// device the walk begins at every device nothing is based on. A
// device reached a second time is shown with a "***" marker and not
// expanded again.
func treeRows(query session.Query, devices []string) ([]executor.Row, error) {
	byID, order, err := allDevices(query)
	if err != nil {
		return nil, err
	}

	edges, err := query.Instances(classBasedOn)
	if err != nil {
		return nil, err
	}

	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, edge := range edges {
		parent, child := propString(edge, "Antecedent"), propString(edge, "Dependent")
		children[parent] = append(children[parent], child)
		hasParent[child] = true
	}

	type frame struct {
		id    string
		level int
	}
	var stack []frame
	if len(devices) > 0 {
		id, ok := resolveDeviceID(byID, order, devices[0])
		if !ok {
			return nil, fmt.Errorf("no such device %q", devices[0])
		}
		stack = []frame{{id, 0}}
	} else {
		// Reversed so the first root pops first.
		for i := len(order) - 1; i >= 0; i-- {
			if !hasParent[order[i]] {
				stack = append(stack, frame{order[i], 0})
			}
		}
	}

	var rows []executor.Row
	shown := make(map[string]bool)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		instance, ok := byID[top.id]
		if !ok {
			continue
		}

		if shown[top.id] {
			rows = append(rows, executor.Row{top.level, "*** " + top.id})
			continue
		}
		shown[top.id] = true

		info := Row(instance, "DeviceID", "Name", "ElementName", "Size", "Format")
		rows = append(rows, append(executor.Row{top.level}, info...))

		kids := children[top.id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], top.level + 1})
		}
	}
	return rows, nil
}

// allDevices indexes every extent and array by DeviceID, keeping the
// listing order.
func allDevices(query session.Query) (map[string]session.Instance, []string, error) {
	byID := make(map[string]session.Instance)
	var order []string
	for _, class := range []string{classStorageExtent, classMDRAID} {
		instances, err := query.Instances(class)
		if err != nil {
			return nil, nil, err
		}
		for _, instance := range instances {
			id := propString(instance, "DeviceID")
			if id == "" {
				continue
			}
			if _, seen := byID[id]; !seen {
				order = append(order, id)
			}
			byID[id] = instance
		}
	}
	return byID, order, nil
}

func resolveDeviceID(byID map[string]session.Instance, order []string, wanted string) (string, bool) {
	if _, ok := byID[wanted]; ok {
		return wanted, true
	}
	for _, id := range order {
		if propString(byID[id], "Name") == wanted {
			return id, true
		}
	}
	return "", false
}

// deviceName resolves a device id to its Name, looking at both plain
// extents and arrays.
func deviceName(query session.Query, deviceID string) string {
	for _, class := range []string{classStorageExtent, classMDRAID} {
		instances, err := query.Instances(class)
		if err != nil {
			continue
		}
		for _, instance := range instances {
			if propString(instance, "DeviceID") == deviceID {
				return propString(instance, "Name")
			}
		}
	}
	return ""
}

// findOne returns the instance matching the first requested device by
// DeviceID or Name, or the first instance of the class when no device
// was requested.
func findOne(query session.Query, class string, devices []string) (session.Instance, error) {
	instances, err := query.Instances(class)
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return nil, fmt.Errorf("no %s instances", class)
	}

	if len(devices) == 0 {
		return instances[0], nil
	}

	wanted := devices[0]
	for _, instance := range instances {
		if propString(instance, "DeviceID") == wanted || propString(instance, "Name") == wanted {
			return instance, nil
		}
	}
	return nil, fmt.Errorf("no such device %q", wanted)
}

// Row builds a table row from the named instance properties, in order.
// Missing properties become empty cells.
func Row(instance session.Instance, names ...string) executor.Row {
	row := make(executor.Row, len(names))
	for i, name := range names {
		value, _ := instance.Get(name)
		row[i] = value
	}
	return row
}

func propString(instance session.Instance, name string) string {
	value, ok := instance.Get(name)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// stringsOf coerces a bound option value to a string list. Grammar
// parsing yields []string for repeatable positionals and nil when none
// were given.
func stringsOf(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func truthy(value any) bool {
	b, _ := value.(bool)
	return b
}
