// Package storage defines the storage command group: thin leaf
// descriptors over the session object model for block devices and MD
// RAID arrays.
package storage

import (
	"fmt"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/executor"
	"github.com/rig-tools/cli/internal/session"
)

// Object model classes the storage commands query.
const (
	classStorageExtent = "StorageExtent"
	classMDRAID        = "MDRAID"
	classBasedOn       = "BasedOn"
)

const deviceUsage = `Block device inspection.

Usage:
    {cmd} list
    {cmd} show [<devices>...]
    {cmd} provides [--deep] [<devices>...]
    {cmd} depends [--deep] [<devices>...]
    {cmd} tree [<device>]

Options:
    --deep  Walk the dependency relation transitively.
`

const raidUsage = `MD RAID management.

Usage:
    {cmd} list
    {cmd} create [--name=<name>] <level> <devices>...
    {cmd} delete <devices>...
    {cmd} show [<devices>...]

Options:
    --name=<name>  Element name for the new array.
`

const storageUsage = `Storage management.

Usage:
    {cmd} <command> [<args>...]

Commands:
    device  Block device inspection.
    raid    MD RAID arrays.
`

// Register adds every storage action to the registry.
func Register(registry *dispatchers.Registry) {
	registry.MustRegister(deviceListAction())
	registry.MustRegister(deviceShowAction())
	registry.MustRegister(deviceProvidesAction())
	registry.MustRegister(deviceDependsAction())
	registry.MustRegister(deviceTreeAction())
	registry.MustRegister(raidListAction())
	registry.MustRegister(raidCreateAction())
	registry.MustRegister(raidDeleteAction())
	registry.MustRegister(raidShowAction())
}

// Descriptor returns the storage command subtree. Actions are
// referenced symbolically and resolved against the registry at build
// time.
func Descriptor() dispatchers.Multiplexer {
	return dispatchers.Multiplexer{
		Usage: storageUsage,
		Children: []dispatchers.Child{
			{Name: "device", Command: dispatchers.Multiplexer{
				Usage: deviceUsage,
				Children: []dispatchers.Child{
					{Name: "list", Command: dispatchers.EndPoint{
						Action: "storage.device.list",
						Policy: executor.Lister{Columns: []string{"DeviceID", "Name", "ElementName", "Size", "Format"}},
					}},
					{Name: "show", Command: dispatchers.EndPoint{
						Action: "storage.device.show",
						Policy: executor.ShowInstance{Properties: []executor.Property{
							{Name: "DeviceID"},
							{Name: "Name"},
							{Name: "ElementName"},
							{Name: "Size", Render: renderSize},
							{Name: "Format"},
						}},
					}},
					{Name: "provides", Command: dispatchers.EndPoint{
						Action: "storage.device.provides",
						Policy: executor.Lister{Columns: []string{"DeviceID", "Name"}},
					}},
					{Name: "depends", Command: dispatchers.EndPoint{
						Action: "storage.device.depends",
						Policy: executor.Lister{Columns: []string{"DeviceID", "Name"}},
					}},
					{Name: "tree", Command: dispatchers.EndPoint{
						Action: "storage.device.tree",
						Policy: executor.Lister{Columns: []string{"Level", "DeviceID", "Name", "ElementName", "Size", "Format"}},
					}},
				},
			}},
			{Name: "raid", Command: dispatchers.Multiplexer{
				Usage: raidUsage,
				Children: []dispatchers.Child{
					{Name: "list", Command: dispatchers.EndPoint{
						Action: "storage.raid.list",
						Policy: executor.Lister{Columns: []string{"DeviceID", "Name", "Level", "Members"}},
					}},
					{Name: "create", Command: dispatchers.EndPoint{
						Action: "storage.raid.create",
						Policy: executor.CheckResult{Expect: 0},
					}},
					{Name: "delete", Command: dispatchers.EndPoint{
						Action: "storage.raid.delete",
						Policy: executor.CheckResult{Expect: 0},
					}},
					{Name: "show", Command: dispatchers.EndPoint{
						Action: "storage.raid.show",
						Policy: executor.ShowInstance{Properties: []executor.Property{
							{Name: "DeviceID"},
							{Name: "Name"},
							{Name: "Level"},
							{Name: "Members"},
						}},
					}},
				},
			}},
		},
	}
}

// renderSize shows the raw byte count with a human-readable suffix.
func renderSize(instance session.Instance) (any, error) {
	value, ok := instance.Get("Size")
	if !ok {
		return nil, fmt.Errorf("instance has no Size")
	}

	size, ok := toInt64(value)
	if !ok {
		return value, nil
	}
	return fmt.Sprintf("%d (%s)", size, humanSize(size)), nil
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
