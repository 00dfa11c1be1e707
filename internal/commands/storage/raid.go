package storage

import (
	"fmt"
	"strconv"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/executor"
	"github.com/rig-tools/cli/internal/session"
)

func raidListAction() *dispatchers.Action {
	return dispatchers.NewAction("storage.raid.list",
		func(conn session.Connection, _ []any, _ map[string]any) (any, error) {
			instances, err := conn.Query().Instances(classMDRAID)
			if err != nil {
				return nil, err
			}

			rows := make([]executor.Row, 0, len(instances))
			for _, instance := range instances {
				rows = append(rows, Row(instance, "DeviceID", "Name", "Level", "Members"))
			}
			return rows, nil
		})
}

func raidCreateAction() *dispatchers.Action {
	return dispatchers.NewAction("storage.raid.create",
		func(conn session.Connection, args []any, _ map[string]any) (any, error) {
			levelText, _ := args[0].(string)
			level, err := strconv.Atoi(levelText)
			if err != nil {
				return nil, fmt.Errorf("invalid RAID level %q", levelText)
			}

			members := stringsOf(args[1])
			if len(members) == 0 {
				return nil, fmt.Errorf("at least one member device is required")
			}

			query := conn.Query()
			name, _ := args[2].(string)
			if name == "" {
				existing, err := query.Instances(classMDRAID)
				if err != nil {
					return nil, err
				}
				name = fmt.Sprintf("md%d", len(existing))
			}

			instance := session.NewInstance(classMDRAID,
				session.Prop{Name: "DeviceID", Value: "/dev/md/" + name},
				session.Prop{Name: "Name", Value: name},
				session.Prop{Name: "Level", Value: level},
				session.Prop{Name: "Members", Value: members},
			)
			return query.Invoke(classMDRAID, "CreateInstance", map[string]any{"instance": instance})
		}, "level", "devices", "__name")
}

func raidDeleteAction() *dispatchers.Action {
	return dispatchers.NewAction("storage.raid.delete",
		func(conn session.Connection, args []any, _ map[string]any) (any, error) {
			devices := stringsOf(args[0])
			if len(devices) == 0 {
				return nil, fmt.Errorf("at least one array is required")
			}

			query := conn.Query()
			for _, device := range devices {
				result, err := query.Invoke(classMDRAID, "DeleteInstance", map[string]any{
					"property": "DeviceID",
					"value":    device,
				})
				if err != nil {
					// A Name was given instead of a DeviceID.
					result, err = query.Invoke(classMDRAID, "DeleteInstance", map[string]any{
						"property": "Name",
						"value":    device,
					})
					if err != nil {
						return nil, err
					}
				}
				if code, ok := result.(int); ok && code != 0 {
					return code, nil
				}
			}
			return 0, nil
		}, "devices")
}

func raidShowAction() *dispatchers.Action {
	return dispatchers.NewAction("storage.raid.show",
		func(conn session.Connection, args []any, _ map[string]any) (any, error) {
			return findOne(conn.Query(), classMDRAID, stringsOf(args[0]))
		}, "devices")
}
