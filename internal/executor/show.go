package executor

import (
	"fmt"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/render"
	"github.com/rig-tools/cli/internal/session"
)

// Placeholder values substituted when a declared property cannot be
// rendered. A missing property is not fatal to the object's block.
const (
	valueUnknown = "UNKNOWN"
	valueError   = "ERROR"
)

// Property is one declared property of a shown object: a plain name,
// or a name with a render function computing the displayed value.
type Property struct {
	Name   string
	Render func(session.Instance) (any, error)
}

// DynamicResult is what a ShowInstance action returns when the
// property list depends on the invocation.
type DynamicResult struct {
	Properties []Property
	Instance   session.Instance
}

// ShowInstance renders one object per target as ordered label/value
// pairs: all instance properties by default, the declared subset when
// Properties is set, or an action-supplied subset when
// DynamicProperties is set. The two selection modes are exclusive.
type ShowInstance struct {
	Properties        []Property
	DynamicProperties bool
}

func (ShowInstance) PolicyName() string { return "show-instance" }

func (s ShowInstance) Validate() error {
	if len(s.Properties) > 0 && s.DynamicProperties {
		return fmt.Errorf("%w: Properties and DynamicProperties", dispatchers.ErrMixedPolicyFields)
	}
	for i, property := range s.Properties {
		if property.Name == "" {
			return fmt.Errorf("show-instance: property %d has no name", i)
		}
	}
	return nil
}

// runShowInstance renders each connection's object in session order,
// framed by host banners when the session spans multiple targets, then
// appends a failure summary if any target failed.
func (e *Engine) runShowInstance(node *dispatchers.Node, policy ShowInstance, sess *session.Session, bound dispatchers.Bound, report *AggregateReport) {
	multi := sess.Len() > 1
	e.recordUnconnected(sess, report)

	for _, conn := range sess.Connections() {
		result, err := e.invoke(node.Action(), conn, bound)
		if err != nil {
			e.recordActionFailure(node, conn.Hostname(), err, report)
			continue
		}

		properties := policy.Properties
		var instance session.Instance

		if policy.DynamicProperties {
			dynamic, ok := result.(DynamicResult)
			if !ok {
				e.recordActionFailure(node, conn.Hostname(),
					fmt.Errorf("action %s did not return dynamic properties", node.Action().Name), report)
				continue
			}
			properties = dynamic.Properties
			instance = dynamic.Instance
		} else {
			var ok bool
			instance, ok = result.(session.Instance)
			if !ok {
				e.recordActionFailure(node, conn.Hostname(),
					fmt.Errorf("action %s did not return an instance", node.Action().Name), report)
				continue
			}
		}

		if multi {
			e.banner(conn.Hostname())
		}
		if err := render.WriteFields(e.out, e.renderFields(node, conn.Hostname(), instance, properties)); err != nil {
			e.recordActionFailure(node, conn.Hostname(), err, report)
			continue
		}

		report.Successes++
	}

	_ = report.writeFailureTable(e.errOut, "Host")
}

// renderFields resolves the property list against an instance. Render
// failures and missing properties degrade to placeholder values, not
// to a failed target.
func (e *Engine) renderFields(node *dispatchers.Node, host string, instance session.Instance, properties []Property) []render.Field {
	if len(properties) == 0 {
		names := instance.Properties()
		fields := make([]render.Field, 0, len(names))
		for _, name := range names {
			value, _ := instance.Get(name)
			fields = append(fields, render.Field{Label: name, Value: value})
		}
		return fields
	}

	fields := make([]render.Field, 0, len(properties))
	for _, property := range properties {
		var value any
		if property.Render != nil {
			rendered, err := property.Render(instance)
			if err != nil {
				e.logger.Warn("executor: %s: %s: rendering %q failed: %v", node.PathString(), host, property.Name, err)
				rendered = valueError
			}
			value = rendered
		} else {
			got, ok := instance.Get(property.Name)
			if !ok {
				e.logger.Warn("executor: %s: %s: instance has no property %q", node.PathString(), host, property.Name)
				got = valueUnknown
			}
			value = got
		}
		fields = append(fields, render.Field{Label: property.Name, Value: value})
	}
	return fields
}
