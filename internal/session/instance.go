package session

// Prop is one named property value with a stable position.
type Prop struct {
	Name  string
	Value any
}

// record is the basic ordered-property Instance implementation used by
// transports and tests.
type record struct {
	class string
	props []Prop
}

// NewInstance creates an Instance of the given class with properties
// in the given order.
func NewInstance(class string, props ...Prop) Instance {
	copied := make([]Prop, len(props))
	copy(copied, props)
	return &record{class: class, props: copied}
}

func (r *record) Class() string {
	return r.class
}

func (r *record) Properties() []string {
	names := make([]string, len(r.props))
	for i, p := range r.props {
		names[i] = p.Name
	}
	return names
}

func (r *record) Get(name string) (any, bool) {
	for _, p := range r.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
