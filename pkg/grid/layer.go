package grid

// Layer identifies an independent partition of a sheet. Cards on different
// layers may share coordinates.
type Layer struct {
	ID   string
	Name string
}

// DefaultLayer is used when callers do not care about layering.
var DefaultLayer = Layer{ID: "default", Name: "Default"}

// SameAs reports whether l and o are the same layer. Only IDs are compared.
func (l Layer) SameAs(o Layer) bool {
	return l.ID == o.ID
}

// String returns the layer name, falling back to its ID.
func (l Layer) String() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// NamedLayer returns the layer with the given id. An empty id or the id of
// DefaultLayer yields DefaultLayer.
func NamedLayer(id string) Layer {
	if id == "" || id == DefaultLayer.ID {
		return DefaultLayer
	}
	return Layer{ID: id, Name: id}
}
