package scanner

import "fmt"

// Registry manages scanner modules by name, preserving registration order.
type Registry struct {
	order    []string
	scanners map[string]Scanner
}

// NewRegistry creates an empty scanner registry.
func NewRegistry() *Registry {
	return &Registry{scanners: make(map[string]Scanner)}
}

// Register adds a scanner to the registry. Re-registering a name replaces
// the previous scanner but keeps its position.
func (r *Registry) Register(s Scanner) {
	if _, exists := r.scanners[s.Name()]; !exists {
		r.order = append(r.order, s.Name())
	}
	r.scanners[s.Name()] = s
}

// Get retrieves a scanner by name.
func (r *Registry) Get(name string) (Scanner, error) {
	s, ok := r.scanners[name]
	if !ok {
		return nil, fmt.Errorf("scanner %q not found", name)
	}
	return s, nil
}

// All returns all registered scanners in registration order.
func (r *Registry) All() []Scanner {
	result := make([]Scanner, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.scanners[name])
	}
	return result
}

// Names returns the registered scanner names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
