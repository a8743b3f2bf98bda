package task

import (
	"errors"
	"fmt"
	"sync"
)

// ErrTaskNotDefined is returned by Resolve for unknown ids.
var ErrTaskNotDefined = errors.New("task not defined")

// Registry indexes eligible task descriptors by id.
type Registry struct {
	order []string
	items map[string]Descriptor
}

// NewRegistry discovers the eligible descriptors in descs, in order.
func NewRegistry(descs ...Descriptor) *Registry {
	r := &Registry{items: make(map[string]Descriptor)}
	for _, d := range descs {
		r.add(d)
	}
	return r
}

// add indexes d. Ineligible descriptors are skipped; an existing id is
// replaced in place.
func (r *Registry) add(d Descriptor) bool {
	if d.New == nil || d.ID == "" {
		return false
	}
	if _, ok := r.items[d.ID]; !ok {
		r.order = append(r.order, d.ID)
	}
	r.items[d.ID] = d
	return true
}

// ListTasks returns registered ids in discovery order. Unless includeAll is
// set, tasks that require the compatibility check are left out.
func (r *Registry) ListTasks(includeAll bool) []string {
	ids := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if includeAll || !r.items[id].RequiresCompatCheck() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Resolve returns the descriptor registered under id.
func (r *Registry) Resolve(id string) (Descriptor, error) {
	d, ok := r.items[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrTaskNotDefined, id)
	}
	return d, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.items[id]
	return ok
}

// Len returns the number of registered ids.
func (r *Registry) Len() int {
	return len(r.order)
}

var (
	mu    sync.Mutex
	table []Descriptor
)

// Register appends d to the process-wide registration table. Call it from
// init.
func Register(d Descriptor) {
	mu.Lock()
	defer mu.Unlock()
	table = append(table, d)
}

// Registered returns the registration table in registration order.
func Registered() []Descriptor {
	mu.Lock()
	defer mu.Unlock()
	return append([]Descriptor(nil), table...)
}
