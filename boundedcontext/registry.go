package boundedcontext

import (
	"sync"

	"github.com/pkg/errors"
)

// Registry is the set of bounded contexts hosted by one engine, in the order they were added
type Registry struct {
	mutex    sync.RWMutex
	contexts []*BoundedContext
	byName   map[string]*BoundedContext
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*BoundedContext)}
}

func (r *Registry) Add(bc *BoundedContext) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.byName[bc.Name]; exists {
		return errors.Wrapf(ErrDuplicateRegistration, "bounded context %s", bc.Name)
	}

	r.byName[bc.Name] = bc
	r.contexts = append(r.contexts, bc)
	bc.registry = r

	return nil
}

// Remove drops bounded contexts by name, unknown names are ignored
func (r *Registry) Remove(names ...string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, name := range names {
		bc, exists := r.byName[name]
		if !exists {
			continue
		}

		delete(r.byName, name)

		for i, c := range r.contexts {
			if c == bc {
				r.contexts = append(r.contexts[:i], r.contexts[i+1:]...)
				break
			}
		}

		if bc.registry == r {
			bc.registry = nil
		}
	}
}

func (r *Registry) Get(name string) (*BoundedContext, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	bc, ok := r.byName[name]
	return bc, ok
}

func (r *Registry) Contains(name string) bool {
	_, ok := r.Get(name)
	return ok
}

func (r *Registry) All() []*BoundedContext {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	res := make([]*BoundedContext, len(r.contexts))
	copy(res, r.contexts)

	return res
}
