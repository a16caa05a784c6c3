package boundedcontext

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../testing/mocks/boundedcontext/resolver.go -package boundedcontext . DependencyResolver

// DependencyResolver materializes handler, projection and process types declared by registrations
type DependencyResolver interface {
	HasService(t reflect.Type) bool
	Resolve(t reflect.Type) (interface{}, error)
}

// DefaultResolver returns registered instances, or creates a single instance of any pointer to struct type with reflection
type DefaultResolver struct {
	mutex     sync.Mutex
	instances map[reflect.Type]interface{}
}

func NewDefaultResolver() *DefaultResolver {
	return &DefaultResolver{instances: make(map[reflect.Type]interface{})}
}

// Register makes Resolve return instance for its type
func (r *DefaultResolver) Register(instances ...interface{}) *DefaultResolver {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, instance := range instances {
		r.instances[reflect.TypeOf(instance)] = instance
	}

	return r
}

func (r *DefaultResolver) HasService(t reflect.Type) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.instances[t]; ok {
		return true
	}

	return constructable(t)
}

func (r *DefaultResolver) Resolve(t reflect.Type) (interface{}, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if instance, ok := r.instances[t]; ok {
		return instance, nil
	}

	if !constructable(t) {
		return nil, errors.Errorf("type %v is not registered and can't be constructed", t)
	}

	instance := reflect.New(t.Elem()).Interface()
	r.instances[t] = instance

	return instance, nil
}

func constructable(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct
}
