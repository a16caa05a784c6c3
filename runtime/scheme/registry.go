package scheme

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// KnownTypesRegistryInstance is a process wide registry, contracts packages register their types here from init()
var KnownTypesRegistryInstance = NewKnownTypesRegistry()

// KnownTypesRegistry maps message names (group.Kind) to Go types and back
type KnownTypesRegistry interface {
	AddKnownTypes(g Group, types ...Object)
	AddKnownTypeWithName(gk GroupKind, obj Object)
	NewObject(gk GroupKind) (Object, error)
	ObjectKind(obj Object) (*GroupKind, error)
	TypeKind(t reflect.Type) (*GroupKind, error)
	KnownKinds() []GroupKind
}

func NewKnownTypesRegistry() KnownTypesRegistry {
	return &knownTypesRegistry{gkToType: map[GroupKind]reflect.Type{}, typeToGK: map[reflect.Type]GroupKind{}}
}

type knownTypesRegistry struct {
	gkToType map[GroupKind]reflect.Type
	// the reflect.Type we index by is *not* a pointer.
	typeToGK map[reflect.Type]GroupKind
}

func (r *knownTypesRegistry) AddKnownTypes(g Group, types ...Object) {
	for _, obj := range types {
		structType := GetStructType(obj)
		r.addKnownTypeWithName(GroupKind{
			Group: g,
			Kind:  structType.Name(),
		}, obj, structType)
	}
}

func (r *knownTypesRegistry) AddKnownTypeWithName(gk GroupKind, obj Object) {
	structType := GetStructType(obj)
	r.addKnownTypeWithName(gk, obj, structType)
}

func (r *knownTypesRegistry) NewObject(gk GroupKind) (Object, error) {
	t, exists := r.gkToType[gk]

	if !exists {
		return nil, errors.Errorf("type %s is not registered in KnownTypes", gk.String())
	}

	obj := reflect.New(t).Interface().(Object)
	obj.SetGroupKind(&gk)

	return obj, nil
}

func (r *knownTypesRegistry) ObjectKind(obj Object) (*GroupKind, error) {
	return r.TypeKind(GetStructType(obj))
}

func (r *knownTypesRegistry) TypeKind(t reflect.Type) (*GroupKind, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	gk, ok := r.typeToGK[t]
	if !ok {
		return nil, errors.Errorf("no kind is registered in schema for the type %s", t.Name())
	}

	if gk.Empty() {
		return nil, errors.Errorf("empty GK returned")
	}

	return &gk, nil
}

// KnownKinds returns every registered GroupKind sorted by its string form
func (r *knownTypesRegistry) KnownKinds() []GroupKind {
	kinds := make([]GroupKind, 0, len(r.gkToType))
	for gk := range r.gkToType {
		kinds = append(kinds, gk)
	}

	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].String() < kinds[j].String()
	})

	return kinds
}

func (r *knownTypesRegistry) addKnownTypeWithName(gk GroupKind, obj Object, structType reflect.Type) {
	if len(gk.Group) == 0 {
		panic(fmt.Sprintf("group is required on all types: %s %v", gk, structType))
	}

	if oldT, found := r.gkToType[gk]; found && oldT != structType {
		panic(fmt.Sprintf("Double registration of different types for %v: old=%v.%v, new=%v.%v", gk, oldT.PkgPath(), oldT.Name(), structType.PkgPath(), structType.Name()))
	}

	r.gkToType[gk] = structType
	r.typeToGK[structType] = gk
	obj.SetGroupKind(&gk)
}

// GetStructType returns the struct type behind obj, obj may be a struct value or a pointer to it
func GetStructType(obj Object) reflect.Type {
	structType := reflect.TypeOf(obj)

	if structType.Kind() != reflect.Ptr {
		structType = reflect.PtrTo(structType)
	}

	structType = structType.Elem()
	if structType.Kind() != reflect.Struct {
		panic("all types must be pointers to structs")
	}

	if hasDeepEmbeddedGK(structType) {
		panic("struct has embedded another struct on the first level which implement Object interface. need implement explicitly Object interface(embed TypeMeta struct)")
	}

	return structType
}

var objectType = reflect.TypeOf((*Object)(nil)).Elem()

func hasDeepEmbeddedGK(structType reflect.Type) bool {
	for i := 0; i < structType.NumField(); i++ {
		if fieldType := structType.Field(i).Type; fieldType.Kind() == reflect.Struct {
			if fieldType.Implements(objectType) {
				return true
			}
		}
	}

	return false
}
